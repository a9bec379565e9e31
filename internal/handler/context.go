package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sga-api/internal/middleware"
	"github.com/noah-isme/sga-api/internal/models"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
)

// principalFromContext returns the authenticated principal, or nil on public
// routes.
func principalFromContext(c *gin.Context) *models.Principal {
	if value, ok := c.Get(middleware.ContextUserKey); ok {
		if principal, ok := value.(*models.Principal); ok {
			return principal
		}
	}
	return nil
}

func requestMeta(c *gin.Context) models.RequestMeta {
	return models.RequestMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "ID inválido")
	}
	return id, nil
}
