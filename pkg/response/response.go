package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/sga-api/pkg/errors"
)

// JSON sends a success response with the payload as-is. Resources are returned
// bare (object or array) to stay wire compatible with the existing clients.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// List sends a collection response, exposing pagination totals via headers so
// the body stays a bare array.
func List(c *gin.Context, data interface{}, page, limit, total int) {
	if total >= 0 {
		c.Header("X-Total-Count", strconv.Itoa(total))
	}
	if page > 0 {
		c.Header("X-Page", strconv.Itoa(page))
	}
	if limit > 0 {
		c.Header("X-Limit", strconv.Itoa(limit))
	}
	JSON(c, http.StatusOK, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error renders the `{"error": "<mensaje>"}` contract with the mapped status.
// Unknown errors collapse to a generic 500 so driver details never leak.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
