package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sga-api/internal/service"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
	"github.com/noah-isme/sga-api/pkg/response"
)

// GroupHandler handles grupo CRUD endpoints.
type GroupHandler struct {
	service *service.GroupService
}

// NewGroupHandler creates a new group handler.
func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{service: svc}
}

// List godoc
// @Summary List grupos
// @Tags Grupos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Group
// @Router /grupos [get]
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, groups)
}

// Get godoc
// @Summary Get grupo
// @Tags Grupos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grupo ID"
// @Success 200 {object} models.Group
// @Failure 404 {object} map[string]string
// @Router /grupos/{id} [get]
func (h *GroupHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	group, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, group)
}

// Create godoc
// @Summary Create grupo
// @Tags Grupos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateGroupRequest true "Create grupo payload"
// @Success 201 {object} models.Group
// @Failure 400 {object} map[string]string
// @Router /grupos [post]
func (h *GroupHandler) Create(c *gin.Context) {
	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Datos de grupo inválidos"))
		return
	}

	group, err := h.service.Create(c.Request.Context(), req, principalFromContext(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, group)
}

// Update godoc
// @Summary Update grupo
// @Tags Grupos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grupo ID"
// @Param payload body service.UpdateGroupRequest true "Update grupo payload"
// @Success 200 {object} models.Group
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /grupos/{id} [put]
func (h *GroupHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Datos de grupo inválidos"))
		return
	}

	group, err := h.service.Update(c.Request.Context(), id, req, principalFromContext(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, group)
}

// Delete godoc
// @Summary Delete grupo
// @Tags Grupos
// @Security BearerAuth
// @Param id path int true "Grupo ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /grupos/{id} [delete]
func (h *GroupHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, principalFromContext(c), requestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
