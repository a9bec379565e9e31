package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sga-api/internal/service"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
	"github.com/noah-isme/sga-api/pkg/response"
)

// SubjectHandler handles materia CRUD endpoints.
type SubjectHandler struct {
	service *service.SubjectService
}

// NewSubjectHandler creates a new subject handler.
func NewSubjectHandler(svc *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List materias
// @Tags Materias
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Subject
// @Router /materias [get]
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, subjects)
}

// Get godoc
// @Summary Get materia
// @Tags Materias
// @Produce json
// @Security BearerAuth
// @Param id path int true "Materia ID"
// @Success 200 {object} models.Subject
// @Failure 404 {object} map[string]string
// @Router /materias/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	subject, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, subject)
}

// Create godoc
// @Summary Create materia
// @Tags Materias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateSubjectRequest true "Create materia payload"
// @Success 201 {object} models.Subject
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /materias [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Datos de materia inválidos"))
		return
	}

	subject, err := h.service.Create(c.Request.Context(), req, principalFromContext(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, subject)
}

// Update godoc
// @Summary Update materia
// @Tags Materias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Materia ID"
// @Param payload body service.UpdateSubjectRequest true "Update materia payload"
// @Success 200 {object} models.Subject
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /materias/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Datos de materia inválidos"))
		return
	}

	subject, err := h.service.Update(c.Request.Context(), id, req, principalFromContext(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, subject)
}

// Delete godoc
// @Summary Delete materia
// @Tags Materias
// @Security BearerAuth
// @Param id path int true "Materia ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /materias/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
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
