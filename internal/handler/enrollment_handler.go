package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sga-api/internal/service"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
	"github.com/noah-isme/sga-api/pkg/response"
)

// EnrollmentHandler handles inscripcion CRUD endpoints.
type EnrollmentHandler struct {
	service *service.EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler.
func NewEnrollmentHandler(svc *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// List godoc
// @Summary List inscripciones
// @Tags Inscripciones
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Enrollment
// @Router /inscripciones [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	enrollments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, enrollments)
}

// Get godoc
// @Summary Get inscripción
// @Tags Inscripciones
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inscripción ID"
// @Success 200 {object} models.Enrollment
// @Failure 404 {object} map[string]string
// @Router /inscripciones/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	enrollment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, enrollment)
}

// Create godoc
// @Summary Create inscripción
// @Description Enroll an alumno in a grupo; the pair must be unique
// @Tags Inscripciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateEnrollmentRequest true "Create inscripción payload"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /inscripciones [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req service.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Datos de inscripción inválidos"))
		return
	}

	enrollment, err := h.service.Create(c.Request.Context(), req, principalFromContext(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, enrollment)
}

// Update godoc
// @Summary Update inscripción
// @Tags Inscripciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inscripción ID"
// @Param payload body service.UpdateEnrollmentRequest true "Update inscripción payload"
// @Success 200 {object} models.Enrollment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /inscripciones/{id} [put]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.UpdateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Datos de inscripción inválidos"))
		return
	}

	enrollment, err := h.service.Update(c.Request.Context(), id, req, principalFromContext(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, enrollment)
}

// Delete godoc
// @Summary Delete inscripción
// @Tags Inscripciones
// @Security BearerAuth
// @Param id path int true "Inscripción ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /inscripciones/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
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
