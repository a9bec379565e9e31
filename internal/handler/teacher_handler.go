package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sga-api/internal/service"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
	"github.com/noah-isme/sga-api/pkg/response"
)

// TeacherHandler handles profesor CRUD endpoints.
type TeacherHandler struct {
	service *service.TeacherService
}

// NewTeacherHandler creates a new teacher handler.
func NewTeacherHandler(svc *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{service: svc}
}

// List godoc
// @Summary List profesores
// @Tags Profesores
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Teacher
// @Failure 403 {object} map[string]string
// @Router /profesores [get]
func (h *TeacherHandler) List(c *gin.Context) {
	teachers, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, teachers)
}

// Get godoc
// @Summary Get profesor
// @Tags Profesores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profesor ID"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} map[string]string
// @Router /profesores/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	teacher, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, teacher)
}

// Create godoc
// @Summary Create profesor
// @Description Register a profesor profile for an existing usuario
// @Tags Profesores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateTeacherRequest true "Create profesor payload"
// @Success 201 {object} models.Teacher
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /profesores [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	var req service.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Datos de profesor inválidos"))
		return
	}

	teacher, err := h.service.Create(c.Request.Context(), req, principalFromContext(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, teacher)
}

// Update godoc
// @Summary Update profesor
// @Tags Profesores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profesor ID"
// @Param payload body service.UpdateTeacherRequest true "Update profesor payload"
// @Success 200 {object} models.Teacher
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /profesores/{id} [put]
func (h *TeacherHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Datos de profesor inválidos"))
		return
	}

	teacher, err := h.service.Update(c.Request.Context(), id, req, principalFromContext(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, teacher)
}

// Delete godoc
// @Summary Delete profesor
// @Tags Profesores
// @Security BearerAuth
// @Param id path int true "Profesor ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /profesores/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
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
