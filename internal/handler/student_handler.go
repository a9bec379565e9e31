package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sga-api/internal/service"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
	"github.com/noah-isme/sga-api/pkg/response"
)

// StudentHandler handles alumno CRUD and export endpoints.
type StudentHandler struct {
	service *service.StudentService
	exports *service.ExportService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(svc *service.StudentService, exports *service.ExportService) *StudentHandler {
	return &StudentHandler{service: svc, exports: exports}
}

// List godoc
// @Summary List alumnos
// @Description List alumnos with their usuario identity
// @Tags Alumnos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.StudentDetail
// @Failure 403 {object} map[string]string
// @Router /alumnos [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, students)
}

// Get godoc
// @Summary Get alumno
// @Description Get one alumno by ID; alumnos may only read their own record
// @Tags Alumnos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Alumno ID"
// @Success 200 {object} models.StudentDetail
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /alumnos/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id, principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, detail)
}

// Create godoc
// @Summary Create alumno
// @Description Register an alumno profile for an existing usuario
// @Tags Alumnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateStudentRequest true "Create alumno payload"
// @Success 201 {object} models.Student
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /alumnos [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Datos de alumno inválidos"))
		return
	}

	student, err := h.service.Create(c.Request.Context(), req, principalFromContext(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, student)
}

// Update godoc
// @Summary Update alumno
// @Description Partially update an alumno
// @Tags Alumnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Alumno ID"
// @Param payload body service.UpdateStudentRequest true "Update alumno payload"
// @Success 200 {object} models.Student
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /alumnos/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Datos de alumno inválidos"))
		return
	}

	student, err := h.service.Update(c.Request.Context(), id, req, principalFromContext(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete alumno
// @Description Permanently remove an alumno
// @Tags Alumnos
// @Security BearerAuth
// @Param id path int true "Alumno ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /alumnos/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
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

// Export godoc
// @Summary Export alumno roster
// @Description Download the alumno roster as CSV or PDF
// @Tags Alumnos
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param formato query string false "csv (default) or pdf"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /alumnos/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	result, err := h.exports.StudentRoster(c.Request.Context(), c.Query("formato"), principalFromContext(c), requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
