package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sga-api/internal/models"
	"github.com/noah-isme/sga-api/internal/repository"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
)

type enrollmentRepository interface {
	List(ctx context.Context) ([]models.Enrollment, error)
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error)
	PartialUpdate(ctx context.Context, id int64, fields []repository.Field) (*models.Enrollment, error)
	Delete(ctx context.Context, id int64) error
}

// CreateEnrollmentRequest is the payload for enrolling an alumno in a grupo.
type CreateEnrollmentRequest struct {
	AlumnoID     int64                   `json:"alumno_id" validate:"required"`
	GrupoID      int64                   `json:"grupo_id" validate:"required"`
	Calificacion *float64                `json:"calificacion" validate:"omitempty,min=0,max=100"`
	Estatus      models.EnrollmentStatus `json:"estatus" validate:"omitempty,oneof=inscrito aprobado reprobado baja"`
}

// UpdateEnrollmentRequest is the partial-update payload for inscripciones.
// Every field is independently optional; moving an inscripcion to another
// alumno or grupo is allowed as long as the target pair stays unique.
type UpdateEnrollmentRequest struct {
	AlumnoID     *int64                   `json:"alumno_id" validate:"omitempty,min=1"`
	GrupoID      *int64                   `json:"grupo_id" validate:"omitempty,min=1"`
	Calificacion *float64                 `json:"calificacion" validate:"omitempty,min=0,max=100"`
	Estatus      *models.EnrollmentStatus `json:"estatus" validate:"omitempty,oneof=inscrito aprobado reprobado baja"`
}

// EnrollmentService handles inscripcion management workflows.
type EnrollmentService struct {
	auditTrail
	repo      enrollmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EnrollmentService{auditTrail: auditTrail{audit: audit, logger: logger}, repo: repo, validator: validate, logger: logger}
}

// List returns all inscripciones.
func (s *EnrollmentService) List(ctx context.Context) ([]models.Enrollment, error) {
	enrollments, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener inscripciones")
	}
	return enrollments, nil
}

// Get returns one inscripcion by ID.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Inscripción no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener inscripción")
	}
	return enrollment, nil
}

// Create enrolls an alumno in a grupo. The unique (alumno_id, grupo_id) index
// is the authoritative duplicate guard; its rejection maps to 409.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest, actor *models.Principal, meta models.RequestMeta) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de inscripción inválidos")
	}

	estatus := req.Estatus
	if estatus == "" {
		estatus = models.EnrollmentStatusEnrolled
	}

	enrollment, err := s.repo.Create(ctx, &models.Enrollment{
		AlumnoID:     req.AlumnoID,
		GrupoID:      req.GrupoID,
		Calificacion: req.Calificacion,
		Estatus:      estatus,
	})
	if err != nil {
		if appErrors.FromError(err).Status == appErrors.ErrConflict.Status {
			return nil, appErrors.Clone(appErrors.ErrConflict, "El alumno ya está inscrito en este grupo")
		}
		return nil, err
	}

	s.record(ctx, actor, models.AuditActionCreate, "inscripciones", enrollment.ID, map[string]interface{}{"alumno_id": enrollment.AlumnoID, "grupo_id": enrollment.GrupoID}, meta)
	return enrollment, nil
}

// Update applies a partial update to an inscripcion.
func (s *EnrollmentService) Update(ctx context.Context, id int64, req UpdateEnrollmentRequest, actor *models.Principal, meta models.RequestMeta) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de inscripción inválidos")
	}

	var fields []repository.Field
	if req.AlumnoID != nil {
		fields = append(fields, repository.Field{Column: "alumno_id", Value: *req.AlumnoID})
	}
	if req.GrupoID != nil {
		fields = append(fields, repository.Field{Column: "grupo_id", Value: *req.GrupoID})
	}
	if req.Calificacion != nil {
		fields = append(fields, repository.Field{Column: "calificacion", Value: *req.Calificacion})
	}
	if req.Estatus != nil {
		fields = append(fields, repository.Field{Column: "estatus", Value: *req.Estatus})
	}

	enrollment, err := s.repo.PartialUpdate(ctx, id, fields)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Inscripción no encontrada")
		}
		if appErrors.FromError(err).Status == appErrors.ErrConflict.Status {
			return nil, appErrors.Clone(appErrors.ErrConflict, "El alumno ya está inscrito en este grupo")
		}
		return nil, err
	}

	s.record(ctx, actor, models.AuditActionUpdate, "inscripciones", enrollment.ID, map[string]interface{}{"fields": fieldColumns(fields)}, meta)
	return enrollment, nil
}

// Delete removes an inscripcion row.
func (s *EnrollmentService) Delete(ctx context.Context, id int64, actor *models.Principal, meta models.RequestMeta) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Inscripción no encontrada")
		}
		return err
	}

	s.record(ctx, actor, models.AuditActionDelete, "inscripciones", id, nil, meta)
	return nil
}
