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

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	PartialUpdate(ctx context.Context, id int64, fields []repository.Field) (*models.Subject, error)
	Delete(ctx context.Context, id int64) error
}

// CreateSubjectRequest is the payload for creating materias.
type CreateSubjectRequest struct {
	Codigo              string  `json:"codigo" validate:"required,min=2,max=20"`
	Nombre              string  `json:"nombre" validate:"required,min=2,max=100"`
	Creditos            int     `json:"creditos" validate:"required,min=1"`
	Descripcion         *string `json:"descripcion" validate:"omitempty,max=500"`
	Prerequisitos       *string `json:"prerequisitos" validate:"omitempty,max=500"`
	SemestreRecomendado *int    `json:"semestre_recomendado" validate:"omitempty,min=1,max=10"`
}

// UpdateSubjectRequest is the partial-update payload for materias.
type UpdateSubjectRequest struct {
	Codigo              *string `json:"codigo" validate:"omitempty,min=2,max=20"`
	Nombre              *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Creditos            *int    `json:"creditos" validate:"omitempty,min=1"`
	Descripcion         *string `json:"descripcion" validate:"omitempty,max=500"`
	Prerequisitos       *string `json:"prerequisitos" validate:"omitempty,max=500"`
	SemestreRecomendado *int    `json:"semestre_recomendado" validate:"omitempty,min=1,max=10"`
}

// SubjectService handles materia management workflows. Listings go through
// the catalog cache when it is enabled; mutations invalidate it.
type SubjectService struct {
	auditTrail
	repo      subjectRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, cache *CacheService, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SubjectService{auditTrail: auditTrail{audit: audit, logger: logger}, repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all materias, serving from cache when possible.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	if s.cache.Enabled() {
		var cached []models.Subject
		if err := s.cache.Get(ctx, cacheKeySubjects, &cached); err == nil {
			return cached, nil
		}
	}

	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener materias")
	}

	s.cache.Set(ctx, cacheKeySubjects, subjects)
	return subjects, nil
}

// Get returns one materia by ID.
func (s *SubjectService) Get(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Materia no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener materia")
	}
	return subject, nil
}

// Create registers a materia. Duplicate códigos surface as 409 via the
// store's unique index.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest, actor *models.Principal, meta models.RequestMeta) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de materia inválidos")
	}

	subject, err := s.repo.Create(ctx, &models.Subject{
		Codigo:              req.Codigo,
		Nombre:              req.Nombre,
		Creditos:            req.Creditos,
		Descripcion:         req.Descripcion,
		Prerequisitos:       req.Prerequisitos,
		SemestreRecomendado: req.SemestreRecomendado,
	})
	if err != nil {
		if appErrors.FromError(err).Status == appErrors.ErrConflict.Status {
			return nil, appErrors.Clone(appErrors.ErrConflict, "El código de materia ya está registrado")
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, cacheKeySubjects)
	s.record(ctx, actor, models.AuditActionCreate, "materias", subject.ID, map[string]interface{}{"codigo": subject.Codigo}, meta)
	return subject, nil
}

// Update applies a partial update to a materia.
func (s *SubjectService) Update(ctx context.Context, id int64, req UpdateSubjectRequest, actor *models.Principal, meta models.RequestMeta) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de materia inválidos")
	}

	var fields []repository.Field
	if req.Codigo != nil {
		fields = append(fields, repository.Field{Column: "codigo", Value: *req.Codigo})
	}
	if req.Nombre != nil {
		fields = append(fields, repository.Field{Column: "nombre", Value: *req.Nombre})
	}
	if req.Creditos != nil {
		fields = append(fields, repository.Field{Column: "creditos", Value: *req.Creditos})
	}
	if req.Descripcion != nil {
		fields = append(fields, repository.Field{Column: "descripcion", Value: *req.Descripcion})
	}
	if req.Prerequisitos != nil {
		fields = append(fields, repository.Field{Column: "prerequisitos", Value: *req.Prerequisitos})
	}
	if req.SemestreRecomendado != nil {
		fields = append(fields, repository.Field{Column: "semestre_recomendado", Value: *req.SemestreRecomendado})
	}

	subject, err := s.repo.PartialUpdate(ctx, id, fields)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Materia no encontrada")
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, cacheKeySubjects)
	s.record(ctx, actor, models.AuditActionUpdate, "materias", subject.ID, map[string]interface{}{"fields": fieldColumns(fields)}, meta)
	return subject, nil
}

// Delete removes a materia row.
func (s *SubjectService) Delete(ctx context.Context, id int64, actor *models.Principal, meta models.RequestMeta) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Materia no encontrada")
		}
		return err
	}

	s.cache.Invalidate(ctx, cacheKeySubjects)
	s.record(ctx, actor, models.AuditActionDelete, "materias", id, nil, meta)
	return nil
}
