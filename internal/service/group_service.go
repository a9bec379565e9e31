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

type groupRepository interface {
	List(ctx context.Context) ([]models.Group, error)
	FindByID(ctx context.Context, id int64) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) (*models.Group, error)
	PartialUpdate(ctx context.Context, id int64, fields []repository.Field) (*models.Group, error)
	Delete(ctx context.Context, id int64) error
}

// CreateGroupRequest is the payload for creating grupos. CupoMaximo defaults
// to 30 and Activo to true when omitted.
type CreateGroupRequest struct {
	MateriaID   int64   `json:"materia_id" validate:"required"`
	ProfesorID  *int64  `json:"profesor_id"`
	CodigoGrupo string  `json:"codigo_grupo" validate:"required,min=1,max=20"`
	Horario     *string `json:"horario" validate:"omitempty,max=100"`
	Aula        *string `json:"aula" validate:"omitempty,max=50"`
	CupoMaximo  *int    `json:"cupo_maximo" validate:"omitempty,min=1"`
	Periodo     string  `json:"periodo" validate:"required,min=4,max=20"`
	Activo      *bool   `json:"activo"`
}

// UpdateGroupRequest is the partial-update payload for grupos.
type UpdateGroupRequest struct {
	ProfesorID  *int64  `json:"profesor_id"`
	CodigoGrupo *string `json:"codigo_grupo" validate:"omitempty,min=1,max=20"`
	Horario     *string `json:"horario" validate:"omitempty,max=100"`
	Aula        *string `json:"aula" validate:"omitempty,max=50"`
	CupoMaximo  *int    `json:"cupo_maximo" validate:"omitempty,min=1"`
	Periodo     *string `json:"periodo" validate:"omitempty,min=4,max=20"`
	Activo      *bool   `json:"activo"`
}

// GroupService handles grupo management workflows.
type GroupService struct {
	auditTrail
	repo      groupRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGroupService constructs a GroupService.
func NewGroupService(repo groupRepository, cache *CacheService, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &GroupService{auditTrail: auditTrail{audit: audit, logger: logger}, repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all grupos, serving from cache when possible.
func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	if s.cache.Enabled() {
		var cached []models.Group
		if err := s.cache.Get(ctx, cacheKeyGroups, &cached); err == nil {
			return cached, nil
		}
	}

	groups, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener grupos")
	}

	s.cache.Set(ctx, cacheKeyGroups, groups)
	return groups, nil
}

// Get returns one grupo by ID.
func (s *GroupService) Get(ctx context.Context, id int64) (*models.Group, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Grupo no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener grupo")
	}
	return group, nil
}

// Create registers a grupo. A missing materia or profesor surfaces as a
// validation error through the store's foreign keys.
func (s *GroupService) Create(ctx context.Context, req CreateGroupRequest, actor *models.Principal, meta models.RequestMeta) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de grupo inválidos")
	}

	cupo := 30
	if req.CupoMaximo != nil {
		cupo = *req.CupoMaximo
	}
	activo := true
	if req.Activo != nil {
		activo = *req.Activo
	}

	group, err := s.repo.Create(ctx, &models.Group{
		MateriaID:   req.MateriaID,
		ProfesorID:  req.ProfesorID,
		CodigoGrupo: req.CodigoGrupo,
		Horario:     req.Horario,
		Aula:        req.Aula,
		CupoMaximo:  cupo,
		Periodo:     req.Periodo,
		Activo:      activo,
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cacheKeyGroups)
	s.record(ctx, actor, models.AuditActionCreate, "grupos", group.ID, map[string]interface{}{"codigo_grupo": group.CodigoGrupo, "periodo": group.Periodo}, meta)
	return group, nil
}

// Update applies a partial update to a grupo.
func (s *GroupService) Update(ctx context.Context, id int64, req UpdateGroupRequest, actor *models.Principal, meta models.RequestMeta) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de grupo inválidos")
	}

	var fields []repository.Field
	if req.ProfesorID != nil {
		fields = append(fields, repository.Field{Column: "profesor_id", Value: *req.ProfesorID})
	}
	if req.CodigoGrupo != nil {
		fields = append(fields, repository.Field{Column: "codigo_grupo", Value: *req.CodigoGrupo})
	}
	if req.Horario != nil {
		fields = append(fields, repository.Field{Column: "horario", Value: *req.Horario})
	}
	if req.Aula != nil {
		fields = append(fields, repository.Field{Column: "aula", Value: *req.Aula})
	}
	if req.CupoMaximo != nil {
		fields = append(fields, repository.Field{Column: "cupo_maximo", Value: *req.CupoMaximo})
	}
	if req.Periodo != nil {
		fields = append(fields, repository.Field{Column: "periodo", Value: *req.Periodo})
	}
	if req.Activo != nil {
		fields = append(fields, repository.Field{Column: "activo", Value: *req.Activo})
	}

	group, err := s.repo.PartialUpdate(ctx, id, fields)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Grupo no encontrado")
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, cacheKeyGroups)
	s.record(ctx, actor, models.AuditActionUpdate, "grupos", group.ID, map[string]interface{}{"fields": fieldColumns(fields)}, meta)
	return group, nil
}

// Delete removes a grupo row.
func (s *GroupService) Delete(ctx context.Context, id int64, actor *models.Principal, meta models.RequestMeta) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Grupo no encontrado")
		}
		return err
	}

	s.cache.Invalidate(ctx, cacheKeyGroups)
	s.record(ctx, actor, models.AuditActionDelete, "grupos", id, nil, meta)
	return nil
}
