package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/sga-api/internal/models"
	"github.com/noah-isme/sga-api/internal/repository"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.PublicUser, int, error)
	FindByID(ctx context.Context, id int64) (*models.PublicUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, nombre, email, passwordHash string, rol models.UserRole) (*models.PublicUser, error)
	PartialUpdate(ctx context.Context, id int64, fields []repository.Field) (*models.PublicUser, error)
	Delete(ctx context.Context, id int64) error
}

// CreateUserRequest represents the payload for creating usuarios.
type CreateUserRequest struct {
	Nombre   string          `json:"nombre" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Rol      models.UserRole `json:"rol" validate:"required,oneof=admin profesor alumno"`
}

// UpdateUserRequest is the partial-update payload for usuarios. Only fields
// present in the body are touched; rol is deliberately not updatable.
type UpdateUserRequest struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Activo   *bool   `json:"activo"`
}

// UserService handles usuario management workflows.
type UserService struct {
	auditTrail
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{auditTrail: auditTrail{audit: audit, logger: logger}, repo: repo, validator: validate, logger: logger}
}

// List returns users matching the filter plus pagination metadata.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.PublicUser, *models.Pagination, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener usuarios")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	return users, &models.Pagination{Page: page, Limit: limit, TotalCount: total}, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*models.PublicUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Usuario no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener usuario")
	}
	return user, nil
}

// Create registers a new user. The pre-check gives a friendly message for the
// common case; the store's unique index on email remains the real guard.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest, actor *models.Principal, meta models.RequestMeta) (*models.PublicUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de usuario inválidos")
	}

	email := strings.ToLower(req.Email)
	if exists, err := s.repo.ExistsByEmail(ctx, email); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al crear usuario")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "El email ya está registrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al crear usuario")
	}

	user, err := s.repo.Create(ctx, req.Nombre, email, string(hash), req.Rol)
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, models.AuditActionCreate, "usuarios", user.ID, map[string]interface{}{"email": user.Email, "rol": user.Rol}, meta)
	return user, nil
}

// Update applies a partial update. Password values are hashed before they
// reach the query builder; the plaintext is never stored or logged.
func (s *UserService) Update(ctx context.Context, id int64, req UpdateUserRequest, actor *models.Principal, meta models.RequestMeta) (*models.PublicUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de usuario inválidos")
	}

	var fields []repository.Field
	if req.Nombre != nil {
		fields = append(fields, repository.Field{Column: "nombre", Value: *req.Nombre})
	}
	if req.Email != nil {
		fields = append(fields, repository.Field{Column: "email", Value: strings.ToLower(*req.Email)})
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al actualizar usuario")
		}
		fields = append(fields, repository.Field{Column: "password", Value: string(hash)})
	}
	if req.Activo != nil {
		fields = append(fields, repository.Field{Column: "activo", Value: *req.Activo})
	}

	user, err := s.repo.PartialUpdate(ctx, id, fields)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Usuario no encontrado")
		}
		return nil, err
	}

	s.record(ctx, actor, models.AuditActionUpdate, "usuarios", user.ID, map[string]interface{}{"fields": fieldColumns(fields)}, meta)
	return user, nil
}

// Delete removes a user row permanently.
func (s *UserService) Delete(ctx context.Context, id int64, actor *models.Principal, meta models.RequestMeta) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Usuario no encontrado")
		}
		return err
	}

	s.record(ctx, actor, models.AuditActionDelete, "usuarios", id, nil, meta)
	return nil
}
