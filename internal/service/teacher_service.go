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

type teacherRepository interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	ExistsByCodigoEmpleado(ctx context.Context, codigo string) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error)
	PartialUpdate(ctx context.Context, id int64, fields []repository.Field) (*models.Teacher, error)
	Delete(ctx context.Context, id int64) error
}

// CreateTeacherRequest is the payload for registering profesores.
type CreateTeacherRequest struct {
	UsuarioID      int64   `json:"usuario_id" validate:"required"`
	CodigoEmpleado string  `json:"codigo_empleado" validate:"required,min=3,max=20"`
	Departamento   *string `json:"departamento" validate:"omitempty,max=100"`
	Especialidad   *string `json:"especialidad" validate:"omitempty,max=100"`
	Telefono       *string `json:"telefono" validate:"omitempty,max=20"`
	FechaIngreso   string  `json:"fecha_ingreso" validate:"required"`
}

// UpdateTeacherRequest is the partial-update payload for profesores. Every
// field is optional.
type UpdateTeacherRequest struct {
	CodigoEmpleado *string `json:"codigo_empleado" validate:"omitempty,min=3,max=20"`
	Departamento   *string `json:"departamento" validate:"omitempty,max=100"`
	Especialidad   *string `json:"especialidad" validate:"omitempty,max=100"`
	Telefono       *string `json:"telefono" validate:"omitempty,max=20"`
	FechaIngreso   *string `json:"fecha_ingreso"`
}

// TeacherService handles profesor management workflows.
type TeacherService struct {
	auditTrail
	repo      teacherRepository
	users     userRoleLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, users userRoleLookup, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TeacherService{auditTrail: auditTrail{audit: audit, logger: logger}, repo: repo, users: users, validator: validate, logger: logger}
}

// List returns all profesores.
func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener profesores")
	}
	return teachers, nil
}

// Get returns one profesor by ID.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Profesor no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener profesor")
	}
	return teacher, nil
}

// Create registers a profesor profile. The target usuario must exist and hold
// rol profesor.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest, actor *models.Principal, meta models.RequestMeta) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de profesor inválidos")
	}

	user, err := s.users.FindByID(ctx, req.UsuarioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Usuario no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al crear profesor")
	}
	if user.Rol != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrValidation, "El usuario debe tener rol de profesor")
	}

	if exists, err := s.repo.ExistsByCodigoEmpleado(ctx, req.CodigoEmpleado); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al crear profesor")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "El código de empleado ya está registrado")
	}

	fechaIngreso, err := parseDate(req.FechaIngreso)
	if err != nil {
		return nil, err
	}

	teacher, err := s.repo.Create(ctx, &models.Teacher{
		UsuarioID:      req.UsuarioID,
		CodigoEmpleado: req.CodigoEmpleado,
		Departamento:   req.Departamento,
		Especialidad:   req.Especialidad,
		Telefono:       req.Telefono,
		FechaIngreso:   fechaIngreso,
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, models.AuditActionCreate, "profesores", teacher.ID, map[string]interface{}{"codigo_empleado": teacher.CodigoEmpleado}, meta)
	return teacher, nil
}

// Update applies a partial update to a profesor.
func (s *TeacherService) Update(ctx context.Context, id int64, req UpdateTeacherRequest, actor *models.Principal, meta models.RequestMeta) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de profesor inválidos")
	}

	var fields []repository.Field
	if req.CodigoEmpleado != nil {
		fields = append(fields, repository.Field{Column: "codigo_empleado", Value: *req.CodigoEmpleado})
	}
	if req.Departamento != nil {
		fields = append(fields, repository.Field{Column: "departamento", Value: *req.Departamento})
	}
	if req.Especialidad != nil {
		fields = append(fields, repository.Field{Column: "especialidad", Value: *req.Especialidad})
	}
	if req.Telefono != nil {
		fields = append(fields, repository.Field{Column: "telefono", Value: *req.Telefono})
	}
	if req.FechaIngreso != nil {
		fecha, err := parseDate(*req.FechaIngreso)
		if err != nil {
			return nil, err
		}
		fields = append(fields, repository.Field{Column: "fecha_ingreso", Value: fecha})
	}

	teacher, err := s.repo.PartialUpdate(ctx, id, fields)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Profesor no encontrado")
		}
		return nil, err
	}

	s.record(ctx, actor, models.AuditActionUpdate, "profesores", teacher.ID, map[string]interface{}{"fields": fieldColumns(fields)}, meta)
	return teacher, nil
}

// Delete removes a profesor row.
func (s *TeacherService) Delete(ctx context.Context, id int64, actor *models.Principal, meta models.RequestMeta) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Profesor no encontrado")
		}
		return err
	}

	s.record(ctx, actor, models.AuditActionDelete, "profesores", id, nil, meta)
	return nil
}
