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

type studentRepository interface {
	List(ctx context.Context) ([]models.StudentDetail, error)
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
	ExistsByMatricula(ctx context.Context, matricula string) (bool, error)
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	PartialUpdate(ctx context.Context, id int64, fields []repository.Field) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

// userRoleLookup resolves the usuario a profile record points at, so creates
// can verify the account exists and holds the expected rol.
type userRoleLookup interface {
	FindByID(ctx context.Context, id int64) (*models.PublicUser, error)
}

// CreateStudentRequest is the payload for registering alumnos.
type CreateStudentRequest struct {
	UsuarioID    int64                `json:"usuario_id" validate:"required"`
	Matricula    string               `json:"matricula" validate:"required,min=3,max=20"`
	Carrera      string               `json:"carrera" validate:"required,min=2,max=100"`
	Semestre     int                  `json:"semestre" validate:"required,min=1,max=10"`
	FechaIngreso string               `json:"fecha_ingreso" validate:"required"`
	Estatus      models.StudentStatus `json:"estatus" validate:"omitempty,oneof=activo baja egresado"`
}

// UpdateStudentRequest is the partial-update payload for alumnos.
type UpdateStudentRequest struct {
	Matricula    *string               `json:"matricula" validate:"omitempty,min=3,max=20"`
	Carrera      *string               `json:"carrera" validate:"omitempty,min=2,max=100"`
	Semestre     *int                  `json:"semestre" validate:"omitempty,min=1,max=10"`
	FechaIngreso *string               `json:"fecha_ingreso"`
	Estatus      *models.StudentStatus `json:"estatus" validate:"omitempty,oneof=activo baja egresado"`
}

// StudentService handles alumno management workflows.
type StudentService struct {
	auditTrail
	repo      studentRepository
	users     userRoleLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, users userRoleLookup, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{auditTrail: auditTrail{audit: audit, logger: logger}, repo: repo, users: users, validator: validate, logger: logger}
}

// List returns the full alumno roster with usuario identities.
func (s *StudentService) List(ctx context.Context) ([]models.StudentDetail, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener alumnos")
	}
	return students, nil
}

// Get returns one alumno. Admins and profesores may read any record; an
// alumno may only read the record linked to their own usuario.
func (s *StudentService) Get(ctx context.Context, id int64, actor *models.Principal) (*models.StudentDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Alumno no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al obtener alumno")
	}

	if actor != nil && actor.Rol == models.RoleStudent && detail.UsuarioID != actor.ID {
		return nil, appErrors.ErrForbidden
	}

	return detail, nil
}

// Create registers an alumno profile. The target usuario must exist and hold
// rol alumno; the matrícula pre-check gives a friendly conflict message while
// the store's unique index remains the real guard.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest, actor *models.Principal, meta models.RequestMeta) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de alumno inválidos")
	}

	user, err := s.users.FindByID(ctx, req.UsuarioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Usuario no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al crear alumno")
	}
	if user.Rol != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrValidation, "El usuario debe tener rol de alumno")
	}

	if exists, err := s.repo.ExistsByMatricula(ctx, req.Matricula); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error al crear alumno")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "La matrícula ya está registrada")
	}

	fechaIngreso, err := parseDate(req.FechaIngreso)
	if err != nil {
		return nil, err
	}

	estatus := req.Estatus
	if estatus == "" {
		estatus = models.StudentStatusActive
	}

	student, err := s.repo.Create(ctx, &models.Student{
		UsuarioID:    req.UsuarioID,
		Matricula:    req.Matricula,
		Carrera:      req.Carrera,
		Semestre:     req.Semestre,
		FechaIngreso: fechaIngreso,
		Estatus:      estatus,
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, models.AuditActionCreate, "alumnos", student.ID, map[string]interface{}{"matricula": student.Matricula}, meta)
	return student, nil
}

// Update applies a partial update to an alumno.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest, actor *models.Principal, meta models.RequestMeta) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Datos de alumno inválidos")
	}

	var fields []repository.Field
	if req.Matricula != nil {
		fields = append(fields, repository.Field{Column: "matricula", Value: *req.Matricula})
	}
	if req.Carrera != nil {
		fields = append(fields, repository.Field{Column: "carrera", Value: *req.Carrera})
	}
	if req.Semestre != nil {
		fields = append(fields, repository.Field{Column: "semestre", Value: *req.Semestre})
	}
	if req.FechaIngreso != nil {
		fecha, err := parseDate(*req.FechaIngreso)
		if err != nil {
			return nil, err
		}
		fields = append(fields, repository.Field{Column: "fecha_ingreso", Value: fecha})
	}
	if req.Estatus != nil {
		fields = append(fields, repository.Field{Column: "estatus", Value: *req.Estatus})
	}

	student, err := s.repo.PartialUpdate(ctx, id, fields)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Alumno no encontrado")
		}
		return nil, err
	}

	s.record(ctx, actor, models.AuditActionUpdate, "alumnos", student.ID, map[string]interface{}{"fields": fieldColumns(fields)}, meta)
	return student, nil
}

// Delete removes an alumno row.
func (s *StudentService) Delete(ctx context.Context, id int64, actor *models.Principal, meta models.RequestMeta) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Alumno no encontrado")
		}
		return err
	}

	s.record(ctx, actor, models.AuditActionDelete, "alumnos", id, nil, meta)
	return nil
}
