package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sga-api/internal/models"
	"github.com/noah-isme/sga-api/internal/repository"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
)

type mockStudentRepo struct {
	detail          *models.StudentDetail
	findErr         error
	matriculaExists bool
	created         *models.Student
	lastFields      []repository.Field
}

func (m *mockStudentRepo) List(ctx context.Context) ([]models.StudentDetail, error) {
	if m.detail == nil {
		return []models.StudentDetail{}, nil
	}
	return []models.StudentDetail{*m.detail}, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.detail, nil
}

func (m *mockStudentRepo) ExistsByMatricula(ctx context.Context, matricula string) (bool, error) {
	return m.matriculaExists, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	m.created = student
	stored := *student
	stored.ID = 7
	return &stored, nil
}

func (m *mockStudentRepo) PartialUpdate(ctx context.Context, id int64, fields []repository.Field) (*models.Student, error) {
	if len(fields) == 0 {
		return nil, appErrors.ErrEmptyUpdate
	}
	m.lastFields = fields
	return &models.Student{ID: id}, nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

type mockUserLookup struct {
	user *models.PublicUser
	err  error
}

func (m *mockUserLookup) FindByID(ctx context.Context, id int64) (*models.PublicUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func newTestStudentService(repo *mockStudentRepo, users *mockUserLookup) *StudentService {
	return NewStudentService(repo, users, &mockAuditLog{}, validator.New(), zap.NewNop())
}

func validStudentRequest() CreateStudentRequest {
	return CreateStudentRequest{
		UsuarioID:    2,
		Matricula:    "A2024001",
		Carrera:      "Ingeniería en Sistemas",
		Semestre:     1,
		FechaIngreso: "2024-01-15",
	}
}

func TestCreateStudent(t *testing.T) {
	repo := &mockStudentRepo{}
	users := &mockUserLookup{user: &models.PublicUser{ID: 2, Rol: models.RoleStudent}}
	svc := newTestStudentService(repo, users)

	student, err := svc.Create(context.Background(), validStudentRequest(), nil, models.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.StudentStatusActive, student.Estatus)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), repo.created.FechaIngreso)
}

func TestCreateStudentUnknownUsuario(t *testing.T) {
	svc := newTestStudentService(&mockStudentRepo{}, &mockUserLookup{err: sql.ErrNoRows})

	_, err := svc.Create(context.Background(), validStudentRequest(), nil, models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Usuario no encontrado", appErr.Message)
}

func TestCreateStudentWrongRole(t *testing.T) {
	users := &mockUserLookup{user: &models.PublicUser{ID: 2, Rol: models.RoleTeacher}}
	svc := newTestStudentService(&mockStudentRepo{}, users)

	_, err := svc.Create(context.Background(), validStudentRequest(), nil, models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestCreateStudentDuplicateMatricula(t *testing.T) {
	users := &mockUserLookup{user: &models.PublicUser{ID: 2, Rol: models.RoleStudent}}
	svc := newTestStudentService(&mockStudentRepo{matriculaExists: true}, users)

	_, err := svc.Create(context.Background(), validStudentRequest(), nil, models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
}

func TestCreateStudentSemestreOutOfRange(t *testing.T) {
	users := &mockUserLookup{user: &models.PublicUser{ID: 2, Rol: models.RoleStudent}}
	svc := newTestStudentService(&mockStudentRepo{}, users)

	req := validStudentRequest()
	req.Semestre = 11
	_, err := svc.Create(context.Background(), req, nil, models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestGetStudentOwnership(t *testing.T) {
	detail := &models.StudentDetail{Student: models.Student{ID: 7, UsuarioID: 2}}
	svc := newTestStudentService(&mockStudentRepo{detail: detail}, &mockUserLookup{})

	cases := []struct {
		name      string
		actor     *models.Principal
		forbidden bool
	}{
		{"admin reads any", &models.Principal{ID: 1, Rol: models.RoleAdmin}, false},
		{"profesor reads any", &models.Principal{ID: 5, Rol: models.RoleTeacher}, false},
		{"alumno reads own", &models.Principal{ID: 2, Rol: models.RoleStudent}, false},
		{"alumno reads other", &models.Principal{ID: 3, Rol: models.RoleStudent}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Get(context.Background(), 7, tc.actor)
			if tc.forbidden {
				require.Error(t, err)
				assert.Equal(t, 403, appErrors.FromError(err).Status)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestUpdateStudentEmptyBody(t *testing.T) {
	svc := newTestStudentService(&mockStudentRepo{}, &mockUserLookup{})

	_, err := svc.Update(context.Background(), 7, UpdateStudentRequest{}, nil, models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmptyUpdate.Code, appErrors.FromError(err).Code)
}

func TestUpdateStudentInvalidDate(t *testing.T) {
	fecha := "15/01/2024"
	svc := newTestStudentService(&mockStudentRepo{}, &mockUserLookup{})

	_, err := svc.Update(context.Background(), 7, UpdateStudentRequest{FechaIngreso: &fecha}, nil, models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}
