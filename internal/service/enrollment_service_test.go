package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sga-api/internal/models"
	"github.com/noah-isme/sga-api/internal/repository"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
)

type mockEnrollmentRepo struct {
	createErr  error
	updateErr  error
	lastFields []repository.Field
}

func (m *mockEnrollmentRepo) List(ctx context.Context) ([]models.Enrollment, error) {
	return []models.Enrollment{}, nil
}

func (m *mockEnrollmentRepo) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	return &models.Enrollment{ID: id}, nil
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	stored := *enrollment
	stored.ID = 12
	return &stored, nil
}

func (m *mockEnrollmentRepo) PartialUpdate(ctx context.Context, id int64, fields []repository.Field) (*models.Enrollment, error) {
	if len(fields) == 0 {
		return nil, appErrors.ErrEmptyUpdate
	}
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.lastFields = fields
	return &models.Enrollment{ID: id}, nil
}

func (m *mockEnrollmentRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func newTestEnrollmentService(repo *mockEnrollmentRepo) *EnrollmentService {
	return NewEnrollmentService(repo, &mockAuditLog{}, validator.New(), zap.NewNop())
}

func TestCreateEnrollmentDefaultsToInscrito(t *testing.T) {
	svc := newTestEnrollmentService(&mockEnrollmentRepo{})

	enrollment, err := svc.Create(context.Background(), CreateEnrollmentRequest{AlumnoID: 1, GrupoID: 2}, nil, models.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusEnrolled, enrollment.Estatus)
}

func TestCreateEnrollmentDuplicatePair(t *testing.T) {
	repo := &mockEnrollmentRepo{createErr: appErrors.ErrConflict}
	svc := newTestEnrollmentService(repo)

	_, err := svc.Create(context.Background(), CreateEnrollmentRequest{AlumnoID: 1, GrupoID: 2}, nil, models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, "El alumno ya está inscrito en este grupo", appErr.Message)
}

func TestCreateEnrollmentGradeOutOfRange(t *testing.T) {
	svc := newTestEnrollmentService(&mockEnrollmentRepo{})

	grade := 101.0
	_, err := svc.Create(context.Background(), CreateEnrollmentRequest{AlumnoID: 1, GrupoID: 2, Calificacion: &grade}, nil, models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestUpdateEnrollmentGrade(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	svc := newTestEnrollmentService(repo)

	grade := 85.5
	_, err := svc.Update(context.Background(), 12, UpdateEnrollmentRequest{Calificacion: &grade}, nil, models.RequestMeta{})
	require.NoError(t, err)
	require.Len(t, repo.lastFields, 1)
	assert.Equal(t, "calificacion", repo.lastFields[0].Column)
}

func TestUpdateEnrollmentMovesToAnotherGrupo(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	svc := newTestEnrollmentService(repo)

	grupoID := int64(7)
	_, err := svc.Update(context.Background(), 12, UpdateEnrollmentRequest{GrupoID: &grupoID}, nil, models.RequestMeta{})
	require.NoError(t, err)
	require.Len(t, repo.lastFields, 1)
	assert.Equal(t, "grupo_id", repo.lastFields[0].Column)
	assert.Equal(t, int64(7), repo.lastFields[0].Value)
}

func TestUpdateEnrollmentDuplicateTargetPair(t *testing.T) {
	repo := &mockEnrollmentRepo{updateErr: appErrors.ErrConflict}
	svc := newTestEnrollmentService(repo)

	grupoID := int64(7)
	_, err := svc.Update(context.Background(), 12, UpdateEnrollmentRequest{GrupoID: &grupoID}, nil, models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, "El alumno ya está inscrito en este grupo", appErr.Message)
}

func TestUpdateEnrollmentEmptyBody(t *testing.T) {
	svc := newTestEnrollmentService(&mockEnrollmentRepo{})

	_, err := svc.Update(context.Background(), 12, UpdateEnrollmentRequest{}, nil, models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmptyUpdate.Code, appErrors.FromError(err).Code)
}
