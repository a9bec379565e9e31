package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/sga-api/internal/models"
	"github.com/noah-isme/sga-api/internal/repository"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
)

type mockUserRepo struct {
	users       []models.PublicUser
	user        *models.PublicUser
	emailExists bool
	findErr     error
	deleteErr   error
	createdHash string
	lastFields  []repository.Field
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.PublicUser, int, error) {
	return m.users, len(m.users), nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*models.PublicUser, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.user, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.emailExists, nil
}

func (m *mockUserRepo) Create(ctx context.Context, nombre, email, passwordHash string, rol models.UserRole) (*models.PublicUser, error) {
	m.createdHash = passwordHash
	return &models.PublicUser{ID: 10, Nombre: nombre, Email: email, Rol: rol, Activo: true}, nil
}

func (m *mockUserRepo) PartialUpdate(ctx context.Context, id int64, fields []repository.Field) (*models.PublicUser, error) {
	if len(fields) == 0 {
		return nil, appErrors.ErrEmptyUpdate
	}
	m.lastFields = fields
	return m.user, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteErr
}

func newTestUserService(repo *mockUserRepo) (*UserService, *mockAuditLog) {
	audit := &mockAuditLog{}
	return NewUserService(repo, audit, validator.New(), zap.NewNop()), audit
}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := &mockUserRepo{}
	svc, audit := newTestUserService(repo)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Nombre:   "Ana García",
		Email:    "Ana@Escuela.edu",
		Password: "secreta1",
		Rol:      models.RoleTeacher,
	}, &models.Principal{ID: 1, Rol: models.RoleAdmin}, models.RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, "ana@escuela.edu", user.Email)
	assert.NotEqual(t, "secreta1", repo.createdHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.createdHash), []byte("secreta1")))
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionCreate, audit.logs[0].Action)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(&mockUserRepo{emailExists: true})

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Nombre:   "Ana García",
		Email:    "ana@escuela.edu",
		Password: "secreta1",
		Rol:      models.RoleTeacher,
	}, nil, models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc, _ := newTestUserService(&mockUserRepo{})

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Nombre:   "Ana García",
		Email:    "ana@escuela.edu",
		Password: "secreta1",
		Rol:      "director",
	}, nil, models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestUpdateUserOnlyTouchesSuppliedFields(t *testing.T) {
	nombre := "Nuevo Nombre"
	repo := &mockUserRepo{user: &models.PublicUser{ID: 3, Nombre: nombre}}
	svc, _ := newTestUserService(repo)

	_, err := svc.Update(context.Background(), 3, UpdateUserRequest{Nombre: &nombre}, nil, models.RequestMeta{})
	require.NoError(t, err)
	require.Len(t, repo.lastFields, 1)
	assert.Equal(t, "nombre", repo.lastFields[0].Column)
}

func TestUpdateUserEmptyBody(t *testing.T) {
	svc, _ := newTestUserService(&mockUserRepo{})

	_, err := svc.Update(context.Background(), 3, UpdateUserRequest{}, nil, models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, appErrors.ErrEmptyUpdate.Code, appErr.Code)
}

func TestUpdateUserHashesNewPassword(t *testing.T) {
	password := "nueva-clave"
	repo := &mockUserRepo{user: &models.PublicUser{ID: 3}}
	svc, _ := newTestUserService(repo)

	_, err := svc.Update(context.Background(), 3, UpdateUserRequest{Password: &password}, nil, models.RequestMeta{})
	require.NoError(t, err)
	require.Len(t, repo.lastFields, 1)
	assert.Equal(t, "password", repo.lastFields[0].Column)
	stored, ok := repo.lastFields[0].Value.(string)
	require.True(t, ok)
	assert.NotEqual(t, password, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)))
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := newTestUserService(&mockUserRepo{findErr: sql.ErrNoRows})

	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestDeleteUserNotFoundFromService(t *testing.T) {
	svc, _ := newTestUserService(&mockUserRepo{deleteErr: sql.ErrNoRows})

	err := svc.Delete(context.Background(), 99, nil, models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
