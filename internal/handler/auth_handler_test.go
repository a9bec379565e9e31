package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/sga-api/internal/middleware"
	"github.com/noah-isme/sga-api/internal/models"
	"github.com/noah-isme/sga-api/internal/service"
)

type stubAuthRepo struct {
	user      *models.User
	principal *models.Principal
}

func (s *stubAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.user, nil
}

func (s *stubAuthRepo) FindPrincipalByID(ctx context.Context, id int64) (*models.Principal, error) {
	return s.principal, nil
}

func seededAdminAuth(t *testing.T) *service.AuthService {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &stubAuthRepo{
		user:      &models.User{ID: 1, Nombre: "Administrador", Email: "admin@escuela.edu", PasswordHash: string(hash), Rol: models.RoleAdmin, Activo: true},
		principal: &models.Principal{ID: 1, Nombre: "Administrador", Email: "admin@escuela.edu", Rol: models.RoleAdmin, Activo: true},
	}
	return service.NewAuthService(repo, nil, validator.New(), zap.NewNop(), service.AuthConfig{Secret: "secret", Expiration: time.Hour})
}

func authRouter(svc *service.AuthService) *gin.Engine {
	router := gin.New()
	h := NewAuthHandler(svc)
	router.POST("/api/auth/login", h.Login)
	router.GET("/api/auth/profile", middleware.Auth(svc), h.Profile)
	router.GET("/api/auth/validate", middleware.Auth(svc), h.Validate)
	return router
}

func TestLoginSeededAdmin(t *testing.T) {
	router := authRouter(seededAdminAuth(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@escuela.edu","password":"admin123"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "token")

	var user map[string]interface{}
	require.NoError(t, json.Unmarshal(body["user"], &user))
	assert.Equal(t, "admin@escuela.edu", user["email"])
	assert.Equal(t, "admin", user["rol"])
	assert.Equal(t, true, user["activo"])
	assert.NotContains(t, user, "password")
}

func TestLoginWrongPassword(t *testing.T) {
	router := authRouter(seededAdminAuth(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@escuela.edu","password":"incorrecta"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Credenciales incorrectas"}`, w.Body.String())
}

func TestLoginMissingFields(t *testing.T) {
	router := authRouter(seededAdminAuth(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@escuela.edu"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileAndValidate(t *testing.T) {
	svc := seededAdminAuth(t)
	router := authRouter(svc)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escuela.edu", Password: "admin123"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+res.Token)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"admin@escuela.edu"`)
	assert.Contains(t, w.Body.String(), `"activo":true`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer "+res.Token)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)
}
