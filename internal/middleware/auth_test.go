package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/sga-api/internal/models"
	"github.com/noah-isme/sga-api/internal/service"
	"github.com/noah-isme/sga-api/pkg/response"
)

type stubAuthRepo struct {
	user         *models.User
	principal    *models.Principal
	principalErr error
}

func (s *stubAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.user, nil
}

func (s *stubAuthRepo) FindPrincipalByID(ctx context.Context, id int64) (*models.Principal, error) {
	if s.principalErr != nil {
		return nil, s.principalErr
	}
	return s.principal, nil
}

func newAuthFixture(t *testing.T, expiration time.Duration, activo bool) (*service.AuthService, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &stubAuthRepo{
		user:      &models.User{ID: 1, Nombre: "Admin", Email: "admin@escuela.edu", PasswordHash: string(hash), Rol: models.RoleAdmin, Activo: true},
		principal: &models.Principal{ID: 1, Nombre: "Admin", Email: "admin@escuela.edu", Rol: models.RoleAdmin, Activo: activo},
	}
	svc := service.NewAuthService(repo, nil, validator.New(), zap.NewNop(), service.AuthConfig{Secret: "secret", Expiration: expiration})

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escuela.edu", Password: "admin123"})
	require.NoError(t, err)
	return svc, res.Token
}

func protectedRouter(svc *service.AuthService) *gin.Engine {
	router := gin.New()
	router.GET("/protegido", Auth(svc), func(c *gin.Context) {
		principal := c.MustGet(ContextUserKey).(*models.Principal)
		response.JSON(c, http.StatusOK, gin.H{"id": principal.ID})
	})
	return router
}

func TestAuthMissingHeader(t *testing.T) {
	svc, _ := newAuthFixture(t, time.Hour, true)
	router := protectedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Token de acceso requerido"}`, w.Body.String())
}

func TestAuthMalformedHeader(t *testing.T) {
	svc, token := newAuthFixture(t, time.Hour, true)
	router := protectedRouter(svc)

	for _, header := range []string{"Basic abc", token, "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Token inválido"}`, w.Body.String())
	}
}

func TestAuthExpiredToken(t *testing.T) {
	svc, _ := newAuthFixture(t, time.Hour, true)
	router := protectedRouter(svc)

	issued := time.Now().Add(-2 * time.Hour)
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		UserID: 1,
		Email:  "admin@escuela.edu",
		Rol:    models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(issued),
		},
	})
	token, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Token expirado"}`, w.Body.String())
}

func TestAuthInactiveUser(t *testing.T) {
	svc, token := newAuthFixture(t, time.Hour, false)
	router := protectedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Usuario inactivo"}`, w.Body.String())
}

func TestAuthValidToken(t *testing.T) {
	svc, token := newAuthFixture(t, time.Hour, true)
	router := protectedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}
