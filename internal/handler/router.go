package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sga-api/internal/middleware"
	"github.com/noah-isme/sga-api/internal/models"
	"github.com/noah-isme/sga-api/internal/service"
)

// Handlers bundles the HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Teachers    *TeacherHandler
	Students    *StudentHandler
	Subjects    *SubjectHandler
	Groups      *GroupHandler
	Enrollments *EnrollmentHandler
}

// RegisterRoutes mounts the API under the configured prefix. Every resource
// route sits behind the auth gate; role gates follow the original access
// rules per resource.
func RegisterRoutes(r *gin.Engine, prefix string, authSvc *service.AuthService, h Handlers, exportsEnabled bool) {
	api := r.Group(prefix)
	authGate := middleware.Auth(authSvc)

	admin := middleware.RequireRoles(models.RoleAdmin)
	adminOrTeacher := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)
	adminOrSelf := middleware.RBAC(string(models.RoleAdmin), middleware.Self)

	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.GET("/profile", authGate, h.Auth.Profile)
	auth.GET("/validate", authGate, h.Auth.Validate)

	usuarios := api.Group("/usuarios", authGate)
	usuarios.GET("", admin, h.Users.List)
	usuarios.GET("/:id", adminOrSelf, h.Users.Get)
	usuarios.POST("", admin, h.Users.Create)
	usuarios.PUT("/:id", adminOrSelf, h.Users.Update)
	usuarios.DELETE("/:id", admin, h.Users.Delete)

	profesores := api.Group("/profesores", authGate)
	profesores.GET("", admin, h.Teachers.List)
	profesores.GET("/:id", h.Teachers.Get)
	profesores.POST("", admin, h.Teachers.Create)
	profesores.PUT("/:id", admin, h.Teachers.Update)
	profesores.DELETE("/:id", admin, h.Teachers.Delete)

	alumnos := api.Group("/alumnos", authGate)
	alumnos.GET("", adminOrTeacher, h.Students.List)
	// record-level ownership for alumnos is enforced in the service
	alumnos.GET("/:id", h.Students.Get)
	alumnos.POST("", admin, h.Students.Create)
	alumnos.PUT("/:id", admin, h.Students.Update)
	alumnos.DELETE("/:id", admin, h.Students.Delete)
	if exportsEnabled {
		alumnos.GET("/export", adminOrTeacher, h.Students.Export)
	}

	materias := api.Group("/materias", authGate)
	materias.GET("", h.Subjects.List)
	materias.GET("/:id", h.Subjects.Get)
	materias.POST("", admin, h.Subjects.Create)
	materias.PUT("/:id", admin, h.Subjects.Update)
	materias.DELETE("/:id", admin, h.Subjects.Delete)

	grupos := api.Group("/grupos", authGate)
	grupos.GET("", h.Groups.List)
	grupos.GET("/:id", h.Groups.Get)
	grupos.POST("", admin, h.Groups.Create)
	grupos.PUT("/:id", admin, h.Groups.Update)
	grupos.DELETE("/:id", admin, h.Groups.Delete)

	inscripciones := api.Group("/inscripciones", authGate)
	inscripciones.GET("", h.Enrollments.List)
	inscripciones.GET("/:id", h.Enrollments.Get)
	inscripciones.POST("", admin, h.Enrollments.Create)
	inscripciones.PUT("/:id", admin, h.Enrollments.Update)
	inscripciones.DELETE("/:id", admin, h.Enrollments.Delete)
}
