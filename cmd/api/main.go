package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/sga-api/api/swagger"
	"github.com/noah-isme/sga-api/internal/handler"
	"github.com/noah-isme/sga-api/internal/middleware"
	"github.com/noah-isme/sga-api/internal/repository"
	"github.com/noah-isme/sga-api/internal/service"
	"github.com/noah-isme/sga-api/pkg/cache"
	"github.com/noah-isme/sga-api/pkg/config"
	"github.com/noah-isme/sga-api/pkg/database"
	"github.com/noah-isme/sga-api/pkg/export"
	"github.com/noah-isme/sga-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sga-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sga-api/pkg/middleware/requestid"
)

// @title SGA API
// @version 1.0.0
// @description API del Sistema de Gestión Académica
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var cacheSvc *service.CacheService
	metricsSvc := service.NewMetricsService()
	if cfg.Catalog.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", err)
			cacheSvc = service.NewCacheService(nil, false, 0, metricsSvc, logr)
		} else {
			defer redisClient.Close()
			cacheSvc = service.NewCacheService(repository.NewRedisCacheRepository(redisClient), true, cfg.Catalog.CacheTTL, metricsSvc, logr)
		}
	} else {
		cacheSvc = service.NewCacheService(nil, false, 0, metricsSvc, logr)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	authSvc := service.NewAuthService(userRepo, auditRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	userSvc := service.NewUserService(userRepo, auditRepo, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, userRepo, auditRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, userRepo, auditRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, cacheSvc, auditRepo, validate, logr)
	groupSvc := service.NewGroupService(groupRepo, cacheSvc, auditRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, auditRepo, validate, logr)
	exportSvc := service.NewExportService(studentRepo, export.NewCSVExporter(), export.NewPDFExporter(), auditRepo, cfg.Exports.Enabled, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, authSvc, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Users:       handler.NewUserHandler(userSvc),
		Teachers:    handler.NewTeacherHandler(teacherSvc),
		Students:    handler.NewStudentHandler(studentSvc, exportSvc),
		Subjects:    handler.NewSubjectHandler(subjectSvc),
		Groups:      handler.NewGroupHandler(groupSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc),
	}, cfg.Exports.Enabled)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
