package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workflowhub/internal/audit"
	"workflowhub/internal/auth"
	"workflowhub/internal/config"
	"workflowhub/internal/database"
	"workflowhub/internal/handler"
	"workflowhub/internal/logger"
	"workflowhub/internal/middleware"
	"workflowhub/internal/repository"
	"workflowhub/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config

	recorder audit.Recorder
}

// Init connects to the database and builds the server.
func Init(cfg *config.Config) (*Server, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	return New(cfg, db)
}

// New wires repositories, services and handlers on top of an open database.
// A non-positive AuditQueueSize makes audit writes synchronous.
func New(cfg *config.Config, db *gorm.DB) (*Server, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskTypeRepo := repository.NewTaskTypeRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	var recorder audit.Recorder
	if cfg.AuditQueueSize > 0 {
		recorder = audit.NewAsyncRecorder(auditRepo, cfg.AuditQueueSize)
	} else {
		recorder = audit.NewRecorder(auditRepo)
	}
	history := audit.NewHistory(auditRepo)

	// Initialize services
	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo, taskTypeRepo, recorder)
	projectService := service.NewProjectService(projectRepo, userRepo, recorder)
	commentService := service.NewCommentService(commentRepo, taskRepo, recorder)
	kanbanService := service.NewKanbanService(taskService, projectRepo)
	dashboardService := service.NewDashboardService(projectRepo, taskRepo, history)
	taskTypeService := service.NewTaskTypeService(taskTypeRepo)

	// Initialize handlers
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	userHandler := handler.NewUserHandler(userRepo, tokens)
	healthHandler := handler.NewHealthHandler(sqlDB)
	projectHandler := handler.NewProjectHandler(projectService, kanbanService, history)
	taskHandler := handler.NewTaskHandler(taskService, kanbanService, history)
	commentHandler := handler.NewCommentHandler(commentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, taskTypeService)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging())

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/health", healthHandler.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens))
	{
		// Project routes
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects", projectHandler.GetAll)
		authorized.GET("/projects/:id", projectHandler.GetByID)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)
		authorized.GET("/projects/:id/board", projectHandler.Board)
		authorized.GET("/projects/:id/activity", projectHandler.Activity)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks", taskHandler.GetAll)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/:id/move", taskHandler.MoveTask)
		authorized.GET("/tasks/:id/activity", taskHandler.Activity)

		// Comment routes
		authorized.POST("/tasks/:id/comments", commentHandler.Create)
		authorized.GET("/tasks/:id/comments", commentHandler.GetByTaskID)

		// Dashboard routes
		authorized.GET("/task-types", dashboardHandler.TaskTypes)
		authorized.GET("/dashboard", dashboardHandler.Overview)
		authorized.GET("/activity/recent", dashboardHandler.RecentActivity)
	}

	return &Server{
		Engine:   r,
		DB:       db,
		Config:   cfg,
		recorder: recorder,
	}, nil
}

// Close flushes queued audit entries and releases the database.
func (s *Server) Close(ctx context.Context) error {
	var errs []error
	if async, ok := s.recorder.(*audit.AsyncRecorder); ok {
		if err := async.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("audit queue not drained: %w", err))
		}
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server: listening", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}
	case <-quit:
	}
	logger.Info("Server: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server: forced to shutdown", err)
	}
	if err := s.Close(ctx); err != nil {
		return err
	}

	logger.Info("Server: exited properly")
	return nil
}
