package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/teamhub/portal-api/docs"
	"github.com/teamhub/portal-api/internal/api/handler"
	"github.com/teamhub/portal-api/internal/api/middleware"
	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
	"github.com/teamhub/portal-api/internal/core/service"
	"github.com/teamhub/portal-api/internal/infrastructure/config"
	mongodb "github.com/teamhub/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/teamhub/portal-api/internal/infrastructure/db/redis"
	"github.com/teamhub/portal-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// pusher is the live-channel dispatcher, already started by the caller.
func NewRouter(db *mongo.Database, rdb *redis.Client, pusher ports.LivePusher, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Repositories ---
	roleRepo := mongodb.NewRoleRepository(db)
	userRepo := mongodb.NewUserRepository(db, roleRepo)
	permRepo := mongodb.NewPermissionRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	attachmentRepo := mongodb.NewAttachmentRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	departmentRepo := mongodb.NewDepartmentRepository(db)

	// --- Services ---
	notifier := service.NewNotifier(
		notificationRepo,
		userRepo,
		pusher,
		redisdb.NewDedupChecker(rdb),
		service.NotifierOptions{NotifyOnReassign: cfg.NotifyOnReassign},
		log,
	)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	taskService := service.NewTaskService(taskRepo, departmentRepo, notifier, log)
	commentService := service.NewCommentService(commentRepo, taskRepo, notifier, log)
	attachmentService := service.NewAttachmentService(attachmentRepo, taskRepo, log)
	notificationService := service.NewNotificationService(notificationRepo, log)
	directoryService := service.NewDirectoryService(userRepo, roleRepo, permRepo, log)
	reportingService := service.NewReportingService(taskRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	commentHandler := handler.NewCommentHandler(commentService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	departmentHandler := handler.NewDepartmentHandler(departmentRepo)
	reportingHandler := handler.NewReportingHandler(reportingService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret), middleware.LoadUser(userRepo))

	v1.GET("/users/me", directoryHandler.Me)
	v1.GET("/users", directoryHandler.ListUsers)
	v1.GET("/roles", directoryHandler.ListRoles)

	manageRoles := middleware.RequirePermissions(domain.PermRolesManage)
	v1.POST("/roles", directoryHandler.CreateRole, manageRoles)
	v1.POST("/users/:id/roles", directoryHandler.AssignRole, manageRoles)

	// Services re-check permissions and ownership; the middleware gate just
	// keeps obviously unauthorized traffic out of them.
	v1.POST("/tasks", taskHandler.Create, middleware.RequirePermissions(domain.PermTasksCreate))
	v1.GET("/tasks", taskHandler.List)
	v1.GET("/tasks/:id", taskHandler.Get)
	v1.PATCH("/tasks/:id", taskHandler.Update)
	v1.POST("/tasks/:id/status", taskHandler.ChangeStatus)

	v1.POST("/tasks/:id/comments", commentHandler.Add)
	v1.GET("/tasks/:id/comments", commentHandler.List)

	v1.POST("/tasks/:id/attachments", attachmentHandler.Add)
	v1.GET("/tasks/:id/attachments", attachmentHandler.List)

	v1.GET("/notifications", notificationHandler.List)
	v1.POST("/notifications/mark-all-read", notificationHandler.MarkAllRead)

	v1.POST("/departments", departmentHandler.Create, manageRoles)
	v1.GET("/departments", departmentHandler.List)

	v1.GET("/reporting/summary", reportingHandler.Summary,
		middleware.RequirePermissions(domain.PermReportingView))

	return e
}
