package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aroolinks/agencydesk/internal/api/handler"
	mw "github.com/aroolinks/agencydesk/internal/api/middleware"
	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/service"
	"github.com/aroolinks/agencydesk/internal/infrastructure/config"
	mongodb "github.com/aroolinks/agencydesk/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("agencydesk"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	hostingRepo := mongodb.NewHostingRepository(db)
	groupRepo := mongodb.NewGroupRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	taskService := service.NewTaskService(taskRepo, log)
	clientService := service.NewClientService(clientRepo, log)
	hostingService := service.NewHostingService(hostingRepo, log)
	userService := service.NewUserService(userRepo, log)
	groupService := service.NewGroupService(groupRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.TokenTTL)
	taskHandler := handler.NewTaskHandler(taskService)
	clientHandler := handler.NewClientHandler(clientService)
	hostingHandler := handler.NewHostingHandler(hostingService)
	userHandler := handler.NewUserHandler(userService)
	groupHandler := handler.NewGroupHandler(groupService)
	assigneeHandler := handler.NewAssigneeHandler(userService)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- API routes ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/logout", authHandler.Logout)

	authed := apiGroup.Group("", mw.Auth(cfg.JWTSecret))

	tasks := authed.Group("/tasks")
	tasks.GET("", taskHandler.List, mw.RequirePermission(domain.PermViewTasks))
	tasks.GET("/:id", taskHandler.Get, mw.RequirePermission(domain.PermViewTasks))
	tasks.POST("", taskHandler.Create, mw.RequirePermission(domain.PermEditTasks))
	tasks.PUT("/:id", taskHandler.Update, mw.RequirePermission(domain.PermEditTasks))
	tasks.DELETE("/:id", taskHandler.Delete, mw.RequireAdmin())

	clients := authed.Group("/clients")
	clients.GET("", clientHandler.List, mw.RequirePermission(domain.PermViewClients))
	clients.GET("/:id", clientHandler.Get, mw.RequirePermission(domain.PermViewClients))
	clients.POST("", clientHandler.Create, mw.RequirePermission(domain.PermEditClients))
	clients.PUT("/:id", clientHandler.Rename, mw.RequirePermission(domain.PermEditClients))
	clients.DELETE("/:id", clientHandler.Delete, mw.RequireAdmin())

	clients.POST("/:id/tasks", clientHandler.AddTask, mw.RequirePermission(domain.PermEditClients))
	clients.PUT("/:id/tasks/:taskId", clientHandler.UpdateTask, mw.RequirePermission(domain.PermEditClients))
	clients.PATCH("/:id/tasks/:taskId/toggle-completion", clientHandler.ToggleTaskCompletion, mw.RequirePermission(domain.PermEditClients))
	clients.DELETE("/:id/tasks/:taskId", clientHandler.DeleteTask, mw.RequireAdmin())

	clients.POST("/:id/logins", clientHandler.AddLogin, mw.RequirePermission(domain.PermEditClients))
	clients.PUT("/:id/logins/:loginId", clientHandler.UpdateLogin, mw.RequirePermission(domain.PermEditClients))
	clients.DELETE("/:id/logins/:loginId", clientHandler.DeleteLogin, mw.RequireAdmin())

	hosting := authed.Group("/hosting")
	hosting.GET("", hostingHandler.List, mw.RequirePermission(domain.PermViewClients))
	hosting.GET("/:id", hostingHandler.Get, mw.RequirePermission(domain.PermViewClients))
	hosting.POST("", hostingHandler.Create, mw.RequirePermission(domain.PermEditClients))
	hosting.PUT("/:id", hostingHandler.Update, mw.RequirePermission(domain.PermEditClients))
	hosting.DELETE("/:id", hostingHandler.Delete, mw.RequireAdmin())

	users := authed.Group("/users")
	users.GET("", userHandler.List) // any authenticated caller; projection decided in the service
	users.POST("", userHandler.Create, mw.RequireAdmin())
	users.PUT("/:id", userHandler.Update, mw.RequireAdmin())
	users.POST("/:id/reset-password", userHandler.ResetPassword, mw.RequireAdmin())
	users.DELETE("/:id", userHandler.Delete, mw.RequireAdmin())

	groups := authed.Group("/groups")
	groups.GET("", groupHandler.List)
	groups.GET("/:id", groupHandler.Get)
	groups.POST("", groupHandler.Create, mw.RequirePermission(domain.PermEditTasks))
	groups.PUT("/:id", groupHandler.Rename, mw.RequirePermission(domain.PermEditTasks))
	groups.DELETE("/:id", groupHandler.Delete, mw.RequireAdmin())

	assignees := authed.Group("/assignees")
	assignees.GET("", assigneeHandler.List)
	assignees.POST("", assigneeHandler.Add, mw.RequirePermission(domain.PermEditTasks))
	assignees.DELETE("/:username", assigneeHandler.Remove, mw.RequireAdmin())

	return e
}
