// Package router assembles the HTTP engine from its dependencies.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/project-tracker-api/internal/config"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/handlers"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	Config       *config.Config
	DB           *gorm.DB
	SessionStore sessions.Store
	// Redis is pinged by /health; nil with the cookie session backend
	Redis *redis.Client
	// Generator drafts task suggestions; nil disables them
	Generator services.TaskGenerator
	// Registry receives the HTTP collectors; a fresh one is made when nil
	Registry *prometheus.Registry
	// BcryptCost overrides constants.BcryptCost when non-zero
	BcryptCost int
	Log        *zap.Logger
}

// New wires repositories, services and handlers into a gin engine
func New(dep Deps) *gin.Engine {
	log := dep.Log
	if log == nil {
		log = zap.NewNop()
	}

	reg := dep.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	metrics := middleware.NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(metrics.Middleware())
	if origins := dep.Config.AllowedOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", constants.HeaderRequestID},
			ExposeHeaders:    []string{constants.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	userRepo := repository.NewUserRepository(dep.DB)
	projectRepo := repository.NewProjectRepository(dep.DB)
	taskRepo := repository.NewTaskRepository(dep.DB)

	bcryptCost := dep.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = constants.BcryptCost
	}

	authService := services.NewAuthService(userRepo, bcryptCost)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	suggestionService := services.NewSuggestionService(projectService, dep.Generator)

	authHandler := handlers.NewAuthHandler(authService, log)
	projectHandler := handlers.NewProjectHandler(projectService, log)
	taskHandler := handlers.NewTaskHandler(taskService, log)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService, log)
	healthHandler := handlers.NewHealthHandler(dep.DB, dep.Redis, log)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.Use(session.Middleware(dep.SessionStore))
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())
		{
			protected.GET("/me", authHandler.Me)

			protected.GET("/projects", projectHandler.ListProjects)
			protected.POST("/projects", projectHandler.CreateProject)
			protected.GET("/projects/:id", projectHandler.GetProject)
			protected.PUT("/projects/:id", projectHandler.UpdateProject)
			protected.DELETE("/projects/:id", projectHandler.DeleteProject)
			protected.POST("/projects/:id/suggestions", suggestionHandler.SuggestTasks)

			protected.GET("/tasks", taskHandler.ListTasks)
			protected.POST("/tasks", taskHandler.CreateTask)
			protected.GET("/tasks/:id", taskHandler.GetTask)
			protected.PUT("/tasks/:id", taskHandler.UpdateTask)
			protected.DELETE("/tasks/:id", taskHandler.DeleteTask)
		}
	}

	return r
}
