package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/teamtrack-dev/teamtrack/internal/handlers"
	"github.com/teamtrack-dev/teamtrack/internal/metrics"
	"github.com/teamtrack-dev/teamtrack/internal/middleware"
	"github.com/teamtrack-dev/teamtrack/internal/types"
	"golang.org/x/time/rate"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(metrics.Middleware())
	r.GET("/metrics", metrics.Handler())

	// 10 auth attempts per minute per client
	loginLimiter := middleware.NewRateLimiter(rate.Limit(10.0/60.0), 10)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", loginLimiter.Middleware(), handlers.Register)
			auth.POST("/login", loginLimiter.Middleware(), handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateProfile)
		}

		users := api.Group("/users", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			users.GET("", handlers.ListUsers)
			users.GET("/:user_id", handlers.GetUser)
			users.PATCH("/:user_id", handlers.UpdateUser)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			projects.GET("/:project_id/members", handlers.ListMembers)
			projects.POST("/:project_id/members", handlers.AddMember)
			projects.DELETE("/:project_id/members/:user_id", handlers.RemoveMember)

			projects.GET("/:project_id/tasks", handlers.ListTasks)
			projects.POST("/:project_id/tasks", handlers.CreateTask)
			projects.GET("/:project_id/tasks/:task_id", handlers.GetTask)
			projects.PATCH("/:project_id/tasks/:task_id", handlers.UpdateTask)
			projects.DELETE("/:project_id/tasks/:task_id", handlers.DeleteTask)
		}

		api.GET("/dashboard/summary", middleware.AuthMiddleware(), handlers.GetDashboardSummary)
	}

	return r
}
