package router

import (
	"net/http"
	"time"

	"github.com/contractdesk-dev/contractdesk/internal/handlers"
	"github.com/contractdesk-dev/contractdesk/internal/middleware"
	"github.com/contractdesk-dev/contractdesk/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// The generation endpoints are POST-only and must answer 405, not 404,
	// for other methods.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/contractData", handlers.ContractData)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.POST("/logout", middleware.AuthMiddleware(), handlers.LogoutUser)
		}

		owned := api.Group("", middleware.AuthMiddleware())
		{
			owned.GET("/projects", handlers.ListProjects)
			owned.POST("/projects", handlers.CreateProject)
			owned.PUT("/projects", handlers.UpdateProject)
			owned.DELETE("/projects", handlers.DeleteProject)
			owned.GET("/project", handlers.GetProject)
		}

		api.POST("/generateReport", handlers.GenerateReport)
		api.POST("/generateDraftCommunication", handlers.GenerateDraftCommunication)
	}

	return r
}
