package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/union-match/union-match/internal/handlers"
	"github.com/union-match/union-match/internal/middleware"
	"github.com/union-match/union-match/internal/models"
	"github.com/union-match/union-match/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		// Public marketplace reads; detail resolves owners/admins when a
		// token is present.
		api.GET("/projects", handlers.ListPublicProjects)
		api.GET("/projects/:project_id", middleware.OptionalAuthMiddleware(), handlers.GetProject)

		authed := api.Group("", middleware.AuthMiddleware())
		{
			authed.POST("/projects", middleware.RequireRole(models.RoleCompany), handlers.CreateProject)
			authed.POST("/projects/:project_id/close", middleware.RequireRole(models.RoleCompany), handlers.CloseProject)
			authed.PATCH("/projects/:project_id/status", middleware.RequireAdmin(), handlers.ReviewProject)
			authed.GET("/projects/:project_id/applications", handlers.ListProjectApplications)

			authed.GET("/companies/me/projects", middleware.RequireRole(models.RoleCompany), handlers.ListMyProjects)

			authed.POST("/applications", middleware.RequireRole(models.RoleOrganization, models.RoleStudent), handlers.SubmitApplication)
			authed.GET("/me/applications", middleware.RequireRole(models.RoleOrganization, models.RoleStudent), handlers.ListMyApplications)
			authed.PATCH("/applications/:application_id/status", middleware.RequireRole(models.RoleCompany), handlers.DecideApplication)
			authed.GET("/applications/:application_id/ratings", handlers.ListApplicationRatings)

			authed.POST("/ratings", handlers.SubmitRating)

			authed.GET("/recommendations", middleware.RequireRole(models.RoleOrganization, models.RoleStudent), handlers.GetRecommendations)

			authed.GET("/profiles/me", handlers.GetMyProfile)
			authed.PATCH("/profiles/me", handlers.UpdateMyProfile)

			admin := authed.Group("/admin", middleware.RequireAdmin())
			{
				admin.GET("/projects", handlers.ListProjectsForReview)
				admin.GET("/applications/export", handlers.ExportApplicationsCSV)
			}
		}
	}

	return r
}
