package routes

import (
	"os"
	"strings"

	"remainderpro-backend/config"
	"remainderpro-backend/controllers"
	"remainderpro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Remainder record routes
		remainders := api.Group("/remainders")
		{
			remainders.POST("", controllers.CreateRemainder)
			remainders.GET("", controllers.GetRemainders)
			remainders.GET("/:id", controllers.GetRemainder)
			remainders.PUT("/:id", controllers.UpdateRemainder)
			remainders.DELETE("/:id", controllers.DeleteRemainder)
			remainders.POST("/:id/confirm", controllers.ConfirmRemainder)
			remainders.POST("/:id/reset-to-draft", controllers.ResetRemainderToDraft)
			remainders.GET("/:id/audit", controllers.GetRemainderAudit)
		}

		// Partner directory routes
		partners := api.Group("/partners")
		{
			partners.POST("", controllers.CreatePartner)
			partners.GET("", controllers.GetPartners)
			partners.PUT("/:id", controllers.UpdatePartner)
			partners.DELETE("/:id", controllers.DeletePartner)
		}

		// Mail template routes
		templates := api.Group("/templates")
		{
			templates.POST("", controllers.CreateTemplate)
			templates.GET("", controllers.GetTemplates)
			templates.PUT("/:id", controllers.UpdateTemplate)
			templates.DELETE("/:id", controllers.DeleteTemplate)
		}

		// Follow-up task routes
		tasks := api.Group("/tasks")
		{
			tasks.GET("", controllers.GetTasks)
			tasks.POST("/:id/complete", controllers.CompleteTask)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetDeadlineReport)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Organization profile routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateOrganizationProfile)
		}
	}

	return r
}
