package main

import (
	"fmt"
	"log"
	"os"

	"remainderpro-backend/config"
	"remainderpro-backend/models"
	"remainderpro-backend/routes"
	"remainderpro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Currency{},
		&models.Organization{},
		&models.User{},
		&models.Partner{},
		&models.RemainderRecord{},
		&models.MailTemplate{},
		&models.FollowUpTask{},
		&models.AuditEntry{},
		&models.DispatchLog{},
	)

	if err := models.SeedCurrencies(config.DB); err != nil {
		log.Printf("Failed to seed currencies: %v", err)
	}
}

func main() {
	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
