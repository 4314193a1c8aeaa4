package main

import (
	"fmt"
	"log"
	"os"

	"billtrack-backend/config"
	"billtrack-backend/models"
	"billtrack-backend/routes"
	"billtrack-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// The client consumes money fields as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Admin{},
		&models.Customer{},
		&models.Bill{},
		&models.BillItem{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	services.NewAuditService(config.DB).StartScheduler()
	services.NewReminderService(config.DB).StartScheduler()

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
