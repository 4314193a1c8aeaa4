// Seeds the default admin account if none exists yet.
package main

import (
	"errors"
	"log"
	"os"

	"billtrack-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := gorm.Open(postgres.Open(os.Getenv("DB_URL")), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var existing models.Admin
	err = db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Println("Admin already exists, nothing to do")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}

	admin := models.Admin{
		Name:     "Admin User",
		Email:    email,
		Password: password, // Hashed in BeforeCreate hook
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin %s created", email)
}
