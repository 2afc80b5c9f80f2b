package config

import (
	"fmt"
	"log"
	"os"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.FoodItem{},
		&models.DietPlan{},
		&models.Meal{},
		&models.MealEntry{},
		&models.MealSubstitutionOption{},
		&models.OptionItem{},
		&models.FoodSubstitution{},
		&models.MacroGoals{},
		&models.Template{},
		&models.TemplateMeal{},
		&models.TemplateMealFood{},
		&models.TemplateSubstitution{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}
