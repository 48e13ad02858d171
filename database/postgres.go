package database

import (
	"log"

	"tripsplit-backend/config"
	"tripsplit-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	var err error
	DB, err = gorm.Open(postgres.Open(config.AppConfig.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("✅ Database connected successfully")

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database migrated successfully")
}

// Migrate creates or updates the schema for all models. Shared with the test
// suites, which run it against in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.TripEditor{},
		&models.Person{},
		&models.Expense{},
		&models.Debt{},
		&models.Friend{},
		&models.Activity{},
	)
}
