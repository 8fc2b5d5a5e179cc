package configuration

import (
	"log"
	"os"

	"github.com/SidW111/Prescripto/models"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds the connection used by every handler.
var DB *gorm.DB

// ConfigDB loads the .env file and opens the postgres connection.
func ConfigDB() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	dsn := os.Getenv("DB")
	var err error

	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the booking path relies on for its
	// slot test-and-set.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("Failed to connect to the database")
	}

	DB.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.DoctorSlot{},
		&models.Appointment{},
	)
}
