package database

import (
	"github.com/notely/notes-api/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoUser defines the development demo account credentials
type DemoUser struct {
	Username string
	Email    string
	Password string
}

// GetDemoUser returns the default demo account
func GetDemoUser() DemoUser {
	return DemoUser{
		Username: "demo",
		Email:    "demo@notes.local",
		Password: "Demo@123", // Change this in production!
	}
}

// Seed creates initial data for the database
func Seed(db *gorm.DB) error {
	return SeedUsers(db)
}

// SeedUsers creates the demo user if not exists
func SeedUsers(db *gorm.DB) error {
	demo := GetDemoUser()

	var existingUser model.User
	result := db.Where("email = ?", demo.Email).First(&existingUser)

	if result.Error == nil {
		// User already exists, skip seeding
		return nil
	}

	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		Username:  demo.Username,
		Email:     demo.Email,
		Password:  string(hashedPassword),
		Confirmed: true,
	}

	return db.Create(&user).Error
}
