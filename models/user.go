package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Address mirrors the two-line address object the frontends send.
type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

type User struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Image     string    `json:"image"`
	Phone     string    `json:"phone"`
	Address   Address   `json:"address" gorm:"serializer:json"`
	Dob       string    `json:"dob"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PatientClaims struct {
	jwt.StandardClaims
	UserID uint `json:"userID"`
}
