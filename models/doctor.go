package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Doctor struct {
	DoctorID   uint      `json:"doctor_id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null" validate:"required"`
	Email      string    `json:"email" gorm:"unique;not null" validate:"required,email"`
	Password   string    `json:"-" gorm:"not null" validate:"required,min=8"`
	Image      string    `json:"image"`
	Speciality string    `json:"speciality" validate:"required"`
	Degree     string    `json:"degree" validate:"required"`
	Experience string    `json:"experience"`
	About      string    `json:"about"`
	Fees       float64   `json:"fees" validate:"required"`
	Address    Address   `json:"address" gorm:"serializer:json"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type DoctorClaims struct {
	Id          uint   `json:"id"`
	DoctorEmail string `json:"email"`
	jwt.RegisteredClaims
}
