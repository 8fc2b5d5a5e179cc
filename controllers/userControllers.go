package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/SidW111/Prescripto/authentication"
	"github.com/SidW111/Prescripto/configuration"
	"github.com/SidW111/Prescripto/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterUser creates a patient account and returns a session token.
func RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing Details"})
		return
	}

	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Enter a valid email and a password of at least 8 characters"})
		return
	}

	var existingUser models.User
	if err := configuration.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := configuration.DB.Create(&user).Error; err != nil {
		log.Println("Error creating user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
		return
	}

	token, err := authentication.GeneratePatientToken(user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// LoginUser checks patient credentials and returns a session token.
func LoginUser(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing email or password"})
		return
	}

	var existingUser models.User
	if err := configuration.DB.Where("email = ?", loginReq.Email).First(&existingUser).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User does not exist"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := authentication.GeneratePatientToken(existingUser.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// GetProfile returns the authenticated patient's profile without credentials.
func GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var user models.User
	if err := configuration.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "userData": user})
}

// UpdateProfile updates profile fields from a multipart form and pushes an
// optional avatar to the image host.
func UpdateProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	name := c.PostForm("name")
	phone := c.PostForm("phone")
	dob := c.PostForm("dob")
	gender := c.PostForm("gender")
	if name == "" || phone == "" || dob == "" || gender == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Data Missing"})
		return
	}

	var address models.Address
	if raw := c.PostForm("address"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &address); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid address format"})
			return
		}
	}

	var user models.User
	if err := configuration.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	user.Name = name
	user.Phone = phone
	user.Dob = dob
	user.Gender = gender
	user.Address = address

	if file, err := c.FormFile("image"); err == nil {
		if Uploader == nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Image host not configured"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read image"})
			return
		}
		defer src.Close()

		imageURL, err := Uploader.Upload(c.Request.Context(), src)
		if err != nil {
			log.Println("Error uploading image:", err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Failed to upload image"})
			return
		}
		user.Image = imageURL
	}

	if err := configuration.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile Updated"})
}
