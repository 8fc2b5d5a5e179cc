package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/SidW111/Prescripto/authentication"
	"github.com/SidW111/Prescripto/configuration"
	"github.com/SidW111/Prescripto/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminLogin checks the env-configured admin account and returns an aToken.
func AdminLogin(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing email or password"})
		return
	}

	if loginReq.Email != os.Getenv("ADMIN_EMAIL") || loginReq.Password != os.Getenv("ADMIN_PASSWORD") {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Credentials"})
		return
	}

	token, err := authentication.GenerateAdminToken(loginReq.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// AddDoctor registers a doctor from the admin panel's multipart form.
func AddDoctor(c *gin.Context) {
	fees, err := strconv.ParseFloat(c.PostForm("fees"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid fees"})
		return
	}

	doctor := models.Doctor{
		Name:       c.PostForm("name"),
		Email:      c.PostForm("email"),
		Password:   c.PostForm("password"),
		Speciality: c.PostForm("speciality"),
		Degree:     c.PostForm("degree"),
		Experience: c.PostForm("experience"),
		About:      c.PostForm("about"),
		Fees:       fees,
		Available:  true,
	}

	if raw := c.PostForm("address"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &doctor.Address); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid address format"})
			return
		}
	}

	if err := validate.Struct(doctor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please fill all the mandatory fields"})
		return
	}

	var existingDoctor models.Doctor
	if err := configuration.DB.Where("email = ?", doctor.Email).First(&existingDoctor).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already in use"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(doctor.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}
	doctor.Password = string(hashedPassword)

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
		doctor.Image = imageURL
	}

	if err := configuration.DB.Create(&doctor).Error; err != nil {
		log.Println("Error creating doctor:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add doctor"})
		return
	}

	invalidateDoctorListCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Doctor Added", "doctor": doctor})
}

// AllDoctors lists every doctor for the admin panel.
func AllDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := configuration.DB.Find(&doctors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch doctors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "doctors": doctors})
}

// AdminChangeAvailability toggles any doctor's available flag.
func AdminChangeAvailability(c *gin.Context) {
	var req struct {
		DoctorID uint `json:"docId" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "docId is required"})
		return
	}

	available, err := toggleAvailability(req.DoctorID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Doctor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Availability Changed", "available": available})
}

// AllAppointments lists every appointment for the admin panel, newest first.
func AllAppointments(c *gin.Context) {
	var appointments []models.Appointment
	if err := configuration.DB.Order("created_at DESC").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appointments})
}

// AdminCancelAppointment cancels any appointment, no ownership check.
func AdminCancelAppointment(c *gin.Context) {
	var req struct {
		AppointmentID uint `json:"appointmentId" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "appointmentId is required"})
		return
	}

	var appointment models.Appointment
	if err := configuration.DB.First(&appointment, req.AppointmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Appointment not found"})
		return
	}

	cancelAppointment(c, &appointment)
}
