package controllers

import (
	"net/http"

	"github.com/SidW111/Prescripto/configuration"
	"github.com/SidW111/Prescripto/models"
	"github.com/gin-gonic/gin"
)

// latestAppointments returns the newest slice of an already created_at DESC
// ordered list.
func latestAppointments(appointments []models.Appointment) []models.Appointment {
	if len(appointments) > 5 {
		return appointments[:5]
	}
	return appointments
}

// DoctorDashboard reports the doctor's earnings, distinct patient count and
// the five most recent appointments. Earnings recognize an appointment once
// it is completed or paid.
func DoctorDashboard(c *gin.Context) {
	doctorID := c.GetUint("doctorID")

	var appointments []models.Appointment
	if err := configuration.DB.Where("doctor_id = ?", doctorID).Order("created_at DESC").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch appointments"})
		return
	}

	var earnings float64
	patients := make(map[uint]struct{})
	for _, a := range appointments {
		if a.Earned() {
			earnings += a.Amount
		}
		patients[a.UserID] = struct{}{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"dashData": gin.H{
			"earnings":           earnings,
			"appointments":       len(appointments),
			"patients":           len(patients),
			"latestAppointments": latestAppointments(appointments),
		},
	})
}

// AdminDashboard reports fleet-wide counts and the newest appointments.
func AdminDashboard(c *gin.Context) {
	var doctorCount int64
	if err := configuration.DB.Model(&models.Doctor{}).Count(&doctorCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to count doctors"})
		return
	}

	var patientCount int64
	if err := configuration.DB.Model(&models.User{}).Count(&patientCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to count patients"})
		return
	}

	var appointments []models.Appointment
	if err := configuration.DB.Order("created_at DESC").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"dashData": gin.H{
			"doctors":            doctorCount,
			"patients":           patientCount,
			"appointments":       len(appointments),
			"latestAppointments": latestAppointments(appointments),
		},
	})
}
