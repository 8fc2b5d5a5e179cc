package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SidW111/Prescripto/configuration"
	"github.com/SidW111/Prescripto/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type bookingRequest struct {
	DoctorID uint   `json:"docId" binding:"required"`
	SlotDate string `json:"slotDate" binding:"required"`
	SlotTime string `json:"slotTime" binding:"required"`
}

// BookAppointment books a slot with a doctor. The ledger row insert and the
// appointment create run in one transaction; the unique index on the ledger is
// what keeps two concurrent requests out of the same slot.
func BookAppointment(c *gin.Context) {
	var req bookingRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing booking details"})
		return
	}

	if _, err := time.Parse("2006-01-02", req.SlotDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
		return
	}

	userID := c.GetUint("userID")
	var user models.User
	if err := configuration.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	var doctor models.Doctor
	if err := configuration.DB.First(&doctor, req.DoctorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Doctor not found"})
		return
	}

	if !doctor.Available {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Doctor not available"})
		return
	}

	appointment := models.Appointment{
		UserID:        user.UserID,
		DoctorID:      doctor.DoctorID,
		UserData:      models.SnapshotUser(user),
		DocData:       models.SnapshotDoctor(doctor),
		SlotDate:      req.SlotDate,
		SlotTime:      req.SlotTime,
		Amount:        doctor.Fees,
		BookingStatus: models.BookingBooked,
		PaymentStatus: models.PaymentPending,
	}

	err := configuration.DB.Transaction(func(tx *gorm.DB) error {
		slot := models.DoctorSlot{
			DoctorID: doctor.DoctorID,
			SlotDate: req.SlotDate,
			SlotTime: req.SlotTime,
		}
		if err := tx.Create(&slot).Error; err != nil {
			return err
		}
		return tx.Create(&appointment).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Slot not available"})
		return
	}
	if err != nil {
		log.Println("Error booking appointment:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to book appointment"})
		return
	}

	invalidateDoctorListCache()

	// Confirmation channels are best effort, a failed mail never unwinds a booking.
	if err := SendBookingEmail(appointment); err != nil {
		log.Println("Error sending booking email:", err)
	}
	if err := SendBookingSMS(appointment); err != nil {
		log.Println("Error sending booking SMS:", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Appointment Booked",
		"appointment": appointment,
	})
}

// ListUserAppointments returns the requester's appointments, newest first.
func ListUserAppointments(c *gin.Context) {
	userID := c.GetUint("userID")

	var appointments []models.Appointment
	if err := configuration.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appointments})
}

// CancelUserAppointment cancels the requester's own appointment.
func CancelUserAppointment(c *gin.Context) {
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

	if appointment.UserID != c.GetUint("userID") {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized action"})
		return
	}

	cancelAppointment(c, &appointment)
}

// cancelAppointment flips the booking state and releases the ledger row in a
// single transaction, so a crash can't strand a cancelled appointment with a
// still-blocked slot.
func cancelAppointment(c *gin.Context, appointment *models.Appointment) {
	err := configuration.DB.Transaction(func(tx *gorm.DB) error {
		if err := appointment.MarkCancelled(); err != nil {
			return err
		}
		if err := tx.Model(appointment).Update("booking_status", models.BookingCancelled).Error; err != nil {
			return err
		}
		return tx.Where("doctor_id = ? AND slot_date = ? AND slot_time = ?",
			appointment.DoctorID, appointment.SlotDate, appointment.SlotTime).
			Delete(&models.DoctorSlot{}).Error
	})
	switch {
	case errors.Is(err, models.ErrAlreadyCancelled), errors.Is(err, models.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		return
	case err != nil:
		log.Println("Error cancelling appointment:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel appointment"})
		return
	}

	invalidateDoctorListCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment Cancelled"})
}
