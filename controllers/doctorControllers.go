package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SidW111/Prescripto/authentication"
	"github.com/SidW111/Prescripto/configuration"
	"github.com/SidW111/Prescripto/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const doctorListCacheKey = "doctors:list"

// doctorPublic is a doctor list entry with its slot ledger attached, so the
// frontend slot picker can grey out taken times.
type doctorPublic struct {
	models.Doctor
	SlotsBooked map[string][]string `json:"slots_booked"`
}

// slotLedger assembles the booked-slot map for one doctor: date to the
// ordered list of taken time-strings.
func slotLedger(doctorID uint) (map[string][]string, error) {
	var slots []models.DoctorSlot
	if err := configuration.DB.Where("doctor_id = ?", doctorID).
		Order("slot_date, slot_time").Find(&slots).Error; err != nil {
		return nil, err
	}

	ledger := make(map[string][]string)
	for _, s := range slots {
		ledger[s.SlotDate] = append(ledger[s.SlotDate], s.SlotTime)
	}
	return ledger, nil
}

func invalidateDoctorListCache() {
	if configuration.Client == nil {
		return
	}
	configuration.DelRedis(doctorListCacheKey)
}

// DoctorList returns every doctor with its booked slots. The response is
// cached in redis and invalidated whenever doctor or ledger data changes.
func DoctorList(c *gin.Context) {
	if configuration.Client != nil {
		if cached, err := configuration.GetRedis(doctorListCacheKey); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	var doctors []models.Doctor
	if err := configuration.DB.Find(&doctors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch doctors"})
		return
	}

	list := make([]doctorPublic, 0, len(doctors))
	for _, doctor := range doctors {
		ledger, err := slotLedger(doctor.DoctorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch booked slots"})
			return
		}
		list = append(list, doctorPublic{Doctor: doctor, SlotsBooked: ledger})
	}

	body, err := json.Marshal(gin.H{"success": true, "doctors": list})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to encode doctors"})
		return
	}

	if configuration.Client != nil {
		configuration.SetRedis(doctorListCacheKey, body, time.Minute)
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// DoctorLogin checks doctor credentials and returns a dToken.
func DoctorLogin(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing email or password"})
		return
	}

	var existingDoctor models.Doctor
	if err := configuration.DB.Where("email = ?", loginReq.Email).First(&existingDoctor).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingDoctor.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Credentials"})
		return
	}

	token, err := authentication.GenerateDoctorToken(existingDoctor.Email, existingDoctor.DoctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// DoctorAppointments lists the authenticated doctor's appointments.
func DoctorAppointments(c *gin.Context) {
	doctorID := c.GetUint("doctorID")

	var appointments []models.Appointment
	if err := configuration.DB.Where("doctor_id = ?", doctorID).Order("created_at DESC").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appointments})
}

// CompleteAppointment marks one of the doctor's appointments completed.
func CompleteAppointment(c *gin.Context) {
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

	if appointment.DoctorID != c.GetUint("doctorID") {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized action"})
		return
	}

	if err := appointment.MarkCompleted(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := configuration.DB.Model(&appointment).Update("booking_status", appointment.BookingStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment Completed"})
}

// DoctorCancelAppointment cancels one of the doctor's own appointments.
func DoctorCancelAppointment(c *gin.Context) {
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

	if appointment.DoctorID != c.GetUint("doctorID") {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized action"})
		return
	}

	cancelAppointment(c, &appointment)
}

// DoctorProfile returns the authenticated doctor's record.
func DoctorProfile(c *gin.Context) {
	doctorID := c.GetUint("doctorID")

	var doctor models.Doctor
	if err := configuration.DB.First(&doctor, doctorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Doctor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profileData": doctor})
}

// UpdateDoctorProfile updates the self-service fields from the doctor panel.
func UpdateDoctorProfile(c *gin.Context) {
	var req struct {
		Fees      float64        `json:"fees"`
		Address   models.Address `json:"address"`
		About     string         `json:"about"`
		Available bool           `json:"available"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	var doctor models.Doctor
	if err := configuration.DB.First(&doctor, c.GetUint("doctorID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Doctor not found"})
		return
	}

	doctor.Fees = req.Fees
	doctor.Address = req.Address
	doctor.About = req.About
	doctor.Available = req.Available
	if err := configuration.DB.Save(&doctor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	invalidateDoctorListCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile Updated"})
}

// toggleAvailability flips the available flag, shared by the doctor panel and
// the admin panel.
func toggleAvailability(doctorID uint) (bool, error) {
	var doctor models.Doctor
	if err := configuration.DB.First(&doctor, doctorID).Error; err != nil {
		return false, err
	}
	doctor.Available = !doctor.Available
	if err := configuration.DB.Model(&doctor).Update("available", doctor.Available).Error; err != nil {
		return false, err
	}
	invalidateDoctorListCache()
	return doctor.Available, nil
}

// DoctorChangeAvailability toggles the authenticated doctor's own flag.
func DoctorChangeAvailability(c *gin.Context) {
	available, err := toggleAvailability(c.GetUint("doctorID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Doctor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Availability Changed", "available": available})
}
