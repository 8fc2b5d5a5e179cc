package models

import (
	"errors"
	"time"
)

// Booking and payment state of an appointment. The two dimensions move
// independently: a booked appointment may be paid before the doctor marks it
// completed, and cancellation is terminal for both.
const (
	BookingBooked    = "booked"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"

	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

var (
	ErrAlreadyCancelled = errors.New("appointment already cancelled")
	ErrAlreadyCompleted = errors.New("appointment already completed")
	ErrAlreadyPaid      = errors.New("appointment already paid")
)

// UserSnapshot is the patient data copied onto the appointment at booking
// time, so appointment listings survive later profile edits.
type UserSnapshot struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Image   string  `json:"image"`
	Dob     string  `json:"dob"`
	Gender  string  `json:"gender"`
	Address Address `json:"address"`
}

// DoctorSnapshot is the doctor data copied onto the appointment at booking time.
type DoctorSnapshot struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Image      string  `json:"image"`
	Speciality string  `json:"speciality"`
	Degree     string  `json:"degree"`
	Fees       float64 `json:"fees"`
	Address    Address `json:"address"`
}

func SnapshotUser(u User) UserSnapshot {
	return UserSnapshot{
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Image:   u.Image,
		Dob:     u.Dob,
		Gender:  u.Gender,
		Address: u.Address,
	}
}

func SnapshotDoctor(d Doctor) DoctorSnapshot {
	return DoctorSnapshot{
		Name:       d.Name,
		Email:      d.Email,
		Image:      d.Image,
		Speciality: d.Speciality,
		Degree:     d.Degree,
		Fees:       d.Fees,
		Address:    d.Address,
	}
}

type Appointment struct {
	AppointmentID uint           `json:"appointment_id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"not null;index"`
	DoctorID      uint           `json:"doctor_id" gorm:"not null;index"`
	UserData      UserSnapshot   `json:"user_data" gorm:"serializer:json"`
	DocData       DoctorSnapshot `json:"doc_data" gorm:"serializer:json"`
	SlotDate      string         `json:"slot_date" gorm:"size:10;not null"`
	SlotTime      string         `json:"slot_time" gorm:"size:11;not null"`
	Amount        float64        `json:"amount"`
	BookingStatus string         `json:"booking_status" gorm:"size:16;not null;default:booked"`
	PaymentStatus string         `json:"payment_status" gorm:"size:16;not null;default:pending"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// MarkCancelled moves the booking to cancelled. Cancelled and completed are
// terminal, so a cancelled appointment can never come back.
func (a *Appointment) MarkCancelled() error {
	switch a.BookingStatus {
	case BookingCancelled:
		return ErrAlreadyCancelled
	case BookingCompleted:
		return ErrAlreadyCompleted
	}
	a.BookingStatus = BookingCancelled
	return nil
}

// MarkCompleted moves the booking to completed.
func (a *Appointment) MarkCompleted() error {
	switch a.BookingStatus {
	case BookingCancelled:
		return ErrAlreadyCancelled
	case BookingCompleted:
		return ErrAlreadyCompleted
	}
	a.BookingStatus = BookingCompleted
	return nil
}

// MarkPaid records a confirmed gateway payment. Payment of a cancelled
// appointment is rejected, and paid is terminal.
func (a *Appointment) MarkPaid() error {
	if a.BookingStatus == BookingCancelled {
		return ErrAlreadyCancelled
	}
	if a.PaymentStatus == PaymentPaid {
		return ErrAlreadyPaid
	}
	a.PaymentStatus = PaymentPaid
	return nil
}

// Earned reports whether the appointment counts towards a doctor's earnings.
func (a *Appointment) Earned() bool {
	return a.BookingStatus == BookingCompleted || a.PaymentStatus == PaymentPaid
}
