package models

// DoctorSlot is one booked slot in a doctor's ledger. The composite unique
// index makes the booking insert a test-and-set: two requests racing for the
// same (doctor, date, time) cannot both succeed. Cancellation deletes the row,
// which frees the slot for rebooking.
type DoctorSlot struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	DoctorID uint   `json:"doctor_id" gorm:"not null;uniqueIndex:idx_doctor_date_time"`
	SlotDate string `json:"slot_date" gorm:"size:10;not null;uniqueIndex:idx_doctor_date_time"`
	SlotTime string `json:"slot_time" gorm:"size:11;not null;uniqueIndex:idx_doctor_date_time"`
}
