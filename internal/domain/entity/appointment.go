package entity

import (
	"time"

	"github.com/google/uuid"
)

// Appointment represents a committed booking for a single slot.
// The (date, time) pair is unique across all appointments; the database
// enforces this with a unique index so two bookings can never share a slot.
type Appointment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PatientName string    `gorm:"type:varchar(255);not null" json:"patient_name"`
	Phone       string    `gorm:"type:varchar(32);not null;index" json:"phone"`
	Reason      string    `gorm:"type:varchar(255);not null" json:"reason"`
	Date        string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_appointments_date_time" json:"date"` // YYYY-MM-DD
	Time        string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_appointments_date_time" json:"time"`  // HH:mm
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// HumanTime renders the slot for patient-facing messages.
func (a *Appointment) HumanTime() string {
	return a.Date + " às " + a.Time
}
