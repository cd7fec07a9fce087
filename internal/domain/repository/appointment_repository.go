package repository

import (
	"errors"

	"clinic-whatsapp-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

// ErrDuplicateSlot is returned by Create when another appointment already
// occupies the same (date, time) slot. Implementations translate the
// database-level unique violation into this error.
var ErrDuplicateSlot = errors.New("slot already booked")

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindTimesByDate(db *gorm.DB, date string) ([]string, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	DeleteAll(db *gorm.DB) error
}
