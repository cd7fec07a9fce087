package repository

import (
	"errors"

	"clinic-whatsapp-scheduler/internal/domain/entity"
	domainRepo "clinic-whatsapp-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error code for unique constraint violations.
const pgUniqueViolationCode = "23505"

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	if err := db.Create(appointment).Error; err != nil {
		if isUniqueViolation(err) {
			return domainRepo.ErrDuplicateSlot
		}
		return err
	}
	return nil
}

func (r *appointmentRepository) FindTimesByDate(db *gorm.DB, date string) ([]string, error) {
	var times []string
	err := db.Model(&entity.Appointment{}).
		Where("date = ?", date).
		Order("time ASC").
		Pluck("time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Order("date ASC, time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) DeleteAll(db *gorm.DB) error {
	return db.Where("1 = 1").Delete(&entity.Appointment{}).Error
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}
