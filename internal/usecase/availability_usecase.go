package usecase

import (
	"context"
	"errors"
	"slices"

	"clinic-whatsapp-scheduler/internal/converter"
	"clinic-whatsapp-scheduler/internal/delivery/dto"
	"clinic-whatsapp-scheduler/internal/domain/entity"
	"clinic-whatsapp-scheduler/internal/domain/repository"
	"clinic-whatsapp-scheduler/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidDate    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrNotBusinessDay = errors.New("not a business day")
	ErrInvalidSlot    = errors.New("time is not a bookable slot")
	ErrSlotTaken      = errors.New("slot is already taken")
)

type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, date string) (*dto.AvailabilityResponse, error)
	Schedule(ctx context.Context, req *dto.ScheduleRequest) (*dto.ScheduleResult, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	calendar        *service.CalendarService
	slotService     *service.RedisSlotService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	calendar *service.CalendarService,
	slotService *service.RedisSlotService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		calendar:        calendar,
		slotService:     slotService,
	}
}

// GetAvailability returns the remaining open slots for a date: the calendar's
// base slots minus every time already taken by a committed appointment.
func (u *availabilityUsecase) GetAvailability(ctx context.Context, date string) (*dto.AvailabilityResponse, error) {
	day, err := u.calendar.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if !u.calendar.IsBusinessDay(day) {
		return &dto.AvailabilityResponse{IsBusinessDay: false, Slots: []string{}}, nil
	}

	booked, err := u.appointmentRepo.FindTimesByDate(u.db.WithContext(ctx), date)
	if err != nil {
		u.log.Warnf("Failed to load booked times for %s: %+v", date, err)
		return nil, err
	}

	base := u.calendar.BaseSlots(day)
	open := make([]string, 0, len(base))
	for _, slot := range base {
		if !slices.Contains(booked, slot) {
			open = append(open, slot)
		}
	}

	return &dto.AvailabilityResponse{IsBusinessDay: true, Slots: open}, nil
}

// Schedule commits one appointment for the requested slot.
//
// Precondition order, first failure wins:
//  1. date is a business day
//  2. time is one of the calendar's base slots
//  3. the slot is not already occupied
//
// The conflict check and the commit are indivisible: a Redis SETNX on the
// slot key serializes concurrent attempts, and the unique (date, time) index
// catches duplicates if Redis state was lost. When the database insert fails
// for any other reason the reservation is released again.
func (u *availabilityUsecase) Schedule(ctx context.Context, req *dto.ScheduleRequest) (*dto.ScheduleResult, error) {
	day, err := u.calendar.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if !u.calendar.IsBusinessDay(day) {
		return nil, ErrNotBusinessDay
	}

	if !slices.Contains(u.calendar.BaseSlots(day), req.Time) {
		return nil, ErrInvalidSlot
	}

	reserved, err := u.slotService.Reserve(ctx, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		PatientName: req.PatientName,
		Phone:       req.Phone,
		Reason:      req.Reason,
		Date:        req.Date,
		Time:        req.Time,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, ErrSlotTaken
		}

		u.log.Errorf("Failed to insert appointment, releasing slot reservation: %+v", err)
		if releaseErr := u.slotService.Release(ctx, req.Date, req.Time); releaseErr != nil {
			u.log.Errorf("Failed to release slot %s %s after DB failure: %+v", req.Date, req.Time, releaseErr)
		}
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, date=%s, time=%s", appointment.ID, appointment.Date, appointment.Time)
	return &dto.ScheduleResult{
		Appointment: converter.AppointmentToResponse(appointment),
		HumanTime:   appointment.HumanTime(),
	}, nil
}
