package usecase

import (
	"context"

	"clinic-whatsapp-scheduler/internal/converter"
	"clinic-whatsapp-scheduler/internal/delivery/dto"
	"clinic-whatsapp-scheduler/internal/domain/repository"
	"clinic-whatsapp-scheduler/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AdminUsecase interface {
	ListAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	ClearAll(ctx context.Context) error
}

type adminUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	sessionRepo     repository.SessionRepository
	slotService     *service.RedisSlotService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	sessionRepo repository.SessionRepository,
	slotService *service.RedisSlotService,
) AdminUsecase {
	return &adminUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		sessionRepo:     sessionRepo,
		slotService:     slotService,
	}
}

func (u *adminUsecase) ListAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// ClearAll wipes every appointment, every conversation session, and every
// slot reservation key. A patient who was mid-flow starts over from the
// greeting on their next message.
func (u *adminUsecase) ClearAll(ctx context.Context) error {
	if err := u.appointmentRepo.DeleteAll(u.db.WithContext(ctx)); err != nil {
		u.log.Warnf("Failed to delete appointments: %+v", err)
		return err
	}

	if err := u.sessionRepo.ClearAll(ctx); err != nil {
		u.log.Warnf("Failed to clear sessions: %+v", err)
		return err
	}

	if err := u.slotService.ClearAll(ctx); err != nil {
		u.log.Warnf("Failed to clear slot reservations: %+v", err)
		return err
	}

	u.log.Info("Administrative reset completed")
	return nil
}
