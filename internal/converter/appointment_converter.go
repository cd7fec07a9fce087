package converter

import (
	"clinic-whatsapp-scheduler/internal/delivery/dto"
	"clinic-whatsapp-scheduler/internal/domain/entity"
)

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientName: appointment.PatientName,
		Phone:       appointment.Phone,
		Reason:      appointment.Reason,
		Date:        appointment.Date,
		Time:        appointment.Time,
		CreatedAt:   appointment.CreatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *AppointmentToResponse(&appointments[i]))
	}
	return responses
}
