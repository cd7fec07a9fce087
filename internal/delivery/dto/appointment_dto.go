package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientName string    `json:"patient_name"`
	Phone       string    `json:"phone"`
	Reason      string    `json:"reason"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	CreatedAt   time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// ScheduleRequest is the internal booking request produced by the
// conversation layer at confirmation time.
type ScheduleRequest struct {
	PatientName string
	Phone       string
	Date        string // YYYY-MM-DD
	Time        string // HH:mm
	Reason      string
}

// ScheduleResult carries the committed appointment and its patient-facing
// slot rendering.
type ScheduleResult struct {
	Appointment *AppointmentResponse `json:"appointment"`
	HumanTime   string               `json:"human_time"`
}
