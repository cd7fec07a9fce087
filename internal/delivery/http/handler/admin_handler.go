package handler

import (
	"net/http"

	"clinic-whatsapp-scheduler/internal/delivery/dto"
	"clinic-whatsapp-scheduler/internal/usecase"
	"clinic-whatsapp-scheduler/pkg/response"
	"clinic-whatsapp-scheduler/pkg/validator"
)

type AdminHandler struct {
	adminUsecase        usecase.AdminUsecase
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAdminHandler(
	adminUsecase usecase.AdminUsecase,
	availabilityUsecase usecase.AvailabilityUsecase,
	validator *validator.CustomValidator,
) *AdminHandler {
	return &AdminHandler{
		adminUsecase:        adminUsecase,
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// GetAppointments lists all committed appointments
// @Summary List appointments
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/appointments [get]
func (h *AdminHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.adminUsecase.ListAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// ClearAppointments wipes all appointments and sessions
// @Summary Clear all appointments and sessions
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/appointments [delete]
func (h *AdminHandler) ClearAppointments(w http.ResponseWriter, r *http.Request) {
	if err := h.adminUsecase.ClearAll(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to clear appointments")
		return
	}

	response.Success(w, http.StatusOK, "All appointments and sessions cleared", nil)
}

// GetAvailability returns the open slots for a date
// @Summary Get availability for a date
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param date query string true "Date in YYYY-MM-DD format"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/availability [get]
func (h *AdminHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := dto.AvailabilityQuery{Date: r.URL.Query().Get("date")}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.GetAvailability(r.Context(), query.Date)
	if err != nil {
		if err == usecase.ErrInvalidDate {
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
			return
		}
		response.InternalServerError(w, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}
