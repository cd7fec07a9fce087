package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-whatsapp-scheduler/internal/delivery/dto"
	"clinic-whatsapp-scheduler/internal/usecase"
	"clinic-whatsapp-scheduler/pkg/response"
	"clinic-whatsapp-scheduler/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminUsecase struct {
	list     *dto.AppointmentListResponse
	listErr  error
	cleared  bool
	clearErr error
}

func (f *fakeAdminUsecase) ListAppointments(_ context.Context) (*dto.AppointmentListResponse, error) {
	return f.list, f.listErr
}

func (f *fakeAdminUsecase) ClearAll(_ context.Context) error {
	f.cleared = true
	return f.clearErr
}

type fakeAvailabilityUsecase struct {
	resp *dto.AvailabilityResponse
	err  error
}

func (f *fakeAvailabilityUsecase) GetAvailability(_ context.Context, _ string) (*dto.AvailabilityResponse, error) {
	return f.resp, f.err
}

func (f *fakeAvailabilityUsecase) Schedule(_ context.Context, _ *dto.ScheduleRequest) (*dto.ScheduleResult, error) {
	return nil, nil
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetAppointments(t *testing.T) {
	admin := &fakeAdminUsecase{
		list: &dto.AppointmentListResponse{
			Appointments: []dto.AppointmentResponse{{PatientName: "Maria", Date: "2025-12-30", Time: "09:00"}},
			Total:        1,
		},
	}
	h := NewAdminHandler(admin, &fakeAvailabilityUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments", nil)
	rec := httptest.NewRecorder()
	h.GetAppointments(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
}

func TestGetAppointmentsFailure(t *testing.T) {
	admin := &fakeAdminUsecase{listErr: assert.AnError}
	h := NewAdminHandler(admin, &fakeAvailabilityUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments", nil)
	rec := httptest.NewRecorder()
	h.GetAppointments(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, decodeResponse(t, rec).Success)
}

func TestClearAppointments(t *testing.T) {
	admin := &fakeAdminUsecase{}
	h := NewAdminHandler(admin, &fakeAvailabilityUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/appointments", nil)
	rec := httptest.NewRecorder()
	h.ClearAppointments(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, admin.cleared)
}

func TestGetAvailabilityQuery(t *testing.T) {
	availability := &fakeAvailabilityUsecase{
		resp: &dto.AvailabilityResponse{IsBusinessDay: true, Slots: []string{"09:00", "09:30"}},
	}
	h := NewAdminHandler(&fakeAdminUsecase{}, availability, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/availability?date=2025-12-30", nil)
	rec := httptest.NewRecorder()
	h.GetAvailability(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
}

func TestGetAvailabilityMissingDate(t *testing.T) {
	h := NewAdminHandler(&fakeAdminUsecase{}, &fakeAvailabilityUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/availability", nil)
	rec := httptest.NewRecorder()
	h.GetAvailability(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeResponse(t, rec).Success)
}

func TestGetAvailabilityMalformedDate(t *testing.T) {
	h := NewAdminHandler(&fakeAdminUsecase{}, &fakeAvailabilityUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/availability?date=30%2F12%2F2025", nil)
	rec := httptest.NewRecorder()
	h.GetAvailability(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAvailabilityInvalidDateFromUsecase(t *testing.T) {
	availability := &fakeAvailabilityUsecase{err: usecase.ErrInvalidDate}
	h := NewAdminHandler(&fakeAdminUsecase{}, availability, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/availability?date=2025-12-30", nil)
	rec := httptest.NewRecorder()
	h.GetAvailability(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
