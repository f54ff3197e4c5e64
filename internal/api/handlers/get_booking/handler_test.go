package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeService struct {
	resp *models.AppointmentResponse
	err  error
}

func (f *fakeService) GetByID(_ context.Context, _ int64, _ domain.Actor) (*models.AppointmentResponse, error) {
	return f.resp, f.err
}

func serve(h *Handler) *httptest.ResponseRecorder {
	actor := domain.Actor{UserID: 1, ClientID: ptr.Ptr(int64(7)), Role: domain.RoleClient}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/12", nil)
	req = mux.SetURLVars(req, map[string]string{"appointmentId": "12"})
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	h := NewHandler(&fakeService{resp: &models.AppointmentResponse{
		ID: 12, ClientID: 7, Date: "2025-10-15", StartTime: "10:00", EndTime: "10:45", Status: "scheduled",
	}}, logger.NewNop())

	rec := serve(h)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(12), got.ID)
	assert.Equal(t, "10:45", got.EndTime)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(NewHandler(&fakeService{err: appointments.ErrAppointmentNotFound}, logger.NewNop())).Code)
	assert.Equal(t, http.StatusForbidden, serve(NewHandler(&fakeService{err: appointments.ErrAccessDenied}, logger.NewNop())).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(NewHandler(&fakeService{err: appointments.ErrInternal}, logger.NewNop())).Code)
}
