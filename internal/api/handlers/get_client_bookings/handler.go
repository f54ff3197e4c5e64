package get_client_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgUnauthorized    = "пользователь не определен"
	msgNoClientProfile = "у пользователя нет профиля клиента"
	msgInvalidStatus   = "некорректный статус, ожидается scheduled, attended или cancelled"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: status (опционально), без него отмененные записи не возвращаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.GetClientAppointments(r.Context(), actor, status)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrNoClientProfile):
			h.logger.Warn("GET /appointments - No client profile: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgNoClientProfile)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid status: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /appointments - Failed to get appointments: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: user_id=%d, count=%d",
		actor.UserID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
