package get_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type Handler struct {
	provider ScheduleProvider
	logger   Logger
}

func NewHandler(provider ScheduleProvider, logger Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger,
	}
}

// Handle GET /api/v1/schedule
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	response := FromDomainSchedule(h.provider.Schedule())

	h.logger.Info("GET /schedule - Schedule retrieved: timezone=%s, windows=%d",
		response.Timezone, len(response.Windows))
	handlers.RespondJSON(w, http.StatusOK, response)
}
