package get_schedule

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	Timezone                      string           `json:"timezone"`
	StepMinutes                   int              `json:"stepMinutes"`
	MaxConcurrentPerSlot          int              `json:"maxConcurrentPerSlot"`
	DefaultServiceDurationMinutes int              `json:"defaultServiceDurationMinutes"`
	Windows                       []WindowResponse `json:"windows"`
}

// WindowResponse рабочее окно "07:00"-"12:00"
type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromDomainSchedule конвертирует доменное расписание в HTTP response
func FromDomainSchedule(schedule domain.Schedule) *ScheduleResponse {
	windows := make([]WindowResponse, len(schedule.Hours.Windows))
	for i, window := range schedule.Hours.Windows {
		windows[i] = WindowResponse{
			Start: window.Start.String(),
			End:   window.End.String(),
		}
	}

	return &ScheduleResponse{
		Timezone:                      schedule.Location().String(),
		StepMinutes:                   schedule.StepMinutes,
		MaxConcurrentPerSlot:          schedule.MaxConcurrentPerSlot,
		DefaultServiceDurationMinutes: domain.DefaultServiceDurationMinutes,
		Windows:                       windows,
	}
}
