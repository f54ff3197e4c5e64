package get_schedule

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

type ScheduleProvider interface {
	Schedule() domain.Schedule
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
