package middleware

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
)

// UserClient интерфейс клиента UserService
type UserClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// HTTPRecorder интерфейс сборщика HTTP метрик
type HTTPRecorder interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type contextKey string

const (
	userIDKey    contextKey = "userID"
	actorKey     contextKey = "actor"
	requestIDKey contextKey = "requestID"
)
