package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
)

const (
	msgUnknownUser        = "пользователь не найден"
	msgInactiveUser       = "пользователь заблокирован"
	msgUserServiceFailure = "сервис пользователей недоступен"
	msgAdminOnly          = "действие доступно только администратору"
)

// ActorResolver получает пользователя из UserService и кладет domain.Actor в контекст
// Должен стоять после Auth
type ActorResolver struct {
	client UserClient
	logger Logger
}

// NewActorResolver создает middleware разрешения актора
func NewActorResolver(client UserClient, logger Logger) *ActorResolver {
	return &ActorResolver{
		client: client,
		logger: logger,
	}
}

// Middleware возвращает http middleware
func (a *ActorResolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		user, err := a.client.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, userservice.ErrUserNotFound) {
				a.logger.Warn("%s %s - Unknown user: user_id=%d", r.Method, r.URL.Path, userID)
				handlers.RespondUnauthorized(w, msgUnknownUser)
				return
			}
			a.logger.Error("%s %s - Failed to resolve user: user_id=%d, error=%v", r.Method, r.URL.Path, userID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUserServiceFailure)
			return
		}

		if !user.IsActive {
			a.logger.Warn("%s %s - Inactive user: user_id=%d", r.Method, r.URL.Path, userID)
			handlers.RespondForbidden(w, msgInactiveUser)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), user.ToActor())))
	})
}

// RequireRole пропускает только актора с указанной ролью
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok || actor.Role != role {
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithActor кладет актора в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достает актора из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
