package userservice

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// User модель пользователя из UserService
type User struct {
	ID       int64  `json:"id"`
	ClientID *int64 `json:"clientId,omitempty"` // nil, если у пользователя нет профиля клиента
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// ToActor преобразует пользователя в доменного актора
func (u *User) ToActor() domain.Actor {
	role := u.Role
	if role == "" {
		role = domain.RoleClient
	}

	return domain.Actor{
		UserID:   u.ID,
		ClientID: u.ClientID,
		Role:     role,
	}
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
