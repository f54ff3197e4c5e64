package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для чтения записей и смены их статуса
type Service struct {
	appointmentRepo AppointmentRepository
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
// loc часовой пояс, в котором отдаются дата и время записей
func NewService(appointmentRepo AppointmentRepository, loc *time.Location, logger Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		location:        loc,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свои записи, администратор любые
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, actor.UserID)

	appointment, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !actor.CanAccess(appointment) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment, s.location), nil
}

// GetClientAppointments получает записи клиента, сначала новые
// Без фильтра по статусу отмененные записи не возвращаются
func (s *Service) GetClientAppointments(ctx context.Context, actor domain.Actor, status *string) (*models.AppointmentListResponse, error) {
	if !actor.HasClient() {
		s.logger.Warn("GetClientAppointments: user=%d has no client profile", actor.UserID)
		return nil, ErrNoClientProfile
	}
	clientID := *actor.ClientID

	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", clientID, status)

	var domainStatus *domain.AppointmentStatus
	if status != nil {
		parsed, err := domain.ParseAppointmentStatus(*status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%d", *status, clientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &parsed
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, clientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: fetched %d appointments for client=%d", len(appointments), clientID)
	return models.FromDomainAppointmentList(appointments, s.location), nil
}

// Cancel отменяет запись (scheduled -> cancelled)
// Отменить может владелец или администратор, отмененная запись больше не занимает время
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, actor.UserID)

	appointment, err := s.load(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if !actor.CanAccess(appointment) {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", actor.UserID, id)
		return ErrAccessDenied
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appointment.Status)
		return ErrCannotCancel
	}

	if err := s.transition(ctx, "Cancel", id, domain.StatusCancelled); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			return ErrCannotCancel
		}
		return err
	}

	s.logger.Info("Cancel: appointment id=%d cancelled", id)
	return nil
}

// MarkAttended отмечает запись оказанной (scheduled -> attended), только администратор
func (s *Service) MarkAttended(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("MarkAttended: appointment id=%d by user=%d", id, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("MarkAttended: user=%d is not an admin", actor.UserID)
		return ErrAccessDenied
	}

	appointment, err := s.load(ctx, "MarkAttended", id)
	if err != nil {
		return err
	}

	if !appointment.CanBeAttended() {
		s.logger.Warn("MarkAttended: appointment id=%d cannot be attended, status=%s", id, appointment.Status)
		return ErrCannotAttend
	}

	if err := s.transition(ctx, "MarkAttended", id, domain.StatusAttended); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			return ErrCannotAttend
		}
		return err
	}

	s.logger.Info("MarkAttended: appointment id=%d attended", id)
	return nil
}

// Вспомогательные методы

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return appointment, nil
}

// transition условный переход из scheduled, конкурентная смена статуса дает ErrStatusConflict
func (s *Service) transition(ctx context.Context, op string, id int64, to domain.AppointmentStatus) error {
	err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusScheduled, to)
	if err == nil || errors.Is(err, appointmentRepo.ErrStatusConflict) {
		return err
	}
	s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}
