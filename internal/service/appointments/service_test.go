package appointments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type memoryStore struct {
	mu           sync.Mutex
	appointments map[int64]*domain.Appointment
	err          error
}

func (s *memoryStore) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *memoryStore) GetByClientID(_ context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	result := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if a.ClientID != clientID {
			continue
		}
		if (status == nil && a.IsActive()) || (status != nil && a.Status == *status) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *memoryStore) UpdateStatus(_ context.Context, id int64, from, to domain.AppointmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.appointments[id]
	if !ok || a.Status != from {
		return appointmentRepo.ErrStatusConflict
	}
	a.Status = to
	return nil
}

func (s *memoryStore) GetActiveInRange(_ context.Context, from, to time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if a.IsActive() && !a.StartAt.Before(from) && a.StartAt.Before(to) {
			result = append(result, a)
		}
	}
	return result, nil
}

var madrid = time.FixedZone("CEST", 2*60*60)

func at(h, m int) time.Time {
	return time.Date(2025, 10, 15, h, m, 0, 0, madrid)
}

var (
	owner = domain.Actor{UserID: 1, ClientID: ptr.Ptr(int64(7)), Role: domain.RoleClient}
	other = domain.Actor{UserID: 2, ClientID: ptr.Ptr(int64(8)), Role: domain.RoleClient}
	admin = domain.Actor{UserID: 3, Role: domain.RoleAdmin}
)

func newStore() *memoryStore {
	notes := "bring x-ray"
	return &memoryStore{appointments: map[int64]*domain.Appointment{
		1: {ID: 1, ClientID: 7, ServiceID: 1, ServiceName: "Consultation", StartAt: at(10, 0).UTC(), DurationMinutes: 45, PriceAtBooking: decimal.RequireFromString("20.00"), Status: domain.StatusScheduled, Notes: &notes},
		2: {ID: 2, ClientID: 7, ServiceID: 1, StartAt: at(15, 0).UTC(), DurationMinutes: 30, Status: domain.StatusCancelled},
		3: {ID: 3, ClientID: 7, ServiceID: 1, StartAt: at(16, 0).UTC(), DurationMinutes: 30, Status: domain.StatusAttended},
	}}
}

func TestGetByID(t *testing.T) {
	s := NewService(newStore(), madrid, nopLogger{})

	resp, err := s.GetByID(context.Background(), 1, owner)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-15", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "10:45", resp.EndTime)
	assert.Equal(t, "scheduled", resp.Status)

	_, err = s.GetByID(context.Background(), 1, admin)
	assert.NoError(t, err)

	_, err = s.GetByID(context.Background(), 1, other)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetByID(context.Background(), 42, owner)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID_RepositoryError(t *testing.T) {
	store := newStore()
	store.err = errors.New("connection refused")

	_, err := NewService(store, madrid, nopLogger{}).GetByID(context.Background(), 1, owner)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetClientAppointments(t *testing.T) {
	s := NewService(newStore(), madrid, nopLogger{})

	resp, err := s.GetClientAppointments(context.Background(), owner, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2, "cancelled appointments are hidden without a filter")

	resp, err = s.GetClientAppointments(context.Background(), owner, ptr.Ptr("cancelled"))
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(2), resp.Appointments[0].ID)

	_, err = s.GetClientAppointments(context.Background(), owner, ptr.Ptr("programada"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.GetClientAppointments(context.Background(), admin, nil)
	assert.ErrorIs(t, err, ErrNoClientProfile)
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		actor   domain.Actor
		wantErr error
	}{
		{name: "owner", id: 1, actor: owner},
		{name: "admin", id: 1, actor: admin},
		{name: "other client", id: 1, actor: other, wantErr: ErrAccessDenied},
		{name: "already cancelled", id: 2, actor: owner, wantErr: ErrCannotCancel},
		{name: "attended", id: 3, actor: owner, wantErr: ErrCannotCancel},
		{name: "missing", id: 9, actor: owner, wantErr: ErrAppointmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			err := NewService(store, madrid, nopLogger{}).Cancel(context.Background(), tt.id, tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusCancelled, store.appointments[tt.id].Status)
		})
	}
}

func TestCancel_FreesTheSlot(t *testing.T) {
	store := newStore()
	s := NewService(store, madrid, nopLogger{})
	validator := availability.NewService(store, domain.DefaultSchedule(madrid), nopLogger{})

	interval, err := domain.NewTimeInterval(at(10, 0), 45)
	require.NoError(t, err)

	assert.ErrorIs(t, validator.Validate(context.Background(), interval, nil), availability.ErrSlotOccupied)

	require.NoError(t, s.Cancel(context.Background(), 1, owner))
	assert.NoError(t, validator.Validate(context.Background(), interval, nil))
}

func TestMarkAttended(t *testing.T) {
	store := newStore()
	s := NewService(store, madrid, nopLogger{})

	assert.ErrorIs(t, s.MarkAttended(context.Background(), 1, owner), ErrAccessDenied)
	assert.ErrorIs(t, s.MarkAttended(context.Background(), 2, admin), ErrCannotAttend)
	assert.ErrorIs(t, s.MarkAttended(context.Background(), 9, admin), ErrAppointmentNotFound)

	require.NoError(t, s.MarkAttended(context.Background(), 1, admin))
	assert.Equal(t, domain.StatusAttended, store.appointments[1].Status)

	assert.ErrorIs(t, s.Cancel(context.Background(), 1, owner), ErrCannotCancel, "attended is final")
}
