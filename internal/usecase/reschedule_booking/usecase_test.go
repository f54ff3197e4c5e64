package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type memoryStore struct {
	mu           sync.Mutex
	appointments map[int64]*domain.Appointment
	updateErr    error
}

func (s *memoryStore) GetActiveInRange(_ context.Context, from, to time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.IsActive() && !a.StartAt.Before(from) && a.StartAt.Before(to) {
			copied := *a
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *memoryStore) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *memoryStore) LockDay(context.Context, time.Time) error { return nil }

func (s *memoryStore) Reschedule(_ context.Context, id int64, startAt time.Time, serviceID int64, price decimal.Decimal, notes *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateErr != nil {
		return s.updateErr
	}
	a, ok := s.appointments[id]
	if !ok || a.Status != domain.StatusScheduled {
		return appointmentRepo.ErrStatusConflict
	}
	a.StartAt = startAt
	a.ServiceID = serviceID
	a.PriceAtBooking = price
	if notes != nil {
		a.Notes = notes
	}
	return nil
}

type fakeServices map[int64]*domain.BookableService

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.BookableService, error) {
	s, ok := f[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeTx struct {
	before func()
	err    error
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.before != nil {
		f.before()
	}
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

var day = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2025, 10, 15, h, m, 0, 0, time.UTC)
}

var (
	owner = domain.Actor{UserID: 1, ClientID: ptr.Ptr(int64(7)), Role: domain.RoleClient}
	other = domain.Actor{UserID: 2, ClientID: ptr.Ptr(int64(8)), Role: domain.RoleClient}
	admin = domain.Actor{UserID: 3, Role: domain.RoleAdmin}
)

type fixture struct {
	store *memoryStore
	tx    *fakeTx
	uc    *UseCase
}

func newFixture() *fixture {
	notes := "bring results"
	store := &memoryStore{appointments: map[int64]*domain.Appointment{
		1: {ID: 1, ClientID: 7, ServiceID: 1, StartAt: at(9, 0), DurationMinutes: 30, PriceAtBooking: decimal.NewFromInt(20), Status: domain.StatusScheduled, Notes: &notes},
		2: {ID: 2, ClientID: 8, ServiceID: 2, StartAt: at(10, 0), DurationMinutes: 45, PriceAtBooking: decimal.NewFromInt(35), Status: domain.StatusScheduled},
		3: {ID: 3, ClientID: 7, ServiceID: 1, StartAt: at(15, 0), DurationMinutes: 30, PriceAtBooking: decimal.NewFromInt(20), Status: domain.StatusCancelled},
	}}
	services := fakeServices{
		1: {ID: 1, Name: "Consultation", DurationMinutes: 30, Price: decimal.NewFromInt(25), IsActive: true},
		2: {ID: 2, Name: "Treatment", DurationMinutes: 45, Price: decimal.NewFromInt(40), IsActive: true},
		4: {ID: 4, Name: "Retired", DurationMinutes: 30, Price: decimal.NewFromInt(10), IsActive: false},
	}
	tx := &fakeTx{}
	avail := availability.NewService(store, domain.DefaultSchedule(time.UTC), nopLogger{})
	uc := NewUseCase(store, services, avail, tx, nopLogger{}).WithTimeProvider(fixedTime{now: at(6, 0)})
	return &fixture{store: store, tx: tx, uc: uc}
}

func request(actor domain.Actor, id int64, start types.TimeString, serviceID int64) *Request {
	return &Request{Actor: actor, AppointmentID: id, Date: day, StartTime: start, ServiceID: serviceID}
}

func TestExecute_MovesAppointment(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request(owner, 1, "11:00", 2))
	require.NoError(t, err)

	assert.Equal(t, at(11, 0), resp.StartAt)
	assert.Equal(t, at(11, 45), resp.EndAt)
	assert.True(t, decimal.NewFromInt(40).Equal(resp.PriceAtBooking), "price re-frozen to the new service")
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "bring results", *resp.Notes)

	stored := f.store.appointments[1]
	assert.Equal(t, at(11, 0), stored.StartAt)
	assert.Equal(t, int64(2), stored.ServiceID)
}

func TestExecute_OverlapWithItselfIsAllowed(t *testing.T) {
	f := newFixture()
	notes := "shifted"
	req := request(owner, 1, "09:15", 1)
	req.Notes = &notes

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "shifted", *resp.Notes)
	assert.Equal(t, "shifted", *f.store.appointments[1].Notes)
}

func TestExecute_AdminCanReschedule(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request(admin, 2, "16:00", 2))
	assert.NoError(t, err)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "bad id", req: request(owner, 0, "11:00", 1), wantErr: ErrInvalidInput},
		{name: "bad time", req: request(owner, 1, "25:00", 1), wantErr: ErrInvalidInput},
		{name: "not found", req: request(owner, 99, "11:00", 1), wantErr: ErrAppointmentNotFound},
		{name: "other client", req: request(other, 1, "11:00", 1), wantErr: ErrAccessDenied},
		{name: "cancelled", req: request(owner, 3, "16:00", 1), wantErr: ErrNotScheduled},
		{name: "inactive service", req: request(owner, 1, "11:00", 4), wantErr: ErrServiceNotFound},
		{name: "unknown service", req: request(owner, 1, "11:00", 9), wantErr: ErrServiceNotFound},
		{name: "past", req: request(owner, 1, "05:00", 1), wantErr: ErrTimeInPast},
		{name: "outside hours", req: request(owner, 1, "11:45", 1), wantErr: ErrOutsideBusinessHours},
		{name: "overlaps another", req: request(owner, 1, "10:30", 1), wantErr: ErrSlotNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, at(9, 0), f.store.appointments[1].StartAt)
		})
	}
}

func TestExecute_TakenBetweenCheckAndCommit(t *testing.T) {
	f := newFixture()
	f.tx.before = func() {
		f.store.appointments[4] = &domain.Appointment{ID: 4, ClientID: 9, StartAt: at(16, 0), DurationMinutes: 30, Status: domain.StatusScheduled}
	}

	_, err := f.uc.Execute(context.Background(), request(owner, 1, "16:00", 1))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, at(9, 0), f.store.appointments[1].StartAt)
}

func TestExecute_CancelledConcurrently(t *testing.T) {
	f := newFixture()
	f.tx.before = func() {
		f.store.appointments[1].Status = domain.StatusCancelled
	}

	_, err := f.uc.Execute(context.Background(), request(owner, 1, "16:00", 1))
	assert.ErrorIs(t, err, ErrNotScheduled)
}

func TestExecute_TransactionErrors(t *testing.T) {
	t.Run("serialization failure", func(t *testing.T) {
		f := newFixture()
		f.tx.err = fmt.Errorf("%w: deadlock", txmanager.ErrSerializationFailure)

		_, err := f.uc.Execute(context.Background(), request(owner, 1, "16:00", 1))
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("update failure", func(t *testing.T) {
		f := newFixture()
		f.store.updateErr = errors.New("disk full")

		_, err := f.uc.Execute(context.Background(), request(owner, 1, "16:00", 1))
		assert.ErrorIs(t, err, ErrRescheduleFailed)
	})
}
