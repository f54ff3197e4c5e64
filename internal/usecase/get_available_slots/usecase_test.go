package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeServices struct {
	services []*domain.BookableService
	err      error
}

func (f *fakeServices) GetActiveByIDs(_ context.Context, ids []int64) ([]*domain.BookableService, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	result := make([]*domain.BookableService, 0)
	for _, s := range f.services {
		if want[s.ID] && s.IsActive {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeAppointments struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointments) GetActiveInRange(_ context.Context, from, to time.Time, _ *int64) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if !a.StartAt.Before(from) && a.StartAt.Before(to) && a.IsActive() {
			result = append(result, a)
		}
	}
	return result, nil
}

var day = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2025, 10, 15, h, m, 0, 0, time.UTC)
}

func newUseCase(services *fakeServices, appointments *fakeAppointments, now time.Time) *UseCase {
	avail := availability.NewService(appointments, domain.DefaultSchedule(time.UTC), nopLogger{})
	return NewUseCase(services, avail, nopLogger{}).WithTimeProvider(fixedTime{now: now})
}

func slotByTime(t *testing.T, slots []Slot, label string) Slot {
	t.Helper()
	for _, s := range slots {
		if s.Time.String() == label {
			return s
		}
	}
	t.Fatalf("slot %s not found", label)
	return Slot{}
}

func TestExecute_ExplicitDuration(t *testing.T) {
	appointments := &fakeAppointments{appointments: []*domain.Appointment{
		{ID: 1, StartAt: at(10, 0), DurationMinutes: 45, Status: domain.StatusScheduled},
	}}
	uc := newUseCase(&fakeServices{}, appointments, at(6, 0))

	resp, err := uc.Execute(context.Background(), &Request{Date: day, DurationMinutes: ptr.Ptr(30)})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Len(t, resp.Slots, 20)
	assert.True(t, slotByTime(t, resp.Slots, "09:30").Available)
	assert.Equal(t, domain.ReasonSlotTaken, slotByTime(t, resp.Slots, "10:00").Reason)
	assert.Equal(t, domain.ReasonSlotTaken, slotByTime(t, resp.Slots, "10:30").Reason)
	assert.True(t, slotByTime(t, resp.Slots, "11:00").Available)
}

func TestExecute_DurationFromServices(t *testing.T) {
	services := &fakeServices{services: []*domain.BookableService{
		{ID: 1, DurationMinutes: 30, Price: decimal.NewFromInt(10), IsActive: true},
		{ID: 2, DurationMinutes: 0, Price: decimal.NewFromInt(20), IsActive: true},
	}}
	uc := newUseCase(services, &fakeAppointments{}, at(6, 0))

	resp, err := uc.Execute(context.Background(), &Request{Date: day, ServiceIDs: []int64{1, 2, 1}})
	require.NoError(t, err)

	assert.Equal(t, 75, resp.DurationMinutes)
	assert.Equal(t, domain.ReasonDoesNotFit, slotByTime(t, resp.Slots, "11:00").Reason)
	assert.True(t, slotByTime(t, resp.Slots, "10:30").Available)
}

func TestExecute_DefaultDuration(t *testing.T) {
	uc := newUseCase(&fakeServices{}, &fakeAppointments{}, at(6, 0))

	resp, err := uc.Execute(context.Background(), &Request{Date: day})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRequestDurationMinutes, resp.DurationMinutes)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newUseCase(&fakeServices{}, &fakeAppointments{}, at(6, 0).AddDate(0, 0, 2))

	resp, err := uc.Execute(context.Background(), &Request{Date: day, DurationMinutes: ptr.Ptr(30)})
	require.NoError(t, err)
	for _, s := range resp.Slots {
		assert.False(t, s.Available)
		assert.Equal(t, domain.ReasonTimePassed, s.Reason)
	}
}

func TestExecute_Errors(t *testing.T) {
	errDB := errors.New("db is down")
	services := &fakeServices{services: []*domain.BookableService{
		{ID: 1, DurationMinutes: 30, IsActive: true},
		{ID: 2, DurationMinutes: 30, IsActive: false},
	}}

	tests := []struct {
		name         string
		req          *Request
		services     *fakeServices
		appointments *fakeAppointments
		wantErr      error
	}{
		{name: "no date", req: &Request{}, wantErr: ErrInvalidInput},
		{name: "zero duration", req: &Request{Date: day, DurationMinutes: ptr.Ptr(0)}, wantErr: ErrInvalidDuration},
		{name: "duration longer than a day", req: &Request{Date: day, DurationMinutes: ptr.Ptr(domain.MaxDurationMinutes + 1)}, wantErr: ErrInvalidDuration},
		{name: "overflowing duration", req: &Request{Date: day, DurationMinutes: ptr.Ptr(153722868)}, wantErr: ErrInvalidDuration},
		{name: "duration and services", req: &Request{Date: day, DurationMinutes: ptr.Ptr(30), ServiceIDs: []int64{1}}, wantErr: ErrInvalidInput},
		{name: "bad service id", req: &Request{Date: day, ServiceIDs: []int64{-1}}, wantErr: ErrInvalidInput},
		{name: "inactive service", req: &Request{Date: day, ServiceIDs: []int64{1, 2}}, wantErr: ErrServiceNotFound},
		{name: "unknown service", req: &Request{Date: day, ServiceIDs: []int64{7}}, wantErr: ErrServiceNotFound},
		{name: "catalog failure", req: &Request{Date: day, ServiceIDs: []int64{1}}, services: &fakeServices{err: errDB}, wantErr: ErrInternal},
		{name: "store failure", req: &Request{Date: day}, appointments: &fakeAppointments{err: errDB}, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := services
			if tt.services != nil {
				s = tt.services
			}
			a := &fakeAppointments{}
			if tt.appointments != nil {
				a = tt.appointments
			}

			_, err := newUseCase(s, a, at(6, 0)).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
