package create_booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var errInsert = errors.New("insert failed")

// memoryStore хранилище записей в памяти
// failAfter > 0 роняет CreateBatch после вставки failAfter строк
type memoryStore struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
	failAfter    int
	lockedDays   []string
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

func (s *memoryStore) LockDay(_ context.Context, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockedDays = append(s.lockedDays, day.Format(domain.DateFormat))
	return nil
}

func (s *memoryStore) CreateBatch(_ context.Context, appointments []*domain.Appointment) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range appointments {
		if s.failAfter > 0 && i == s.failAfter {
			return nil, errInsert
		}
		s.nextID++
		a.ID = s.nextID
		copied := *a
		s.appointments = append(s.appointments, &copied)
	}
	return appointments, nil
}

func (s *memoryStore) add(a *domain.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	s.appointments = append(s.appointments, a)
}

func (s *memoryStore) active() []*domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if a.IsActive() {
			result = append(result, a)
		}
	}
	return result
}

// memoryTxManager выполняет единицы работы по одной и откатывает вставки при ошибке
type memoryTxManager struct {
	mu     sync.Mutex
	store  *memoryStore
	before func()
	err    error
}

func (m *memoryTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.before != nil {
		m.before()
	}
	if m.err != nil {
		return m.err
	}

	m.store.mu.Lock()
	snapshot := append([]*domain.Appointment(nil), m.store.appointments...)
	nextID := m.store.nextID
	m.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.store.mu.Lock()
		m.store.appointments = snapshot
		m.store.nextID = nextID
		m.store.mu.Unlock()
		return err
	}
	return nil
}

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
