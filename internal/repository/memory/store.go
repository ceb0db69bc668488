// Package memory is a process-local store with the same uniqueness, cascade and
// compare-and-set semantics as the Postgres schema. It backs STORE_DRIVER=memory and
// the service tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/google/uuid"
)

type txKey struct{}

type state struct {
	employees    map[string]employee.Employee
	attendance   map[string]attendance.Record
	attendanceBy map[string]string // employeeID|date -> record id
	calculations map[string]wage.Calculation
	payments     map[string]payment.Payment
	paymentByCal map[string]string // calculation id -> payment id
}

func newState() state {
	return state{
		employees:    make(map[string]employee.Employee),
		attendance:   make(map[string]attendance.Record),
		attendanceBy: make(map[string]string),
		calculations: make(map[string]wage.Calculation),
		payments:     make(map[string]payment.Payment),
		paymentByCal: make(map[string]string),
	}
}

func (s state) clone() state {
	return state{
		employees:    maps.Clone(s.employees),
		attendance:   maps.Clone(s.attendance),
		attendanceBy: maps.Clone(s.attendanceBy),
		calculations: maps.Clone(s.calculations),
		payments:     maps.Clone(s.payments),
		paymentByCal: maps.Clone(s.paymentByCal),
	}
}

type Store struct {
	mu    sync.Mutex
	data  state
	now   func() time.Time
	fault map[string]error
}

func NewStore() *Store {
	return &Store{
		data:  newState(),
		now:   time.Now,
		fault: make(map[string]error),
	}
}

// SetClock replaces the timestamp source used for created_at/updated_at.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailOn makes the named operation (e.g. "payment.create") return err until cleared
// with a nil err. Used to exercise rollback paths.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fault, op)
		return
	}
	s.fault[op] = err
}

// lock acquires the store unless ctx already runs inside one of its transactions.
func (s *Store) lock(ctx context.Context) func() {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) injected(op string) error {
	return s.fault[op]
}

func (s *Store) newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WithinTransaction implements database.Transactor. Transactions are serialized and
// a failed fn restores the state seen at begin.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
		if err != nil {
			s.data = snapshot
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}
