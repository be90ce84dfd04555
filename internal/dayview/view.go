// Package dayview keeps one session's cached list of active appointments
// for a single date and converges it with store change events.
package dayview

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Loader reads the active appointments of a day from the store
type Loader interface {
	ListByDate(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Outcome describes what Apply did with an event
type Outcome int

const (
	Ignored Outcome = iota
	Added
	Updated
	Removed
)

// View is a read-through cache of the non-cancelled appointments of one date,
// always sorted by start time. It is safe for concurrent use.
type View struct {
	mu     sync.RWMutex
	date   time.Time
	loader Loader
	items  []domain.Appointment
}

// New creates an empty view; call Refresh to load it
func New(date time.Time, loader Loader) *View {
	return &View{
		date:   domain.DateOnly(date),
		loader: loader,
		items:  []domain.Appointment{},
	}
}

// Date returns the date the view is bound to
func (v *View) Date() time.Time {
	return v.date
}

// Refresh replaces the cached list with the store's current state.
// On error the previous contents are kept.
func (v *View) Refresh(ctx context.Context) error {
	appointments, err := v.loader.ListByDate(ctx, domain.AppointmentsFilter{Date: v.date})
	if err != nil {
		return fmt.Errorf("dayview: refresh %s: %w", v.date.Format(domain.DateFormat), err)
	}

	items := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a != nil && a.IsActive() && a.IsOn(v.date) {
			items = append(items, *a)
		}
	}
	sortByStart(items)

	v.mu.Lock()
	v.items = items
	v.mu.Unlock()

	return nil
}

// Apply merges a change event into the view.
// Events for other dates are ignored, cancelled or deleted appointments are
// dropped, and an id already present is replaced rather than duplicated.
func (v *View) Apply(evt domain.AppointmentEvent) Outcome {
	appt := evt.Appointment
	if !appt.IsOn(v.date) {
		return Ignored
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	idx := v.indexOf(appt.ID)

	if evt.Type == domain.ChangeDelete || !appt.IsActive() {
		if idx < 0 {
			return Ignored
		}
		v.items = append(v.items[:idx], v.items[idx+1:]...)
		return Removed
	}

	if idx >= 0 {
		v.items[idx] = appt
		sortByStart(v.items)
		return Updated
	}

	v.items = append(v.items, appt)
	sortByStart(v.items)
	return Added
}

// Snapshot returns a copy of the cached list
func (v *View) Snapshot() []domain.Appointment {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]domain.Appointment, len(v.items))
	copy(out, v.items)
	return out
}

// Len returns the number of cached appointments
func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.items)
}

func (v *View) indexOf(id uuid.UUID) int {
	for i := range v.items {
		if v.items[i].ID == id {
			return i
		}
	}
	return -1
}

// sortByStart orders by start time, then by creation so the order is deterministic
func sortByStart(items []domain.Appointment) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.IsBefore(b.StartTime)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
