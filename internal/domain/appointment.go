package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// IsValid reports whether s is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether an administrator may move an appointment from s to next.
// Re-applying the current status is always allowed and is a no-op.
// A cancelled appointment has to be confirmed again before it can be completed or marked no-show.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == StatusCancelled {
		return next == StatusCancelled || next == StatusConfirmed
	}
	return true
}

// Appointment is a customer's reservation of one slot on one date.
// At most one non-cancelled appointment may exist per (Date, StartTime).
type Appointment struct {
	ID          uuid.UUID
	Date        time.Time // calendar date, time part is ignored
	StartTime   types.TimeString
	EndTime     types.TimeString
	ClientName  string
	ClientPhone string
	ClientEmail *string
	Notes       *string
	Status      AppointmentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the appointment occupies its slot.
// Completed and no-show appointments still hold the slot; only cancellation frees it.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsOn returns true if the appointment is on the same calendar date as date
func (a *Appointment) IsOn(date time.Time) bool {
	return SameDate(a.Date, date)
}

// AppointmentsFilter filter for listing appointments of a single day
type AppointmentsFilter struct {
	Date             time.Time
	IncludeCancelled bool
	Status           *AppointmentStatus
}

// ChangeType kind of a row change reported by the store
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// AppointmentEvent is a change notification pushed by the store.
// For ChangeDelete only Appointment.ID and Appointment.Date are guaranteed.
type AppointmentEvent struct {
	Type        ChangeType
	Appointment Appointment
}

// SameDate compares two instants by calendar date only
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly drops the time part keeping the location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AppointmentDetailsUpdate carries admin edits of client data; nil fields are kept
type AppointmentDetailsUpdate struct {
	ClientName  *string
	ClientPhone *string
	ClientEmail *string
	Notes       *string
}

// IsEmpty returns true if nothing would change
func (u AppointmentDetailsUpdate) IsEmpty() bool {
	return u.ClientName == nil && u.ClientPhone == nil && u.ClientEmail == nil && u.Notes == nil
}
