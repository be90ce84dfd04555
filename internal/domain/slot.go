package domain

import "github.com/m04kA/SMC-BarberBooking/pkg/types"

// TimeSlot is a bookable interval derived from the schedule. It is never stored.
// IsAvailable is true only when the slot is neither occupied nor past.
type TimeSlot struct {
	Start       types.TimeString
	End         types.TimeString
	IsAvailable bool
	IsPast      bool
}
