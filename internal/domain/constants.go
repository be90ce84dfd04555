package domain

// Business validation constants
const (
	MinSlotDurationMinutes = 1
	MaxSlotDurationMinutes = 480 // 8 hours
	MinPhoneDigits         = 8
	MaxClientNameLength    = 100
	MaxNotesLength         = 500
	MaxShopNameLength      = 100
)

// DateFormat YYYY-MM-DD
const DateFormat = "2006-01-02"
