package domain

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a shop administrator allowed to manage appointments and the schedule
type Admin struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
