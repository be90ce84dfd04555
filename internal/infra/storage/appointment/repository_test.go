package appointment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSlotConflict(t *testing.T) {
	active := &pq.Error{Code: pgUniqueViolation, Constraint: activeSlotIndex}
	assert.True(t, isSlotConflict(active))
	assert.True(t, isSlotConflict(fmt.Errorf("wrapped: %w", active)))

	assert.False(t, isSlotConflict(&pq.Error{Code: pgUniqueViolation, Constraint: "appointments_pkey"}))
	assert.False(t, isSlotConflict(&pq.Error{Code: "23503"}))
	assert.False(t, isSlotConflict(errors.New("connection reset")))
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, nullableString(""))
	assert.Equal(t, "note", nullableString("note"))
}
