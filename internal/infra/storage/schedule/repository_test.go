package schedule

import (
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestWorkingDaysConversion(t *testing.T) {
	arr := toInt64Array([]int{1, 2, 6})
	assert.Equal(t, pq.Int64Array{1, 2, 6}, arr)
	assert.Equal(t, []int{1, 2, 6}, fromInt64Array(arr))

	assert.NotNil(t, fromInt64Array(nil))
	assert.Empty(t, fromInt64Array(nil))
}

func TestFromNullString(t *testing.T) {
	assert.Nil(t, fromNullString(sql.NullString{}))

	s := fromNullString(sql.NullString{String: "+7 900 000 00 00", Valid: true})
	if assert.NotNil(t, s) {
		assert.Equal(t, "+7 900 000 00 00", *s)
	}
}
