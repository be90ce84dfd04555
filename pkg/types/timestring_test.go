package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "single digit hour", input: "9:30", want: "09:30"},
		{name: "seconds are truncated", input: "10:29:59", want: "10:29"},
		{name: "surrounding spaces", input: " 18:00 ", want: "18:00"},
		{name: "empty", input: "", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	_, err = TimeString("23:45").AddMinutes(15)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("12:00").IsAfter("11:59"))
	assert.True(t, TimeString("07:05").Equal("07:05"))
	assert.False(t, TimeString("bad").IsBefore("09:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 30, 45, 0, time.UTC)))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan("08:15:00"))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan([]byte("17:00:00")))
	assert.Equal(t, TimeString("17:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		in   TimeString
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"10:00:00", 600},
		{"10:00:59", 600},
		{"23:59:59", 1439},
	}

	for _, tt := range tests {
		got, err := tt.in.Minutes()
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []TimeString{"", "25:00", "10", "10:00:00:00", "ab:cd"} {
		_, err := bad.Minutes()
		assert.ErrorIs(t, err, ErrInvalidTimeString, bad)
	}

	assert.True(t, TimeString("10:00:45").Equal("10:00"))
}
