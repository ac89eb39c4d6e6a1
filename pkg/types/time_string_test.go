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
		{name: "canonical", input: "10:00", want: "10:00"},
		{name: "single digit hour", input: "9:30", want: "09:30"},
		{name: "with spaces", input: " 08:05 ", want: "08:05"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "no separator", input: "1000", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, MustTimeString("08:00").IsBefore("20:00"))
	assert.False(t, MustTimeString("20:00").IsBefore("08:00"))
	assert.True(t, TimeString("8:00").Equal("08:00"))
	assert.False(t, TimeString("08:00").Equal("08:01"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:00"))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan([]byte("15:30:00")))
	assert.Equal(t, TimeString("15:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2000, 1, 1, 7, 45, 12, 0, time.UTC)))
	assert.Equal(t, TimeString("07:45"), ts)

	assert.Error(t, ts.Scan(42))
}
