package uiutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTripTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2025-03-01T08:00:00", want: "Mar 1, 2025 8:00 AM"},
		{in: "2025-03-01T19:30", want: "Mar 1, 2025 7:30 PM"},
		{in: "2025-03-01T08:00:00Z", want: "Mar 1, 2025 8:00 AM"},
		{in: "JFK 2025-03-01T08:00:00", want: "JFK 2025-03-01T08:00:00"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTripTime(tt.in), tt.in)
	}
}

func TestFormatFriendlyDate(t *testing.T) {
	assert.Empty(t, FormatFriendlyDate(time.Time{}))
	d := time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "Mar 1, 2025", FormatFriendlyDate(d))
	assert.Equal(t, "Mar 1, 2025 12:00 PM", FormatFriendlyDateTime(d))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", TruncateWithEllipsis("short", 10))
	assert.Equal(t, "Flight AA…", TruncateWithEllipsis("Flight AA101 from JFK", 10))
	assert.Equal(t, "…", TruncateWithEllipsis("abc", 1))
}
