package timezone_test

import (
	"stayledger/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.Location(), now.Location())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid date", value: "2024-02-29"},
		{name: "invalid day", value: "2023-02-29", wantErr: true},
		{name: "timestamp is not a date", value: "2024-01-01T10:00:00Z", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.value, timezone.FormatDate(got))
			assert.Equal(t, 0, got.Hour())
		})
	}
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, timezone.FormatDate(timezone.Now()), timezone.FormatDate(today))
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{name: "one night", checkIn: "2024-05-01", checkOut: "2024-05-02", want: 1},
		{name: "across month end", checkIn: "2024-01-30", checkOut: "2024-02-02", want: 3},
		{name: "across dst change", checkIn: "2024-03-09", checkOut: "2024-03-12", want: 3},
		{name: "same day", checkIn: "2024-05-01", checkOut: "2024-05-01", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := timezone.ParseDate(tt.checkIn)
			require.NoError(t, err)

			out, err := timezone.ParseDate(tt.checkOut)
			require.NoError(t, err)

			assert.Equal(t, tt.want, timezone.Nights(in, out))
		})
	}
}

func TestFormatUsesAppLocation(t *testing.T) {
	instant := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, instant.In(timezone.Location()).Format(time.RFC3339), timezone.Format(instant, time.RFC3339))
}
