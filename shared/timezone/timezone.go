package timezone

import (
	"stayledger/config"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format for stay dates.
const DateLayout = "2006-01-02"

var appLocation = time.UTC

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, stay dates and timestamps use UTC")

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown IANA timezone, falling back to UTC")

		return
	}

	appLocation = loc
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

func Location() *time.Location {
	return appLocation
}

// Format renders t in the application timezone.
func Format(t time.Time, layout string) string {
	return t.In(appLocation).Format(layout)
}

// ParseDate reads a YYYY-MM-DD stay date as midnight in the application timezone.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, appLocation)
}

func FormatDate(t time.Time) string {
	return Format(t, DateLayout)
}

// Today is midnight of the current day in the application timezone.
func Today() time.Time {
	now := Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, appLocation)
}

// Nights counts calendar days between check-in and check-out. DST shifts do not change the count.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(out.Sub(in).Hours() / 24)
}
