// Package timezone pins timestamps and stay dates to the zone named by APP_TIMEZONE.
//
// The location is loaded once at import time. Unknown or empty names fall back to UTC.
// Stay dates travel as YYYY-MM-DD and are interpreted as midnight in that zone.
package timezone
