// Package astro computes apparent sky positions: Julian Date, sidereal time,
// hour angle, and the equatorial-to-horizontal transform.
//
// Unit conventions follow observing practice: right ascension, sidereal time
// and hour angle are in hours; declination, latitude, longitude, altitude and
// azimuth are in degrees. Longitude is east-positive.
package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Date of the J2000.0 epoch (2000-01-01 12:00 UT).
const J2000 = 2451545.0

// ToJD converts a civil date-time to the continuous Julian Date (days since
// noon UTC, 1 January 4713 BCE). The value's wall-clock fields are read as a
// UTC-equivalent civil reading; no offset is applied internally, so convert
// zoned or local readings first (see LocalToUT and NormalizeTime).
// Accuracy is at the seconds level across the Gregorian calendar.
func ToJD(t time.Time) float64 {
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	// Time of day as a fraction of a day
	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24.0

	// Treat January/February as months 13/14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + b - 1524.5
}
