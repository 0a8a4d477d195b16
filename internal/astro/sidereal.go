package astro

import (
	"math"
	"time"
)

// GMST coefficients: hours at J2000.0 plus sidereal hours per solar day.
const (
	gmstAtJ2000      = 18.697374558
	gmstHoursPerDay  = 24.06570982441908
	hoursPerSidereal = 24.0
)

// LocalToUT converts a local civil time to Universal Time by removing the
// caller-supplied UTC offset in hours (east-positive zones have positive
// offsets). Exact inverse of UTToLocal.
func LocalToUT(local time.Time, utcOffsetHours float64) time.Time {
	return local.Add(-time.Duration(utcOffsetHours * float64(time.Hour)))
}

// UTToLocal converts a Universal Time to local civil time by applying the
// UTC offset in hours.
func UTToLocal(ut time.Time, utcOffsetHours float64) time.Time {
	return ut.Add(time.Duration(utcOffsetHours * float64(time.Hour)))
}

// GMST returns the Greenwich Mean Sidereal Time in hours, in [0, 24),
// for a Universal Time reading.
func GMST(ut time.Time) float64 {
	d := ToJD(ut) - J2000
	return normalizeHours(gmstAtJ2000 + gmstHoursPerDay*d)
}

// LST returns the Local Sidereal Time in hours, in [0, 24), for a local
// civil time, an east-positive longitude in degrees, and a UTC offset in
// hours. Pass utcOffsetHours = 0 when the time is already UT.
func LST(local time.Time, lonDeg, utcOffsetHours float64) float64 {
	gmst := GMST(LocalToUT(local, utcOffsetHours))
	return normalizeHours(gmst + lonDeg/15)
}

// LSTSeries computes LST per element. lonDeg and utcOffset may be length 1
// (broadcast across all times) or the same length as times.
func LSTSeries(times []time.Time, lonDeg, utcOffset []float64) ([]float64, error) {
	n := len(times)
	if n == 0 {
		return nil, &ValidationError{Arg: "obs_time", Reason: "empty series"}
	}
	lons, err := broadcastFloats("Lon", lonDeg, n)
	if err != nil {
		return nil, err
	}
	offs, err := broadcastFloats("utc_offset", utcOffset, n)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i, t := range times {
		out[i] = LST(t, lons[i], offs[i])
	}
	return out, nil
}

// normalizeHours wraps a value into [0, 24).
func normalizeHours(h float64) float64 {
	h = math.Mod(h, hoursPerSidereal)
	if h < 0 {
		h += hoursPerSidereal
	}
	return h
}
