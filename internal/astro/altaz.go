package astro

import (
	"math"
	"time"
)

// Observer is a ground-based observing site.
type Observer struct {
	LatDeg         float64 // latitude in degrees, north positive
	LonDeg         float64 // longitude in degrees, east positive
	UTCOffsetHours float64 // civil clock offset from UTC, east-positive zones positive
	Name           string  // optional site name
}

// HorizontalCoord is an apparent position in the horizontal frame.
type HorizontalCoord struct {
	AltDeg float64 // altitude in degrees, -90 (nadir) to +90 (zenith)
	AzDeg  float64 // azimuth in degrees, [0, 360): 0=N, 90=E, 180=S, 270=W

	// AzUndefined is set when the azimuth is geometrically undefined
	// (observer at a pole, or target at zenith/nadir). AzDeg is then 0 by
	// convention rather than NaN.
	AzUndefined bool
}

// Azimuth is undefined when cos(alt)·cos(lat) vanishes; below this threshold
// the conventional value 0 is reported with the AzUndefined flag set.
const azDegenerateEps = 1e-9

// ToAltAz converts a target's equatorial coordinates to apparent altitude and
// azimuth for an observer at a given time.
//
// raHours is the right ascension in hours, decDeg the declination in degrees,
// latDeg/lonDeg the observer position (east-positive longitude). obsTime is
// anything NormalizeTime accepts; a local civil reading is interpreted as UT
// after subtracting utcOffsetHours (pass 0 for UT or zoned values).
//
// Arguments are validated eagerly: non-finite angles and unusable times are
// a ValidationError naming the argument, |DEC| > 90 or |Lat| > 90 a
// DomainError. Degenerate geometry never fails; see HorizontalCoord.
func ToAltAz(raHours, decDeg, latDeg, lonDeg float64, obsTime any, utcOffsetHours float64) (HorizontalCoord, error) {
	if err := checkFinite("RA", raHours); err != nil {
		return HorizontalCoord{}, err
	}
	if err := checkRange("DEC", decDeg, -90, 90); err != nil {
		return HorizontalCoord{}, err
	}
	if err := checkRange("Lat", latDeg, -90, 90); err != nil {
		return HorizontalCoord{}, err
	}
	if err := checkFinite("Lon", lonDeg); err != nil {
		return HorizontalCoord{}, err
	}
	if err := checkFinite("utc_offset", utcOffsetHours); err != nil {
		return HorizontalCoord{}, err
	}
	t, err := NormalizeTime(obsTime)
	if err != nil {
		return HorizontalCoord{}, err
	}

	lst := LST(t, lonDeg, utcOffsetHours)
	return horizontalAt(raHours, decDeg, latDeg, lst), nil
}

// horizontalAt applies the spherical-triangle transform for pre-validated
// inputs and a known local sidereal time.
func horizontalAt(raHours, decDeg, latDeg, lstHours float64) HorizontalCoord {
	ha := degToRad(HoursToDegrees(HourAngle(lstHours, raHours)))
	dec := degToRad(decDeg)
	lat := degToRad(latDeg)

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	sinAlt = clamp(sinAlt, -1, 1)
	alt := math.Asin(sinAlt)

	denom := math.Cos(alt) * math.Cos(lat)
	if math.Abs(denom) < azDegenerateEps {
		return HorizontalCoord{AltDeg: radToDeg(alt), AzUndefined: true}
	}

	cosAz := clamp((math.Sin(dec)-sinAlt*math.Sin(lat))/denom, -1, 1)
	az := math.Acos(cosAz)

	// Past transit (sin HA > 0) the target is in the western half of the sky.
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}

	azDeg := math.Mod(radToDeg(az), 360)
	if azDeg < 0 {
		azDeg += 360
	}

	return HorizontalCoord{AltDeg: radToDeg(alt), AzDeg: azDeg}
}

// MaxAltitude returns the altitude in degrees a target culminates at, i.e.
// its altitude at meridian transit (hour angle 0).
func MaxAltitude(decDeg, latDeg float64) (float64, error) {
	if err := checkRange("DEC", decDeg, -90, 90); err != nil {
		return 0, err
	}
	if err := checkRange("Lat", latDeg, -90, 90); err != nil {
		return 0, err
	}

	dec := degToRad(decDeg)
	lat := degToRad(latDeg)
	sinAlt := clamp(math.Sin(dec)*math.Sin(lat)+math.Cos(dec)*math.Cos(lat), -1, 1)
	return radToDeg(math.Asin(sinAlt)), nil
}

// ToAltAzSeries is the batch form of ToAltAz. Every argument may be length 1
// (broadcast) or the common series length; the result has one element per
// series position. LST is computed per element when obsTimes varies.
func ToAltAzSeries(raHours, decDeg, latDeg, lonDeg []float64, obsTimes []time.Time, utcOffset []float64) ([]HorizontalCoord, error) {
	n := seriesLength(len(raHours), len(decDeg), len(latDeg), len(lonDeg), len(obsTimes), len(utcOffset))
	if n == 0 {
		return nil, &ValidationError{Arg: "RA", Reason: "empty series"}
	}

	ras, err := broadcastFloats("RA", raHours, n)
	if err != nil {
		return nil, err
	}
	decs, err := broadcastFloats("DEC", decDeg, n)
	if err != nil {
		return nil, err
	}
	lats, err := broadcastFloats("Lat", latDeg, n)
	if err != nil {
		return nil, err
	}
	lons, err := broadcastFloats("Lon", lonDeg, n)
	if err != nil {
		return nil, err
	}
	offs, err := broadcastFloats("utc_offset", utcOffset, n)
	if err != nil {
		return nil, err
	}

	times := obsTimes
	if len(times) == 1 && n > 1 {
		times = make([]time.Time, n)
		for i := range times {
			times[i] = obsTimes[0]
		}
	} else if len(times) != n {
		return nil, &ValidationError{Arg: "obs_time", Reason: "series length mismatch"}
	}

	out := make([]HorizontalCoord, n)
	for i := 0; i < n; i++ {
		out[i], err = ToAltAz(ras[i], decs[i], lats[i], lons[i], times[i], offs[i])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MaxAltitudeSeries is the batch form of MaxAltitude with the same
// broadcasting rule.
func MaxAltitudeSeries(decDeg, latDeg []float64) ([]float64, error) {
	n := seriesLength(len(decDeg), len(latDeg))
	if n == 0 {
		return nil, &ValidationError{Arg: "DEC", Reason: "empty series"}
	}
	decs, err := broadcastFloats("DEC", decDeg, n)
	if err != nil {
		return nil, err
	}
	lats, err := broadcastFloats("Lat", latDeg, n)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i], err = MaxAltitude(decs[i], lats[i])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// seriesLength returns the largest supplied length; mismatches against it
// are caught by the per-argument broadcast.
func seriesLength(lengths ...int) int {
	n := 0
	for _, l := range lengths {
		if l > n {
			n = l
		}
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
