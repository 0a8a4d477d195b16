package astro

import (
	"math"
	"time"
)

// SunPosition calculates the apparent equatorial coordinates of the Sun for
// a UT reading, using a simplified Astronomical Almanac ephemeris. RA is
// returned in hours, Dec in degrees. Accuracy is a few hundredths of a
// degree, enough for visibility and separation work.
func SunPosition(t time.Time) (raHours, decDeg float64) {
	jc := (ToJD(t) - J2000) / 36525.0

	// Mean longitude and mean anomaly of the Sun (degrees)
	l0 := normalizeDegrees(280.46646 + 36000.76983*jc + 0.0003032*jc*jc)
	m := normalizeDegrees(357.52911 + 35999.05029*jc - 0.0001537*jc*jc)
	mRad := degToRad(m)

	// Equation of center
	c := (1.914602-0.004817*jc-0.000014*jc*jc)*math.Sin(mRad) +
		(0.019993-0.000101*jc)*math.Sin(2*mRad) +
		0.000289*math.Sin(3*mRad)

	// Apparent longitude, corrected for aberration and nutation
	omega := 125.04 - 1934.136*jc
	lonApp := l0 + c - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	// Obliquity of the ecliptic with nutation correction
	eps0 := 23.439291 - 0.0130042*jc - 0.00000016*jc*jc + 0.000000504*jc*jc*jc
	eps := eps0 + 0.00256*math.Cos(degToRad(omega))

	lonRad := degToRad(lonApp)
	epsRad := degToRad(eps)

	raDeg := radToDeg(math.Atan2(math.Cos(epsRad)*math.Sin(lonRad), math.Cos(lonRad)))
	if raDeg < 0 {
		raDeg += 360
	}
	decDeg = radToDeg(math.Asin(math.Sin(epsRad) * math.Sin(lonRad)))

	return DegreesToHours(raDeg), decDeg
}

// SunSeparation returns the angular distance in degrees between the Sun and
// a target at a given UT.
func SunSeparation(raHours, decDeg float64, t time.Time) float64 {
	sunRA, sunDec := SunPosition(t)
	return AngularSeparation(raHours, decDeg, sunRA, sunDec)
}

// AngularSeparation returns the great-circle distance in degrees between two
// points on the celestial sphere. RA in hours, Dec in degrees.
func AngularSeparation(ra1Hours, dec1Deg, ra2Hours, dec2Deg float64) float64 {
	ra1 := degToRad(HoursToDegrees(ra1Hours))
	ra2 := degToRad(HoursToDegrees(ra2Hours))
	dec1 := degToRad(dec1Deg)
	dec2 := degToRad(dec2Deg)

	// Haversine form, stable for small separations
	dRA := ra2 - ra1
	dDec := dec2 - dec1
	a := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1)*math.Cos(dec2)*math.Sin(dRA/2)*math.Sin(dRA/2)
	if a > 1 {
		a = 1
	}
	return radToDeg(2 * math.Asin(math.Sqrt(a)))
}

// normalizeDegrees wraps a value into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
