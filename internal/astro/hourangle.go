package astro

import "math"

// HourAngle returns the hour angle in hours, in [-12, 12), for a local
// sidereal time and right ascension, both in hours. Positive values mean the
// target is past transit (western sky), negative means before transit. The
// result is periodic in both arguments with period 24.
func HourAngle(lstHours, raHours float64) float64 {
	ha := math.Mod(lstHours-raHours+12, 24)
	if ha < 0 {
		ha += 24
	}
	return ha - 12
}

// HourAngleSeries computes hour angles element-wise. Either argument may be
// length 1 and is broadcast against the other.
func HourAngleSeries(lstHours, raHours []float64) ([]float64, error) {
	n := len(lstHours)
	if len(raHours) > n {
		n = len(raHours)
	}
	if n == 0 {
		return nil, &ValidationError{Arg: "LST", Reason: "empty series"}
	}
	lsts, err := broadcastFloats("LST", lstHours, n)
	if err != nil {
		return nil, err
	}
	ras, err := broadcastFloats("RA", raHours, n)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = HourAngle(lsts[i], ras[i])
	}
	return out, nil
}

// HoursToDegrees converts an angle in hours to degrees (1h = 15°).
// A pure scale factor with no normalization.
func HoursToDegrees(h float64) float64 {
	return h * 15.0
}

// DegreesToHours converts an angle in degrees to hours.
func DegreesToHours(d float64) float64 {
	return d / 15.0
}
