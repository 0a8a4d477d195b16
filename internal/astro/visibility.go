package astro

import (
	"errors"
	"math"
	"time"
)

// TargetSample is an equatorial position at a specific time. For fixed stars
// the RA/Dec repeat across samples; for solar-system targets they drift.
type TargetSample struct {
	Time    time.Time
	RAHours float64
	DecDeg  float64
}

// Window is a rise-transit-set cycle for a target.
type Window struct {
	Rise          time.Time // first horizon crossing upward
	Transit       time.Time // meridian crossing, maximum altitude
	Set           time.Time // first horizon crossing downward after rise
	PeakAltDeg    float64   // altitude at transit, degrees
	Valid         bool      // a usable window was found
	AlwaysVisible bool      // circumpolar: never sets
	NeverVisible  bool      // never rises
}

// HorizonAltDeg is the altitude threshold for "visible".
const HorizonAltDeg = 0.0

var ErrInsufficientSamples = errors.New("insufficient samples for visibility calculation")

// ElevationAt returns the altitude in degrees of a target at a given UT.
func ElevationAt(obs Observer, raHours, decDeg float64, t time.Time) float64 {
	lst := LST(t, obs.LonDeg, 0)
	return horizontalAt(raHours, decDeg, obs.LatDeg, lst).AltDeg
}

// RiseSet computes the rise, transit, and set times of a target from
// chronological samples spanning at least one visibility cycle (about a day
// for fixed targets). Horizon crossings are found by linear interpolation;
// the transit is refined parabolically. The reported peak never exceeds the
// culmination altitude MaxAltitude gives for the target's declination.
func RiseSet(obs Observer, samples []TargetSample) (Window, error) {
	if len(samples) < 3 {
		return Window{}, ErrInsufficientSamples
	}

	alts := make([]float64, len(samples))
	minAlt, maxAlt := 90.0, -90.0
	maxIdx := 0
	for i, s := range samples {
		alts[i] = ElevationAt(obs, s.RAHours, s.DecDeg, s.Time)
		if alts[i] < minAlt {
			minAlt = alts[i]
		}
		if alts[i] > maxAlt {
			maxAlt = alts[i]
			maxIdx = i
		}
	}

	if minAlt > HorizonAltDeg {
		return Window{
			Transit:       samples[maxIdx].Time,
			PeakAltDeg:    maxAlt,
			Valid:         true,
			AlwaysVisible: true,
		}, nil
	}
	if maxAlt < HorizonAltDeg {
		return Window{Valid: true, NeverVisible: true}, nil
	}

	var rise, set time.Time
	riseFound, setFound := false, false
	for i := 1; i < len(samples); i++ {
		if !riseFound && alts[i-1] <= HorizonAltDeg && alts[i] > HorizonAltDeg {
			rise = crossingTime(samples[i-1].Time, samples[i].Time, alts[i-1], alts[i])
			riseFound = true
			continue
		}
		if riseFound && !setFound && alts[i-1] > HorizonAltDeg && alts[i] <= HorizonAltDeg {
			set = crossingTime(samples[i-1].Time, samples[i].Time, alts[i-1], alts[i])
			setFound = true
			break
		}
	}

	// Already up at the start of the window: rise is unknown but transit and
	// set are still reportable.
	alreadyUp := !riseFound && alts[0] > HorizonAltDeg
	if alreadyUp {
		for i := 1; i < len(samples); i++ {
			if alts[i-1] > HorizonAltDeg && alts[i] <= HorizonAltDeg {
				set = crossingTime(samples[i-1].Time, samples[i].Time, alts[i-1], alts[i])
				setFound = true
				break
			}
		}
	}

	transit, peak := refineTransit(obs, samples, alts, maxIdx)

	return Window{
		Rise:       rise,
		Transit:    transit,
		Set:        set,
		PeakAltDeg: peak,
		Valid:      riseFound || setFound || alreadyUp,
	}, nil
}

// refineTransit sharpens the discrete maximum with a parabola through the
// neighboring samples.
func refineTransit(obs Observer, samples []TargetSample, alts []float64, maxIdx int) (time.Time, float64) {
	if maxIdx == 0 || maxIdx == len(samples)-1 {
		return samples[maxIdx].Time, alts[maxIdx]
	}

	y0, y1, y2 := alts[maxIdx-1], alts[maxIdx], alts[maxIdx+1]
	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2

	// A flat or upward-opening fit means the discrete maximum stands.
	if a >= 0 {
		return samples[maxIdx].Time, y1
	}

	tOff := clamp(-b/(2*a), -1, 1)
	dt := samples[maxIdx].Time.Sub(samples[maxIdx-1].Time)
	refined := samples[maxIdx].Time.Add(time.Duration(float64(dt) * tOff))
	peak := a*tOff*tOff + b*tOff + c

	// The fit cannot beat the geometric ceiling for this declination.
	if ceiling, err := MaxAltitude(samples[maxIdx].DecDeg, obs.LatDeg); err == nil && peak > ceiling {
		peak = ceiling
	}
	return refined, peak
}

// crossingTime interpolates the instant the altitude crosses the horizon
// between two samples.
func crossingTime(t1, t2 time.Time, alt1, alt2 float64) time.Time {
	if math.Abs(alt2-alt1) < 1e-4 {
		return t1
	}
	frac := clamp((HorizonAltDeg-alt1)/(alt2-alt1), 0, 1)
	return t1.Add(time.Duration(float64(t2.Sub(t1)) * frac))
}

// ElevationTier buckets altitude for display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

// TierFor returns the display tier for an altitude in degrees.
func TierFor(altDeg float64) ElevationTier {
	switch {
	case altDeg <= 0:
		return ElevationNone
	case altDeg < 15:
		return ElevationLow
	case altDeg < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
