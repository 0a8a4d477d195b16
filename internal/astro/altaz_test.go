package astro

import (
	"errors"
	"math"
	"testing"
	"time"
)

var altazTestTime = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// raAtTransit returns the RA in hours that places a target on the meridian
// (hour angle 0) for the given observer and time.
func raAtTransit(lonDeg float64, tm time.Time) float64 {
	return LST(tm, lonDeg, 0)
}

func TestToAltAz_TransitAltitude(t *testing.T) {
	tests := []struct {
		name    string
		decDeg  float64
		latDeg  float64
		wantAlt float64
		wantAz  float64
	}{
		{"target south of zenith transits due south", 20, 35, 75, 180},
		{"target north of zenith transits due north", 60, 35, 65, 0},
		{"southern hemisphere mirror", -50, -30, 70, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra := raAtTransit(-116.89, altazTestTime)
			got, err := ToAltAz(ra, tt.decDeg, tt.latDeg, -116.89, altazTestTime, 0)
			if err != nil {
				t.Fatalf("ToAltAz() error = %v", err)
			}
			if math.Abs(got.AltDeg-tt.wantAlt) > 0.01 {
				t.Errorf("altitude = %v, want %v", got.AltDeg, tt.wantAlt)
			}
			if math.Abs(got.AzDeg-tt.wantAz) > 0.5 && math.Abs(got.AzDeg-tt.wantAz-360) > 0.5 {
				t.Errorf("azimuth = %v, want %v", got.AzDeg, tt.wantAz)
			}
			if got.AzUndefined {
				t.Error("azimuth flagged undefined for non-degenerate geometry")
			}
		})
	}
}

func TestToAltAz_ZenithIsDegenerate(t *testing.T) {
	// Equatorial observer, equatorial target, at transit: the target is at
	// the zenith and azimuth has no defined value.
	ra := raAtTransit(0, altazTestTime)
	got, err := ToAltAz(ra, 0, 0, 0, altazTestTime, 0)
	if err != nil {
		t.Fatalf("ToAltAz() error = %v", err)
	}

	if math.Abs(got.AltDeg-90) > 0.01 {
		t.Errorf("altitude = %v, want 90 (zenith)", got.AltDeg)
	}
	if !got.AzUndefined {
		t.Error("zenith target should flag AzUndefined")
	}
	if got.AzDeg != 0 {
		t.Errorf("degenerate azimuth = %v, want conventional 0", got.AzDeg)
	}
}

func TestToAltAz_PolarObserverIsDegenerate(t *testing.T) {
	got, err := ToAltAz(5, 45, 90, 0, altazTestTime, 0)
	if err != nil {
		t.Fatalf("ToAltAz() error = %v", err)
	}

	// From the pole a target's altitude is its declination.
	if math.Abs(got.AltDeg-45) > 0.01 {
		t.Errorf("altitude from pole = %v, want 45 (declination)", got.AltDeg)
	}
	if !got.AzUndefined {
		t.Error("polar observer should flag AzUndefined")
	}
	if got.AzDeg != 0 {
		t.Errorf("degenerate azimuth = %v, want conventional 0", got.AzDeg)
	}
}

func TestToAltAz_CelestialPoleTarget(t *testing.T) {
	// A target at Dec = +90 sits over the north celestial pole: its altitude
	// equals the observer's latitude regardless of RA or time.
	for _, ra := range []float64{0, 5.5, 12, 23.9} {
		for hour := 0; hour < 24; hour += 8 {
			tm := time.Date(2024, 3, 1, hour, 0, 0, 0, time.UTC)
			got, err := ToAltAz(ra, 90, 35.43, -116.89, tm, 0)
			if err != nil {
				t.Fatalf("ToAltAz() error = %v", err)
			}
			if math.Abs(got.AltDeg-35.43) > 0.01 {
				t.Errorf("pole target altitude at RA=%v hour=%d: %v, want 35.43", ra, hour, got.AltDeg)
			}
		}
	}
}

func TestToAltAz_HorizonCrossing(t *testing.T) {
	// Equatorial observer and target at HA = ±6h: the target sits exactly on
	// the horizon, due west (past transit) or due east (before transit).
	lst := LST(altazTestTime, 0, 0)

	west, err := ToAltAz(normalizeHours(lst-6), 0, 0, 0, altazTestTime, 0)
	if err != nil {
		t.Fatalf("ToAltAz() error = %v", err)
	}
	if math.Abs(west.AltDeg) > 0.01 {
		t.Errorf("altitude at HA=+6h = %v, want 0 (horizon)", west.AltDeg)
	}
	if math.Abs(west.AzDeg-270) > 0.01 {
		t.Errorf("azimuth at HA=+6h = %v, want 270 (west)", west.AzDeg)
	}
	if west.AzUndefined || math.IsNaN(west.AzDeg) {
		t.Error("horizon target must have a defined azimuth")
	}

	east, err := ToAltAz(normalizeHours(lst+6), 0, 0, 0, altazTestTime, 0)
	if err != nil {
		t.Fatalf("ToAltAz() error = %v", err)
	}
	if math.Abs(east.AzDeg-90) > 0.01 {
		t.Errorf("azimuth at HA=-6h = %v, want 90 (east)", east.AzDeg)
	}
}

func TestToAltAz_OutputRanges(t *testing.T) {
	for ra := 0.0; ra < 24; ra += 2 {
		for dec := -80.0; dec <= 80; dec += 20 {
			got, err := ToAltAz(ra, dec, 35.43, -116.89, altazTestTime, 0)
			if err != nil {
				t.Fatalf("ToAltAz(ra=%v, dec=%v) error = %v", ra, dec, err)
			}
			if got.AltDeg < -90 || got.AltDeg > 90 {
				t.Errorf("altitude out of range for RA=%v, Dec=%v: %v", ra, dec, got.AltDeg)
			}
			if got.AzDeg < 0 || got.AzDeg >= 360 {
				t.Errorf("azimuth out of range for RA=%v, Dec=%v: %v", ra, dec, got.AzDeg)
			}
			if math.IsNaN(got.AltDeg) || math.IsNaN(got.AzDeg) {
				t.Errorf("NaN output for RA=%v, Dec=%v", ra, dec)
			}
		}
	}
}

func TestToAltAz_UTCOffset(t *testing.T) {
	// A local civil reading with an offset must land on the same sky as the
	// equivalent UT reading.
	local := time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC)
	ut := time.Date(2024, 6, 15, 19, 0, 0, 0, time.UTC)

	withOffset, err := ToAltAz(10, 25, 48, 15, local, 3)
	if err != nil {
		t.Fatalf("ToAltAz() error = %v", err)
	}
	atUT, err := ToAltAz(10, 25, 48, 15, ut, 0)
	if err != nil {
		t.Fatalf("ToAltAz() error = %v", err)
	}

	if math.Abs(withOffset.AltDeg-atUT.AltDeg) > 1e-9 || math.Abs(withOffset.AzDeg-atUT.AzDeg) > 1e-9 {
		t.Errorf("offset call = %+v, UT call = %+v, want identical", withOffset, atUT)
	}
}

func TestToAltAz_Validation(t *testing.T) {
	tm := altazTestTime
	tests := []struct {
		name    string
		call    func() error
		wantArg string
		domain  bool
	}{
		{
			name: "NaN RA",
			call: func() error {
				_, err := ToAltAz(math.NaN(), 0, 35, -116, tm, 0)
				return err
			},
			wantArg: "RA",
		},
		{
			name: "infinite Lon",
			call: func() error {
				_, err := ToAltAz(5, 0, 35, math.Inf(1), tm, 0)
				return err
			},
			wantArg: "Lon",
		},
		{
			name: "declination beyond the pole",
			call: func() error {
				_, err := ToAltAz(5, 95, 35, -116, tm, 0)
				return err
			},
			wantArg: "DEC",
			domain:  true,
		},
		{
			name: "latitude beyond the pole",
			call: func() error {
				_, err := ToAltAz(5, 0, -91, -116, tm, 0)
				return err
			},
			wantArg: "Lat",
			domain:  true,
		},
		{
			name: "malformed time string",
			call: func() error {
				_, err := ToAltAz(5, 0, 35, -116, "not a time", 0)
				return err
			},
			wantArg: "obs_time",
		},
		{
			name: "unsupported time type",
			call: func() error {
				_, err := ToAltAz(5, 0, 35, -116, 42, 0)
				return err
			},
			wantArg: "obs_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.domain {
				var derr *DomainError
				if !errors.As(err, &derr) || derr.Arg != tt.wantArg {
					t.Errorf("error = %v, want DomainError naming %s", err, tt.wantArg)
				}
			} else {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Arg != tt.wantArg {
					t.Errorf("error = %v, want ValidationError naming %s", err, tt.wantArg)
				}
			}
		})
	}
}

func TestMaxAltitude(t *testing.T) {
	tests := []struct {
		name   string
		decDeg float64
		latDeg float64
		want   float64
	}{
		{"equatorial target overhead at equator", 0, 0, 90},
		{"declination matches latitude", 35, 35, 90},
		{"pole target culminates at latitude", 90, 35, 35},
		{"south pole target from north", -90, 35, -35},
		{"mid declination", 20, 35, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxAltitude(tt.decDeg, tt.latDeg)
			if err != nil {
				t.Fatalf("MaxAltitude() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MaxAltitude(%v, %v) = %v, want %v", tt.decDeg, tt.latDeg, got, tt.want)
			}
		})
	}
}

func TestMaxAltitude_BoundsToAltAz(t *testing.T) {
	// Culmination is the maximum: no RA, longitude or time can beat it.
	const dec, lat = 28.0, 35.43
	ceiling, err := MaxAltitude(dec, lat)
	if err != nil {
		t.Fatalf("MaxAltitude() error = %v", err)
	}

	for ra := 0.0; ra < 24; ra += 3 {
		for _, lon := range []float64{-116.89, 0, 148.98} {
			for hour := 0; hour < 24; hour += 5 {
				tm := time.Date(2024, 6, 15, hour, 0, 0, 0, time.UTC)
				got, err := ToAltAz(ra, dec, lat, lon, tm, 0)
				if err != nil {
					t.Fatalf("ToAltAz() error = %v", err)
				}
				if got.AltDeg > ceiling+1e-9 {
					t.Errorf("altitude %v exceeds culmination %v (ra=%v lon=%v hour=%d)",
						got.AltDeg, ceiling, ra, lon, hour)
				}
			}
		}
	}
}

func TestMaxAltitude_Domain(t *testing.T) {
	if _, err := MaxAltitude(91, 35); err == nil {
		t.Error("MaxAltitude(91, 35) should fail")
	}
	if _, err := MaxAltitude(0, math.NaN()); err == nil {
		t.Error("MaxAltitude with NaN latitude should fail")
	}
}

func TestToAltAzSeries_MatchesScalar(t *testing.T) {
	times := []time.Time{
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 16, 0, 0, 0, time.UTC),
	}

	got, err := ToAltAzSeries(
		[]float64{18.62}, []float64{38.78},
		[]float64{35.43}, []float64{-116.89},
		times, []float64{0},
	)
	if err != nil {
		t.Fatalf("ToAltAzSeries() error = %v", err)
	}
	if len(got) != len(times) {
		t.Fatalf("ToAltAzSeries() returned %d results, want %d", len(got), len(times))
	}

	for i, tm := range times {
		want, err := ToAltAz(18.62, 38.78, 35.43, -116.89, tm, 0)
		if err != nil {
			t.Fatalf("ToAltAz() error = %v", err)
		}
		if got[i] != want {
			t.Errorf("ToAltAzSeries()[%d] = %+v, want scalar result %+v", i, got[i], want)
		}
	}
}

func TestToAltAzSeries_RepeatedScalarInputs(t *testing.T) {
	// N identical inputs must equal N repetitions of the scalar call.
	tm := altazTestTime
	const n = 4

	times := make([]time.Time, n)
	ras := make([]float64, n)
	for i := range times {
		times[i] = tm
		ras[i] = 5.5
	}

	batch, err := ToAltAzSeries(ras, []float64{20}, []float64{35}, []float64{-116}, times, []float64{0})
	if err != nil {
		t.Fatalf("ToAltAzSeries() error = %v", err)
	}
	scalar, err := ToAltAz(5.5, 20, 35, -116, tm, 0)
	if err != nil {
		t.Fatalf("ToAltAz() error = %v", err)
	}

	for i, got := range batch {
		if got != scalar {
			t.Errorf("batch[%d] = %+v, want %+v", i, got, scalar)
		}
	}
}

func TestToAltAzSeries_LengthMismatch(t *testing.T) {
	times := []time.Time{altazTestTime, altazTestTime, altazTestTime}

	_, err := ToAltAzSeries([]float64{1, 2}, []float64{0}, []float64{35}, []float64{0}, times, []float64{0})
	if err == nil {
		t.Fatal("mismatched RA series should fail")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Arg != "RA" {
		t.Errorf("error = %v, want ValidationError naming RA", err)
	}
}

func TestMaxAltitudeSeries_Broadcast(t *testing.T) {
	decs := []float64{0, 20, 90}

	got, err := MaxAltitudeSeries(decs, []float64{35})
	if err != nil {
		t.Fatalf("MaxAltitudeSeries() error = %v", err)
	}
	for i, dec := range decs {
		want, err := MaxAltitude(dec, 35)
		if err != nil {
			t.Fatalf("MaxAltitude() error = %v", err)
		}
		if got[i] != want {
			t.Errorf("MaxAltitudeSeries()[%d] = %v, want %v", i, got[i], want)
		}
	}
}
