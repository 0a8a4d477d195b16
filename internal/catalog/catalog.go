// Package catalog provides the built-in bright-star catalog and user target
// lists for the tracker.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-skypos/internal/astro"
)

// Target is a trackable celestial object.
type Target struct {
	Name    string  // common name (e.g., "Sirius", "Vega")
	RAHours float64 // right ascension in hours (J2000)
	DecDeg  float64 // declination in degrees (J2000)
	Mag     float64 // apparent visual magnitude (lower = brighter)
}

// BrightStars returns the built-in catalog of bright stars, ordered roughly
// by magnitude. Coordinates are J2000 epoch, from the Yale Bright Star
// Catalog and IAU star names.
func BrightStars() []Target {
	out := make([]Target, len(brightStars))
	copy(out, brightStars)
	return out
}

// Find looks a target up by name in the built-in catalog, case-insensitive.
func Find(name string) (Target, bool) {
	for _, s := range brightStars {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Target{}, false
}

// fileFormat is the YAML shape of a user target list.
type fileFormat struct {
	Targets []fileTarget `yaml:"targets"`
}

type fileTarget struct {
	Name    string  `yaml:"name"`
	RAHours float64 `yaml:"ra_hours"`
	DecDeg  float64 `yaml:"dec_deg"`
	Mag     float64 `yaml:"mag"`
}

// LoadFile reads additional targets from a YAML file. Declinations outside
// ±90° and non-finite coordinates are rejected with the core's error types.
func LoadFile(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read target file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) ([]Target, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse target file: %w", err)
	}

	targets := make([]Target, 0, len(f.Targets))
	for i, ft := range f.Targets {
		if ft.Name == "" {
			return nil, fmt.Errorf("target %d: missing name", i)
		}
		if _, err := astro.MaxAltitude(ft.DecDeg, 0); err != nil {
			return nil, fmt.Errorf("target %q: %w", ft.Name, err)
		}
		// RA is periodic; normalize into [0, 24) rather than reject.
		ra := ft.RAHours
		for ra < 0 {
			ra += 24
		}
		for ra >= 24 {
			ra -= 24
		}
		targets = append(targets, Target{
			Name:    ft.Name,
			RAHours: ra,
			DecDeg:  ft.DecDeg,
			Mag:     ft.Mag,
		})
	}
	return targets, nil
}

// Resolve maps target names to entries, searching the extra pool first and
// the built-in catalog second. Unknown names are an error listing the name.
func Resolve(names []string, extra []Target) ([]Target, error) {
	out := make([]Target, 0, len(names))
	for _, name := range names {
		found := false
		for _, t := range extra {
			if strings.EqualFold(t.Name, name) {
				out = append(out, t)
				found = true
				break
			}
		}
		if found {
			continue
		}
		if t, ok := Find(name); ok {
			out = append(out, t)
			continue
		}
		return nil, fmt.Errorf("unknown target %q", name)
	}
	return out, nil
}

// brightStars is the built-in catalog. RA converted to hours from the
// J2000 degree positions.
var brightStars = []Target{
	{"Sirius", 6.7525, -16.716, -1.46},
	{"Canopus", 6.3992, -52.696, -0.74},
	{"Arcturus", 14.2610, 19.182, -0.05},
	{"Vega", 18.6157, 38.784, 0.03},
	{"Capella", 5.2781, 45.998, 0.08},
	{"Rigel", 5.2423, -8.202, 0.13},
	{"Procyon", 7.6551, 5.225, 0.34},
	{"Achernar", 1.6286, -57.237, 0.46},
	{"Betelgeuse", 5.9195, 7.407, 0.50},
	{"Hadar", 14.0637, -60.373, 0.61},
	{"Altair", 19.8464, 8.868, 0.76},
	{"Acrux", 12.4433, -63.099, 0.76},
	{"Aldebaran", 4.5987, 16.509, 0.85},
	{"Antares", 16.4901, -26.432, 0.96},
	{"Spica", 13.4199, -11.161, 0.97},
	{"Pollux", 7.7553, 28.026, 1.14},
	{"Fomalhaut", 22.9609, -29.622, 1.16},
	{"Deneb", 20.6905, 45.280, 1.25},
	{"Mimosa", 12.7953, -59.689, 1.25},
	{"Regulus", 10.1395, 11.967, 1.35},
	{"Adhara", 6.9771, -28.972, 1.50},
	{"Castor", 7.5767, 31.889, 1.58},
	{"Gacrux", 12.5194, -57.113, 1.63},
	{"Shaula", 17.5601, -37.104, 1.63},
	{"Bellatrix", 5.4189, 6.350, 1.64},
	{"Elnath", 5.4382, 28.608, 1.65},
	{"Alnilam", 5.6035, -1.202, 1.69},
	{"Alioth", 12.9005, 55.960, 1.77},
	{"Dubhe", 11.0621, 61.751, 1.79},
	{"Mirfak", 3.4054, 49.861, 1.79},
	{"Hamal", 2.1195, 23.463, 2.00},
	{"Polaris", 2.5303, 89.264, 2.02},
	{"Diphda", 0.7265, -17.987, 2.02},
	{"Alpheratz", 0.1398, 29.091, 2.06},
	{"Kochab", 14.8451, 74.156, 2.08},
	{"Rasalhague", 17.5823, 12.560, 2.08},
	{"Algol", 3.1361, 40.957, 2.12},
	{"Denebola", 11.8177, 14.572, 2.13},
	{"Alphecca", 15.5781, 26.715, 2.23},
	{"Schedar", 0.6751, 56.537, 2.23},
	{"Eltanin", 17.9435, 51.489, 2.23},
	{"Enif", 21.7364, 9.875, 2.39},
	{"Markab", 23.0793, 15.205, 2.49},
	{"Alderamin", 21.3097, 62.586, 2.51},
}
