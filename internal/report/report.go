// Package report renders headless tracker output: summary tables, elevation
// traces, rise/set listings, and JSON snapshots.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-skypos/internal/astro"
	"github.com/litescript/ls-skypos/internal/catalog"
)

// PositionRow is one target's computed sky position.
type PositionRow struct {
	Name       string
	RAHours    float64
	DecDeg     float64
	AltDeg     float64
	AzDeg      float64
	AzDefined  bool
	CulminDeg  float64 // culmination altitude for this site
	Tier       astro.ElevationTier
	SunSepDeg  float64
}

// GenerateRows computes positions for all targets at a UT instant.
func GenerateRows(obs astro.Observer, targets []catalog.Target, ut time.Time) ([]PositionRow, error) {
	rows := make([]PositionRow, 0, len(targets))
	for _, tgt := range targets {
		pos, err := astro.ToAltAz(tgt.RAHours, tgt.DecDeg, obs.LatDeg, obs.LonDeg, ut, 0)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", tgt.Name, err)
		}
		culmin, err := astro.MaxAltitude(tgt.DecDeg, obs.LatDeg)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", tgt.Name, err)
		}
		rows = append(rows, PositionRow{
			Name:      tgt.Name,
			RAHours:   tgt.RAHours,
			DecDeg:    tgt.DecDeg,
			AltDeg:    pos.AltDeg,
			AzDeg:     pos.AzDeg,
			AzDefined: !pos.AzUndefined,
			CulminDeg: culmin,
			Tier:      astro.TierFor(pos.AltDeg),
			SunSepDeg: astro.SunSeparation(tgt.RAHours, tgt.DecDeg, ut),
		})
	}
	return rows, nil
}

// WriteSummaryTable writes a text table of target positions.
func WriteSummaryTable(w io.Writer, obs astro.Observer, rows []PositionRow, ut time.Time) {
	fmt.Fprintf(w, "Sky positions from %s (%.4f°, %.4f°) @ %s\n",
		siteName(obs), obs.LatDeg, obs.LonDeg, ut.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No targets")
		return
	}

	fmt.Fprintf(w, "%-14s %8s %8s %8s %8s %8s %9s\n",
		"Target", "RA(h)", "Dec(°)", "Alt(°)", "Az(°)", "Peak(°)", "Sun(°)")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, r := range rows {
		az := fmt.Sprintf("%8.2f", r.AzDeg)
		if !r.AzDefined {
			az = "       —"
		}
		fmt.Fprintf(w, "%-14s %8.3f %8.2f %8.2f %s %8.2f %9.1f\n",
			truncateStr(r.Name, 14), r.RAHours, r.DecDeg, r.AltDeg, az, r.CulminDeg, r.SunSepDeg)
	}

	up := 0
	for _, r := range rows {
		if r.AltDeg > astro.HorizonAltDeg {
			up++
		}
	}
	fmt.Fprintf(w, "\n%d of %d targets above the horizon\n", up, len(rows))
}

// TraceWindow is the default elevation-trace span around the reference time.
const TraceWindow = 4 * time.Hour

// TraceStep is the default time between trace samples.
const TraceStep = 15 * time.Minute

// WriteElevationTrace writes altitude samples for one target across a window
// centered on the reference time.
func WriteElevationTrace(w io.Writer, obs astro.Observer, tgt catalog.Target, ut time.Time, window, step time.Duration) {
	if window <= 0 {
		window = TraceWindow
	}
	if step <= 0 {
		step = TraceStep
	}

	fmt.Fprintf(w, "Elevation trace: %s from %s\n", tgt.Name, siteName(obs))
	fmt.Fprintln(w, strings.Repeat("─", 44))

	for t := ut.Add(-window); !t.After(ut.Add(window)); t = t.Add(step) {
		alt := astro.ElevationAt(obs, tgt.RAHours, tgt.DecDeg, t)
		marker := " "
		if !t.Before(ut) && t.Before(ut.Add(step)) {
			marker = "*" // closest sample to the reference time
		}
		fmt.Fprintf(w, "%s %s %7.2f° %s\n", marker, t.Format("15:04"), alt, altBar(alt))
	}
}

// WriteRiseSet writes the rise/transit/set window for each target over the
// day following the reference time.
func WriteRiseSet(w io.Writer, obs astro.Observer, targets []catalog.Target, ut time.Time) {
	fmt.Fprintf(w, "Visibility from %s @ %s\n", siteName(obs), ut.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 66))

	for _, tgt := range targets {
		samples := make([]astro.TargetSample, 0, 97)
		for t := ut; !t.After(ut.Add(24 * time.Hour)); t = t.Add(15 * time.Minute) {
			samples = append(samples, astro.TargetSample{Time: t, RAHours: tgt.RAHours, DecDeg: tgt.DecDeg})
		}

		win, err := astro.RiseSet(obs, samples)
		if err != nil {
			fmt.Fprintf(w, "%-14s no data (%v)\n", truncateStr(tgt.Name, 14), err)
			continue
		}

		switch {
		case win.NeverVisible:
			fmt.Fprintf(w, "%-14s below horizon\n", truncateStr(tgt.Name, 14))
		case win.AlwaysVisible:
			fmt.Fprintf(w, "%-14s circumpolar, peak %.0f° @ %s\n",
				truncateStr(tgt.Name, 14), win.PeakAltDeg, win.Transit.Format("15:04"))
		default:
			var parts []string
			if !win.Rise.IsZero() {
				parts = append(parts, fmt.Sprintf("rise %s", win.Rise.Format("15:04")))
			}
			if !win.Transit.IsZero() {
				parts = append(parts, fmt.Sprintf("peak %s @ %.0f°", win.Transit.Format("15:04"), win.PeakAltDeg))
			}
			if !win.Set.IsZero() {
				parts = append(parts, fmt.Sprintf("set %s", win.Set.Format("15:04")))
			}
			fmt.Fprintf(w, "%-14s %s\n", truncateStr(tgt.Name, 14), strings.Join(parts, "   "))
		}
	}
}

// Snapshot is the JSON-serializable tracker state.
type Snapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Site        SiteExport     `json:"site"`
	Targets     []TargetExport `json:"targets"`
}

// SiteExport is a JSON-friendly observer representation.
type SiteExport struct {
	Name           string  `json:"name"`
	LatDeg         float64 `json:"lat_deg"`
	LonDeg         float64 `json:"lon_deg"`
	UTCOffsetHours float64 `json:"utc_offset_hours"`
}

// TargetExport is a JSON-friendly position row.
type TargetExport struct {
	Name        string  `json:"name"`
	RAHours     float64 `json:"ra_hours"`
	DecDeg      float64 `json:"dec_deg"`
	AltDeg      float64 `json:"alt_deg"`
	AzDeg       float64 `json:"az_deg"`
	AzUndefined bool    `json:"az_undefined,omitempty"`
	CulminDeg   float64 `json:"culmination_deg"`
	SunSepDeg   float64 `json:"sun_separation_deg"`
}

// ExportSnapshot converts computed rows to the exportable format.
func ExportSnapshot(obs astro.Observer, rows []PositionRow, ut time.Time) *Snapshot {
	snap := &Snapshot{
		GeneratedAt: ut,
		Site: SiteExport{
			Name:           obs.Name,
			LatDeg:         obs.LatDeg,
			LonDeg:         obs.LonDeg,
			UTCOffsetHours: obs.UTCOffsetHours,
		},
	}
	for _, r := range rows {
		snap.Targets = append(snap.Targets, TargetExport{
			Name:        r.Name,
			RAHours:     r.RAHours,
			DecDeg:      r.DecDeg,
			AltDeg:      r.AltDeg,
			AzDeg:       r.AzDeg,
			AzUndefined: !r.AzDefined,
			CulminDeg:   r.CulminDeg,
			SunSepDeg:   r.SunSepDeg,
		})
	}
	return snap
}

// WriteJSON writes the snapshot as indented JSON to the given writer.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// altBar renders a coarse bar for an altitude, blank below the horizon.
func altBar(altDeg float64) string {
	if altDeg <= 0 {
		return ""
	}
	n := int(altDeg / 10)
	if n > 9 {
		n = 9
	}
	return strings.Repeat("█", n+1)
}

func siteName(obs astro.Observer) string {
	if obs.Name != "" {
		return obs.Name
	}
	return "site"
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
