// Command ls-skypos is a terminal tracker for the apparent positions of
// celestial targets: a live alt/az dashboard plus headless report modes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-skypos/internal/astro"
	"github.com/litescript/ls-skypos/internal/catalog"
	"github.com/litescript/ls-skypos/internal/config"
	"github.com/litescript/ls-skypos/internal/logging"
	"github.com/litescript/ls-skypos/internal/report"
	"github.com/litescript/ls-skypos/internal/ui"
)

// CLI flags for headless modes
var (
	summaryMode  bool
	riseSetMode  bool
	traceTarget  string
	snapshotPath string
	watchEvery   time.Duration
)

const (
	defaultRefresh = 5 * time.Second
	minRefresh     = 1 * time.Second
	maxRefresh     = 5 * time.Minute
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	siteName := flag.String("site", "", "Observer site name (overrides config)")
	lat := flag.Float64("lat", 91, "Observer latitude in degrees, north positive (overrides config)")
	lon := flag.Float64("lon", 361, "Observer longitude in degrees, east positive (overrides config)")
	utcOffset := flag.Float64("utc-offset", 99, "Civil clock offset from UTC in hours (overrides config)")
	targetList := flag.String("targets", "", "Comma-separated target names (overrides config)")
	targetFile := flag.String("target-file", "", "YAML file with additional targets")
	obsTimeStr := flag.String("time", "", "Observation time as a local civil reading (default: now); e.g. 2024-06-15T22:00:00")
	refresh := flag.Duration("refresh", defaultRefresh, "Dashboard refresh interval (e.g., 5s, 1m)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&summaryMode, "summary", false, "Print a position table instead of the TUI")
	flag.BoolVar(&riseSetMode, "rise-set", false, "Print rise/transit/set times for each target")
	flag.StringVar(&traceTarget, "trace", "", "Print an elevation trace for the named target")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export a JSON snapshot to file (use - for stdout)")
	flag.DurationVar(&watchEvery, "watch", 0, "Repeat headless output at interval (e.g., 30s)")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	cfg, err := loadConfig(*configPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *logLevel == "info" && cfg.Logging.Level != "" {
		logger = logging.New(logging.ParseLevel(cfg.Logging.Level))
	}

	// Flag overrides on top of the config
	if *siteName != "" {
		cfg.Site.Name = *siteName
	}
	if *lat <= 90 && *lat >= -90 {
		cfg.Site.LatDeg = *lat
	}
	if *lon <= 360 && *lon >= -180 {
		cfg.Site.LonDeg = *lon
	}
	if *utcOffset <= 14 && *utcOffset >= -14 {
		cfg.Site.UTCOffsetHours = *utcOffset
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	targets, err := resolveTargets(cfg, *targetList, *targetFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	obs := cfg.Observer()
	logger.Debug("site %s lat=%.4f lon=%.4f offset=%.2f, %d targets",
		obs.Name, obs.LatDeg, obs.LonDeg, obs.UTCOffsetHours, len(targets))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	headless := summaryMode || riseSetMode || traceTarget != "" || snapshotPath != ""
	if headless {
		runHeadless(ctx, obs, targets, *obsTimeStr, logger)
		return
	}

	refreshInterval := *refresh
	if refreshInterval == defaultRefresh {
		refreshInterval = cfg.RefreshInterval()
	}
	if refreshInterval < minRefresh {
		refreshInterval = minRefresh
	} else if refreshInterval > maxRefresh {
		refreshInterval = maxRefresh
	}

	model := ui.New(obs, targets, refreshInterval)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, or the defaults when none is given.
func loadConfig(path string, logger *logging.Logger) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	logger.Debug("loading config from %s", path)
	return config.Load(path)
}

// resolveTargets builds the tracked target set from the config list, the
// -targets override, and any extra target file.
func resolveTargets(cfg *config.Config, override, targetFile string) ([]catalog.Target, error) {
	var extra []catalog.Target
	if targetFile != "" {
		loaded, err := catalog.LoadFile(targetFile)
		if err != nil {
			return nil, err
		}
		extra = loaded
	}

	names := cfg.Targets
	if override != "" {
		names = nil
		for _, n := range strings.Split(override, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}

	return catalog.Resolve(names, extra)
}

// observationTime resolves the -time flag to a UT instant. An explicit time
// is read as a local civil reading at the site; empty means now.
func observationTime(obs astro.Observer, timeStr string) (time.Time, error) {
	if timeStr == "" {
		return time.Now().UTC(), nil
	}
	civil, err := astro.NormalizeTime(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return astro.LocalToUT(civil, obs.UTCOffsetHours), nil
}

// runHeadless handles all report modes without starting the TUI.
func runHeadless(ctx context.Context, obs astro.Observer, targets []catalog.Target, timeStr string, logger *logging.Logger) {
	fixedTime := timeStr != ""
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	outputOnce := func() error {
		ut, err := observationTime(obs, timeStr)
		if err != nil {
			return err
		}

		rows, err := report.GenerateRows(obs, targets, ut)
		if err != nil {
			return err
		}

		if snapshotPath != "" {
			snap := report.ExportSnapshot(obs, rows, ut)
			if snapshotPath == "-" {
				if err := snap.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(snapshotPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				if err := snap.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		if summaryMode {
			report.WriteSummaryTable(os.Stdout, obs, rows, ut)
		}

		if riseSetMode {
			if summaryMode {
				fmt.Println()
			}
			report.WriteRiseSet(os.Stdout, obs, targets, ut)
		}

		if traceTarget != "" {
			tgt, err := findTarget(targets, traceTarget)
			if err != nil {
				return err
			}
			if summaryMode || riseSetMode {
				fmt.Println()
			}
			report.WriteElevationTrace(os.Stdout, obs, tgt, ut, 0, 0)
		}

		return nil
	}

	if watchEvery == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if fixedTime {
		logger.Warn("watch mode ignores -time and uses the current clock")
		timeStr = ""
	}
	if !isTTY {
		logger.Debug("stdout is not a terminal")
	}

	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

func findTarget(targets []catalog.Target, name string) (catalog.Target, error) {
	for _, t := range targets {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	// Fall back to the built-in catalog for targets not in the tracked set.
	if t, ok := catalog.Find(name); ok {
		return t, nil
	}
	return catalog.Target{}, fmt.Errorf("unknown trace target %q", name)
}
