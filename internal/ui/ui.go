// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skypos/internal/astro"
	"github.com/litescript/ls-skypos/internal/catalog"
	"github.com/litescript/ls-skypos/internal/report"
	"github.com/litescript/ls-skypos/internal/version"
)

// TickMsg triggers a position recomputation.
type TickMsg time.Time

// Tier colors, from low to high elevation.
const (
	colorTierHigh   = "#7CFC00" // lawn green
	colorTierMedium = "#FFD700" // gold
	colorTierLow    = "#FF6347" // tomato
	colorTierNone   = "#444444" // dark gray
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the root Bubble Tea model: a live table of target positions.
type Model struct {
	observer astro.Observer
	targets  []catalog.Target
	refresh  time.Duration

	rows       []report.PositionRow
	computedAt time.Time
	err        error

	width  int
	height int
	ready  bool
}

// New creates the dashboard model.
func New(obs astro.Observer, targets []catalog.Target, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = 5 * time.Second
	}
	return Model{
		observer: obs,
		targets:  targets,
		refresh:  refresh,
	}
}

// Init schedules the first computation immediately.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return TickMsg(time.Now()) }
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case TickMsg:
		now := time.Time(msg).UTC()
		m.rows, m.err = report.GenerateRows(m.observer, m.targets, now)
		m.computedAt = now
		return m, m.tick()
	}

	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	site := m.observer.Name
	if site == "" {
		site = "observer"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("ls-skypos %s — %s (%.4f°, %.4f°)",
		version.Version, site, m.observer.LatDeg, m.observer.LonDeg)))
	b.WriteString("\n")

	if m.computedAt.IsZero() {
		b.WriteString(dimStyle.Render("Computing positions..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(dimStyle.Render(m.computedAt.Format("2006-01-02 15:04:05 UTC")))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-14s %8s %8s %8s %8s  %-4s",
		"Target", "Alt(°)", "Az(°)", "Peak(°)", "Sun(°)", "Vis")))
	b.WriteString("\n")

	for _, r := range m.rows {
		b.WriteString(renderRow(r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("q: quit"))
	b.WriteString("\n")
	return b.String()
}

// renderRow renders one target line, tier-colored.
func renderRow(r report.PositionRow) string {
	az := fmt.Sprintf("%8.2f", r.AzDeg)
	if !r.AzDefined {
		az = "       —"
	}
	line := fmt.Sprintf("%-14s %8.2f %s %8.2f %8.1f  %s",
		truncate(r.Name, 14), r.AltDeg, az, r.CulminDeg, r.SunSepDeg, tierBar(r.Tier))

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(tierColor(r.Tier)))
	return style.Render(line)
}

// tierBar converts an elevation tier to a 4-character bar.
func tierBar(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return "████"
	case astro.ElevationMedium:
		return "███░"
	case astro.ElevationLow:
		return "██░░"
	default:
		return "░░░░"
	}
}

// tierColor returns the display color for an elevation tier.
func tierColor(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return colorTierHigh
	case astro.ElevationMedium:
		return colorTierMedium
	case astro.ElevationLow:
		return colorTierLow
	default:
		return colorTierNone
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
