// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.2.0"

// Milestones:
// 0.2.0 - Rise/transit/set listings, elevation traces, JSON snapshot export
// 0.1.0 - Initial release: alt/az core, bright-star catalog, TUI dashboard, summary mode
