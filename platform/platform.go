// Package platform supplies the board-specific half of a scan: the
// optional target clock output and the retry deadline clock, split by
// build tag the way cmd/controller splits Platform across
// platform_rpi.go/platform_dummy.go.
package platform

import "swdlink.dev/swd"

// Platform is the subset of board wiring a probe run needs beyond raw SWD
// bit-banging.
type Platform interface {
	// TargetClockOutputEnable drives (or releases) an optional clock output
	// some targets need running before they'll respond on SWD.
	TargetClockOutputEnable(enable bool) error
	// NewDeadline returns the retry-budget clock to bind new swd.Ports to.
	NewDeadline() swd.NewDeadlineFunc
}
