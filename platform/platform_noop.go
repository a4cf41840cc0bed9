//go:build !linux

package platform

import "swdlink.dev/swd"

// NoopPlatform is the fallback Platform for hosts without a GPIO clock
// output, grounded on cmd/controller/platform_dummy.go.
type NoopPlatform struct{}

func Open() (*NoopPlatform, error) {
	return new(NoopPlatform), nil
}

func (NoopPlatform) TargetClockOutputEnable(enable bool) error { return nil }

func (NoopPlatform) NewDeadline() swd.NewDeadlineFunc {
	return swd.WallClock()
}
