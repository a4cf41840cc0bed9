//go:build linux

package platform

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"

	"swdlink.dev/swd"
)

// GPIOPlatform drives the target clock output through a host GPIO pin,
// grounded on cmd/controller/platform_rpi.go's periph.io pin wiring.
type GPIOPlatform struct {
	ClockOut gpio.PinOut
}

// Open initializes the host GPIO subsystem and binds clockOut.
func Open(clockOut gpio.PinOut) (*GPIOPlatform, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("platform: gpio init: %w", err)
	}
	return &GPIOPlatform{ClockOut: clockOut}, nil
}

func (p *GPIOPlatform) TargetClockOutputEnable(enable bool) error {
	level := gpio.Low
	if enable {
		level = gpio.High
	}
	return p.ClockOut.Out(level)
}

func (p *GPIOPlatform) NewDeadline() swd.NewDeadlineFunc {
	return swd.WallClock()
}
