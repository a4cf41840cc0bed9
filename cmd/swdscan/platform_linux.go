//go:build linux

package main

import (
	"flag"

	"periph.io/x/host/v3/bcm283x"

	"swdlink.dev/platform"
	"swdlink.dev/swd"
)

var noClockPin = flag.Bool("no-clock-pin", false, "don't drive a target clock output pin")

// scanPlatform narrows platform.Platform to swd.Platform; the deadline
// factory isn't part of the scan contract.
type scanPlatform struct{ *platform.GPIOPlatform }

func (p scanPlatform) TargetClockOutputEnable(enable bool) error {
	return p.GPIOPlatform.TargetClockOutputEnable(enable)
}

func openPlatform() (swd.Platform, error) {
	if *noClockPin {
		return noopScanPlatform{}, nil
	}
	p, err := platform.Open(bcm283x.GPIO12)
	if err != nil {
		return nil, err
	}
	return scanPlatform{p}, nil
}

type noopScanPlatform struct{}

func (noopScanPlatform) TargetClockOutputEnable(enable bool) error { return nil }
