//go:build !linux

package main

import (
	"swdlink.dev/platform"
	"swdlink.dev/swd"
)

func openPlatform() (swd.Platform, error) {
	return platform.Open()
}
