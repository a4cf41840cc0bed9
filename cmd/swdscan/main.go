// command swdscan discovers ADIv5 debug ports on an SWD bus and reports
// each one's DPIDR version field and, for multi-drop buses, its instance
// index and TARGETSEL value. The raw DPIDR value is not printed.
package main

import (
	"flag"
	"fmt"
	"os"

	"swdlink.dev/dpcore"
	"swdlink.dev/linkio"
	"swdlink.dev/swd"
)

var (
	serialDev = flag.String("device", "", "serial bit-bang adapter device (probed if empty)")
	targetID  = flag.Uint("targetid", 0, "known TARGETID to force multi-drop scanning")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	link, err := linkio.OpenSerial(*serialDev)
	if err != nil {
		return fmt.Errorf("open adapter: %w", err)
	}
	defer link.Close()

	plat, err := openPlatform()
	if err != nil {
		return fmt.Errorf("open platform: %w", err)
	}

	result, err := swd.Scan(link, plat, dpcore.Consumer{}, uint32(*targetID))
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if len(result.Ports) == 0 {
		return fmt.Errorf("no debug ports found")
	}
	for _, dp := range result.Ports {
		if dp.TargetSel != 0 {
			fmt.Printf("DP instance %d: version=%d targetsel=%#08x\n", dp.DevIndex, dp.Version, dp.TargetSel)
		} else {
			fmt.Printf("DP: version=%d\n", dp.Version)
		}
	}
	return nil
}
