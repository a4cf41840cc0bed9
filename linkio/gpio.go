//go:build linux

package linkio

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"
)

// GPIO bit-bangs SWCLK/SWDIO directly on two host GPIO pins, grounded on
// driver/wshat.Open's host.Init/pin-configure sequence.
type GPIO struct {
	Clk  gpio.PinOut
	Data gpio.PinIO
}

// OpenGPIO initializes the host GPIO subsystem and binds clk/data.
func OpenGPIO(clk gpio.PinOut, data gpio.PinIO) (*GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("linkio: gpio init: %w", err)
	}
	if err := clk.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("linkio: configure SWCLK: %w", err)
	}
	return &GPIO{Clk: clk, Data: data}, nil
}

func (g *GPIO) Init() error {
	return g.Data.Out(gpio.High)
}

func (g *GPIO) clockPulse() {
	g.Clk.Out(gpio.High)
	g.Clk.Out(gpio.Low)
}

func (g *GPIO) SeqOut(bits uint32, n uint8) {
	g.Data.Out(gpio.High)
	for i := uint8(0); i < n; i++ {
		level := gpio.Low
		if bits&(1<<i) != 0 {
			level = gpio.High
		}
		g.Data.Out(level)
		g.clockPulse()
	}
}

func (g *GPIO) SeqOutParity(bits uint32, n uint8) {
	g.SeqOut(bits, n)
	g.SeqOut(uint32(parityOf(bits, n)), 1)
}

func (g *GPIO) SeqIn(n uint8) uint32 {
	g.Data.In(gpio.PullNoChange, gpio.NoEdge)
	var v uint32
	for i := uint8(0); i < n; i++ {
		if g.Data.Read() == gpio.High {
			v |= 1 << i
		}
		g.clockPulse()
	}
	return v
}

func (g *GPIO) SeqInParity(n uint8) (uint32, bool) {
	data := g.SeqIn(n)
	p := g.SeqIn(1)
	return data, uint8(p) == parityOf(data, n)
}
