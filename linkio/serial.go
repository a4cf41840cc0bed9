package linkio

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/tarm/serial"
)

// Serial drives a bit-bang SWD adapter attached over a USB-serial link: a
// microcontroller on the other end of the wire speaks a trivial
// byte-per-bit protocol (one byte per clock, with SWDIO state reflected on
// a following read byte for input sequences), the way driver/mjolnir talks
// to its stepper controller over the same tarm/serial transport.
type Serial struct {
	port *serial.Port
}

// OpenSerial opens dev, or probes the platform's usual adapter paths if dev
// is empty, grounded on driver/mjolnir.Open's device-list probing.
func OpenSerial(dev string) (*Serial, error) {
	const baudRate = 921600

	var devices []string
	if dev != "" {
		devices = append(devices, dev)
	} else {
		switch runtime.GOOS {
		case "windows":
			devices = append(devices, "COM3", "COM4")
		case "linux":
			devices = append(devices, "/dev/ttyACM0", "/dev/ttyUSB0")
		case "darwin":
			devices = append(devices, "/dev/tty.usbmodem0")
		}
	}
	if len(devices) == 0 {
		return nil, errors.New("linkio: no serial device specified and platform has no default")
	}

	var firstErr error
	for _, d := range devices {
		cfg := &serial.Config{Name: d, Baud: baudRate, ReadTimeout: 100 * time.Millisecond}
		p, err := serial.OpenPort(cfg)
		if err == nil {
			return &Serial{port: p}, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("linkio: open serial adapter: %w", firstErr)
}

func (s *Serial) Close() error { return s.port.Close() }

// Init resets the adapter's internal bit shifter by sending the sync byte
// the firmware expects before a fresh sequence.
func (s *Serial) Init() error {
	_, err := s.port.Write([]byte{0x00})
	return err
}

func (s *Serial) SeqOut(bits uint32, n uint8) {
	buf := make([]byte, n)
	for i := uint8(0); i < n; i++ {
		if bits&(1<<i) != 0 {
			buf[i] = 1
		}
	}
	s.port.Write(buf)
}

func (s *Serial) SeqOutParity(bits uint32, n uint8) {
	s.SeqOut(bits, n)
	s.SeqOut(uint32(parityOf(bits, n)), 1)
}

func (s *Serial) SeqIn(n uint8) uint32 {
	buf := make([]byte, n)
	readFull(s.port, buf)
	var v uint32
	for i := uint8(0); i < n && int(i) < len(buf); i++ {
		if buf[i] != 0 {
			v |= 1 << i
		}
	}
	return v
}

func (s *Serial) SeqInParity(n uint8) (uint32, bool) {
	data := s.SeqIn(n)
	p := s.SeqIn(1)
	return data, uint8(p) == parityOf(data, n)
}

func parityOf(bits uint32, n uint8) uint8 {
	var p uint8
	for i := uint8(0); i < n; i++ {
		if bits&(1<<i) != 0 {
			p ^= 1
		}
	}
	return p
}

// readFull reads exactly len(buf) bytes, tolerating the short reads a
// serial port under a read timeout routinely returns.
func readFull(p *serial.Port, buf []byte) {
	got := 0
	for got < len(buf) {
		n, err := p.Read(buf[got:])
		got += n
		if err != nil {
			return
		}
	}
}
