// Package swd implements the host side of the Serial Wire Debug variant
// of the ARM Debug Interface v5 (ADIv5). It drives the two-wire SWCLK/SWDIO
// link through a caller-supplied [LinkIO], performs the dormant and legacy
// JTAG entry handshakes, and exposes register-level read/write access with
// the ADIv5 fault-recovery protocol.
package swd

// APnDP marks addr as an AP (rather than DP) register access. Go's const
// block doubles as the bit position documentation the C source put in
// comments next to ADIV5_APnDP.
const APnDP = 1 << 0

// BuildRequest computes the 8-bit SWD packet header for a transaction.
//
// Layout, LSB first on the wire: Start(1) | APnDP | RnW | A2 | A3 | Parity |
// Stop(0) | Park(1). Parity covers APnDP, RnW, A2 and A3.
//
// addr's bit 0 selects AP vs DP ([APnDP]); bits 2:3 select the 4-byte
// register within the current bank.
func BuildRequest(rnw bool, addr uint16) uint8 {
	request := uint8(0x81)
	if addr&APnDP != 0 {
		request ^= 0x22
	}
	if rnw {
		request ^= 0x24
	}
	reg := uint8(addr) & 0x0c
	request |= (reg << 1) & 0x18
	if reg == 0x4 || reg == 0x8 {
		request ^= 0x20
	}
	return request
}
