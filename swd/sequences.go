package swd

// Bit patterns from the ADIv5 specification, copied bit-exact. All
// sequences are shifted out LSB-first by [LinkIO.SeqOut].
const (
	// jtagToDormant0/1/2 is the 5+31+8 bit JTAG-to-Dormant sequence (ADIv5
	// §B5.3.2), split into three shifts because the combined value doesn't
	// fit a single machine word.
	jtagToDormant0 uint32 = 0x33
	jtagToDormant1 uint32 = 0x33bbbbba
	jtagToDormant2 uint32 = 0xe3

	// The 128-bit Selection Alert sequence (ADIv5 §B5.3.3), shifted out as
	// four 32-bit halves in order 0..3.
	selectionAlert0 uint32 = 0x19bc0ea2
	selectionAlert1 uint32 = 0xe3ddafe9
	selectionAlert2 uint32 = 0x86852d95
	selectionAlert3 uint32 = 0x6209f392

	// activationCodeARMSWD is the 8-bit ARM SWD activation code.
	activationCodeARMSWD uint32 = 0x1a

	// jtagToSWDSelect is the deprecated 16-bit JTAG-to-SWD select sequence.
	jtagToSWDSelect uint32 = 0xe79e
)

// LineReset shifts out a line reset: at least 50 SWCLKTCK cycles with
// SWDIOTMS held HIGH followed by at least 2 idle cycles. Non-conformant
// targets (STM32 and friends) want a bit more margin, so 60 HIGH cycles and,
// when trailingIdle is set, 4 idle cycles are used.
func LineReset(l LinkIO, trailingIdle bool) {
	l.SeqOut(0xffffffff, 32)
	if trailingIdle {
		l.SeqOut(0x0fffffff, 32)
	} else {
		l.SeqOut(0x0fffffff, 28)
	}
}
