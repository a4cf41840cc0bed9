package swd

// EnterFromDormant switches a DPv2+ target out of its dormant state into
// SWD, per ADIv5 §5.3.4. It is the primary entry path; [EnterFromJTAGLegacy]
// is only a fallback for targets that don't implement the dormant state.
func EnterFromDormant(l LinkIO) {
	// At least 8 SWCLKTCK cycles with SWDIOTMS HIGH is enough here; no
	// trailing idle is needed before the JTAG-to-dormant sequence.
	l.SeqOut(0xff, 8)

	l.SeqOut(jtagToDormant0, 5)
	l.SeqOut(jtagToDormant1, 31)
	l.SeqOut(jtagToDormant2, 8)

	l.SeqOut(selectionAlert0, 32)
	l.SeqOut(selectionAlert1, 32)
	l.SeqOut(selectionAlert2, 32)
	l.SeqOut(selectionAlert3, 32)

	// 4 LOW cycles followed by the 8-bit activation code, combined into a
	// single 12-bit shift by placing the activation code above the pad.
	l.SeqOut(activationCodeARMSWD<<4, 12)

	// Selecting SWD leaves the target in the protocol-error state; a line
	// reset with trailing idle clears it.
	LineReset(l, true)
}

// EnterFromJTAGLegacy performs the deprecated 16-bit JTAG-to-SWD select
// sequence (ADIv5 §5.2.1), used only as a fallback when a target fails to
// respond after [EnterFromDormant].
func EnterFromJTAGLegacy(l LinkIO) {
	LineReset(l, false)
	l.SeqOut(jtagToSWDSelect, 16)
	LineReset(l, true)
}
