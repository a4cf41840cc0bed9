package swd

import "time"

// Port is the SWD implementation of [Ops]. It owns the [LinkIO] handle and
// the deadline factory used to bound the WAIT/FAULT retry loop in
// [Port.LowAccess]. Port is not safe for concurrent use: the bus is shared
// and exactly one transaction is ever in flight (spec.md §5).
type Port struct {
	Link        LinkIO
	NewDeadline NewDeadlineFunc
	// RetryBudget bounds the WAIT/FAULT retry loop in LowAccess. Defaults
	// to 250ms, the budget spec.md §4.4 requires.
	RetryBudget time.Duration
}

// NewPort constructs a Port bound to link. A nil deadline factory defaults
// to [WallClock].
func NewPort(link LinkIO, newDeadline NewDeadlineFunc) *Port {
	if newDeadline == nil {
		newDeadline = WallClock()
	}
	return &Port{Link: link, NewDeadline: newDeadline, RetryBudget: 250 * time.Millisecond}
}

var _ Ops = (*Port)(nil)

// WriteNoCheck writes addr without the WAIT/FAULT retry loop: TARGETSEL has
// no ACK response at all, and error recovery must not itself be able to
// fault (spec.md §4.7). The ACK is still read; it reports true if it was not
// OK.
func (p *Port) WriteNoCheck(dp *DebugPort, addr uint16, data uint32) bool {
	request := BuildRequest(false, addr)
	p.Link.SeqOut(uint32(request), 8)
	ack := Ack(p.Link.SeqIn(3))
	p.Link.SeqOutParity(data, 32)
	p.Link.SeqOut(0, 8)
	return ack != AckOK
}

// ReadNoCheck reads addr without the WAIT/FAULT retry loop, returning 0 on
// a non-OK ACK.
func (p *Port) ReadNoCheck(dp *DebugPort, addr uint16) uint32 {
	request := BuildRequest(true, addr)
	p.Link.SeqOut(uint32(request), 8)
	ack := Ack(p.Link.SeqIn(3))
	data, _ := p.Link.SeqInParity(32)
	p.Link.SeqOut(0, 8)
	if ack != AckOK {
		return 0
	}
	return data
}

// abortNoCheck writes mask to DP_ABORT via the no-ACK accessor. LowAccess's
// FAULT handling calls this instead of recursing back into LowAccess
// itself, statically bounding the call depth to the outer access plus this
// abort write (spec.md §9 design note, resolved in favor of option (a)).
func (p *Port) abortNoCheck(dp *DebugPort, mask uint32) {
	p.WriteNoCheck(dp, ABORT, mask)
}

// LowAccess is the single SWD transaction primitive: build the request,
// retry on WAIT/FAULT within RetryBudget, then complete the data phase on
// OK. See spec.md §4.4 for the full contract.
func (p *Port) LowAccess(dp *DebugPort, rnw bool, addr uint16, value uint32) (uint32, error) {
	if addr&APnDP != 0 && dp.Fault != 0 {
		return 0, nil
	}

	request := BuildRequest(rnw, addr)
	deadline := p.NewDeadline(p.RetryBudget)
	var ack Ack
	for {
		p.Link.SeqOut(uint32(request), 8)
		ack = Ack(p.Link.SeqIn(3))
		if ack == AckFault {
			// Self-referential by design: the abort write itself is a
			// no-ACK write, not another LowAccess call, so this can't
			// recurse past one extra frame.
			p.abortNoCheck(dp, AbortORUNERRCLR|AbortWDERRCLR|AbortSTKERRCLR|AbortSTKCMPCLR)
		}
		if (ack != AckWait && ack != AckFault) || deadline.Expired() {
			break
		}
	}

	switch ack {
	case AckWait:
		p.abortNoCheck(dp, AbortDAPABORT)
		dp.Fault = AckWait
		return 0, nil
	case AckFault:
		dp.Fault = AckFault
		return 0, nil
	case AckNoResponse:
		dp.Fault = AckNoResponse
		return 0, nil
	case AckOK:
		// fall through to the data phase below
	default:
		return 0, &ProtocolError{Op: "access", Ack: ack}
	}

	var response uint32
	if rnw {
		data, ok := p.Link.SeqInParity(32)
		if !ok {
			// The source latches dp->fault = 1U here, the same bit
			// pattern as SWD_ACK_OK; kept for fidelity even though it
			// reads oddly next to the Ack enum.
			dp.Fault = AckOK
			return 0, &ProtocolError{Op: "parity"}
		}
		response = data
	} else {
		p.Link.SeqOutParity(value, 32)
	}

	// At least 8 idle cycles after the data phase, favoring correctness
	// over the minimal 0-cycle option the spec allows.
	p.Link.SeqOut(0, 8)

	return response, nil
}

// DPRead is the op-table's plain register read. The compound "posted AP
// read, then drain RDBUFF" behavior spec.md §6 describes lives in
// dpcore.DP.ReadAP instead (see SPEC_FULL.md §9): DpCore consumes Ops, so
// Ops can't turn around and depend on DpCore's recoverable-access retry
// without an import cycle. DPRead stays a direct, non-retrying LowAccess.
func (p *Port) DPRead(dp *DebugPort, addr uint16) (uint32, error) {
	return p.LowAccess(dp, true, addr, 0)
}

// Abort writes mask to DP_ABORT through the normal ACK-checked path.
func (p *Port) Abort(dp *DebugPort, mask uint32) error {
	_, err := p.LowAccess(dp, false, ABORT, mask)
	return err
}
