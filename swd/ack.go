package swd

// Ack is the 3-bit SWD acknowledge reply.
type Ack uint8

const (
	AckOK    Ack = 0b001
	AckWait  Ack = 0b010
	AckFault Ack = 0b100
	// AckNoResponse is the reply an idle bus with no driver reads back.
	// Any other value besides OK, WAIT and FAULT is an invalid ACK, which
	// Port.LowAccess reports as a [ProtocolError].
	AckNoResponse Ack = 0b111
)

func (a Ack) String() string {
	switch a {
	case AckOK:
		return "OK"
	case AckWait:
		return "WAIT"
	case AckFault:
		return "FAULT"
	case AckNoResponse:
		return "NO_RESPONSE"
	default:
		return "invalid"
	}
}
