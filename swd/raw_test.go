package swd_test

import (
	"errors"
	"testing"
	"time"

	"swdlink.dev/linkio"
	. "swdlink.dev/swd"
)

// immediateDeadline expires after a fixed number of Expired() calls,
// letting WAIT/FAULT retry-loop tests run without burning wall-clock time.
type immediateDeadline struct {
	callsLeft int
}

func (d *immediateDeadline) Expired() bool {
	if d.callsLeft <= 0 {
		return true
	}
	d.callsLeft--
	return false
}

func newImmediateDeadline(tries int) NewDeadlineFunc {
	return func(_ time.Duration) Deadline {
		return &immediateDeadline{callsLeft: tries}
	}
}

func newTestDP(tries int) (*Port, *DebugPort, *linkio.SimDP) {
	sim := linkio.NewSimDP(0x0ba01477, 2)
	link := linkio.NewSimulator(sim)
	port := NewPort(link, newImmediateDeadline(tries))
	dp := &DebugPort{Ops: port, Version: 2}
	return port, dp, sim
}

func TestLowAccessWaitThenSuccess(t *testing.T) {
	port, dp, sim := newTestDP(10)
	sim.SetAP(0, 0x00, 0x12345678)
	sim.QueueAck(AckWait, 3)

	v, err := port.LowAccess(dp, true, 0x00|APnDP, 0)
	if err != nil {
		t.Fatalf("LowAccess: %v", err)
	}
	if dp.Fault != 0 {
		t.Fatalf("Fault = %v after eventual OK, want 0", dp.Fault)
	}
	if v != 0x12345678 {
		t.Fatalf("LowAccess returned %#x, want 0x12345678", v)
	}
}

func TestLowAccessPersistentFaultTimesOut(t *testing.T) {
	port, dp, sim := newTestDP(3)
	sim.QueueAck(AckFault, 100)

	_, err := port.LowAccess(dp, true, CTRLSTAT, 0)
	if err != nil {
		t.Fatalf("LowAccess returned error %v, want nil with Fault set", err)
	}
	if dp.Fault != AckFault {
		t.Fatalf("Fault = %v, want AckFault", dp.Fault)
	}
}

func TestLowAccessWaitTimesOut(t *testing.T) {
	port, dp, sim := newTestDP(3)
	sim.QueueAck(AckWait, 100)

	_, err := port.LowAccess(dp, true, CTRLSTAT, 0)
	if err != nil {
		t.Fatalf("LowAccess returned error %v, want nil with Fault set", err)
	}
	if dp.Fault != AckWait {
		t.Fatalf("Fault = %v, want AckWait", dp.Fault)
	}
}

func TestLowAccessBadParityOnRead(t *testing.T) {
	port, dp, sim := newTestDP(10)
	sim.SetDP(CTRLSTAT, 0x12345678)
	sim.QueueBadParity()

	_, err := port.LowAccess(dp, true, CTRLSTAT, 0)
	var perr *ProtocolError
	if !errors.As(err, &perr) || perr.Op != "parity" {
		t.Fatalf("LowAccess error = %v, want a parity ProtocolError", err)
	}
	if dp.Fault != AckOK {
		t.Fatalf("Fault = %v, want AckOK after a parity error", dp.Fault)
	}
}

func TestLowAccessApGuardedByStickyFault(t *testing.T) {
	port, dp, sim := newTestDP(10)
	dp.Fault = AckFault
	sim.SetAP(0, 0x00, 0xffffffff)

	v, err := port.LowAccess(dp, true, 0x00|APnDP, 0)
	if err != nil {
		t.Fatalf("LowAccess: %v", err)
	}
	if v != 0 {
		t.Fatalf("LowAccess returned %#x while Fault was set, want 0 without touching the bus", v)
	}
}
