package swd_test

import (
	"testing"

	"swdlink.dev/linkio"
	. "swdlink.dev/swd"
)

func TestErrorClearsStickyBits(t *testing.T) {
	sim := linkio.NewSimDP(0x6ba02477, 2)
	link := linkio.NewSimulator(sim)
	port := NewPort(link, newImmediateDeadline(10))
	dp := &DebugPort{Ops: port, Version: 2}

	sim.SetDP(CTRLSTAT, CtrlStatSTICKYERR|CtrlStatSTICKYORUN)
	dp.Fault = AckFault

	sticky, err := port.Error(dp, false)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	want := CtrlStatSTICKYERR | CtrlStatSTICKYORUN
	if sticky != want {
		t.Fatalf("Error returned %#x, want %#x", sticky, want)
	}
	if dp.Fault != 0 {
		t.Fatalf("Fault = %v after Error, want 0", dp.Fault)
	}
}

func TestErrorReportsErrMaskWhenStatusStaysZero(t *testing.T) {
	sim := linkio.NewSimDP(0x6ba02477, 2)
	link := linkio.NewSimulator(sim)
	port := NewPort(link, newImmediateDeadline(10))
	dp := &DebugPort{Ops: port, Version: 2, TargetSel: 0x10000001}
	dp.Fault = AckFault

	// CTRLSTAT reads back 0 even after the line-reset recovery path
	// re-selects the target, so the one recursive protocol-recovery pass
	// also reads 0 and Error gives up with CtrlStatErrMask.
	sim.TargetSel = dp.TargetSel
	sim.SetDP(CTRLSTAT, 0)

	sticky, err := port.Error(dp, false)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if sticky != CtrlStatErrMask {
		t.Fatalf("Error returned %#x on unresponsive status under protocol recovery, want CtrlStatErrMask", sticky)
	}
}
