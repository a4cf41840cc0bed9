package dpcore

import (
	"testing"

	"swdlink.dev/linkio"
	"swdlink.dev/swd"
)

func newTestDP() (*DP, *linkio.SimDP) {
	sim := linkio.NewSimDP(0x1ba01477, 1)
	link := linkio.NewSimulator(sim)
	port := swd.NewPort(link, nil)
	dp := &swd.DebugPort{Ops: port, Version: 1}
	return New(dp), sim
}

func TestInitPowersUp(t *testing.T) {
	d, _ := newTestDP()
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	status, err := d.ReadDP(swd.CTRLSTAT)
	if err != nil {
		t.Fatalf("ReadDP(CTRLSTAT): %v", err)
	}
	want := swd.CtrlStatCDBGPWRUPACK | swd.CtrlStatCSYSPWRUPACK
	if status&want != want {
		t.Fatalf("CTRLSTAT = %#x after Init, want power-up ack bits %#x set", status, want)
	}
}

func TestReadWriteAP(t *testing.T) {
	d, sim := newTestDP()
	sim.SetAP(0, 0x0c, 0xcafef00d)

	v, err := d.ReadAP(0, 0x0c)
	if err != nil {
		t.Fatalf("ReadAP: %v", err)
	}
	if v != 0xcafef00d {
		t.Fatalf("ReadAP = %#x, want 0xcafef00d", v)
	}

	if err := d.WriteAP(0, 0x04, 0x1000); err != nil {
		t.Fatalf("WriteAP: %v", err)
	}
	v, err = d.ReadAP(0, 0x04)
	if err != nil {
		t.Fatalf("ReadAP after write: %v", err)
	}
	if v != 0x1000 {
		t.Fatalf("ReadAP after write = %#x, want 0x1000", v)
	}
}

func TestSelectBankSkipsRedundantWrites(t *testing.T) {
	d, sim := newTestDP()
	sim.SetAP(1, 0x00, 0xaa)
	sim.SetAP(1, 0x04, 0xbb)

	if _, err := d.ReadAP(1, 0x00); err != nil {
		t.Fatalf("ReadAP: %v", err)
	}
	// Same apsel/bank: the recorded selection must make selectBank skip
	// the SELECT write for the next access.
	if d.DebugPort().NeedsSelect(1, 0) {
		t.Fatal("selection (apsel=1, bank=0) not recorded after ReadAP; SELECT would be reissued")
	}
	if _, err := d.ReadAP(1, 0x04); err != nil {
		t.Fatalf("ReadAP: %v", err)
	}
}

func TestRecoverableAccessRetriesOnceAfterClearingFault(t *testing.T) {
	d, sim := newTestDP()
	sim.SetDP(swd.CTRLSTAT, swd.CtrlStatSTICKYERR)
	d.DebugPort().Fault = swd.AckFault

	_, err := d.RecoverableAccess(true, swd.CTRLSTAT, 0)
	if err != nil {
		t.Fatalf("RecoverableAccess: %v", err)
	}
}
