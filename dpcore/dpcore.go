// Package dpcore implements the minimal ADIv5 DP/AP register service
// consumed after SWD link-up (the external "DpCore" collaborator spec.md
// treats as out of scope). It is the real collaborator swd.Scan hands
// discovered DebugPorts to, and the layer that handles DP_SELECT banking
// for register access, AP indices, and the posted-read/RDBUFF drain.
package dpcore

import (
	"fmt"

	"swdlink.dev/swd"
)

// DP wraps a *swd.DebugPort and provides DP/AP register access on top of
// its op table. The cached DP_SELECT value it consults is kept on the
// DebugPort itself.
type DP struct {
	dp *swd.DebugPort
}

// New wraps dp. dp must already carry the Ops table swd.Scan attached.
func New(dp *swd.DebugPort) *DP {
	return &DP{dp: dp}
}

// DebugPort returns the wrapped link-layer state.
func (d *DP) DebugPort() *swd.DebugPort { return d.dp }

// ReadDPIDR reads DPIDR, which lives in every bank and needs no SELECT.
func (d *DP) ReadDPIDR() (uint32, error) {
	return d.dp.Ops.LowAccess(d.dp, true, swd.DPIDR, 0)
}

// selectBank writes DP_SELECT only if the requested (apsel, bank) differs
// from the last write this DP observed, avoiding redundant SELECT writes
// the way a real ADIv5 host does.
func (d *DP) selectBank(apsel, bank uint8) error {
	if !d.dp.NeedsSelect(apsel, bank) {
		return nil
	}
	sel := uint32(apsel)<<24 | uint32(bank&0xf)<<4
	if _, err := d.dp.Ops.LowAccess(d.dp, false, swd.SELECT, sel); err != nil {
		return err
	}
	d.dp.NoteSelected(apsel, bank)
	return nil
}

// ReadDP reads a bank-0 DP register (CTRL/STAT, etc).
func (d *DP) ReadDP(addr uint16) (uint32, error) {
	if err := d.selectBank(0, 0); err != nil {
		return 0, err
	}
	return d.RecoverableAccess(true, addr, 0)
}

// WriteDP writes a bank-0 DP register.
func (d *DP) WriteDP(addr uint16, v uint32) error {
	if err := d.selectBank(0, 0); err != nil {
		return err
	}
	_, err := d.RecoverableAccess(false, addr, v)
	return err
}

// ReadAP reads an AP register: select the AP/bank, issue a posted read,
// then drain RDBUFF. This is the compound behavior spec.md §9 left
// ambiguous between the transport op table and DpCore; resolved here in
// favor of DpCore owning it (SPEC_FULL.md §4.8).
func (d *DP) ReadAP(apsel uint8, addr uint16) (uint32, error) {
	if err := d.selectBank(apsel, uint8((addr>>4)&0xf)); err != nil {
		return 0, err
	}
	if _, err := d.RecoverableAccess(true, addr|swd.APnDP, 0); err != nil {
		return 0, err
	}
	return d.dp.Ops.LowAccess(d.dp, true, swd.RDBUFF, 0)
}

// WriteAP writes an AP register.
func (d *DP) WriteAP(apsel uint8, addr uint16, v uint32) error {
	if err := d.selectBank(apsel, uint8((addr>>4)&0xf)); err != nil {
		return err
	}
	_, err := d.RecoverableAccess(false, addr|swd.APnDP, v)
	return err
}

// Abort writes mask to DP_ABORT.
func (d *DP) Abort(mask uint32) error {
	return d.dp.Ops.Abort(d.dp, mask)
}

// LowAccess is a thin pass-through to the op table's single transaction
// primitive, for callers that want to bypass retry/recovery entirely.
func (d *DP) LowAccess(rnw bool, addr uint16, v uint32) (uint32, error) {
	return d.dp.Ops.LowAccess(d.dp, rnw, addr, v)
}

// RecoverableAccess issues a LowAccess and, if it latches a sticky fault,
// clears the error once and retries exactly once. A fault on the retry is
// reported to the caller rather than retried again, bounding recovery
// depth the way spec.md §7 requires.
func (d *DP) RecoverableAccess(rnw bool, addr uint16, v uint32) (uint32, error) {
	result, err := d.dp.Ops.LowAccess(d.dp, rnw, addr, v)
	if err != nil {
		return 0, err
	}
	if d.dp.Fault == 0 {
		return result, nil
	}
	if _, err := d.dp.Ops.Error(d.dp, false); err != nil {
		return 0, err
	}
	return d.dp.Ops.LowAccess(d.dp, rnw, addr, v)
}

// Init performs the minimal ADIv5 power-up dance every higher-level tool
// runs before touching APs: request debug and system power, then poll the
// acknowledge bits. Not part of the 16-line adiv5_swd.c excerpt this
// package is otherwise grounded on (that source treats dp_init as
// external); reconstructed from the CTRL/STAT power bits the ADIv5
// architecture spec defines, the way Black Magic Debug's adiv5_dp_init
// does it (see DESIGN.md).
func (d *DP) Init() error {
	const maxAttempts = 10
	const want = swd.CtrlStatCDBGPWRUPREQ | swd.CtrlStatCSYSPWRUPREQ
	if err := d.WriteDP(swd.CTRLSTAT, want); err != nil {
		return fmt.Errorf("dpcore: power-up request: %w", err)
	}
	const wantAck = swd.CtrlStatCDBGPWRUPACK | swd.CtrlStatCSYSPWRUPACK
	for i := 0; i < maxAttempts; i++ {
		status, err := d.ReadDP(swd.CTRLSTAT)
		if err != nil {
			return fmt.Errorf("dpcore: power-up poll: %w", err)
		}
		if status&wantAck == wantAck {
			return nil
		}
	}
	return fmt.Errorf("dpcore: power-up: no acknowledge after %d attempts", maxAttempts)
}

// Consumer adapts New/DP.Init to the swd.DPConsumer interface swd.Scan
// dispatches each discovered DebugPort to. It holds no state of its own;
// every DebugPort handed to Init gets its own *DP wrapper.
type Consumer struct{}

func (Consumer) Init(dp *swd.DebugPort) error {
	return New(dp).Init()
}
