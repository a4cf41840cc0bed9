package swd

// Error implements the Ops table's sticky-error clear, ported from
// adiv5_swd_clear_error. It returns the sticky bits that were present
// before they were cleared (0 on a clean DP), or [CtrlStatErrMask] if
// protocol recovery itself failed to resynchronize the part. Recovery
// recurses at most once (protocolRecovery false -> true).
func (p *Port) Error(dp *DebugPort, protocolRecovery bool) (uint32, error) {
	if (dp.Version >= 2 && dp.Fault != 0) || protocolRecovery {
		// On DPv2+, a protocol-error line reset implicitly deselects the
		// target; reselect it before anything but TARGETSEL/DPIDR.
		LineReset(p.Link, true)
		dp.InvalidateSelect()
		if dp.Version >= 2 {
			p.WriteNoCheck(dp, TARGETSEL, dp.TargetSel)
		}
		p.ReadNoCheck(dp, DPIDR)
	}

	status := p.ReadNoCheck(dp, CTRLSTAT)
	if status == 0 {
		if !protocolRecovery {
			return p.Error(dp, true)
		}
		return CtrlStatErrMask, nil
	}

	var clear uint32
	if status&CtrlStatSTICKYORUN != 0 {
		clear |= AbortORUNERRCLR
	}
	if status&CtrlStatSTICKYCMP != 0 {
		clear |= AbortSTKCMPCLR
	}
	if status&CtrlStatSTICKYERR != 0 {
		clear |= AbortSTKERRCLR
	}
	if status&CtrlStatWDATAERR != 0 {
		clear |= AbortWDERRCLR
	}
	if clear != 0 {
		p.WriteNoCheck(dp, ABORT, clear)
	}

	dp.Fault = 0
	return status & (CtrlStatSTICKYORUN | CtrlStatSTICKYCMP | CtrlStatSTICKYERR | CtrlStatWDATAERR), nil
}
