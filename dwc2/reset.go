package dwc2

// resetCore performs the core soft reset handshake. Callers must have
// written the PHY select bits first; what the reset resets depends on the
// selected transceiver.
//
// All three waits below are unbounded busy-polls. A controller that never
// completes the handshake hangs the calling goroutine; there is
// deliberately no timeout (see the package documentation).
func resetCore(r RegisterBlock, rev Revision) {
	r.Write(RegGRSTCTL, r.Read(RegGRSTCTL)|CSRst)

	if !rev.hasResetDoneBit() {
		// CSRst is hardware-self-clearing on these revisions.
		for r.Read(RegGRSTCTL)&CSRst != 0 {
		}
	} else {
		// CSRst is write-only here; completion shows up in the W1C done
		// bit. The request bit must be cleared in the same write that
		// acknowledges the done flag.
		for r.Read(RegGRSTCTL)&CSRstDone == 0 {
		}
		v := r.Read(RegGRSTCTL)
		r.Write(RegGRSTCTL, (v&^CSRst)|CSRstDone)
	}

	// Wait for the AHB master to return to idle.
	for r.Read(RegGRSTCTL)&AHBIdle == 0 {
	}
}
