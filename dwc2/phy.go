package dwc2

import "log/slog"

// PhyHooks is the platform-specific transceiver bring-up strategy. PreReset
// runs after the PHY select bits are written but before the core soft
// reset; PostReset runs after the turnaround time is programmed. Hooks may
// block, e.g. waiting for an external transceiver to power up; no timeout
// is imposed on them.
type PhyHooks interface {
	PreReset(r RegisterBlock, phy PhyType)
	PostReset(r RegisterBlock, phy PhyType)
}

// NopPhyHooks is for controllers whose PHY needs no platform-specific
// setup around the core reset.
type NopPhyHooks struct{}

func (NopPhyHooks) PreReset(RegisterBlock, PhyType)  {}
func (NopPhyHooks) PostReset(RegisterBlock, PhyType) {}

// Turnaround times in PHY clocks. The wider UTMI+ interface moves a packet
// in fewer clocks, so it gets the shorter value. Written into GUSBCFG.TRDT
// strictly after the core reset, which clears the field.
const (
	trdtFullSpeed uint32 = 5
	trdtHS16Bit   uint32 = 5
	trdtHS8Bit    uint32 = 9
)

// phyFSInit selects and configures the internal full-speed serial
// transceiver and runs the one core reset of this configuration pass.
func phyFSInit(r RegisterBlock, rev Revision, hooks PhyHooks, log *slog.Logger) {
	log.Debug("full-speed PHY init")

	cfg := r.Read(RegGUSBCFG)
	cfg |= PhySel
	r.Write(RegGUSBCFG, cfg)

	hooks.PreReset(r, PhyNotSupported)

	// Reset the core after selecting the PHY.
	resetCore(r, rev)

	// Turnaround time of 5 PHY clocks is the certification-safe default
	// for an AHB running at 30 MHz or more.
	cfg &^= TrdtMask
	cfg |= trdtFullSpeed << TrdtShift
	r.Write(RegGUSBCFG, cfg)

	hooks.PostReset(r, PhyNotSupported)
}

// phyHSInit selects and configures the high-speed transceiver reported by
// the hardware capabilities and runs the one core reset of this
// configuration pass. A core reporting both UTMI+ and ULPI uses UTMI+.
func phyHSInit(r RegisterBlock, rev Revision, caps Capabilities, hooks PhyHooks, log *slog.Logger) {
	cfg := r.Read(RegGUSBCFG)
	cfg &^= PhySel

	width := caps.Width
	if caps.HSPhy == PhyULPI {
		log.Debug("high-speed ULPI PHY init")

		cfg |= ULPIUTMISel

		// ULPI is always an 8-bit, single-data-rate interface.
		cfg &^= PhyIf16
		cfg &^= DDRSel
		width = Width8

		// Internal VBUS indicator and drive.
		cfg &^= ULPIEvbusD | ULPIEvbusI

		// No FS/LS-over-ULPI serial modes.
		cfg &^= ULPIFsLs | ULPIClkSusM
	} else {
		log.Debug("high-speed UTMI+ PHY init", "width", width.String())

		cfg &^= ULPIUTMISel
		if width == Width16 {
			cfg |= PhyIf16
		} else {
			cfg &^= PhyIf16
		}
	}
	r.Write(RegGUSBCFG, cfg)

	hooks.PreReset(r, caps.HSPhy)

	// Reset the core after selecting the PHY.
	resetCore(r, rev)

	cfg &^= TrdtMask
	if width == Width16 {
		cfg |= trdtHS16Bit << TrdtShift
	} else {
		cfg |= trdtHS8Bit << TrdtShift
	}
	r.Write(RegGUSBCFG, cfg)

	hooks.PostReset(r, caps.HSPhy)
}
