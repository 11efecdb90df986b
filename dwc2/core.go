// Package dwc2 brings a Synopsys DWC2 USB OTG controller from power-on
// state to a state a host or device protocol stack can drive: identity
// check, PHY selection and core soft reset, timing calibration, FIFO
// flush, interrupt mask init, and DMA-vs-slave transfer mode selection.
//
// The package does not interpret USB traffic and does not manage
// endpoints; it only prepares the controller's electrical, clocking, FIFO
// and interrupt substrate. Endpoint handling, interrupt service and FIFO
// sizing are collaborators injected by the caller.
//
// Initialization is fully synchronous and single-threaded. The reset and
// flush handshakes busy-poll hardware bits with no timeout: a controller
// that stops responding hangs the call instead of returning an error.
// On a powered, clocked core the handshakes always complete; callers that
// need a bound must wrap InitCore themselves.
package dwc2

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrIdentification means the GSNPSID read did not match any known core
// family. The usual cause is that the controller's clock or power domain
// is not enabled, so every register reads garbage; nothing further is
// programmed.
var ErrIdentification = errors.New("dwc2: unrecognized controller identity")

// Role is the requested controller role.
type Role uint8

const (
	RoleDevice Role = iota
	RoleHost
)

func (r Role) String() string {
	if r == RoleHost {
		return "host"
	}
	return "device"
}

// MCU identifies the controller family a port lives on, for silicon
// errata that change bring-up behavior.
type MCU uint8

const (
	MCUGeneric MCU = iota

	// MCUGD32VF103 cores read GSNPSID and all GHWCFG registers as zero.
	// The identity check is waived for them.
	MCUGD32VF103
)

// Config is the port-level capability configuration, resolved once by the
// caller (from build options, device tree, or flags) and passed through
// explicitly.
type Config struct {
	DeviceEnabled   bool
	HostEnabled     bool
	DeviceHighSpeed bool
	HostHighSpeed   bool
	MCU             MCU
}

// Port is one DWC2 controller instance. Regs is required; the zero values
// of the remaining fields give no-op PHY hooks, a zero FIFO base, a
// fully-disabled Config and silent logging.
type Port struct {
	Regs     RegisterBlock
	Index    uint8
	Hooks    PhyHooks
	FifoBase FifoBaseFunc
	Config   Config
	Log      *slog.Logger
}

func (p *Port) logger() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (p *Port) hooks() PhyHooks {
	if p.Hooks != nil {
		return p.Hooks
	}
	return NopPhyHooks{}
}

func (p *Port) fifoBase() uint16 {
	if p.FifoBase != nil {
		return p.FifoBase(p.Index)
	}
	return 0
}

// CheckIdentity reads the six-word identification block and verifies the
// GSNPSID family ID. The raw block is logged at debug level so it can be
// compared offline against known-good hardware profiles. Ports on an MCU
// with the zero-ID erratum pass unconditionally.
func (p *Port) CheckIdentity() error {
	block := ReadIDBlock(p.Regs)
	p.logger().Debug("controller identification block",
		"guid", hex32(block[0]),
		"gsnpsid", hex32(block[1]),
		"ghwcfg1", hex32(block[2]),
		"ghwcfg2", hex32(block[3]),
		"ghwcfg3", hex32(block[4]),
		"ghwcfg4", hex32(block[5]),
	)

	if p.Config.MCU == MCUGD32VF103 {
		return nil
	}

	id := block[1] & IDMask
	switch id {
	case IDOTG, IDFSIoT, IDHSIoT:
		return nil
	}
	return fmt.Errorf("%w: gsnpsid %s", ErrIdentification, hex32(block[1]))
}

// IsHighSpeedCapable reports whether high-speed configuration applies for
// the given role on this port: the role's high-speed support must be
// enabled in Config and the hardware must report a high-speed PHY. Pure
// query, safe to call repeatedly.
func (p *Port) IsHighSpeedCapable(role Role) bool {
	if role == RoleDevice && p.Config.DeviceEnabled && !p.Config.DeviceHighSpeed {
		return false
	}
	if role == RoleHost && p.Config.HostEnabled && !p.Config.HostHighSpeed {
		return false
	}
	return ReadCapabilities(p.Regs).HSPhy != PhyNotSupported
}

// InitCore runs the full bring-up sequence. It fails only at the identity
// check; every later step is unconditional register programming. A failed
// call leaves whatever was already written in place; a repeated call
// restarts the sequence from scratch.
func (p *Port) InitCore(highSpeed, dma bool) error {
	r := p.Regs
	log := p.logger().With("port", p.Index)

	if err := p.CheckIdentity(); err != nil {
		return err
	}
	log.Debug("controller identified")

	// Decoded once; immutable for the rest of the sequence.
	rev := ReadRevision(r)
	caps := ReadCapabilities(r)

	if highSpeed {
		phyHSInit(r, rev, caps, p.hooks(), log)
	} else {
		phyFSInit(r, rev, p.hooks(), log)
	}
	log.Debug("PHY configured and core reset", "revision", fmt.Sprintf("%x", uint16(rev)))

	// Timeout calibration to the maximum of 7 PHY clocks. The value is
	// added to the inter-packet timeout to absorb PHY-to-PHY variance in
	// linestate detection delay.
	r.Write(RegGUSBCFG, r.Read(RegGUSBCFG)|7<<TocalShift)
	log.Debug("timing calibrated")

	// Ungate the PHY clock.
	r.Write(RegPCGCCTL, r.Read(RegPCGCCTL)&^(StopPhyClk|GateHclk|PowerClamp|ResetPowerDown))
	log.Debug("clocks ungated")

	flushTxFifos(r, TxFifoAll)
	flushRxFifo(r)
	log.Debug("FIFOs flushed")

	clearPendingInterrupts(r)
	log.Debug("interrupts cleared")

	if dma {
		base := p.fifoBase()
		configureDMA(r, base)
		log.Debug("DMA transfer mode configured", "epInfoBase", base)
	} else {
		configureSlave(r)
		log.Debug("slave transfer mode configured")
	}

	// Interrupt on fully empty TX FIFO, not merely below threshold.
	r.Write(RegGAHBCFG, r.Read(RegGAHBCFG)|TxFifoEmptyLevel)

	log.Info("core initialized", "highSpeed", highSpeed, "dma", dma)
	return nil
}

func hex32(v uint32) string {
	return fmt.Sprintf("0x%08X", v)
}
