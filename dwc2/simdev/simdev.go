// Package simdev simulates a DWC2 controller's global register block for
// tests, examples and offline development. It implements
// dwc2.RegisterBlock with the hardware semantics the bring-up sequence
// depends on: the revision-specific soft reset handshake, self-clearing
// FIFO flush bits, write-one-to-clear interrupt status, and the reset
// wiping the turnaround-time field.
//
// A Device is not safe for concurrent use, which mirrors the real
// contract: the register block is exclusively owned by the initializing
// goroutine.
package simdev

import "github.com/Alia5/GOTG/dwc2"

// Access is one journaled register operation.
type Access struct {
	Write bool
	Off   uint32
	Val   uint32
}

// Device is a simulated DWC2 register file.
type Device struct {
	regs    map[uint32]uint32
	journal []Access

	// delay is how many GRSTCTL reads a triggered handshake stays
	// incomplete before the corresponding bit flips.
	delay int

	csrstClearIn int  // pre-4.20a: reads until CSRst self-clears
	csrstDoneIn  int  // 4.20a+: reads until CSRstDone asserts
	resetPending bool // 4.20a+: a reset is waiting to assert CSRstDone
	ahbBusyIn    int  // reads until AHBIdle reasserts
	txFlushIn    int  // reads until TxFifoFlush self-clears
	rxFlushIn    int  // reads until RxFifoFlush self-clears
}

// Option configures a simulated device.
type Option func(*Device)

// WithGSNPSID sets the full identity word, e.g. dwc2.IDOTG|0x300a.
func WithGSNPSID(id uint32) Option {
	return func(d *Device) { d.regs[dwc2.RegGSNPSID] = id }
}

// WithHSPhy sets the high-speed PHY type reported by GHWCFG2.
func WithHSPhy(phy dwc2.PhyType) Option {
	return func(d *Device) { d.regs[dwc2.RegGHWCFG2] = uint32(phy) << 6 }
}

// WithWidth16 makes GHWCFG4 report a 16-bit UTMI+ data interface.
func WithWidth16() Option {
	return func(d *Device) { d.regs[dwc2.RegGHWCFG4] = 1 << 14 }
}

// WithRegister presets an arbitrary register value.
func WithRegister(off, val uint32) Option {
	return func(d *Device) { d.regs[off] = val }
}

// WithHandshakeDelay sets how many polls a reset or flush handshake takes
// to complete. Zero completes on the first poll.
func WithHandshakeDelay(reads int) Option {
	return func(d *Device) { d.delay = reads }
}

// New returns a simulated controller. The default identity is an OTG core
// revision 3.00a with no high-speed PHY and an 8-bit interface; options
// override it.
func New(opts ...Option) *Device {
	d := &Device{
		regs:  make(map[uint32]uint32),
		delay: 2,
	}
	d.regs[dwc2.RegGSNPSID] = dwc2.IDOTG | 0x300a
	d.regs[dwc2.RegGRSTCTL] = dwc2.AHBIdle
	for _, o := range opts {
		o(d)
	}
	return d
}

// Read implements dwc2.RegisterBlock.
func (d *Device) Read(off uint32) uint32 {
	if off == dwc2.RegGRSTCTL {
		d.stepHandshakes()
	}
	v := d.regs[off]
	d.journal = append(d.journal, Access{Off: off, Val: v})
	return v
}

// Write implements dwc2.RegisterBlock.
func (d *Device) Write(off, val uint32) {
	d.journal = append(d.journal, Access{Write: true, Off: off, Val: val})

	switch off {
	case dwc2.RegGRSTCTL:
		d.writeGRSTCTL(val)
	case dwc2.RegGINTSTS, dwc2.RegGOTGINT:
		// Write-one-to-clear status registers.
		d.regs[off] &^= val
	default:
		d.regs[off] = val
	}
}

func (d *Device) writeGRSTCTL(val uint32) {
	prev := d.regs[dwc2.RegGRSTCTL]

	if val&dwc2.CSRst != 0 && prev&dwc2.CSRst == 0 {
		d.triggerReset()
	}
	if val&dwc2.CSRstDone != 0 {
		// W1C: acknowledging the done flag deasserts it.
		prev &^= dwc2.CSRstDone
	}
	if val&dwc2.TxFifoFlush != 0 {
		d.txFlushIn = d.delay
		d.ahbBusyIn = d.delay
	}
	if val&dwc2.RxFifoFlush != 0 {
		d.rxFlushIn = d.delay
		d.ahbBusyIn = d.delay
	}

	keep := prev & (dwc2.CSRstDone | dwc2.AHBIdle)
	d.regs[dwc2.RegGRSTCTL] = val&^(dwc2.CSRstDone|dwc2.AHBIdle) | keep
}

func (d *Device) triggerReset() {
	if d.hasResetDoneBit() {
		d.csrstDoneIn = d.delay
		d.resetPending = true
	} else {
		d.csrstClearIn = d.delay
	}
	d.ahbBusyIn = d.delay

	// A core reset clears the turnaround time and timeout calibration
	// fields of GUSBCFG; the PHY selection bits survive.
	d.regs[dwc2.RegGUSBCFG] &^= dwc2.TrdtMask | 7<<dwc2.TocalShift
}

func (d *Device) hasResetDoneBit() bool {
	return d.regs[dwc2.RegGSNPSID]&dwc2.RevisionMask >= 0x420a
}

// stepHandshakes advances pending handshakes by one poll. Bits flip only
// after the configured number of reads, so tests can verify that the
// sequencer actually polls until the documented condition holds.
func (d *Device) stepHandshakes() {
	reg := d.regs[dwc2.RegGRSTCTL]

	if reg&dwc2.CSRst != 0 && !d.hasResetDoneBit() {
		if d.csrstClearIn > 0 {
			d.csrstClearIn--
		}
		if d.csrstClearIn == 0 {
			reg &^= dwc2.CSRst
		}
	}
	if d.resetPending {
		if d.csrstDoneIn > 0 {
			d.csrstDoneIn--
		}
		if d.csrstDoneIn == 0 {
			reg |= dwc2.CSRstDone
			d.resetPending = false
		}
	}
	if reg&dwc2.TxFifoFlush != 0 {
		if d.txFlushIn > 0 {
			d.txFlushIn--
		}
		if d.txFlushIn == 0 {
			reg &^= dwc2.TxFifoFlush
		}
	}
	if reg&dwc2.RxFifoFlush != 0 {
		if d.rxFlushIn > 0 {
			d.rxFlushIn--
		}
		if d.rxFlushIn == 0 {
			reg &^= dwc2.RxFifoFlush
		}
	}

	if d.ahbBusyIn > 0 {
		d.ahbBusyIn--
		reg &^= dwc2.AHBIdle
	} else {
		reg |= dwc2.AHBIdle
	}

	d.regs[dwc2.RegGRSTCTL] = reg
}

// Reg returns the current value of a register without journaling a read.
func (d *Device) Reg(off uint32) uint32 {
	return d.regs[off]
}

// Journal returns all accesses in order.
func (d *Device) Journal() []Access {
	return d.journal
}

// Writes returns the journaled writes to one register, in order.
func (d *Device) Writes(off uint32) []Access {
	var out []Access
	for _, a := range d.journal {
		if a.Write && a.Off == off {
			out = append(out, a)
		}
	}
	return out
}

// Touched reports whether any write hit the given register.
func (d *Device) Touched(off uint32) bool {
	return len(d.Writes(off)) > 0
}

// ClearJournal discards the recorded accesses.
func (d *Device) ClearJournal() {
	d.journal = nil
}
