package dwc2

// Revision is the core revision from the low half of GSNPSID.
type Revision uint16

// revCSRstDone is the first revision where the soft reset request bit is
// write-only and completion is signalled through the separate W1C done bit.
const revCSRstDone Revision = 0x420a

// hasResetDoneBit reports whether the reset handshake uses CSRstDone
// instead of a self-clearing CSRst.
func (r Revision) hasResetDoneBit() bool {
	return r >= revCSRstDone
}

// PhyType enumerates the high-speed PHY interface reported by GHWCFG2.
type PhyType uint8

const (
	PhyNotSupported PhyType = iota // no high-speed PHY
	PhyUTMI                        // internal UTMI+
	PhyULPI                        // external ULPI
	PhyUTMIULPI                    // both; the UTMI+ interface is used
)

func (p PhyType) String() string {
	switch p {
	case PhyNotSupported:
		return "none"
	case PhyUTMI:
		return "UTMI+"
	case PhyULPI:
		return "ULPI"
	case PhyUTMIULPI:
		return "UTMI+/ULPI"
	default:
		return "unknown"
	}
}

// PhyWidth is the UTMI+ PHY data interface width.
type PhyWidth uint8

const (
	Width8  PhyWidth = iota // 8-bit interface
	Width16                 // 16-bit interface
)

func (w PhyWidth) String() string {
	if w == Width16 {
		return "16-bit"
	}
	return "8-bit"
}

// Capabilities holds the hardware-reported PHY topology, decoded once from
// GHWCFG2/GHWCFG4 at the start of initialization and treated as immutable
// afterwards.
type Capabilities struct {
	HSPhy PhyType
	Width PhyWidth
}

// ReadCapabilities decodes the PHY capability fields from the hardware
// configuration registers.
func ReadCapabilities(r RegisterBlock) Capabilities {
	hsPhy := r.Read(RegGHWCFG2) >> hsPhyTypeShift & hsPhyTypeMask
	caps := Capabilities{HSPhy: PhyType(hsPhy)}
	if r.Read(RegGHWCFG4)&phyDataWidth16 != 0 {
		caps.Width = Width16
	}
	return caps
}

// ReadRevision decodes the core revision from GSNPSID.
func ReadRevision(r RegisterBlock) Revision {
	return Revision(r.Read(RegGSNPSID) & RevisionMask)
}
