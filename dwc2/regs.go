package dwc2

// Register offsets into the global register block, in bytes from the
// controller base address. Only the global (GOTG_*/G*) and power/clock
// gating registers are needed for core bring-up; host and device mode
// register groups live above 0x400 and belong to the protocol layer.
const (
	RegGOTGCTL   uint32 = 0x000 // OTG control and status
	RegGOTGINT   uint32 = 0x004 // OTG interrupt status (W1C)
	RegGAHBCFG   uint32 = 0x008 // AHB configuration
	RegGUSBCFG   uint32 = 0x00C // USB configuration
	RegGRSTCTL   uint32 = 0x010 // reset control
	RegGINTSTS   uint32 = 0x014 // global interrupt status (W1C)
	RegGINTMSK   uint32 = 0x018 // global interrupt mask
	RegGRXFSIZ   uint32 = 0x024 // receive FIFO size
	RegGUID      uint32 = 0x03C // user ID
	RegGSNPSID   uint32 = 0x040 // Synopsys ID and core revision
	RegGHWCFG1   uint32 = 0x044 // hardware config 1 (endpoint directions)
	RegGHWCFG2   uint32 = 0x048 // hardware config 2 (op mode, PHY types)
	RegGHWCFG3   uint32 = 0x04C // hardware config 3 (FIFO depth, widths)
	RegGHWCFG4   uint32 = 0x050 // hardware config 4 (PHY data width, DMA)
	RegGDFIFOCFG uint32 = 0x05C // DFIFO software configuration
	RegPCGCCTL   uint32 = 0xE00 // power and clock gating control
)

// GRSTCTL bits.
const (
	CSRst          uint32 = 1 << 0  // core soft reset request
	RxFifoFlush    uint32 = 1 << 4  // RX FIFO flush (self-clearing)
	TxFifoFlush    uint32 = 1 << 5  // TX FIFO flush (self-clearing)
	TxFifoNumShift        = 6       // TX FIFO number for flush
	CSRstDone      uint32 = 1 << 29 // soft reset done, v4.20a and later (W1C)
	AHBIdle        uint32 = 1 << 31 // AHB master idle
)

// TxFifoAll selects all transmit FIFOs for a flush.
const TxFifoAll uint8 = 0x10

// GUSBCFG bits.
const (
	TocalShift         = 0       // FS/HS timeout calibration, 3 bits
	PhyIf16     uint32 = 1 << 3  // UTMI+ interface width: 16-bit when set
	ULPIUTMISel uint32 = 1 << 4  // select ULPI (set) vs UTMI+ (clear)
	PhySel      uint32 = 1 << 6  // select internal FS serial transceiver
	DDRSel      uint32 = 1 << 7  // ULPI double data rate
	TrdtShift          = 10      // USB turnaround time, 4 bits
	TrdtMask    uint32 = 0xF << TrdtShift
	ULPIFsLs    uint32 = 1 << 17 // ULPI FS/LS serial mode
	ULPIClkSusM uint32 = 1 << 19 // ULPI clock suspend mode
	ULPIEvbusD  uint32 = 1 << 20 // ULPI external VBUS drive
	ULPIEvbusI  uint32 = 1 << 21 // ULPI external VBUS indicator
)

// GAHBCFG bits.
const (
	GlobalIntMask    uint32 = 1 << 0 // global interrupt enable
	BurstLenShift           = 1      // AHB burst length, 4 bits
	DMAEnable        uint32 = 1 << 5 // internal DMA engine enable
	TxFifoEmptyLevel uint32 = 1 << 7 // TX FIFO empty level: interrupt on empty
)

// DMABurstLen is the fixed AHB burst length programmed together with
// DMAEnable. DMA can only be configured right after a core reset.
const DMABurstLen uint32 = 2 << BurstLenShift

// GINTSTS / GINTMSK bits. Only the bit this core touches; the protocol
// layer owns the rest of the mask.
const (
	RxFifoLevel uint32 = 1 << 4 // RX FIFO non-empty
)

// PCGCCTL bits.
const (
	StopPhyClk     uint32 = 1 << 0 // stop PHY clock
	GateHclk       uint32 = 1 << 1 // gate HCLK to the core
	PowerClamp     uint32 = 1 << 2 // power clamp enable
	ResetPowerDown uint32 = 1 << 3 // reset power-down modules
)

// GDFIFOCFG fields: low half is the DFIFO depth, high half the endpoint
// info base. During DMA setup both are programmed to the same offset.
const EPInfoBaseShift = 16

// GSNPSID identity values. The upper half identifies the product line,
// the lower half the core revision (BCD-ish, e.g. 0x300a is 3.00a).
const (
	IDMask       uint32 = 0xFFFF0000
	RevisionMask uint32 = 0x0000FFFF

	IDOTG   uint32 = 0x4F540000 // "OT" OTG core
	IDFSIoT uint32 = 0x55310000 // "U1" FS IoT core
	IDHSIoT uint32 = 0x55320000 // "U2" HS IoT core
)

// GHWCFG2 fields.
const (
	hsPhyTypeShift = 6
	hsPhyTypeMask  = 0x3
)

// GHWCFG4 fields.
const (
	// UTMI+ PHY data width: 8-bit when clear, 16-bit when set.
	phyDataWidth16 uint32 = 1 << 14
)
