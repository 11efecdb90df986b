package dwc2_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/GOTG/dwc2"
	"github.com/Alia5/GOTG/dwc2/simdev"
)

// allEnabled is a port config with both roles and high speed available,
// so tests exercise the hardware branches rather than the config gates.
var allEnabled = dwc2.Config{
	DeviceEnabled:   true,
	HostEnabled:     true,
	DeviceHighSpeed: true,
	HostHighSpeed:   true,
}

func newPort(d *simdev.Device) *dwc2.Port {
	return &dwc2.Port{Regs: d, Config: allEnabled}
}

func trdt(d *simdev.Device) uint32 {
	return d.Reg(dwc2.RegGUSBCFG) & dwc2.TrdtMask >> dwc2.TrdtShift
}

func TestInitCoreFullSpeedSlave(t *testing.T) {
	d := simdev.New(
		simdev.WithGSNPSID(dwc2.IDOTG|0x300a),
		simdev.WithRegister(dwc2.RegGINTSTS, 0x0440_0008),
		simdev.WithRegister(dwc2.RegGOTGINT, 0x0000_0004),
	)
	p := newPort(d)

	require.NoError(t, p.InitCore(false, false))

	// Slave mode: RX-FIFO-non-empty unmasked, DMA engine off.
	assert.NotZero(t, d.Reg(dwc2.RegGINTMSK)&dwc2.RxFifoLevel)
	assert.Zero(t, d.Reg(dwc2.RegGAHBCFG)&dwc2.DMAEnable)

	// Full-speed transceiver selected, turnaround time 5 clocks.
	assert.NotZero(t, d.Reg(dwc2.RegGUSBCFG)&dwc2.PhySel)
	assert.Equal(t, uint32(5), trdt(d))

	// Timeout calibration at maximum.
	assert.Equal(t, uint32(7), d.Reg(dwc2.RegGUSBCFG)&0x7)

	// Pending interrupt state acknowledged, clock ungated, TX empty level.
	assert.Zero(t, d.Reg(dwc2.RegGINTSTS))
	assert.Zero(t, d.Reg(dwc2.RegGOTGINT))
	assert.Zero(t, d.Reg(dwc2.RegPCGCCTL)&(dwc2.StopPhyClk|dwc2.GateHclk|dwc2.PowerClamp|dwc2.ResetPowerDown))
	assert.NotZero(t, d.Reg(dwc2.RegGAHBCFG)&dwc2.TxFifoEmptyLevel)
}

func TestInitCoreIdentityMismatch(t *testing.T) {
	d := simdev.New(simdev.WithGSNPSID(0x1234_5678))
	p := newPort(d)

	err := p.InitCore(false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, dwc2.ErrIdentification)

	// Nothing may be programmed after a failed identity check.
	for _, a := range d.Journal() {
		assert.False(t, a.Write, "register 0x%03X written after identification failure", a.Off)
	}
}

func TestInitCoreZeroIDErratum(t *testing.T) {
	// GD32VF103 reads the whole identification block as zero; the check is
	// waived there and init proceeds normally.
	d := simdev.New(simdev.WithGSNPSID(0))
	p := newPort(d)
	p.Config.MCU = dwc2.MCUGD32VF103

	assert.NoError(t, p.InitCore(false, false))

	d = simdev.New(simdev.WithGSNPSID(0))
	p = newPort(d)
	assert.Error(t, p.InitCore(false, false))
}

func TestInitCoreHighSpeedULPIDMA(t *testing.T) {
	d := simdev.New(
		simdev.WithGSNPSID(dwc2.IDHSIoT|0x330a),
		simdev.WithHSPhy(dwc2.PhyULPI),
	)
	p := newPort(d)
	p.Index = 1
	p.FifoBase = func(port uint8) uint16 { return 0x200 + uint16(port) }

	require.NoError(t, p.InitCore(true, true))

	// External ULPI transceiver: 8-bit, single data rate, internal VBUS
	// control, serial sub-modes off.
	cfg := d.Reg(dwc2.RegGUSBCFG)
	assert.NotZero(t, cfg&dwc2.ULPIUTMISel)
	assert.Zero(t, cfg&dwc2.PhySel)
	assert.Zero(t, cfg&dwc2.PhyIf16)
	assert.Zero(t, cfg&dwc2.DDRSel)
	assert.Zero(t, cfg&(dwc2.ULPIEvbusD|dwc2.ULPIEvbusI))
	assert.Zero(t, cfg&(dwc2.ULPIFsLs|dwc2.ULPIClkSusM))

	// 8-bit interface means 9 clocks of turnaround.
	assert.Equal(t, uint32(9), trdt(d))

	// DMA with the fixed burst length; both GDFIFOCFG halves carry the
	// allocated base.
	ahb := d.Reg(dwc2.RegGAHBCFG)
	assert.NotZero(t, ahb&dwc2.DMAEnable)
	assert.Equal(t, dwc2.DMABurstLen, ahb&(0xF<<dwc2.BurstLenShift))
	assert.Equal(t, uint32(0x0201_0201), d.Reg(dwc2.RegGDFIFOCFG))

	// DMA path must not unmask the RX FIFO interrupt.
	assert.Zero(t, d.Reg(dwc2.RegGINTMSK)&dwc2.RxFifoLevel)
}

func TestInitCoreTransferModesExclusive(t *testing.T) {
	tests := []struct {
		name string
		dma  bool
	}{
		{name: "dma", dma: true},
		{name: "slave", dma: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := simdev.New()
			p := newPort(d)
			require.NoError(t, p.InitCore(false, tt.dma))

			dmaOn := d.Reg(dwc2.RegGAHBCFG)&dwc2.DMAEnable != 0
			rxMasked := d.Reg(dwc2.RegGINTMSK)&dwc2.RxFifoLevel != 0
			assert.Equal(t, tt.dma, dmaOn)
			assert.Equal(t, !tt.dma, rxMasked)
		})
	}
}

func TestIsHighSpeedCapable(t *testing.T) {
	tests := []struct {
		name string
		cfg  dwc2.Config
		phy  dwc2.PhyType
		role dwc2.Role
		want bool
	}{
		{
			name: "device with HS phy",
			cfg:  allEnabled,
			phy:  dwc2.PhyUTMI,
			role: dwc2.RoleDevice,
			want: true,
		},
		{
			name: "no HS phy",
			cfg:  allEnabled,
			phy:  dwc2.PhyNotSupported,
			role: dwc2.RoleDevice,
			want: false,
		},
		{
			name: "device HS disabled",
			cfg: dwc2.Config{
				DeviceEnabled: true,
				HostEnabled:   true,
				HostHighSpeed: true,
			},
			phy:  dwc2.PhyULPI,
			role: dwc2.RoleDevice,
			want: false,
		},
		{
			name: "host HS disabled",
			cfg: dwc2.Config{
				DeviceEnabled:   true,
				HostEnabled:     true,
				DeviceHighSpeed: true,
			},
			phy:  dwc2.PhyULPI,
			role: dwc2.RoleHost,
			want: false,
		},
		{
			name: "host with both phys",
			cfg:  allEnabled,
			phy:  dwc2.PhyUTMIULPI,
			role: dwc2.RoleHost,
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := simdev.New(simdev.WithHSPhy(tt.phy))
			p := &dwc2.Port{Regs: d, Config: tt.cfg}
			assert.Equal(t, tt.want, p.IsHighSpeedCapable(tt.role))
		})
	}
}

func TestCheckIdentityKnownIDs(t *testing.T) {
	for _, id := range []uint32{
		dwc2.IDOTG | 0x271a,
		dwc2.IDFSIoT | 0x310a,
		dwc2.IDHSIoT | 0x330a,
	} {
		d := simdev.New(simdev.WithGSNPSID(id))
		p := newPort(d)
		assert.NoError(t, p.CheckIdentity(), "gsnpsid 0x%08X", id)
	}
}

func TestInitCoreRepeatable(t *testing.T) {
	// A second call restarts the whole sequence from scratch.
	d := simdev.New()
	p := newPort(d)
	require.NoError(t, p.InitCore(false, false))
	d.ClearJournal()
	require.NoError(t, p.InitCore(false, true))
	assert.NotZero(t, d.Reg(dwc2.RegGAHBCFG)&dwc2.DMAEnable)
}

func TestInitCoreErrorWrapsValue(t *testing.T) {
	d := simdev.New(simdev.WithGSNPSID(0xDEAD_BEEF))
	err := newPort(d).InitCore(false, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dwc2.ErrIdentification))
	assert.Contains(t, err.Error(), "0xDEADBEEF")
}
