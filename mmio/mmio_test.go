//go:build linux

package mmio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/GOTG/dwc2"
	"github.com/Alia5/GOTG/mmio"
)

func tempImage(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regs.img")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestMapFileReadWrite(t *testing.T) {
	path := tempImage(t, 0x1000)

	r, err := mmio.MapFile(path, 0, 0x1000)
	require.NoError(t, err)
	defer r.Close()

	assert.Zero(t, r.Read(dwc2.RegGSNPSID))

	r.Write(dwc2.RegGSNPSID, dwc2.IDOTG|0x300a)
	r.Write(dwc2.RegGUSBCFG, 5<<dwc2.TrdtShift)
	assert.Equal(t, dwc2.IDOTG|0x300a, r.Read(dwc2.RegGSNPSID))
	assert.Equal(t, uint32(5<<dwc2.TrdtShift), r.Read(dwc2.RegGUSBCFG))
}

func TestMapFileSharedBetweenMappings(t *testing.T) {
	path := tempImage(t, 0x1000)

	a, err := mmio.MapFile(path, 0, 0x1000)
	require.NoError(t, err)
	defer a.Close()
	b, err := mmio.MapFile(path, 0, 0x1000)
	require.NoError(t, err)
	defer b.Close()

	a.Write(dwc2.RegGINTSTS, 0xA5A5_5A5A)
	assert.Equal(t, uint32(0xA5A5_5A5A), b.Read(dwc2.RegGINTSTS))
}

func TestBadOffsetPanics(t *testing.T) {
	r, err := mmio.MapFile(tempImage(t, 0x100), 0, 0x100)
	require.NoError(t, err)
	defer r.Close()

	assert.Panics(t, func() { r.Read(0x100) })
	assert.Panics(t, func() { r.Read(0x2) })
}

func TestCloseIdempotent(t *testing.T) {
	r, err := mmio.MapFile(tempImage(t, 0x100), 0, 0x100)
	require.NoError(t, err)
	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestRegionIsRegisterBlock(t *testing.T) {
	var _ dwc2.RegisterBlock = (*mmio.Region)(nil)
}
