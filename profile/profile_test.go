package profile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/GOTG/dwc2"
	"github.com/Alia5/GOTG/profile"
)

var stm32f407 = dwc2.IDBlock{
	0x0000_1200,
	0x4F54_281A,
	0x0000_0000,
	0x229D_CD20,
	0x0200_00E8,
	0x0FF0_8030,
}

func TestCaptureRoundTrip(t *testing.T) {
	p := profile.FromBlock("stm32f407-fs", stm32f407)
	assert.Equal(t, stm32f407, p.Block())

	var buf bytes.Buffer
	require.NoError(t, p.EncodeTOML(&buf))
	assert.Contains(t, buf.String(), `name = "stm32f407-fs"`)

	back, err := profile.DecodeTOML(&buf)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestLoadDatabase(t *testing.T) {
	const db = `
profiles:
  - name: stm32f407-fs
    guid: 0x00001200
    gsnpsid: 0x4F54281A
    ghwcfg1: 0x00000000
    ghwcfg2: 0x229DCD20
    ghwcfg3: 0x020000E8
    ghwcfg4: 0x0FF08030
  - name: esp32s2
    gsnpsid: 0x4F54400A
`
	loaded, err := profile.LoadDatabase(strings.NewReader(db))
	require.NoError(t, err)
	require.Len(t, loaded.Profiles, 2)

	p, ok := loaded.Match(stm32f407)
	require.True(t, ok)
	assert.Equal(t, "stm32f407-fs", p.Name)

	_, ok = loaded.Match(dwc2.IDBlock{})
	assert.False(t, ok)
}

func TestLoadDatabaseBadInput(t *testing.T) {
	_, err := profile.LoadDatabase(strings.NewReader("profiles: [not a mapping"))
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	p := profile.FromBlock("ref", stm32f407)

	assert.Empty(t, p.Diff(stm32f407))

	got := stm32f407
	got[1] = 0
	got[5] = 0x0FF0_0030
	diffs := p.Diff(got)
	require.Len(t, diffs, 2)
	assert.Equal(t, "gsnpsid", diffs[0].Word)
	assert.Equal(t, "ghwcfg4", diffs[1].Word)
	assert.Contains(t, diffs[0].String(), "want 0x4F54281A")
	assert.Contains(t, diffs[0].String(), "got 0x00000000")
}
