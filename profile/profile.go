// Package profile captures and compares DWC2 identification profiles.
//
// Every DWC2 integration reports its configuration through the six-word
// GUID/GSNPSID/GHWCFG1..4 block. Capturing that block from working
// hardware and diffing it against a misbehaving part is the quickest way
// to spot a vendor integration difference. Captures are written as TOML;
// databases of known-good profiles are YAML.
package profile

import (
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/Alia5/GOTG/dwc2"
)

// wordNames are the register names of the identification block, in block
// order.
var wordNames = [6]string{"guid", "gsnpsid", "ghwcfg1", "ghwcfg2", "ghwcfg3", "ghwcfg4"}

// Profile is one controller's identification block with a human label.
// YAML accepts hex literals, so databases are usually written with 0x
// values.
type Profile struct {
	Name    string `toml:"name" yaml:"name"`
	GUID    uint32 `toml:"guid" yaml:"guid"`
	GSNPSID uint32 `toml:"gsnpsid" yaml:"gsnpsid"`
	GHWCFG1 uint32 `toml:"ghwcfg1" yaml:"ghwcfg1"`
	GHWCFG2 uint32 `toml:"ghwcfg2" yaml:"ghwcfg2"`
	GHWCFG3 uint32 `toml:"ghwcfg3" yaml:"ghwcfg3"`
	GHWCFG4 uint32 `toml:"ghwcfg4" yaml:"ghwcfg4"`
}

// FromBlock builds a profile from a block read off hardware.
func FromBlock(name string, b dwc2.IDBlock) Profile {
	return Profile{
		Name:    name,
		GUID:    b[0],
		GSNPSID: b[1],
		GHWCFG1: b[2],
		GHWCFG2: b[3],
		GHWCFG3: b[4],
		GHWCFG4: b[5],
	}
}

// Block returns the profile's identification block.
func (p Profile) Block() dwc2.IDBlock {
	return dwc2.IDBlock{p.GUID, p.GSNPSID, p.GHWCFG1, p.GHWCFG2, p.GHWCFG3, p.GHWCFG4}
}

// EncodeTOML writes the profile as a TOML capture.
func (p Profile) EncodeTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p)
}

// DecodeTOML reads a single TOML capture.
func DecodeTOML(r io.Reader) (Profile, error) {
	var p Profile
	if err := toml.NewDecoder(r).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// Database is a set of known-good profiles.
type Database struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadDatabase reads a YAML profile database.
func LoadDatabase(r io.Reader) (*Database, error) {
	var db Database
	if err := yaml.NewDecoder(r).Decode(&db); err != nil {
		return nil, fmt.Errorf("decode profile database: %w", err)
	}
	return &db, nil
}

// Match returns the first profile whose block equals b.
func (db *Database) Match(b dwc2.IDBlock) (Profile, bool) {
	for _, p := range db.Profiles {
		if p.Block() == b {
			return p, true
		}
	}
	return Profile{}, false
}

// Mismatch is one differing word between a reference profile and a block
// read off hardware.
type Mismatch struct {
	Word string
	Want uint32
	Got  uint32
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: want 0x%08X, got 0x%08X", m.Word, m.Want, m.Got)
}

// Diff lists the words where got differs from the reference profile.
func (p Profile) Diff(got dwc2.IDBlock) []Mismatch {
	want := p.Block()
	var out []Mismatch
	for i := range want {
		if want[i] != got[i] {
			out = append(out, Mismatch{Word: wordNames[i], Want: want[i], Got: got[i]})
		}
	}
	return out
}
