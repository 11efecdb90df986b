package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/Alia5/GOTG/dwc2"
	"github.com/Alia5/GOTG/profile"
)

// Info identifies a controller, prints its identification block, and
// optionally captures it or compares it against a known-good database.
type Info struct {
	TargetConfig `embed:""`

	Profiles string `help:"YAML database of known-good profiles to compare against" type:"path"`
	Capture  string `help:"Write the identification block to a TOML profile capture" type:"path"`
	Name     string `help:"Profile name recorded in the capture" default:"capture"`
}

// Run is called by kong when the info command is executed.
func (c *Info) Run(logger *slog.Logger) error {
	regs, closer, err := c.open(logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	block := dwc2.ReadIDBlock(regs)
	printBlock(block)

	if c.Capture != "" {
		f, err := os.Create(c.Capture)
		if err != nil {
			return fmt.Errorf("capture: %w", err)
		}
		defer f.Close()
		if err := profile.FromBlock(c.Name, block).EncodeTOML(f); err != nil {
			return fmt.Errorf("capture: %w", err)
		}
		logger.Info("profile captured", "path", c.Capture, "name", c.Name)
	}

	if c.Profiles != "" {
		f, err := os.Open(c.Profiles)
		if err != nil {
			return err
		}
		defer f.Close()
		db, err := profile.LoadDatabase(f)
		if err != nil {
			return err
		}
		if p, ok := db.Match(block); ok {
			fmt.Printf("matches known profile %q\n", p.Name)
		} else {
			fmt.Println("no exact profile match; nearest diffs:")
			for _, p := range db.Profiles {
				fmt.Printf("  %s:\n", p.Name)
				for _, m := range p.Diff(block) {
					fmt.Printf("    %s\n", m)
				}
			}
		}
	}
	return nil
}

// printBlock writes the identification block: one annotated word per line
// on a terminal, a single machine-friendly line otherwise.
func printBlock(b dwc2.IDBlock) {
	names := []string{"guid", "gsnpsid", "ghwcfg1", "ghwcfg2", "ghwcfg3", "ghwcfg4"}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		for i, v := range b {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Printf("%s=0x%08X", names[i], v)
		}
		fmt.Println()
		return
	}

	for i, v := range b {
		fmt.Printf("%-8s 0x%08X\n", names[i], v)
	}
}
