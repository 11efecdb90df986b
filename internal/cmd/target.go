package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/Alia5/GOTG/dwc2"
	"github.com/Alia5/GOTG/internal/log"
)

// TargetConfig selects the register block a command operates on: either a
// live controller through /dev/mem or a register image file.
type TargetConfig struct {
	MemBase string `help:"Physical base address of the register block (hex)" env:"GOTG_MEM_BASE"`
	MemSize int    `help:"Size of the register block mapping in bytes" default:"4096" env:"GOTG_MEM_SIZE"`
	Image   string `help:"Map a register image file instead of /dev/mem" type:"path" env:"GOTG_IMAGE"`
}

// openTarget is implemented per platform; register access needs /dev/mem
// or an mmap-able image.
func (t *TargetConfig) open(logger *slog.Logger) (dwc2.RegisterBlock, io.Closer, error) {
	return t.openPlatform(logger)
}

// tracedBlock logs every register access at trace level.
type tracedBlock struct {
	r      dwc2.RegisterBlock
	logger *slog.Logger
}

// traced wraps a register block so each access is visible with
// --log.level=trace.
func traced(r dwc2.RegisterBlock, logger *slog.Logger) dwc2.RegisterBlock {
	return tracedBlock{r: r, logger: logger}
}

func (t tracedBlock) Read(off uint32) uint32 {
	v := t.r.Read(off)
	t.logger.Log(context.Background(), log.LevelTrace, "reg read", "off", off, "val", v)
	return v
}

func (t tracedBlock) Write(off, val uint32) {
	t.logger.Log(context.Background(), log.LevelTrace, "reg write", "off", off, "val", val)
	t.r.Write(off, val)
}
