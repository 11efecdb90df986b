//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Alia5/GOTG/dwc2"
	"github.com/Alia5/GOTG/mmio"
)

func (t *TargetConfig) openPlatform(logger *slog.Logger) (dwc2.RegisterBlock, io.Closer, error) {
	if t.Image != "" {
		logger.Debug("mapping register image", "path", t.Image, "size", t.MemSize)
		r, err := mmio.MapFile(t.Image, 0, t.MemSize)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	}

	if t.MemBase == "" {
		return nil, nil, errors.New("either --mem-base or --image is required")
	}
	base, err := strconv.ParseUint(strings.TrimPrefix(t.MemBase, "0x"), 16, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --mem-base %q: %w", t.MemBase, err)
	}

	logger.Debug("mapping controller registers", "base", t.MemBase, "size", t.MemSize)
	r, err := mmio.MapDevMem(base, t.MemSize)
	if err != nil {
		return nil, nil, err
	}
	return r, r, nil
}
