//go:build !linux

package cmd

import (
	"errors"
	"io"
	"log/slog"

	"github.com/Alia5/GOTG/dwc2"
)

func (t *TargetConfig) openPlatform(*slog.Logger) (dwc2.RegisterBlock, io.Closer, error) {
	return nil, nil, errors.New("register access requires linux; use the simulate command instead")
}
