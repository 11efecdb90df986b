package cmd

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/GOTG/dwc2"
)

// Init runs the full core bring-up sequence on a controller.
type Init struct {
	TargetConfig `embed:""`

	Port       uint8  `help:"Port index" default:"0"`
	Role       string `help:"Controller role" enum:"device,host" default:"device"`
	Speed      string `help:"Target speed; auto picks high speed when the hardware supports it" enum:"auto,high,full" default:"auto"`
	DMA        bool   `help:"Deliver transfers via DMA instead of interrupt-driven slave mode"`
	EPInfoBase uint16 `help:"Endpoint-info FIFO base offset in words, used with --dma" default:"512"`
	MCU        string `help:"MCU family, for bring-up errata" enum:"generic,gd32vf103" default:"generic"`
	NoHS       bool   `help:"Disable high-speed support for the selected role" name:"no-hs"`
}

// Run is called by kong when the init command is executed.
func (c *Init) Run(logger *slog.Logger) error {
	regs, closer, err := c.open(logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	port := &dwc2.Port{
		Regs:     traced(regs, logger),
		Index:    c.Port,
		Config:   c.portConfig(),
		FifoBase: func(uint8) uint16 { return c.EPInfoBase },
		Log:      logger,
	}

	role := dwc2.RoleDevice
	if c.Role == "host" {
		role = dwc2.RoleHost
	}

	highSpeed := false
	switch c.Speed {
	case "high":
		highSpeed = true
	case "auto":
		highSpeed = port.IsHighSpeedCapable(role)
	}

	if err := port.InitCore(highSpeed, c.DMA); err != nil {
		return fmt.Errorf("core init failed: %w", err)
	}

	logger.Info("controller ready",
		"port", c.Port,
		"role", role.String(),
		"highSpeed", highSpeed,
		"dma", c.DMA,
	)
	return nil
}

func (c *Init) portConfig() dwc2.Config {
	cfg := dwc2.Config{
		DeviceEnabled:   c.Role == "device",
		HostEnabled:     c.Role == "host",
		DeviceHighSpeed: !c.NoHS,
		HostHighSpeed:   !c.NoHS,
	}
	if c.MCU == "gd32vf103" {
		cfg.MCU = dwc2.MCUGD32VF103
	}
	return cfg
}
