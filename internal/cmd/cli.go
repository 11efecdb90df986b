// Package cmd holds the gotg CLI commands.
package cmd

// LogConfig is the shared logging configuration.
type LogConfig struct {
	Level string `help:"Log level (trace|debug|info|warn|error)" default:"info" env:"GOTG_LOG_LEVEL"`
	File  string `help:"Write logs to a file instead of stdout/stderr" env:"GOTG_LOG_FILE"`
}

// CLI is the root command structure parsed by kong.
type CLI struct {
	Config string    `help:"Path to a config file (json, yaml or toml)" type:"path"`
	Log    LogConfig `embed:"" prefix:"log."`

	Info     Info     `cmd:"" help:"Identify a controller and inspect its hardware profile"`
	Init     Init     `cmd:"" help:"Run the core bring-up sequence on a controller"`
	Simulate Simulate `cmd:"" help:"Run the bring-up sequence against the built-in simulator"`
}
