package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/epomaker-go/epomakerctl/internal/config"
	"github.com/epomaker-go/epomakerctl/internal/logging"
)

// ConfigCmd groups config-related subcommands.
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write a main-config template in the requested format."`
}

// ConfigInitCmd scaffolds the driver's main config (vendor/product IDs,
// wireless selection, keymap/layout paths) in JSON, YAML, or TOML.
type ConfigInitCmd struct {
	Format string `help:"Output format." enum:"json,yaml,toml" default:"json"`
	Output string `help:"Destination file path. Defaults to stdout." type:"path"`
	Force  bool   `help:"Overwrite Output if it already exists."`
}

func (c *ConfigInitCmd) Run(_ *Globals, logger *slog.Logger, _ logging.RawLogger) error {
	if c.Output == "" {
		return config.DumpTemplate(os.Stdout, c.Format)
	}
	if !c.Force {
		if _, err := os.Stat(c.Output); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := config.DumpTemplate(f, c.Format); err != nil {
		return err
	}
	logger.Info("wrote config template", "path", c.Output, "format", c.Format)
	return nil
}
