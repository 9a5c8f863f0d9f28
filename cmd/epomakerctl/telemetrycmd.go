package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/epomaker-go/epomakerctl/commands"
	"github.com/epomaker-go/epomakerctl/internal/config"
	"github.com/epomaker-go/epomakerctl/internal/logging"
)

// SendTimeCmd pushes the host's current time once.
type SendTimeCmd struct{}

func (c *SendTimeCmd) Run(g *Globals, logger *slog.Logger, raw logging.RawLogger) error {
	now := time.Now()
	cmd, err := commands.NewTimeCommand(now)
	if err != nil {
		return err
	}
	tr, err := g.openTransport(context.Background(), raw, false)
	if err != nil {
		return err
	}
	defer tr.Close()
	if err := tr.Send(cmd); err != nil {
		return err
	}
	logger.Info("pushed time", "time", commands.FormatTimeLog(now))
	return nil
}

// SendTemperatureCmd pushes one temperature sample, 0..99 inclusive.
type SendTemperatureCmd struct {
	Celsius int `arg:"" name:"n"`
}

func (c *SendTemperatureCmd) Run(g *Globals, logger *slog.Logger, raw logging.RawLogger) error {
	cmd, err := commands.NewTemperatureCommand(c.Celsius)
	if err != nil {
		return err
	}
	tr, err := g.openTransport(context.Background(), raw, false)
	if err != nil {
		return err
	}
	defer tr.Close()
	if err := tr.Send(cmd); err != nil {
		return err
	}
	logger.Info("pushed temperature", "celsius", c.Celsius)
	return nil
}

// SendCPUCmd pushes one CPU utilization sample. The device field is 0..99;
// per the spec's Open Question, the CLI clamps rather than rejects a caller
// who historically passed 100.
type SendCPUCmd struct {
	Percent int `arg:"" name:"n"`
}

func (c *SendCPUCmd) Run(g *Globals, logger *slog.Logger, raw logging.RawLogger) error {
	percent := c.Percent
	if percent > 99 {
		logger.Warn("clamping cpu percent to device's 0..99 range", "requested", percent)
		percent = 99
	}
	cmd, err := commands.NewCPUCommand(percent)
	if err != nil {
		return err
	}
	tr, err := g.openTransport(context.Background(), raw, false)
	if err != nil {
		return err
	}
	defer tr.Close()
	if err := tr.Send(cmd); err != nil {
		return err
	}
	logger.Info("pushed cpu", "percent", percent)
	return nil
}

// CycleLightModesCmd advances the built-in lighting profile by one step,
// persisting the last-selected mode in the config directory so repeated
// invocations cycle rather than always selecting mode 0.
type CycleLightModesCmd struct {
	Speed      int `help:"Animation speed, 0-5." default:"2"`
	Brightness int `help:"Brightness level, 0-4." default:"4"`
}

func (c *CycleLightModesCmd) Run(g *Globals, logger *slog.Logger, raw logging.RawLogger) error {
	dir, err := config.Directory()
	if err != nil {
		return err
	}
	statePath := filepath.Join(dir, "last_profile_mode")

	mode := 0
	if prev, err := os.ReadFile(statePath); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(string(prev))); err == nil {
			mode = (v + 1) % commands.ProfileModeCount
		}
	}

	cmd, err := commands.NewProfileCommand(commands.Profile{
		Mode:       mode,
		Speed:      c.Speed,
		Brightness: c.Brightness,
		Dazzle:     0x07,
	})
	if err != nil {
		return err
	}

	tr, err := g.openTransport(context.Background(), raw, false)
	if err != nil {
		return err
	}
	defer tr.Close()
	if err := tr.Send(cmd); err != nil {
		return err
	}

	_ = os.WriteFile(statePath, []byte(strconv.Itoa(mode)), 0o644)
	logger.Info("cycled lighting mode", "mode", mode)
	return nil
}
