package main

import (
	"context"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epomaker-go/epomakerctl/daemon"
	"github.com/epomaker-go/epomakerctl/internal/logging"
)

// StartDaemonCmd runs the periodic time/CPU/temperature push loop.
//
// No real system-metrics sampler is wired: CPU readings always come from a
// synthetic sampler. A non-empty TempKey turns on temperature pushes, also
// fed by a synthetic sampler; the key itself does not select a sensor.
// --test only silences the warning logged when TempKey is given.
type StartDaemonCmd struct {
	TempKey string `arg:"" optional:"" help:"Temperature sensor key (enables synthetic temperature pushes; no sampler is wired)."`
	Test    bool   `help:"Suppress the no-sampler warning; readings are synthetic either way."`
}

func (c *StartDaemonCmd) Run(g *Globals, logger *slog.Logger, raw logging.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	tr, err := g.openTransport(ctx, raw, false)
	if err != nil {
		return err
	}
	defer tr.Close()

	var tempSampler daemon.Sampler
	if c.TempKey != "" {
		if !c.Test {
			logger.Warn("no temperature sampler wired; TEMP_KEY is advisory only", "temp_key", c.TempKey)
		}
		tempSampler = syntheticSampler(20, 15)
	}

	opts := daemon.Options{
		Temp:   tempSampler,
		Logger: logger,
	}
	err = daemon.Run(ctx, tr, syntheticSampler(50, 50), opts)
	if err != nil {
		return err
	}
	return nil
}

// syntheticSampler produces a slowly oscillating reading centered on mid
// with the given amplitude, clamped to [0,99]. Feeds every CPU reading and,
// when TEMP_KEY is given, every temperature reading.
func syntheticSampler(mid, amplitude float64) daemon.Sampler {
	start := time.Now()
	return func() (int, error) {
		t := time.Since(start).Seconds()
		v := mid + amplitude*math.Sin(t/10)
		if v < 0 {
			v = 0
		}
		if v > 99 {
			v = 99
		}
		return int(v), nil
	}
}

// ListTempDevicesCmd would enumerate available lm-sensors-style temperature
// sources; that enumeration lives in the external metrics sampler per
// spec.md §1, so this reports that plainly instead of pretending to find
// hardware it has no way to read.
type ListTempDevicesCmd struct{}

func (c *ListTempDevicesCmd) Run(_ *Globals, logger *slog.Logger, _ logging.RawLogger) error {
	logger.Info("no temperature sampler wired; device enumeration is an external collaborator")
	return nil
}
