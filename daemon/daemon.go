// Package daemon runs the periodic time/CPU/temperature push loop that
// keeps the keyboard's LCD telemetry current.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/epomaker-go/epomakerctl/commands"
	"github.com/epomaker-go/epomakerctl/internal/kberrors"
	"github.com/epomaker-go/epomakerctl/transport"
)

// MinCycleDuration is the minimum wall-clock time between push cycles,
// regardless of how fast the samplers return. This caps the rate at what
// the device can actually render. Options.CycleGuard can replace it (the
// tests set it near zero); the CLI does not expose that override.
const MinCycleDuration = 1600 * time.Millisecond

// Sampler produces one scalar reading (CPU percent or a temperature in
// degrees Celsius). Sampling is an external collaborator — this package
// only consumes whatever value and error Sampler returns.
type Sampler func() (int, error)

// Options configures one daemon run.
type Options struct {
	// Temp samples a temperature reading each cycle. Nil skips temperature
	// pushes entirely (the CLI's bare "start-daemon" with no TEMP_KEY).
	Temp Sampler
	// CycleGuard overrides MinCycleDuration; zero uses the default. Tests
	// set this near-zero to avoid a slow suite.
	CycleGuard time.Duration
	Logger     *slog.Logger
}

// Run sends Time once, then repeats CPU/Temperature pushes until ctx is
// canceled or a send raises a device I/O error. Out-of-range sensor
// readings are logged and skipped; only a transport I/O error is fatal and
// aborts the loop. tr is closed on every return path.
func Run(ctx context.Context, tr *transport.Transport, cpu Sampler, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	guard := opts.CycleGuard
	if guard <= 0 {
		guard = MinCycleDuration
	}

	now := time.Now()
	timeCmd, err := commands.NewTimeCommand(now)
	if err != nil {
		return err
	}
	if err := tr.Send(timeCmd); err != nil {
		return closeAndReturn(tr, err)
	}
	logger.Info("pushed clock", "time", commands.FormatTimeLog(now))

	for {
		if ctx.Err() != nil {
			return closeAndReturn(tr, nil)
		}
		cycleStart := time.Now()

		if err := pushCPU(tr, cpu, logger); err != nil {
			return closeAndReturn(tr, err)
		}
		if opts.Temp != nil {
			if err := pushTemp(tr, opts.Temp, logger); err != nil {
				return closeAndReturn(tr, err)
			}
		}

		elapsed := time.Since(cycleStart)
		if remaining := guard - elapsed; remaining > 0 {
			select {
			case <-ctx.Done():
				return closeAndReturn(tr, nil)
			case <-time.After(remaining):
			}
		}
	}
}

func pushCPU(tr *transport.Transport, sample Sampler, logger *slog.Logger) error {
	percent, err := sample()
	if err != nil {
		logger.Warn("cpu sample failed, skipping cycle", "error", err)
		return nil
	}
	cmd, err := commands.NewCPUCommand(percent)
	if err != nil {
		if errors.Is(err, kberrors.ErrRange) {
			logger.Warn("cpu reading out of range, skipping", "value", percent, "error", err)
			return nil
		}
		return err
	}
	return tr.Send(cmd)
}

func pushTemp(tr *transport.Transport, sample Sampler, logger *slog.Logger) error {
	celsius, err := sample()
	if err != nil {
		logger.Warn("temperature sample failed, skipping cycle", "error", err)
		return nil
	}
	cmd, err := commands.NewTemperatureCommand(celsius)
	if err != nil {
		if errors.Is(err, kberrors.ErrRange) {
			logger.Warn("temperature reading out of range, skipping", "value", celsius, "error", err)
			return nil
		}
		return err
	}
	return tr.Send(cmd)
}

func closeAndReturn(tr *transport.Transport, cause error) error {
	_ = tr.Close()
	return cause
}
