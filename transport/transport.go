// Package transport opens the keyboard's HID control interface, writes
// feature reports, and wires the process's termination signals to an
// idempotent close so a half-transmitted command never leaves the device
// in an unresponsive state.
package transport

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/epomaker-go/epomakerctl/internal/kberrors"
	"github.com/epomaker-go/epomakerctl/internal/logging"
	"github.com/epomaker-go/epomakerctl/report"
)

// VendorID is the Epomaker RT100's USB vendor ID.
const VendorID = 0x3151

// ProductIDsWired and ProductIDs24G are the keyboard's wired and 2.4 GHz
// product ID alternatives, tried in order until one enumerates any device.
var (
	ProductIDsWired = []uint16{0x4010, 0x4015}
	ProductIDs24G   = []uint16{0x4011, 0x4016}
)

// DefaultDescriptionRegex matches the HID interface that accepts feature
// reports without interfering with keystroke input.
const DefaultDescriptionRegex = `ROYUAN .* System Control`

// sender is the minimal surface a concrete HID backend or a dry-run stub
// must provide.
type sender interface {
	sendFeatureReport(b []byte) error
	close() error
}

// Options configures a Transport.
type Options struct {
	// Wireless selects the 2.4 GHz product ID set over the wired set.
	Wireless bool
	// DescriptionRegex overrides DefaultDescriptionRegex for interface
	// disambiguation on platforms that expose multiple HID interfaces.
	DescriptionRegex string
	// InterReportDelay is slept between reports within one command. The
	// spec leaves this tunable; 0 disables the delay entirely.
	InterReportDelay time.Duration
	// DryRun validates and records every report without opening a device.
	DryRun bool
	// Logger is kept on the Transport; defaults to slog.Default(). Transport
	// emits no records through it.
	Logger *slog.Logger
	// Raw, if set, receives a hex dump of every report actually sent.
	Raw logging.RawLogger
}

// Transport owns the exclusive HID handle (or dry-run stub) used to send
// every command this driver issues.
type Transport struct {
	send   sender
	delay  time.Duration
	logger *slog.Logger
	raw    logging.RawLogger

	closeOnce sync.Once
	closeErr  error
	closed    atomic.Bool

	stopSignals context.CancelFunc
}

func (t *Transport) isClosed() bool { return t.closed.Load() }

// Open enumerates the keyboard by vendor/product ID, selects the control
// interface, and returns a ready Transport. In DryRun mode no device is
// touched and every send is recorded instead.
func Open(ctx context.Context, opts Options) (*Transport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var s sender
	if opts.DryRun {
		s = newDryRunSender()
	} else {
		descRegex := opts.DescriptionRegex
		if descRegex == "" {
			descRegex = DefaultDescriptionRegex
		}
		ids := ProductIDsWired
		if opts.Wireless {
			ids = ProductIDs24G
		}
		hidSender, err := openHID(ids, descRegex)
		if err != nil {
			return nil, err
		}
		s = hidSender
	}

	t := &Transport{
		send:   s,
		delay:  opts.InterReportDelay,
		logger: logger,
		raw:    opts.Raw,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	t.stopSignals = stop
	go func() {
		<-sigCtx.Done()
		_ = t.Close()
	}()

	return t, nil
}

// Send transmits a prepared Command's reports in ascending index order,
// sleeping InterReportDelay between each. Reports are never reordered.
func (t *Transport) Send(cmd *report.Command) error {
	if t.isClosed() {
		return kberrors.Wrap(kberrors.ErrDeviceIO, "send on closed transport")
	}
	stream, err := cmd.BytesStream()
	if err != nil {
		return err
	}
	for i, img := range stream {
		b := img[:]
		if err := t.send.sendFeatureReport(b); err != nil {
			return kberrors.Wrap(kberrors.ErrDeviceIO, "send report %d: %v", i, err)
		}
		if t.raw != nil {
			t.raw.LogSend(i, b)
		}
		if t.delay > 0 && i < len(stream)-1 {
			time.Sleep(t.delay)
		}
	}
	return nil
}

// ProbeInfo describes one enumerated HID candidate, for `dev --print`
// diagnostics. It never opens the device.
type ProbeInfo struct {
	ProductID uint16
	Path      string
	Product   string
}

// Probe enumerates the keyboard's candidate product IDs (wired or 2.4 GHz
// per wireless) without opening any device. Used by the CLI's diagnostic
// `dev --print` surface, never by the core send path.
func Probe(wireless bool) ([]ProbeInfo, error) {
	ids := ProductIDsWired
	if wireless {
		ids = ProductIDs24G
	}
	return probeHID(ids)
}

// Close releases the HID handle. Idempotent and safe to call from a signal
// handler; a command in flight when this is called is simply abandoned,
// matching the device's lack of a rollback protocol.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		if t.stopSignals != nil {
			t.stopSignals()
		}
		t.closeErr = t.send.close()
	})
	return t.closeErr
}
