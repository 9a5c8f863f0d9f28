package main

import (
	"context"
	"time"

	"github.com/epomaker-go/epomakerctl/internal/logging"
	"github.com/epomaker-go/epomakerctl/transport"
)

// Globals holds the flags shared by every subcommand: which physical
// connection to target, whether to actually touch a device, and the
// inter-report pacing §4.7 leaves tunable.
type Globals struct {
	Wireless bool          `help:"Target the 2.4 GHz receiver instead of the wired connection." short:"w"`
	DryRun   bool          `help:"Validate and record every report without opening a device." short:"n"`
	Delay    time.Duration `help:"Inter-report delay within a multi-report command (0 disables it, except for upload-image, which uses at least 10ms)." default:"1ms"`
	Keymap   string        `help:"Path to the keymap JSON file (overrides the main config's CONF_KEYMAP_PATH)." type:"path"`
	Config   string        `help:"Path to an epomakerctl CLI config file (JSON/YAML/TOML)." type:"path"`
	LogLevel string        `help:"Log level: trace, debug, info, warn, error." default:"info" enum:"trace,debug,info,warn,error"`
	LogFile  string        `help:"Also write logs to this file." type:"path"`
	RawLog   string        `help:"Hex-dump every outbound HID report to this file." type:"path"`
}

// openTransport opens a Transport using this invocation's shared flags. For
// image commands Delay is raised to at least 10ms since image carving is ~1000
// reports long and the device needs more breathing room there, matching the
// ~10ms-image/~1ms-otherwise split the spec's Open Question describes.
func (g *Globals) openTransport(ctx context.Context, raw logging.RawLogger, imageCommand bool) (*transport.Transport, error) {
	delay := g.Delay
	if imageCommand && delay < 10*time.Millisecond {
		delay = 10 * time.Millisecond
	}
	return transport.Open(ctx, transport.Options{
		Wireless:         g.Wireless,
		DryRun:           g.DryRun,
		InterReportDelay: delay,
		Raw:              raw,
	})
}
