package main

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/epomaker-go/epomakerctl/internal/logging"
	"github.com/epomaker-go/epomakerctl/transport"
)

// DevCmd groups device-diagnostic flags under a single subcommand, the way
// the spec's `dev [--print|--udev]` surface is described.
type DevCmd struct {
	Print bool `help:"Enumerate candidate HID devices without opening one."`
	Udev  bool `help:"Print a udev rule granting hidraw access (installation is out of scope)."`
}

func (c *DevCmd) Run(g *Globals, logger *slog.Logger, _ logging.RawLogger) error {
	if !c.Print && !c.Udev {
		c.Print = true
	}
	if c.Print {
		if err := printProbe(g.Wireless); err != nil {
			return err
		}
	}
	if c.Udev {
		fmt.Fprint(os.Stdout, udevRuleText())
	}
	return nil
}

// printProbe enumerates candidate devices and pretty-prints them, dimming
// the output with ANSI codes only when stdout is an actual terminal —
// golang.org/x/term.IsTerminal is the standard way the corpus checks this
// before emitting escape sequences.
func printProbe(wireless bool) error {
	found, err := transport.Probe(wireless)
	if err != nil {
		return err
	}
	colorize := term.IsTerminal(int(os.Stdout.Fd()))
	dim, reset := "", ""
	if colorize {
		dim, reset = "\x1b[2m", "\x1b[0m"
	}

	if len(found) == 0 {
		fmt.Printf("%sno matching HID device found%s\n", dim, reset)
		return nil
	}
	for _, d := range found {
		fmt.Printf("product=0x%04x path=%s%s%s%s\n", d.ProductID, d.Path, dim, fmtProduct(d.Product), reset)
	}
	return nil
}

func fmtProduct(s string) string {
	if s == "" {
		return ""
	}
	return " (" + s + ")"
}

// udevRuleText renders the udev rule granting unprivileged hidraw access to
// the keyboard's vendor/product IDs. Rule *installation* is explicitly out
// of scope (spec.md §1 Non-goals); this only renders the text.
func udevRuleText() string {
	const tmpl = `# epomakerctl: grant hidraw access to the Epomaker RT100
SUBSYSTEM=="hidraw", ATTRS{idVendor}=="3151", ATTRS{idProduct}=="4010", MODE="0666"
SUBSYSTEM=="hidraw", ATTRS{idVendor}=="3151", ATTRS{idProduct}=="4015", MODE="0666"
SUBSYSTEM=="hidraw", ATTRS{idVendor}=="3151", ATTRS{idProduct}=="4011", MODE="0666"
SUBSYSTEM=="hidraw", ATTRS{idVendor}=="3151", ATTRS{idProduct}=="4016", MODE="0666"
`
	return tmpl
}
