package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/epomaker-go/epomakerctl/commands"
	"github.com/epomaker-go/epomakerctl/internal/kberrors"
	"github.com/epomaker-go/epomakerctl/internal/logging"
	"github.com/epomaker-go/epomakerctl/keymap"
)

// SetRGBAllKeysCmd sets every known key in the keymap to one solid color.
type SetRGBAllKeysCmd struct {
	R      uint8 `arg:""`
	G      uint8 `arg:""`
	B      uint8 `arg:""`
	TimeMs uint8 `help:"Device-side interpolation delay to the next frame." default:"0"`
}

func (c *SetRGBAllKeysCmd) Run(g *Globals, logger *slog.Logger, raw logging.RawLogger) error {
	km, err := loadKeymap(g.Keymap)
	if err != nil {
		return err
	}

	colors := make(map[string]keymap.RGB, km.Len())
	for _, name := range km.Names() {
		colors[name] = keymap.RGB{R: c.R, G: c.G, B: c.B}
	}

	cmd, err := commands.NewKeyRGBCommand(km, []commands.Frame{{Colors: colors, TimeMs: c.TimeMs}})
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
	logger.Info("set all keys", "r", c.R, "g", c.G, "b", c.B, "keys", km.Len())
	return nil
}

// SetKeysCmd sets individual key colors for one animation frame, given as
// "KEYNAME:RRGGBB" pairs.
type SetKeysCmd struct {
	TimeMs uint8    `help:"Device-side interpolation delay to the next frame." default:"0"`
	Pairs  []string `arg:"" name:"key-color" help:"KEYNAME:RRGGBB, repeatable."`
}

func (c *SetKeysCmd) Run(g *Globals, logger *slog.Logger, raw logging.RawLogger) error {
	km, err := loadKeymap(g.Keymap)
	if err != nil {
		return err
	}

	colors := make(map[string]keymap.RGB, len(c.Pairs))
	for _, pair := range c.Pairs {
		name, hexColor, ok := strings.Cut(pair, ":")
		if !ok {
			return kberrors.Wrap(kberrors.ErrConfig, "invalid key-color %q, expected KEYNAME:RRGGBB", pair)
		}
		rgb, err := parseHexColor(hexColor)
		if err != nil {
			return kberrors.Wrap(kberrors.ErrConfig, "invalid color in %q: %v", pair, err)
		}
		if _, err := km.Lookup(name); err != nil {
			return err
		}
		colors[name] = rgb
	}

	cmd, err := commands.NewKeyRGBCommand(km, []commands.Frame{{Colors: colors, TimeMs: c.TimeMs}})
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
	logger.Info("set keys", "count", len(colors))
	return nil
}

func parseHexColor(s string) (keymap.RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return keymap.RGB{}, fmt.Errorf("expected 6 hex digits, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return keymap.RGB{}, err
	}
	return keymap.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// RemapKeysCmd points an internal key index at a USB HID usage code derived
// from a key-combo string such as "ctrl+alt+a" or "F5".
type RemapKeysCmd struct {
	KeyIndex int    `arg:""`
	KeyCombo string `arg:""`
}

func (c *RemapKeysCmd) Run(g *Globals, logger *slog.Logger, raw logging.RawLogger) error {
	usage, mods, err := commands.ParseKeyCombo(c.KeyCombo)
	if err != nil {
		return err
	}
	if mods != 0 {
		logger.Warn("remap target has modifier bits with no wire field to carry them; sending base usage code only",
			"combo", c.KeyCombo, "modifiers", mods)
	}

	cmd, err := commands.NewRemapKeyCommand(c.KeyIndex, usage)
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
	logger.Info("remapped key", "index", c.KeyIndex, "usage", commands.UsageDisplayName(usage))
	return nil
}

// ShowKeymapCmd lists the names known to the loaded keymap, optionally
// filtered to those containing a substring.
type ShowKeymapCmd struct {
	Filter string `help:"Only show names containing this substring."`
}

func (c *ShowKeymapCmd) Run(g *Globals, _ *slog.Logger, _ logging.RawLogger) error {
	km, err := loadKeymap(g.Keymap)
	if err != nil {
		return err
	}
	names := km.Names()
	for _, name := range names {
		if c.Filter != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(c.Filter)) {
			continue
		}
		key, _ := km.Lookup(name)
		fmt.Fprintf(os.Stdout, "%-20s value=%-4d display=%s\n", key.Name, key.Value, key.DisplayStr)
	}
	return nil
}
