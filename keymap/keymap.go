// Package keymap loads the keyboard's name-to-internal-index table from
// JSON and exposes it as an immutable lookup shared across a session.
package keymap

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/epomaker-go/epomakerctl/internal/kberrors"
)

// Key is one physical key: its human name, the device-internal index used
// in per-key RGB buffers and remap commands, and an optional display label
// for GUI rendering.
type Key struct {
	Name       string `json:"name"`
	Value      int    `json:"value"`
	DisplayStr string `json:"display_str,omitempty"`
}

// Map is the immutable name -> Key table loaded from a keymap JSON file.
// It is safe to share across goroutines since nothing mutates it after Load.
type Map struct {
	byName  map[string]Key
	byValue map[int]Key
}

// Load parses a keymap JSON array of {"name","value","display_str"?}
// objects. Names must be unique; an empty map is a ConfigError since a
// driver with no known keys cannot resolve any RGB frame or remap target.
func Load(r io.Reader) (*Map, error) {
	var entries []Key
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, kberrors.Wrap(kberrors.ErrConfig, "decode keymap: %v", err)
	}
	if len(entries) == 0 {
		return nil, kberrors.Wrap(kberrors.ErrConfig, "keymap is empty")
	}

	m := &Map{
		byName:  make(map[string]Key, len(entries)),
		byValue: make(map[int]Key, len(entries)),
	}
	for _, e := range entries {
		if _, dup := m.byName[e.Name]; dup {
			return nil, kberrors.Wrap(kberrors.ErrConfig, "duplicate keymap name %q", e.Name)
		}
		m.byName[e.Name] = e
		m.byValue[e.Value] = e
	}
	return m, nil
}

// Lookup resolves a key name to its Key, or returns a ConfigError if the
// name is unknown to this keymap.
func (m *Map) Lookup(name string) (Key, error) {
	k, ok := m.byName[name]
	if !ok {
		return Key{}, kberrors.Wrap(kberrors.ErrConfig, "unknown key name %q", name)
	}
	return k, nil
}

// ByValue resolves an internal key index back to its Key, if known.
func (m *Map) ByValue(value int) (Key, bool) {
	k, ok := m.byValue[value]
	return k, ok
}

// Names returns every key name known to this map, in no particular order.
func (m *Map) Names() []string {
	out := make([]string, 0, len(m.byName))
	for name := range m.byName {
		out = append(out, name)
	}
	return out
}

// Len returns the number of keys in the map.
func (m *Map) Len() int { return len(m.byName) }

// RGB is a single key's color, used to populate a KeyboardRGBFrame.
// Unset keys default to black (0,0,0) per spec.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
