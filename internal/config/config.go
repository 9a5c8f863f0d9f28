// Package config loads and persists the driver's main configuration: the
// fixed record of vendor/product IDs, wireless selection, the device
// description regex, and the keymap/layout file paths.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/epomaker-go/epomakerctl/internal/kberrors"
)

// Main is the fixed-key JSON config record described in the wire layout.
// Field names are exported as-is (upper-snake) to match the on-disk JSON
// keys exactly; a config written by one version must round-trip through
// another without key drift.
type Main struct {
	VendorID               int    `json:"VENDOR_ID" yaml:"VENDOR_ID" toml:"VENDOR_ID"`
	ProductIDsWired        []int  `json:"PRODUCT_IDS_WIRED" yaml:"PRODUCT_IDS_WIRED" toml:"PRODUCT_IDS_WIRED"`
	ProductIDs24G          []int  `json:"PRODUCT_IDS_24G" yaml:"PRODUCT_IDS_24G" toml:"PRODUCT_IDS_24G"`
	UseWireless            bool   `json:"USE_WIRELESS" yaml:"USE_WIRELESS" toml:"USE_WIRELESS"`
	DeviceDescriptionRegex string `json:"DEVICE_DESCRIPTION_REGEX" yaml:"DEVICE_DESCRIPTION_REGEX" toml:"DEVICE_DESCRIPTION_REGEX"`
	ConfLayoutPath         string `json:"CONF_LAYOUT_PATH" yaml:"CONF_LAYOUT_PATH" toml:"CONF_LAYOUT_PATH"`
	ConfKeymapPath         string `json:"CONF_KEYMAP_PATH" yaml:"CONF_KEYMAP_PATH" toml:"CONF_KEYMAP_PATH"`
}

// Default returns the RT100's documented factory configuration.
func Default() Main {
	return Main{
		VendorID:              0x3151,
		ProductIDsWired:        []int{0x4010, 0x4015},
		ProductIDs24G:          []int{0x4011, 0x4016},
		UseWireless:            false,
		DeviceDescriptionRegex: "ROYUAN .* System Control",
		ConfLayoutPath:         "EpomakerRT100-UK-ISO.json",
		ConfKeymapPath:         "EpomakerRT100.json",
	}
}

// Directory returns ~/.epomaker-controller, creating it if absent.
func Directory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", kberrors.Wrap(kberrors.ErrConfig, "resolve home directory: %v", err)
	}
	dir := filepath.Join(home, ".epomaker-controller")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", kberrors.Wrap(kberrors.ErrConfig, "create config directory: %v", err)
	}
	return dir, nil
}

// mainPath is the on-disk location of the main config file.
func mainPath() (string, error) {
	dir, err := Directory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "main_config.json"), nil
}

// Load reads the main config, creating it with defaults if absent, and
// merging any keys missing from an existing file (rewriting the file with
// the merged result). Unsupported extra keys in the file are rejected.
func Load() (Main, error) {
	path, err := mainPath()
	if err != nil {
		return Main{}, err
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		def := Default()
		if err := save(path, def); err != nil {
			return Main{}, err
		}
		return def, nil
	}
	if err != nil {
		return Main{}, kberrors.Wrap(kberrors.ErrConfig, "read config %s: %v", path, err)
	}

	var onDisk map[string]json.RawMessage
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		return Main{}, kberrors.Wrap(kberrors.ErrConfig, "parse config %s: %v", path, err)
	}
	if err := verifyKeys(onDisk); err != nil {
		return Main{}, err
	}

	merged, rewrite := mergeDefaults(onDisk)
	var out Main
	if err := json.Unmarshal(merged, &out); err != nil {
		return Main{}, kberrors.Wrap(kberrors.ErrConfig, "decode merged config: %v", err)
	}
	if rewrite {
		if err := save(path, out); err != nil {
			return Main{}, err
		}
	}
	return out, nil
}

var allowedKeys = map[string]bool{
	"VENDOR_ID": true, "PRODUCT_IDS_WIRED": true, "PRODUCT_IDS_24G": true,
	"USE_WIRELESS": true, "DEVICE_DESCRIPTION_REGEX": true,
	"CONF_LAYOUT_PATH": true, "CONF_KEYMAP_PATH": true,
}

func verifyKeys(onDisk map[string]json.RawMessage) error {
	for k := range onDisk {
		if !allowedKeys[k] {
			return kberrors.Wrap(kberrors.ErrConfig, "unsupported config key %q", k)
		}
	}
	return nil
}

// mergeDefaults fills any key missing from onDisk with the default's value
// and reports whether anything needed filling.
func mergeDefaults(onDisk map[string]json.RawMessage) (json.RawMessage, bool) {
	defRaw, _ := json.Marshal(Default())
	var defMap map[string]json.RawMessage
	_ = json.Unmarshal(defRaw, &defMap)

	rewrite := false
	for k, v := range defMap {
		if _, ok := onDisk[k]; !ok {
			onDisk[k] = v
			rewrite = true
		}
	}
	out, _ := json.Marshal(onDisk)
	return out, rewrite
}

func save(path string, m Main) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return kberrors.Wrap(kberrors.ErrConfig, "marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return kberrors.Wrap(kberrors.ErrConfig, "write config %s: %v", path, err)
	}
	return nil
}

// DumpTemplate renders the default configuration in the requested format
// (json, yaml, or toml) to w, for `epomakerctl config init`.
func DumpTemplate(w io.Writer, format string) error {
	m := Default()
	var data []byte
	var err error
	switch strings.ToLower(format) {
	case "", "json":
		data, err = json.MarshalIndent(m, "", "  ")
	case "yaml", "yml":
		data, err = yaml.Marshal(m)
	case "toml":
		data, err = toml.Marshal(m)
	default:
		return kberrors.Wrap(kberrors.ErrConfig, "unsupported config format %q", format)
	}
	if err != nil {
		return kberrors.Wrap(kberrors.ErrConfig, "render config template: %v", err)
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}
