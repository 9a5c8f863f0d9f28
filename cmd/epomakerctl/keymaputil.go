package main

import (
	"os"
	"path/filepath"

	"github.com/epomaker-go/epomakerctl/internal/config"
	"github.com/epomaker-go/epomakerctl/internal/kberrors"
	"github.com/epomaker-go/epomakerctl/keymap"
)

// loadKeymap resolves the keymap file from an explicit override or the main
// config's CONF_KEYMAP_PATH, relative to the config directory when the path
// isn't absolute.
func loadKeymap(override string) (*keymap.Map, error) {
	path := override
	if path == "" {
		m, err := config.Load()
		if err != nil {
			return nil, err
		}
		path = m.ConfKeymapPath
	}
	if !filepath.IsAbs(path) {
		dir, err := config.Directory()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, kberrors.Wrap(kberrors.ErrConfig, "open keymap %s: %v", path, err)
	}
	defer f.Close()
	return keymap.Load(f)
}
