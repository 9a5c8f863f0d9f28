package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/epomaker-go/epomakerctl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sandboxHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	home := sandboxHome(t)
	m, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), m)

	path := filepath.Join(home, ".epomaker-controller", "main_config.json")
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestLoadMergesMissingKeysAndRewrites(t *testing.T) {
	home := sandboxHome(t)
	dir := filepath.Join(home, ".epomaker-controller")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "main_config.json")

	partial := map[string]any{"VENDOR_ID": 0x3151, "USE_WIRELESS": true}
	raw, err := json.Marshal(partial)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	m, err := config.Load()
	require.NoError(t, err)
	assert.True(t, m.UseWireless)
	assert.Equal(t, config.Default().ConfKeymapPath, m.ConfKeymapPath)

	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]any
	require.NoError(t, json.Unmarshal(rewritten, &onDisk))
	_, hasKeymapPath := onDisk["CONF_KEYMAP_PATH"]
	assert.True(t, hasKeymapPath)
}

func TestLoadRejectsUnsupportedKeys(t *testing.T) {
	home := sandboxHome(t)
	dir := filepath.Join(home, ".epomaker-controller")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "main_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"NOT_A_KEY": 1}`), 0o644))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDumpTemplateFormats(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		var buf bytes.Buffer
		err := config.DumpTemplate(&buf, format)
		require.NoError(t, err)
		assert.NotEmpty(t, buf.String())
	}
}

func TestDumpTemplateRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := config.DumpTemplate(&buf, "ini")
	assert.Error(t, err)
}
