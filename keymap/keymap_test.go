package keymap_test

import (
	"strings"
	"testing"

	"github.com/epomaker-go/epomakerctl/keymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMap = `[
	{"name": "ESC", "value": 0, "display_str": "Esc"},
	{"name": "BACKQUOTE", "value": 1},
	{"name": "F5", "value": 30},
	{"name": "F6", "value": 36}
]`

func TestLoadResolvesByNameAndValue(t *testing.T) {
	m, err := keymap.Load(strings.NewReader(sampleMap))
	require.NoError(t, err)
	assert.Equal(t, 4, m.Len())

	k, err := m.Lookup("ESC")
	require.NoError(t, err)
	assert.Equal(t, 0, k.Value)
	assert.Equal(t, "Esc", k.DisplayStr)

	k2, ok := m.ByValue(30)
	require.True(t, ok)
	assert.Equal(t, "F5", k2.Name)
}

func TestLoadPreservesSparseGaps(t *testing.T) {
	m, err := keymap.Load(strings.NewReader(sampleMap))
	require.NoError(t, err)
	_, ok := m.ByValue(29)
	assert.False(t, ok)
	_, ok = m.ByValue(35)
	assert.False(t, ok)
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	dup := `[{"name":"A","value":1},{"name":"A","value":2}]`
	_, err := keymap.Load(strings.NewReader(dup))
	assert.Error(t, err)
}

func TestLoadRejectsEmptyMap(t *testing.T) {
	_, err := keymap.Load(strings.NewReader(`[]`))
	assert.Error(t, err)
}

func TestLookupUnknownNameFails(t *testing.T) {
	m, err := keymap.Load(strings.NewReader(sampleMap))
	require.NoError(t, err)
	_, err = m.Lookup("NOT_A_KEY")
	assert.Error(t, err)
}

func TestRGBString(t *testing.T) {
	c := keymap.RGB{R: 0xB4, G: 0x00, B: 0xFF}
	assert.Equal(t, "#B400FF", c.String())
}
