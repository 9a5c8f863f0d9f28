package commands_test

import (
	"strings"
	"testing"

	"github.com/epomaker-go/epomakerctl/commands"
	"github.com/epomaker-go/epomakerctl/keymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyRGBTestMap = `[
	{"name": "A", "value": 9},
	{"name": "ESC", "value": 0},
	{"name": "BOUNDARY", "value": 18}
]`

func loadTestMap(t *testing.T) *keymap.Map {
	t.Helper()
	m, err := keymap.Load(strings.NewReader(keyRGBTestMap))
	require.NoError(t, err)
	return m
}

// S4 — Key RGB single frame, single key.
func TestKeyRGBCommandSingleFrameSingleKey(t *testing.T) {
	m := loadTestMap(t)
	frames := []commands.Frame{
		{TimeMs: 50, Colors: map[string]keymap.RGB{"A": {R: 255, G: 0, B: 0}}},
	}
	cmd, err := commands.NewKeyRGBCommand(m, frames)
	require.NoError(t, err)
	require.True(t, cmd.IsPrepared())

	reps := cmd.Reports()
	require.Len(t, reps, 8) // 1 starter + 7 sub-reports

	report1 := reps[1].Bytes()
	assert.Equal(t, []byte{0x19, 0x00, 0x00, 0x01, 0x32, 0x00, 0x00}, report1[:7])

	// key A has value 9: offset 3*9=27 within the 392-byte frame buffer,
	// which lands inside sub-report 0 (bytes 0..55 of the payload).
	payload := report1[8:]
	assert.Equal(t, byte(0xFF), payload[27])
	assert.Equal(t, byte(0x00), payload[28])
	assert.Equal(t, byte(0x00), payload[29])

	for sub := 2; sub <= 7; sub++ {
		b := reps[sub].Bytes()
		for _, x := range b[8:64] {
			assert.Equal(t, byte(0x00), x)
		}
	}
}

// S5 — Key RGB across sub-report boundary: value 18 -> offsets 54,55,56.
func TestKeyRGBCommandStraddlesSubReportBoundary(t *testing.T) {
	m := loadTestMap(t)
	frames := []commands.Frame{
		{TimeMs: 10, Colors: map[string]keymap.RGB{"BOUNDARY": {R: 0x11, G: 0x22, B: 0x33}}},
	}
	cmd, err := commands.NewKeyRGBCommand(m, frames)
	require.NoError(t, err)

	reps := cmd.Reports()
	sub0 := reps[1].Bytes() // sub_index 0: payload offsets 0..55
	sub1 := reps[2].Bytes() // sub_index 1: payload offsets 56..111

	p0 := sub0[8:]
	p1 := sub1[8:]
	assert.Equal(t, byte(0x11), p0[54])
	assert.Equal(t, byte(0x22), p0[55])
	assert.Equal(t, byte(0x33), p1[0])
}

func TestKeyRGBCommandUnsetKeysDefaultBlack(t *testing.T) {
	m := loadTestMap(t)
	frames := []commands.Frame{{TimeMs: 0, Colors: map[string]keymap.RGB{}}}
	cmd, err := commands.NewKeyRGBCommand(m, frames)
	require.NoError(t, err)
	for _, rep := range cmd.Reports()[1:] {
		b := rep.Bytes()
		for _, x := range b[8:64] {
			assert.Equal(t, byte(0x00), x)
		}
	}
}

func TestKeyRGBCommandRejectsUnknownKeyName(t *testing.T) {
	m := loadTestMap(t)
	frames := []commands.Frame{
		{TimeMs: 0, Colors: map[string]keymap.RGB{"NOT_A_KEY": {R: 1}}},
	}
	_, err := commands.NewKeyRGBCommand(m, frames)
	assert.Error(t, err)
}

func TestKeyRGBStructureReportCount(t *testing.T) {
	s := commands.KeyRGBStructure(3)
	assert.Equal(t, 1+7*3, s.Total())
}
