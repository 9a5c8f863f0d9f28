package commands_test

import (
	"testing"
	"time"

	"github.com/epomaker-go/epomakerctl/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Invariant 7: Time encoder output contains the literal ASCII-hex of
// YYYYMMDDhhmmss starting at byte 8.
func TestTimeCommandEncodesBigEndianDateTime(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 13, 5, 9, 0, time.UTC)
	cmd, err := commands.NewTimeCommand(ts)
	require.NoError(t, err)
	reps := cmd.Reports()
	require.Len(t, reps, 1)

	b := reps[0].Bytes()
	assert.Equal(t, []byte{0x28, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xd7}, b[:8])
	assert.Equal(t, byte(2024>>8), b[8])
	assert.Equal(t, byte(2024&0xFF), b[9])
	assert.Equal(t, byte(3), b[10])
	assert.Equal(t, byte(7), b[11])
	assert.Equal(t, byte(13), b[12])
	assert.Equal(t, byte(5), b[13])
	assert.Equal(t, byte(9), b[14])
}

func TestTemperatureCommandEncodesByte(t *testing.T) {
	cmd, err := commands.NewTemperatureCommand(42)
	require.NoError(t, err)
	b := cmd.Reports()[0].Bytes()
	assert.Equal(t, []byte{0x2a, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xd5, 42}, b[:9])
}

// S6 — Temperature out of range raises RangeError; no command is built.
func TestTemperatureCommandRejectsOutOfRange(t *testing.T) {
	_, err := commands.NewTemperatureCommand(100)
	assert.Error(t, err)
	_, err = commands.NewTemperatureCommand(-1)
	assert.Error(t, err)
}

func TestCPUCommandEncodesByte(t *testing.T) {
	cmd, err := commands.NewCPUCommand(73)
	require.NoError(t, err)
	b := cmd.Reports()[0].Bytes()
	want := []byte{0x22, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xdd, 0x63, 0x00, 0x7f, 0x00, 0x04, 0x00, 0x08, 0x00, 73}
	assert.Equal(t, want, b[:len(want)])
}

func TestCPUCommandRejects100(t *testing.T) {
	// Open question resolved: the spec mandates 0..99 even though some
	// historical call sites passed 100; callers must clamp.
	_, err := commands.NewCPUCommand(100)
	assert.Error(t, err)
}

func TestProfileCommandChecksumAtByte8(t *testing.T) {
	cmd, err := commands.NewProfileCommand(commands.Profile{
		Mode: 1, Speed: 2, Brightness: 3, Option: 0x04, Dazzle: 0, R: 0xB4, G: 0xB4, B: 0xB4,
	})
	require.NoError(t, err)
	b := cmd.Reports()[0].Bytes()
	sum := 0
	for _, x := range b[:8] {
		sum += int(x)
	}
	assert.EqualValues(t, 0xFF, (sum+int(b[8]))&0xFF)
}

func TestRemapKeyCommandInlineChecksum(t *testing.T) {
	cmd, err := commands.NewRemapKeyCommand(5, commands.UsageF)
	require.NoError(t, err)
	b := cmd.Reports()[0].Bytes()
	assert.Equal(t, byte(0x13), b[0])
	assert.Equal(t, byte(5), b[2])
	wantChecksum := byte((0xFF - (0x13 + 5)) & 0xFF)
	assert.Equal(t, wantChecksum, b[7])
	assert.Equal(t, byte(commands.UsageF), b[10])
}

func TestClearScreenCommand(t *testing.T) {
	cmd, err := commands.NewClearScreenCommand()
	require.NoError(t, err)
	b := cmd.Reports()[0].Bytes()
	assert.Equal(t, []byte{0xac, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x53}, b[:8])
}

func TestPollCommand(t *testing.T) {
	cmd, err := commands.NewPollCommand()
	require.NoError(t, err)
	b := cmd.Reports()[0].Bytes()
	assert.Equal(t, byte(0xf7), b[0])
	assert.Len(t, b, 64)
}

func TestParseKeyComboResolvesModifiersAndUsage(t *testing.T) {
	usage, mods, err := commands.ParseKeyCombo("ctrl+alt+a")
	require.NoError(t, err)
	assert.Equal(t, uint8(commands.UsageA), usage)
	assert.Equal(t, uint8(commands.ModLeftCtrl|commands.ModLeftAlt), mods)
}

func TestParseKeyComboBareKey(t *testing.T) {
	usage, mods, err := commands.ParseKeyCombo("F5")
	require.NoError(t, err)
	assert.Equal(t, uint8(commands.UsageF5), usage)
	assert.Equal(t, uint8(0), mods)
}

func TestParseKeyComboRejectsUnknown(t *testing.T) {
	_, _, err := commands.ParseKeyCombo("ctrl+notakey")
	assert.Error(t, err)
}

func TestWirelessInitCommandShape(t *testing.T) {
	cmd, err := commands.NewWirelessInitCommand()
	require.NoError(t, err)
	require.True(t, cmd.IsPrepared())
	reps := cmd.Reports()
	assert.Equal(t, byte(0xfe), reps[0].Bytes()[0])
	assert.Equal(t, byte(0x40), reps[0].Bytes()[1])
	assert.Equal(t, 1+22, len(reps))
}
