package commands_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/epomaker-go/epomakerctl/codec"
	"github.com/epomaker-go/epomakerctl/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calibrationImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 2), G: uint8(y * 3), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	out, err := codec.PrepareImage(&buf)
	require.NoError(t, err)
	require.Len(t, out, codec.ImageBufferLen)
	return out
}

// S3 — Image carve: starter/data/footer headers, byte-exact.
func TestImageCommandCarve(t *testing.T) {
	oriented := calibrationImage(t)
	cmd, err := commands.NewImageCommand(oriented)
	require.NoError(t, err)
	require.True(t, cmd.IsPrepared())

	reps := cmd.Reports()
	require.Len(t, reps, 1002)

	starter := reps[0].Bytes()
	wantStarter := []byte{0xa5, 0x00, 0x01, 0x00, 0xf4, 0xda, 0x00, 0x8b, 0x00, 0x00, 0xa2, 0xad}
	assert.Equal(t, wantStarter, starter[:len(wantStarter)])

	firstData := reps[1].Bytes()
	assert.Equal(t, []byte{0x25, 0x00, 0x01, 0x00, 0x00, 0x00, 0x38}, firstData[:7])

	footer := reps[1001].Bytes()
	assert.Equal(t, []byte{0x25, 0x00, 0x01, 0x00, 0xe8, 0x03, 0x34}, footer[:7])
}

// Invariant 5: concatenated data/footer payloads reproduce the oriented
// image in its first ImageBufferLen bytes.
func TestImageCommandPayloadReproducesImage(t *testing.T) {
	oriented := calibrationImage(t)
	cmd, err := commands.NewImageCommand(oriented)
	require.NoError(t, err)

	var payload []byte
	for _, rep := range cmd.Reports()[1:] {
		b := rep.Bytes()
		payload = append(payload, b[8:]...)
	}
	require.GreaterOrEqual(t, len(payload), codec.ImageBufferLen)
	assert.Equal(t, oriented, payload[:codec.ImageBufferLen])
}

// S7 — Dry-run image: 1002 reports in ascending index, no device touched.
func TestImageCommandYieldsAscendingIndices(t *testing.T) {
	oriented := calibrationImage(t)
	cmd, err := commands.NewImageCommand(oriented)
	require.NoError(t, err)
	for i, rep := range cmd.Reports() {
		assert.Equal(t, i, rep.Index())
	}
}
