package codec_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/epomaker-go/epomakerctl/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackGolden(t *testing.T) {
	// S2: (100,5,69) round-trips to (99,4,66) per the documented pack/unpack
	// formulas (the packed intermediate is (100&0xF8)<<8 | (5&0xFC)<<3 |
	// (69&0xF8)>>3 = 0x6028, which then unpacks to the values below).
	p := codec.PackRGB565(100, 5, 69)
	assert.Equal(t, codec.RGB565(0x6028), p)

	r, g, b := codec.UnpackRGB565(p)
	assert.Equal(t, uint8(99), r)
	assert.Equal(t, uint8(4), g)
	assert.Equal(t, uint8(66), b)
}

func TestRoundTripWithinLossyBound(t *testing.T) {
	delta := func(a, b uint8) int {
		d := int(a) - int(b)
		if d < 0 {
			d = -d
		}
		return d
	}
	for r := 0; r <= 255; r += 5 {
		for g := 0; g <= 255; g += 7 {
			for b := 0; b <= 255; b += 11 {
				p := codec.PackRGB565(uint8(r), uint8(g), uint8(b))
				ur, ug, ub := codec.UnpackRGB565(p)
				assert.LessOrEqual(t, delta(uint8(r), ur), 8)
				assert.LessOrEqual(t, delta(uint8(g), ug), 8)
				assert.LessOrEqual(t, delta(uint8(b), ub), 8)
			}
		}
	}
}

func TestSplitU16BEIsBigEndian(t *testing.T) {
	out := codec.SplitU16BE([]codec.RGB565{0x1234, 0xABCD})
	assert.Equal(t, []byte{0x12, 0x34, 0xAB, 0xCD}, out)
}

func TestPrepareImageProducesExactBufferLength(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 3), G: uint8(y * 5), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := codec.PrepareImage(&buf)
	require.NoError(t, err)
	assert.Len(t, out, codec.ImageBufferLen)
}

func TestPrepareImageRejectsGarbage(t *testing.T) {
	_, err := codec.PrepareImage(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
