package codec

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/epomaker-go/epomakerctl/internal/kberrors"
)

// ImageWidth and ImageHeight are the LCD's fixed logical dimensions.
const (
	ImageWidth  = 162
	ImageHeight = 173
	// ImageBufferLen is the serialized byte length of one oriented frame:
	// ImageWidth * ImageHeight RGB565 pixels, two bytes each.
	ImageBufferLen = ImageWidth * ImageHeight * 2
)

func init() {
	// golang.org/x/image/bmp doesn't self-register via image.RegisterFormat
	// the way tiff/webp do; register it explicitly so image.Decode accepts
	// .bmp alongside png/jpeg/gif/tiff/webp.
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
}

// PrepareImage decodes any common raster format, resizes it to the LCD's
// W×H, then orients it (vertical flip + 90° clockwise rotation) and packs
// it to a big-endian RGB565 byte stream of exactly ImageBufferLen bytes.
//
// The original device firmware expects BGR source pixel order (the
// reference implementation reads frames through a BGR-native decoder); Go's
// standard image decoders already yield RGB channel order, so the
// corresponding reorder step in the device's documented pipeline is a
// no-op here and is intentionally not reproduced.
func PrepareImage(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, kberrors.Wrap(kberrors.ErrDecode, "decode image: %v", err)
	}
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, kberrors.Wrap(kberrors.ErrDecode, "image has zero dimensions")
	}

	resized := image.NewRGBA(image.Rect(0, 0, ImageWidth, ImageHeight))
	draw.BiLinear.Scale(resized, resized.Bounds(), src, bounds, draw.Over, nil)

	return orient(resized), nil
}

// orient applies the vertical-flip + 90°-clockwise transform and packs the
// result to RGB565, big-endian serialized. The output holds ImageWidth rows
// of ImageHeight pixels each.
func orient(img *image.RGBA) []byte {
	pixels := make([]RGB565, ImageWidth*ImageHeight)
	for y := 0; y < ImageHeight; y++ {
		// Vertical flip: sample the source row from the bottom up.
		srcY := ImageHeight - 1 - y
		for x := 0; x < ImageWidth; x++ {
			c := img.RGBAAt(x, srcY)
			// 90° clockwise: column x of the flipped image becomes row x
			// of the output, written back to front along that row.
			outRow := x
			outCol := ImageHeight - 1 - y
			pixels[outRow*ImageHeight+outCol] = PackRGB565(c.R, c.G, c.B)
		}
	}
	out := SplitU16BE(pixels)
	if len(out) != ImageBufferLen {
		panic(fmt.Sprintf("codec: oriented buffer length %d != %d", len(out), ImageBufferLen))
	}
	return out
}
