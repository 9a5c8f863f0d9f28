package commands

import (
	"github.com/epomaker-go/epomakerctl/internal/kberrors"
	"github.com/epomaker-go/epomakerctl/report"
)

// ImageStructure is the fixed report layout for an ImageCommand: one
// starter, 1000 data reports, one footer.
var ImageStructure = report.CommandStructure{NStarter: 1, NData: 1000, NFooter: 1}

const (
	imageDataPayloadLen = report.Width - 8 // 56 bytes per data/footer report
	imageDataTerminator = 0x38
	imageFootTerminator = 0x34
)

// NewImageCommand carves an oriented, packed RGB565 image byte stream (as
// produced by codec.PrepareImage) into a prepared ImageCommand: a starter
// report, 1000 data reports, and one footer report.
//
// The data/footer header's (LO,HI) sequence index is little-endian; this is
// the one documented exception to the otherwise big-endian wire layout, and
// must not be "corrected" to match the rest of the protocol.
func NewImageCommand(image []byte) (*report.Command, error) {
	cmd, err := report.NewCommandBuilder(ImageStructure)
	if err != nil {
		return nil, err
	}

	starter, err := report.New(report.Options{
		HeaderTemplate: "a5000100f4da008b0000a2ad",
		Index:          0,
	})
	if err != nil {
		return nil, err
	}
	if err := cmd.Insert(starter); err != nil {
		return nil, err
	}

	total := imageDataPayloadLen * (ImageStructure.NData + ImageStructure.NFooter)
	padded := make([]byte, total)
	copy(padded, image)

	for i := 0; i < ImageStructure.NData+ImageStructure.NFooter; i++ {
		seq := uint16(i)
		lo, hi := le16(seq)
		terminator := imageDataTerminator
		if i == ImageStructure.NData {
			terminator = imageFootTerminator
		}

		start := i * imageDataPayloadLen
		payload := padded[start : start+imageDataPayloadLen]

		rep, err := report.New(report.Options{
			HeaderTemplate: "25000100{lo:02x}{hi:02x}{term:02x}",
			Values:         map[string]int{"lo": int(lo), "hi": int(hi), "term": terminator},
			Checksum:       true,
			Index:          i + 1,
			Payload:        payload,
		})
		if err != nil {
			return nil, err
		}
		if err := cmd.Insert(rep); err != nil {
			return nil, err
		}
	}

	if !cmd.IsPrepared() {
		return nil, kberrors.State("image command incomplete after carve")
	}
	return cmd, nil
}

// le16 splits a 16-bit value into its little-endian byte pair. This is the
// documented exception to the protocol's otherwise big-endian wire layout.
func le16(v uint16) (lo, hi byte) {
	return byte(v & 0xFF), byte(v >> 8)
}
