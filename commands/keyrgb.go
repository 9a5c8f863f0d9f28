package commands

import (
	"github.com/epomaker-go/epomakerctl/internal/kberrors"
	"github.com/epomaker-go/epomakerctl/keymap"
	"github.com/epomaker-go/epomakerctl/report"
)

const (
	keyRGBSubReports = 7
	keyRGBSubLen     = report.Width - 8 // 56 bytes per sub-report
	keyRGBFrameBytes = keyRGBSubReports * keyRGBSubLen
)

// Frame is one keyframe of a per-key RGB animation: a color for each key
// name present in colors (keys absent from the map stay black), and the
// device-side interpolation delay to the next frame.
type Frame struct {
	Colors map[string]keymap.RGB
	TimeMs uint8
}

// KeyRGBStructure returns the fixed report layout for a KeyRGBCommand with
// the given frame count: one starter, 7 data reports per frame, no footer.
func KeyRGBStructure(frames int) report.CommandStructure {
	return report.CommandStructure{NStarter: 1, NData: keyRGBSubReports * frames, NFooter: 0}
}

// NewKeyRGBCommand carves a sequence of animation frames into a prepared
// KeyRGBCommand. Each frame owns a logical 392-byte color buffer (7
// sub-reports x 56 bytes); a key with internal index k places its 3-byte
// color at buffer offset 3k, straddling a sub-report boundary when 3k or
// 3k+2 crosses a 56-byte line.
func NewKeyRGBCommand(m *keymap.Map, frames []Frame) (*report.Command, error) {
	structure := KeyRGBStructure(len(frames))
	cmd, err := report.NewCommandBuilder(structure)
	if err != nil {
		return nil, err
	}

	starter, err := report.New(report.Options{HeaderTemplate: "18000000000000e7", Index: 0})
	if err != nil {
		return nil, err
	}
	if err := cmd.Insert(starter); err != nil {
		return nil, err
	}

	for frameIdx, frame := range frames {
		buf := make([]byte, keyRGBFrameBytes)
		for name, c := range frame.Colors {
			key, err := m.Lookup(name)
			if err != nil {
				return nil, err
			}
			off := 3 * key.Value
			if off < 0 || off+3 > keyRGBFrameBytes {
				return nil, kberrors.Overflow(off+3, keyRGBFrameBytes)
			}
			buf[off] = c.R
			buf[off+1] = c.G
			buf[off+2] = c.B
		}

		for sub := 0; sub < keyRGBSubReports; sub++ {
			slice := buf[sub*keyRGBSubLen : (sub+1)*keyRGBSubLen]
			globalIdx := 1 + frameIdx*keyRGBSubReports + sub
			rep, err := report.New(report.Options{
				HeaderTemplate: "19{sub:02x}{frame:02x}{total:02x}{time:02x}0000",
				Values: map[string]int{
					"sub": sub, "frame": frameIdx, "total": len(frames), "time": int(frame.TimeMs),
				},
				Checksum: true,
				Index:    globalIdx,
				Payload:  slice,
			})
			if err != nil {
				return nil, err
			}
			if err := cmd.Insert(rep); err != nil {
				return nil, err
			}
		}
	}

	if !cmd.IsPrepared() {
		return nil, kberrors.State("key rgb command incomplete after carve")
	}
	return cmd, nil
}
