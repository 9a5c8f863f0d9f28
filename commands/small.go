package commands

import (
	"time"

	"github.com/epomaker-go/epomakerctl/internal/kberrors"
	"github.com/epomaker-go/epomakerctl/report"
)

// SmallStructure is the fixed (1,0,0) layout shared by every single-report
// command in this file.
var SmallStructure = report.CommandStructure{NStarter: 1, NData: 0, NFooter: 0}

func single(rep *report.Report) (*report.Command, error) {
	cmd, err := report.NewCommandBuilder(SmallStructure)
	if err != nil {
		return nil, err
	}
	if err := cmd.Insert(rep); err != nil {
		return nil, err
	}
	return cmd, nil
}

// NewTimeCommand encodes the host's current time for the LCD clock. No
// checksum; the device trusts the literal big-endian date/time fields.
func NewTimeCommand(t time.Time) (*report.Command, error) {
	year := t.Year()
	rep, err := report.New(report.Options{
		HeaderTemplate: "28000000000000d7{yh:02x}{yl:02x}{mo:02x}{da:02x}{ho:02x}{mi:02x}{se:02x}",
		Values: map[string]int{
			"yh": (year >> 8) & 0xFF, "yl": year & 0xFF,
			"mo": int(t.Month()), "da": t.Day(),
			"ho": t.Hour(), "mi": t.Minute(), "se": t.Second(),
		},
		Index: 0,
	})
	if err != nil {
		return nil, err
	}
	return single(rep)
}

func requireRange(name string, v int) error {
	if v < 0 || v > 99 {
		return kberrors.Range(name, v, 0, 99)
	}
	return nil
}

// NewTemperatureCommand encodes a single ambient-temperature sample, 0..99
// inclusive.
func NewTemperatureCommand(celsius int) (*report.Command, error) {
	if err := requireRange("temperature", celsius); err != nil {
		return nil, err
	}
	rep, err := report.New(report.Options{
		HeaderTemplate: "2a000000000000d5{tt:02x}",
		Values:         map[string]int{"tt": celsius},
		Index:          0,
	})
	if err != nil {
		return nil, err
	}
	return single(rep)
}

// NewCPUCommand encodes a single CPU-utilization sample, 0..99 inclusive.
// The spec mandates 0..99 even though some call sites historically passed
// 100; callers must clamp before calling this.
func NewCPUCommand(percent int) (*report.Command, error) {
	if err := requireRange("cpu", percent); err != nil {
		return nil, err
	}
	rep, err := report.New(report.Options{
		HeaderTemplate: "22000000000000dd63007f0004000800{pp:02x}",
		Values:         map[string]int{"pp": percent},
		Index:          0,
	})
	if err != nil {
		return nil, err
	}
	return single(rep)
}

// ProfileModeCount is the number of selectable built-in lighting modes
// (§3: "Mode: 19 values with reserved gaps"). cycle-light-modes walks
// 0..ProfileModeCount-1 and wraps.
const ProfileModeCount = 19

// Profile selects one of the device's built-in lighting animations.
type Profile struct {
	Mode       int
	Speed      int
	Brightness int
	Dazzle     int
	Option     int
	R, G, B    uint8
}

// NewProfileCommand encodes a lighting-profile selection with its checksum
// at byte 8 (the 8-byte header covers mode/speed/brightness/option|dazzle/rgb).
func NewProfileCommand(p Profile) (*report.Command, error) {
	rep, err := report.New(report.Options{
		HeaderTemplate: "07{mode:02x}{speed:02x}{bright:02x}{opt:02x}{r:02x}{g:02x}{b:02x}",
		Values: map[string]int{
			"mode": p.Mode, "speed": p.Speed, "bright": p.Brightness,
			"opt": p.Option | p.Dazzle,
			"r":   int(p.R), "g": int(p.G), "b": int(p.B),
		},
		Checksum: true,
		Index:    0,
	})
	if err != nil {
		return nil, err
	}
	return single(rep)
}

// NewRemapKeyCommand points internal key index keyIndex at USB HID usage
// code target. The checksum here is inlined into the header template
// itself rather than computed by Report's automatic mechanism, since the
// device's checksum byte sits before the trailing usage-code byte instead
// of immediately after the checksummed region.
func NewRemapKeyCommand(keyIndex int, target uint8) (*report.Command, error) {
	checksum := (0xFF - (0x13 + keyIndex)) & 0xFF
	rep, err := report.New(report.Options{
		HeaderTemplate: "1300{ki:02x}00000000{ck:02x}0000{cb:02x}",
		Values: map[string]int{
			"ki": keyIndex, "ck": checksum, "cb": int(target),
		},
		Index: 0,
	})
	if err != nil {
		return nil, err
	}
	return single(rep)
}

// NewClearScreenCommand blanks the LCD.
func NewClearScreenCommand() (*report.Command, error) {
	rep, err := report.New(report.Options{HeaderTemplate: "ac00000000000053", Index: 0})
	if err != nil {
		return nil, err
	}
	return single(rep)
}

// NewPollCommand is a liveness probe used to keep a 2.4 GHz connection
// alive between other commands.
func NewPollCommand() (*report.Command, error) {
	rep, err := report.New(report.Options{HeaderTemplate: "f7", Index: 0})
	if err != nil {
		return nil, err
	}
	return single(rep)
}
