package commands

import (
	"fmt"
	"strings"

	"github.com/epomaker-go/epomakerctl/internal/kberrors"
)

// Modifier bitmask values, as used by the remap target's combo encoding.
const (
	ModLeftCtrl   = 0x01
	ModLeftShift  = 0x02
	ModLeftAlt    = 0x04
	ModLeftGUI    = 0x08
	ModRightCtrl  = 0x10
	ModRightShift = 0x20
	ModRightAlt   = 0x40
	ModRightGUI   = 0x80
)

// USB HID usage codes, keyboard/keypad usage page. RemapKey targets one of
// these as the code the device reports when the remapped physical key is
// pressed.
const (
	UsageA = 0x04
	UsageB = 0x05
	UsageC = 0x06
	UsageD = 0x07
	UsageE = 0x08
	UsageF = 0x09
	UsageG = 0x0A
	UsageH = 0x0B
	UsageI = 0x0C
	UsageJ = 0x0D
	UsageK = 0x0E
	UsageL = 0x0F
	UsageM = 0x10
	UsageN = 0x11
	UsageO = 0x12
	UsageP = 0x13
	UsageQ = 0x14
	UsageR = 0x15
	UsageS = 0x16
	UsageT = 0x17
	UsageU = 0x18
	UsageV = 0x19
	UsageW = 0x1A
	UsageX = 0x1B
	UsageY = 0x1C
	UsageZ = 0x1D

	Usage1 = 0x1E
	Usage2 = 0x1F
	Usage3 = 0x20
	Usage4 = 0x21
	Usage5 = 0x22
	Usage6 = 0x23
	Usage7 = 0x24
	Usage8 = 0x25
	Usage9 = 0x26
	Usage0 = 0x27

	UsageEnter      = 0x28
	UsageEscape     = 0x29
	UsageBackspace  = 0x2A
	UsageTab        = 0x2B
	UsageSpace      = 0x2C
	UsageMinus      = 0x2D
	UsageEqual      = 0x2E
	UsageLeftBrace  = 0x2F
	UsageRightBrace = 0x30
	UsageBackslash  = 0x31
	UsageSemicolon  = 0x33
	UsageApostrophe = 0x34
	UsageGrave      = 0x35
	UsageComma      = 0x36
	UsagePeriod     = 0x37
	UsageSlash      = 0x38
	UsageCapsLock   = 0x39

	UsageF1  = 0x3A
	UsageF2  = 0x3B
	UsageF3  = 0x3C
	UsageF4  = 0x3D
	UsageF5  = 0x3E
	UsageF6  = 0x3F
	UsageF7  = 0x40
	UsageF8  = 0x41
	UsageF9  = 0x42
	UsageF10 = 0x43
	UsageF11 = 0x44
	UsageF12 = 0x45

	UsagePrintScreen = 0x46
	UsageScrollLock  = 0x47
	UsagePause       = 0x48
	UsageInsert      = 0x49
	UsageHome        = 0x4A
	UsagePageUp      = 0x4B
	UsageDelete      = 0x4C
	UsageEnd         = 0x4D
	UsagePageDown    = 0x4E

	UsageRight = 0x4F
	UsageLeft  = 0x50
	UsageDown  = 0x51
	UsageUp    = 0x52

	UsageApplication = 0x65

	// Media control keys.
	UsageMediaPlayPause = 0xE8
	UsageMediaStop      = 0xE9
	UsageMediaNext      = 0xEB
	UsageMediaPrevious  = 0xEC
)

// UsageName maps a HID usage code to a human-readable name, used by
// UsageDisplayName for remap-keys log output.
var UsageName = map[uint8]string{
	UsageA: "A", UsageB: "B", UsageC: "C", UsageD: "D", UsageE: "E", UsageF: "F", UsageG: "G",
	UsageH: "H", UsageI: "I", UsageJ: "J", UsageK: "K", UsageL: "L", UsageM: "M", UsageN: "N",
	UsageO: "O", UsageP: "P", UsageQ: "Q", UsageR: "R", UsageS: "S", UsageT: "T", UsageU: "U",
	UsageV: "V", UsageW: "W", UsageX: "X", UsageY: "Y", UsageZ: "Z",

	Usage1: "1", Usage2: "2", Usage3: "3", Usage4: "4", Usage5: "5",
	Usage6: "6", Usage7: "7", Usage8: "8", Usage9: "9", Usage0: "0",

	UsageEnter:      "Enter",
	UsageEscape:     "Escape",
	UsageBackspace:  "Backspace",
	UsageTab:        "Tab",
	UsageSpace:      "Space",
	UsageMinus:      "Minus",
	UsageEqual:      "Equal",
	UsageLeftBrace:  "LeftBrace",
	UsageRightBrace: "RightBrace",
	UsageBackslash:  "Backslash",
	UsageSemicolon:  "Semicolon",
	UsageApostrophe: "Apostrophe",
	UsageGrave:      "Grave",
	UsageComma:      "Comma",
	UsagePeriod:     "Period",
	UsageSlash:      "Slash",
	UsageCapsLock:   "CapsLock",

	UsageF1: "F1", UsageF2: "F2", UsageF3: "F3", UsageF4: "F4", UsageF5: "F5", UsageF6: "F6",
	UsageF7: "F7", UsageF8: "F8", UsageF9: "F9", UsageF10: "F10", UsageF11: "F11", UsageF12: "F12",

	UsagePrintScreen: "PrintScreen",
	UsageScrollLock:  "ScrollLock",
	UsagePause:       "Pause",
	UsageInsert:      "Insert",
	UsageHome:        "Home",
	UsagePageUp:      "PageUp",
	UsageDelete:      "Delete",
	UsageEnd:         "End",
	UsagePageDown:    "PageDown",

	UsageRight: "Right",
	UsageLeft:  "Left",
	UsageDown:  "Down",
	UsageUp:    "Up",

	UsageApplication: "Application",

	UsageMediaPlayPause: "MediaPlayPause",
	UsageMediaStop:      "MediaStop",
	UsageMediaNext:      "MediaNext",
	UsageMediaPrevious:  "MediaPrevious",
}

// charToUsage maps a single ASCII character to its base HID usage code.
var charToUsage = map[byte]uint8{
	'a': UsageA, 'b': UsageB, 'c': UsageC, 'd': UsageD, 'e': UsageE, 'f': UsageF, 'g': UsageG,
	'h': UsageH, 'i': UsageI, 'j': UsageJ, 'k': UsageK, 'l': UsageL, 'm': UsageM, 'n': UsageN,
	'o': UsageO, 'p': UsageP, 'q': UsageQ, 'r': UsageR, 's': UsageS, 't': UsageT, 'u': UsageU,
	'v': UsageV, 'w': UsageW, 'x': UsageX, 'y': UsageY, 'z': UsageZ,

	'1': Usage1, '2': Usage2, '3': Usage3, '4': Usage4, '5': Usage5,
	'6': Usage6, '7': Usage7, '8': Usage8, '9': Usage9, '0': Usage0,

	'-': UsageMinus, '=': UsageEqual, '[': UsageLeftBrace, ']': UsageRightBrace,
	'\\': UsageBackslash, ';': UsageSemicolon, '\'': UsageApostrophe, '`': UsageGrave,
	',': UsageComma, '.': UsagePeriod, '/': UsageSlash,

	' ': UsageSpace, '\n': UsageEnter, '\r': UsageEnter, '\t': UsageTab,
}

var namedModifiers = map[string]uint8{
	"ctrl": ModLeftCtrl, "lctrl": ModLeftCtrl, "control": ModLeftCtrl,
	"shift": ModLeftShift, "lshift": ModLeftShift,
	"alt": ModLeftAlt, "lalt": ModLeftAlt,
	"gui": ModLeftGUI, "win": ModLeftGUI, "cmd": ModLeftGUI, "lgui": ModLeftGUI,
	"rctrl":  ModRightCtrl,
	"rshift": ModRightShift,
	"ralt":   ModRightAlt,
	"rgui":   ModRightGUI,
}

var namedKeys = map[string]uint8{
	"enter": UsageEnter, "return": UsageEnter, "escape": UsageEscape, "esc": UsageEscape,
	"backspace": UsageBackspace, "tab": UsageTab, "space": UsageSpace,
	"capslock": UsageCapsLock, "printscreen": UsagePrintScreen, "scrolllock": UsageScrollLock,
	"pause": UsagePause, "insert": UsageInsert, "home": UsageHome, "pageup": UsagePageUp,
	"delete": UsageDelete, "del": UsageDelete, "end": UsageEnd, "pagedown": UsagePageDown,
	"right": UsageRight, "left": UsageLeft, "down": UsageDown, "up": UsageUp,
	"f1": UsageF1, "f2": UsageF2, "f3": UsageF3, "f4": UsageF4, "f5": UsageF5, "f6": UsageF6,
	"f7": UsageF7, "f8": UsageF8, "f9": UsageF9, "f10": UsageF10, "f11": UsageF11, "f12": UsageF12,
	"playpause": UsageMediaPlayPause, "mediastop": UsageMediaStop,
	"next": UsageMediaNext, "prev": UsageMediaPrevious, "previous": UsageMediaPrevious,
}

// ParseKeyCombo resolves a remap target like "ctrl+alt+a" or "F5" into a
// USB HID usage code and a modifier bitmask. A bare single character resolves
// via its base usage code with no modifier bits set.
func ParseKeyCombo(combo string) (usage uint8, modifiers uint8, err error) {
	parts := strings.Split(combo, "+")
	last := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))

	for _, p := range parts[:len(parts)-1] {
		name := strings.ToLower(strings.TrimSpace(p))
		mod, ok := namedModifiers[name]
		if !ok {
			return 0, 0, kberrors.Wrap(kberrors.ErrConfig, "unknown modifier %q in combo %q", p, combo)
		}
		modifiers |= mod
	}

	if code, ok := namedKeys[last]; ok {
		return code, modifiers, nil
	}
	if len(last) == 1 {
		if code, ok := charToUsage[last[0]]; ok {
			return code, modifiers, nil
		}
	}
	return 0, 0, kberrors.Wrap(kberrors.ErrConfig, "unrecognized key %q in combo %q", last, combo)
}

// UsageDisplayName formats a usage code for human display, falling back to
// a hex literal when the code has no known name.
func UsageDisplayName(code uint8) string {
	if name, ok := UsageName[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", code)
}
