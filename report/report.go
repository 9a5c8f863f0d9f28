// Package report implements the fixed-width HID feature report framing
// layer shared by every command the driver sends to the keyboard: a
// 64-byte buffer with a rendered header, an optional one-byte checksum,
// an optional payload, and zero padding to width.
package report

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/epomaker-go/epomakerctl/internal/kberrors"
)

// Width is the fixed size of every HID feature report on the wire.
const Width = 64

var fieldPattern = regexp.MustCompile(`\{(\w+):(\d+)x\}`)

// FormatHeader renders a hex-digit template into bytes. Whitespace in the
// template is cosmetic and stripped; "{name:NNx}" placeholders are
// substituted from values, zero-padded to NN hex digits. This mirrors the
// device's own captured headers, which are documented as hex strings with
// named dynamic fields (sequence indices, key indices, scalar readings).
func FormatHeader(template string, values map[string]int) ([]byte, error) {
	var substErr error
	rendered := fieldPattern.ReplaceAllStringFunc(template, func(m string) string {
		sub := fieldPattern.FindStringSubmatch(m)
		name := sub[1]
		width, _ := strconv.Atoi(sub[2])
		v, ok := values[name]
		if !ok {
			substErr = fmt.Errorf("header template %q: missing value %q", template, name)
			return strings.Repeat("0", width)
		}
		return fmt.Sprintf("%0*x", width, v)
	})
	if substErr != nil {
		return nil, substErr
	}
	rendered = strings.Join(strings.Fields(rendered), "")
	b, err := hex.DecodeString(rendered)
	if err != nil {
		return nil, fmt.Errorf("render header %q: %w", template, err)
	}
	return b, nil
}

// Options describes how to construct one Report.
type Options struct {
	// HeaderTemplate and Values are rendered by FormatHeader into the
	// report's header bytes.
	HeaderTemplate string
	Values         map[string]int

	// Checksum, if true, appends one byte covering the rendered header:
	// the 8-bit one's-complement of the header's unsigned byte sum.
	Checksum bool

	// Index is this report's position within its owning Command.
	Index int

	// Payload, if non-nil, is appended after the header/checksum. The
	// report is padded immediately either way, so a nil Payload means the
	// report carries no payload and AppendPayload can no longer be called.
	Payload []byte
}

// Report is one fixed-width 64-byte HID feature report.
type Report struct {
	index      int
	buf        [Width]byte
	length     int
	headerLen  int
	checksumAt int // -1 when the report carries no checksum
	padded     bool
}

// New renders the header, optionally appends a checksum and payload, and
// returns the constructed Report, already padded to Width. A report built
// with a nil Payload is padded without one.
func New(opts Options) (*Report, error) {
	header, err := FormatHeader(opts.HeaderTemplate, opts.Values)
	if err != nil {
		return nil, err
	}

	r := &Report{index: opts.Index, checksumAt: -1}
	if err := r.appendHeader(header); err != nil {
		return nil, err
	}
	if opts.Checksum {
		if err := r.appendChecksum(); err != nil {
			return nil, err
		}
	}

	if opts.Payload != nil {
		if err := r.AppendPayload(opts.Payload); err != nil {
			return nil, err
		}
	} else {
		r.pad()
	}
	return r, nil
}

func (r *Report) appendHeader(h []byte) error {
	if r.length+len(h) > Width {
		return kberrors.Overflow(r.length+len(h), Width)
	}
	copy(r.buf[r.length:], h)
	r.length += len(h)
	r.headerLen = r.length
	return nil
}

// appendChecksum computes the 8-bit one's-complement of the byte sum of
// everything written so far and appends it. The checksum covers only the
// header bytes rendered before this call, never a later payload.
func (r *Report) appendChecksum() error {
	if r.length+1 > Width {
		return kberrors.Overflow(r.length+1, Width)
	}
	sum := 0
	for _, b := range r.buf[:r.length] {
		sum += int(b)
	}
	r.checksumAt = r.length
	r.buf[r.length] = byte((0xFF - (sum & 0xFF)) & 0xFF)
	r.length++
	return nil
}

// AppendPayload appends bytes after the header/checksum and pads the
// report to Width. Legal only before the report has already been padded.
func (r *Report) AppendPayload(payload []byte) error {
	if r.padded {
		return kberrors.State("AppendPayload called after report was padded")
	}
	if r.length+len(payload) > Width {
		return kberrors.Overflow(r.length+len(payload), Width)
	}
	copy(r.buf[r.length:], payload)
	r.length += len(payload)
	r.pad()
	return nil
}

// pad closes the report for further writes. The backing array is already
// zero-valued past length, so there's nothing to actually write.
func (r *Report) pad() {
	r.padded = true
}

// Index returns this report's position within its owning Command.
func (r *Report) Index() int { return r.index }

// Bytes returns the full 64-byte wire image.
func (r *Report) Bytes() [Width]byte {
	if !r.padded {
		r.pad()
	}
	return r.buf
}

// HeaderView returns the rendered header bytes, excluding any checksum or
// payload.
func (r *Report) HeaderView() []byte {
	out := make([]byte, r.headerLen)
	copy(out, r.buf[:r.headerLen])
	return out
}

// ChecksumIndex reports the byte offset of the checksum, or -1 if the
// report carries none.
func (r *Report) ChecksumIndex() int { return r.checksumAt }
