// Package kberrors declares the sentinel error kinds used across the
// Epomaker driver, and small factory helpers for wrapping context onto them.
package kberrors

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Check with errors.Is; wrapped errors carry operation
// context via fmt.Errorf("...: %w").
var (
	ErrConfig         = errors.New("config error")
	ErrDeviceNotFound = errors.New("device not found")
	ErrDeviceIO       = errors.New("device I/O error")
	ErrOverflow       = errors.New("report overflow")
	ErrState          = errors.New("invalid command state")
	ErrRange          = errors.New("value out of range")
	ErrDecode         = errors.New("image decode error")
)

// Wrap annotates a sentinel kind with operation-specific detail while
// preserving errors.Is(err, kind).
func Wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

// Overflow reports that a write would exceed a report's fixed 64-byte width.
func Overflow(have, max int) error {
	return Wrap(ErrOverflow, "%d bytes exceeds %d-byte limit", have, max)
}

// State reports a command used out of its prepared/unprepared contract.
func State(detail string) error {
	return Wrap(ErrState, "%s", detail)
}

// Range reports a scalar argument outside its documented range.
func Range(name string, got, lo, hi int) error {
	return Wrap(ErrRange, "%s=%d outside [%d,%d]", name, got, lo, hi)
}
