//go:build !linux

package transport

import (
	hid "github.com/sstallion/go-hid"

	"github.com/epomaker-go/epomakerctl/internal/kberrors"
)

type hidSender struct {
	dev *hid.Device
}

func (h *hidSender) sendFeatureReport(b []byte) error {
	_, err := h.dev.SendFeatureReport(b)
	return err
}

func (h *hidSender) close() error {
	return h.dev.Close()
}

// openHID opens the first device matching one of the candidate product
// IDs. Non-Linux hosts expose one HID interface per logical endpoint
// already, so the sysfs-based disambiguation §4.7 describes for Linux
// doesn't apply; descRegex is accepted for API symmetry and ignored.
func openHID(productIDs []uint16, _ string) (*hidSender, error) {
	if err := hid.Init(); err != nil {
		return nil, kberrors.Wrap(kberrors.ErrDeviceIO, "init hidapi: %v", err)
	}

	var lastErr error
	for _, pid := range productIDs {
		dev, err := hid.OpenFirst(VendorID, uint16(pid))
		if err != nil {
			lastErr = err
			continue
		}
		return &hidSender{dev: dev}, nil
	}
	return nil, kberrors.Wrap(kberrors.ErrDeviceNotFound, "no device matched vendor 0x%04x: %v", VendorID, lastErr)
}

// probeHID enumerates every candidate product ID and reports what hidapi
// sees, without opening a device. Backs the CLI's `dev --print` diagnostic.
func probeHID(productIDs []uint16) ([]ProbeInfo, error) {
	if err := hid.Init(); err != nil {
		return nil, kberrors.Wrap(kberrors.ErrDeviceIO, "init hidapi: %v", err)
	}
	var out []ProbeInfo
	for _, pid := range productIDs {
		_ = hid.Enumerate(VendorID, uint16(pid), func(info *hid.DeviceInfo) error {
			out = append(out, ProbeInfo{ProductID: pid, Path: info.Path, Product: info.ProductStr})
			return nil
		})
	}
	return out, nil
}
