//go:build linux

package transport

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	hid "github.com/sstallion/go-hid"
	"golang.org/x/sys/unix"

	"github.com/epomaker-go/epomakerctl/internal/kberrors"
)

// usbInterfacePattern matches a USB interface sysfs directory name, e.g.
// "3-1:1.2" (bus-port:config.interface) — the "B-P:C.I" path component
// §4.7 refers to.
var usbInterfacePattern = regexp.MustCompile(`^\d+-[\d.]+:\d+\.\d+$`)

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

// openHID enumerates the keyboard's candidate product IDs, disambiguates
// the control interface via /sys/class/input/event*/device/name, and opens
// the matching hidraw path.
func openHID(productIDs []uint16, descRegex string) (*hidSender, error) {
	re, err := regexp.Compile(descRegex)
	if err != nil {
		return nil, kberrors.Wrap(kberrors.ErrConfig, "compile device description regex: %v", err)
	}

	ifacePath, err := findControlInterface(re)
	if err != nil {
		return nil, err
	}

	if err := hid.Init(); err != nil {
		return nil, kberrors.Wrap(kberrors.ErrDeviceIO, "init hidapi: %v", err)
	}

	var lastErr error
	for _, pid := range productIDs {
		matchedPath := ""
		walkErr := hid.Enumerate(VendorID, uint16(pid), func(info *hid.DeviceInfo) error {
			if matchedPath != "" {
				return nil
			}
			if ifacePath != "" && !strings.Contains(info.Path, ifacePath) {
				return nil
			}
			matchedPath = info.Path
			return nil
		})
		if walkErr != nil {
			lastErr = walkErr
			continue
		}
		if matchedPath == "" {
			continue
		}
		dev, err := hid.OpenPath(matchedPath)
		if err != nil {
			lastErr = err
			continue
		}
		return &hidSender{dev: dev}, nil
	}

	if lastErr != nil {
		return nil, kberrors.Wrap(kberrors.ErrDeviceNotFound, "enumerate vendor 0x%04x: %v", VendorID, lastErr)
	}
	return nil, kberrors.Wrap(kberrors.ErrDeviceNotFound, "no device matched vendor 0x%04x", VendorID)
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

// findControlInterface walks /sys/class/input/event*/device/name looking
// for a device name matching re, then resolves its owning USB interface
// directory ("B-P:C.I") so the caller can prefer the hidraw path under it.
// Returns "" (not an error) if sysfs isn't walkable, so callers degrade to
// "first device found" rather than failing outright.
func findControlInterface(re *regexp.Regexp) (string, error) {
	matches, err := filepath.Glob("/sys/class/input/event*/device/name")
	if err != nil || len(matches) == 0 {
		return "", nil
	}

	for _, nameFile := range matches {
		data, err := os.ReadFile(nameFile)
		if err != nil {
			continue
		}
		if !re.Match(data) {
			continue
		}

		dir := filepath.Dir(nameFile)
		real, err := resolveSymlinkChain(dir)
		if err != nil {
			continue
		}
		if iface := findUSBInterfaceComponent(real); iface != "" {
			return iface, nil
		}
	}
	return "", nil
}

// resolveSymlinkChain walks a chain of symlinks by hand via unix.Readlink,
// mirroring the direct-syscall style the pack's other Linux-specific
// packages (gpiocdev's device-node resolution, u-bmc's sysctl access) prefer
// over the indirection of filepath.EvalSymlinks.
func resolveSymlinkChain(path string) (string, error) {
	buf := make([]byte, 512)
	for i := 0; i < 16; i++ {
		n, err := unix.Readlink(path, buf)
		if err != nil {
			if err == unix.EINVAL {
				return path, nil
			}
			return "", err
		}
		target := string(buf[:n])
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = filepath.Clean(target)
	}
	return path, nil
}

// findUSBInterfaceComponent walks up from a resolved sysfs path looking
// for a "B-P:C.I" path component.
func findUSBInterfaceComponent(path string) string {
	for p := path; p != "/" && p != "."; p = filepath.Dir(p) {
		base := filepath.Base(p)
		if usbInterfacePattern.MatchString(base) {
			return base
		}
	}
	return ""
}
