//go:build linux || darwin || freebsd || netbsd || openbsd

package partitionidentity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DeviceNumber returns the major and minor number of the device node at path,
// following symlinks. A path that is not a device node yields 0, 0.
func DeviceNumber(path string) (major, minor uint32, err error) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return 0, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.Mode&unix.S_IFMT != unix.S_IFBLK && stat.Mode&unix.S_IFMT != unix.S_IFCHR {
		return 0, 0, nil
	}
	dev := uint64(stat.Rdev) //nolint:unconvert // Rdev is not uint64 on every platform
	return unix.Major(dev), unix.Minor(dev), nil
}
