//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package partitionidentity

func DeviceNumber(path string) (major, minor uint32, err error) {
	return 0, 0, ErrUnsupportedPlatform
}
