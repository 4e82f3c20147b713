//go:build linux

package partitionidentity

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeviceNumber(t *testing.T) {
	major, minor, err := DeviceNumber("/dev/null")
	if err != nil {
		t.Fatalf("DeviceNumber(/dev/null) error: %v", err)
	}
	if major != 1 || minor != 3 {
		t.Errorf("DeviceNumber(/dev/null) = %d:%d, want 1:3", major, minor)
	}

	regular := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(regular, nil, 0644); err != nil {
		t.Fatal(err)
	}
	major, minor, err = DeviceNumber(regular)
	if err != nil || major != 0 || minor != 0 {
		t.Errorf("DeviceNumber(regular file) = (%d, %d, %v), want (0, 0, nil)", major, minor, err)
	}

	if _, _, err := DeviceNumber(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("DeviceNumber(missing) expected error, got nil")
	}
}
