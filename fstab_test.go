package partitionidentity

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

const sampleFstab = `# /etc/fstab: static file system information.
#
UUID=0a1b2c3d-0000-4000-8000-1234567890ab /               ext4    errors=remount-ro 0       1
PARTUUID=5a1b3c4d-01  /boot/efi       vfat    umask=0077      0       1

LABEL=My\040Data	/mnt/my\040data	ext4	defaults	0	2
/dev/sdb1 /srv xfs
proc /proc proc defaults 0 0
`

func TestParseFstab(t *testing.T) {
	got, err := ParseFstab(strings.NewReader(sampleFstab))
	if err != nil {
		t.Fatalf("ParseFstab error: %v", err)
	}
	want := []FstabEntry{
		{Source: "UUID=0a1b2c3d-0000-4000-8000-1234567890ab", MountPoint: "/", Type: "ext4", Options: "errors=remount-ro"},
		{Source: "PARTUUID=5a1b3c4d-01", MountPoint: "/boot/efi", Type: "vfat", Options: "umask=0077"},
		{Source: "LABEL=My Data", MountPoint: "/mnt/my data", Type: "ext4", Options: "defaults"},
		{Source: "/dev/sdb1", MountPoint: "/srv", Type: "xfs"},
		{Source: "proc", MountPoint: "/proc", Type: "proc", Options: "defaults"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("ParseFstab mismatch: %v", diff)
	}

	ids := []PartitionIdentity{
		NewUUID("0a1b2c3d-0000-4000-8000-1234567890ab"),
		NewPartUUID("5a1b3c4d-01"),
		NewLabel("My Data"),
		NewPath("/dev/sdb1"),
	}
	for i, id := range ids {
		got, err := want[i].Identity()
		if err != nil || got != id {
			t.Errorf("entry %d Identity() = (%v, %v), want %v", i, got, err, id)
		}
	}
	var pe *ParseError
	if _, err := want[4].Identity(); !errors.As(err, &pe) {
		t.Errorf("proc Identity() error = %v, want *ParseError", err)
	}
}

func TestParseFstab_Invalid(t *testing.T) {
	_, err := ParseFstab(strings.NewReader("UUID=abcd\n"))
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("ParseFstab(single field) error = %v", err)
	}
}

func TestUnescapeFstab(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`plain`, "plain"},
		{`a\040b`, "a b"},
		{`tab\011`, "tab\t"},
		{`back\134slash`, `back\slash`},
		{`short\04`, `short\04`},
		{`bad\089`, `bad\089`},
	}
	for _, tt := range tests {
		if got := unescapeFstab(tt.input); got != tt.want {
			t.Errorf("unescapeFstab(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
