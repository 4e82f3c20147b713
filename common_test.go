package partitionidentity

import (
	"os"
	"path/filepath"
	"testing"
)

// fakeDisk is a simulated /dev tree: device nodes are plain files under dev,
// and root holds by-<token> directories of symlinks to them.
type fakeDisk struct {
	dev  string
	root string
}

func newFakeDisk(t *testing.T) *fakeDisk {
	t.Helper()
	tmp := t.TempDir()
	fd := &fakeDisk{
		dev:  filepath.Join(tmp, "dev"),
		root: filepath.Join(tmp, "dev", "disk"),
	}
	if err := os.MkdirAll(fd.root, 0755); err != nil {
		t.Fatal(err)
	}
	return fd
}

// device creates a device node and returns its path.
func (fd *fakeDisk) device(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(fd.dev, name)
	if err := os.WriteFile(p, nil, 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

// link adds by-<by>/<value> pointing at target, relative to the link
// the way udev creates them.
func (fd *fakeDisk) link(t *testing.T, by Identifier, value, target string) {
	t.Helper()
	dir := filepath.Join(fd.root, "by-"+by.Token())
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(rel, filepath.Join(dir, value)); err != nil {
		t.Fatal(err)
	}
}

// dir returns the backing directory and its listing.
func (fd *fakeDisk) dir(t *testing.T, by Identifier) (string, []os.DirEntry) {
	t.Helper()
	dir := filepath.Join(fd.root, "by-"+by.Token())
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, entries
}

// canonical resolves p the same way the resolver does, for building expectations.
func canonical(t *testing.T, p string) string {
	t.Helper()
	c, err := canonicalize(p)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
