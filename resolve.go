package partitionidentity

import (
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"
)

// canonicalize returns the absolute path of p with every symlink resolved.
// It fails if p, or anything it points at, does not exist.
func canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// LookupPath finds the entry named value in dir and returns the canonical path it points to.
// entries is the listing of dir. Entries that cannot be canonicalized are skipped.
// If more than one entry has the name, the first one in entries wins.
func LookupPath(value, dir string, entries []fs.DirEntry) (string, bool) {
	return lookupPath(Logger(), value, dir, entries)
}

// LookupValue finds the entry in dir that resolves to the same node as devicePath,
// and returns its name. If devicePath itself cannot be canonicalized, nothing is found.
func LookupValue(devicePath, dir string, entries []fs.DirEntry) (string, bool) {
	return lookupValue(Logger(), devicePath, dir, entries)
}

func lookupPath(log *zap.Logger, value, dir string, entries []fs.DirEntry) (string, bool) {
	for _, entry := range entries {
		if entry.Name() != value {
			continue
		}
		entryPath := filepath.Join(dir, entry.Name())
		target, err := canonicalize(entryPath)
		if err != nil {
			log.Debug("skipping unresolvable entry", zap.String("entry", entryPath), zap.Error(err))
			continue
		}
		return target, true
	}
	return "", false
}

func lookupValue(log *zap.Logger, devicePath, dir string, entries []fs.DirEntry) (string, bool) {
	target, err := canonicalize(devicePath)
	if err != nil {
		log.Debug("cannot resolve device path", zap.String("path", devicePath), zap.Error(err))
		return "", false
	}
	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())
		resolved, err := canonicalize(entryPath)
		if err != nil {
			log.Debug("skipping unresolvable entry", zap.String("entry", entryPath), zap.Error(err))
			continue
		}
		if resolved == target {
			return entry.Name(), true
		}
	}
	return "", false
}
