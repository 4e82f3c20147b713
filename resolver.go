package partitionidentity

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Resolver looks partitions up in the by-<token> directories under a root,
// /dev/disk unless overridden. It keeps no state between calls and is safe
// for concurrent use.
type Resolver struct {
	root   string
	logger *zap.Logger
}

type Option func(*Resolver)

// WithRoot sets the directory holding the by-<token> directories.
func WithRoot(root string) Option {
	return func(r *Resolver) {
		r.root = root
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{root: diskByDefaultRoot}
	for _, opt := range opts {
		opt(r)
	}
	if r.root == "" {
		r.root = diskByDefaultRoot
	}
	return r
}

// DefaultResolver reads /dev/disk and logs to the package logger.
var DefaultResolver = NewResolver()

func (r *Resolver) Root() string {
	return r.root
}

func (r *Resolver) log() *zap.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// Directory returns the backing directory for by under this resolver's root.
func (r *Resolver) Directory(by Identifier) string {
	return by.directoryIn(r.root)
}

func (r *Resolver) readDirectory(by Identifier) (string, []os.DirEntry, error) {
	dir := r.Directory(by)
	if dir == "" {
		return "", nil, fmt.Errorf("%w: %q has no backing directory", ErrUnknownIdentifier, by)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, NewDirectoryUnavailableError(by, dir, err)
	}
	return dir, entries, nil
}

// DevicePath finds the current device path for id. A missing match is reported as
// found == false; err is only set when the backing directory cannot be read or
// the identifier kind is unknown.
func (r *Resolver) DevicePath(id PartitionIdentity) (path string, found bool, err error) {
	switch {
	case id.by == IdentifierByPath:
		p, err := canonicalize(id.value)
		if err != nil {
			r.log().Debug("cannot resolve device path", zap.String("path", id.value), zap.Error(err))
			return "", false, nil
		}
		return p, true, nil
	case !id.by.Valid():
		return "", false, fmt.Errorf("%w: %q", ErrUnknownIdentifier, id.by)
	}
	dir, entries, err := r.readDirectory(id.by)
	if err != nil {
		return "", false, err
	}
	path, found = lookupPath(r.log(), id.value, dir, entries)
	r.log().Debug("resolved device path",
		zap.Stringer("identity", id),
		zap.String("path", path),
		zap.Bool("found", found))
	return path, found, nil
}

// Identify finds the identity of kind by for the device at path.
// For IdentifierByPath the result is the canonical form of path.
func (r *Resolver) Identify(by Identifier, path string) (id PartitionIdentity, found bool, err error) {
	switch {
	case by == IdentifierByPath:
		p, err := canonicalize(path)
		if err != nil {
			r.log().Debug("cannot resolve device path", zap.String("path", path), zap.Error(err))
			return PartitionIdentity{}, false, nil
		}
		return NewPath(p), true, nil
	case !by.Valid():
		return PartitionIdentity{}, false, fmt.Errorf("%w: %q", ErrUnknownIdentifier, by)
	}
	dir, entries, err := r.readDirectory(by)
	if err != nil {
		return PartitionIdentity{}, false, err
	}
	value, found := lookupValue(r.log(), path, dir, entries)
	if !found {
		return PartitionIdentity{}, false, nil
	}
	return NewPartitionIdentity(by, value), true, nil
}

// IdentifyAll returns every identity of the device at path, in Identifiers() order.
// Kinds with no match are left out. The first unreadable backing directory aborts the lookup.
func (r *Resolver) IdentifyAll(path string) ([]PartitionIdentity, error) {
	var ids []PartitionIdentity
	for _, by := range Identifiers() {
		id, found, err := r.Identify(by, path)
		if err != nil {
			return nil, err
		}
		if found {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// DevicePath finds the current device path for p using DefaultResolver.
func (p PartitionIdentity) DevicePath() (string, bool, error) {
	return DefaultResolver.DevicePath(p)
}

// Identify finds the identity of kind by for the device at path using DefaultResolver.
func Identify(by Identifier, path string) (PartitionIdentity, bool, error) {
	return DefaultResolver.Identify(by, path)
}

func GetUUID(path string) (PartitionIdentity, bool, error) {
	return Identify(IdentifierByUUID, path)
}

func GetPartUUID(path string) (PartitionIdentity, bool, error) {
	return Identify(IdentifierByPartUUID, path)
}
