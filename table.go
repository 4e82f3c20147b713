package partitionidentity

import (
	"fmt"
	"strings"

	"github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/backend/file"
	"github.com/diskfs/go-diskfs/partition"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TableEntry is a partition as recorded in a disk's partition table.
// start and size are in bytes.
type TableEntry struct {
	Number    int
	Start     int64
	Size      int64
	PartUUID  PartitionIdentity
	PartLabel PartitionIdentity // zero when the table records no name
}

// TableIdentities reads the partition table of the disk at diskPath, read-only,
// and returns the PARTUUID and PARTLABEL each partition carries.
// The values are what the by-partuuid and by-partlabel links are named after,
// but nothing here consults those directories.
func TableIdentities(diskPath string) ([]TableEntry, error) {
	b, err := file.OpenFromPath(diskPath, true)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", diskPath, err)
	}
	defer func() { _ = b.Close() }()
	d, err := diskfs.OpenBackend(b)
	if err != nil {
		return nil, fmt.Errorf("open disk %s: %w", diskPath, err)
	}
	table, err := d.GetPartitionTable()
	if err != nil {
		return nil, fmt.Errorf("read partition table of %s: %w", diskPath, err)
	}
	Logger().Debug("read partition table", zap.String("disk", diskPath), zap.String("type", table.Type()))
	return tableIdentities(table), nil
}

func tableIdentities(table partition.Table) []TableEntry {
	var entries []TableEntry
	for i, p := range table.GetPartitions() {
		// unused slots
		if p == nil || p.GetSize() == 0 {
			continue
		}
		entry := TableEntry{
			Number: i + 1,
			Start:  p.GetStart(),
			Size:   p.GetSize(),
		}
		if id := normalizePartUUID(p.UUID()); id != "" {
			entry.PartUUID = NewPartUUID(id)
		}
		if label := p.Label(); label != "" {
			entry.PartLabel = NewPartLabel(label)
		}
		entries = append(entries, entry)
	}
	return entries
}

// normalizePartUUID lowercases a partition GUID the way udev names by-partuuid links.
// MBR partition ids (<signature>-<nn>) are not UUIDs and are only lowercased.
func normalizePartUUID(s string) string {
	if u, err := uuid.Parse(s); err == nil {
		return u.String()
	}
	return strings.ToLower(s)
}

// MatchTableEntry finds the entry id refers to. Only PARTUUID and PARTLABEL
// identities are recorded in a partition table; any other kind never matches.
// PARTUUID values are compared after normalization, PARTLABEL values exactly.
func MatchTableEntry(entries []TableEntry, id PartitionIdentity) (TableEntry, bool) {
	for _, entry := range entries {
		var match bool
		switch id.By() {
		case IdentifierByPartUUID:
			match = !entry.PartUUID.IsZero() && entry.PartUUID.Value() == normalizePartUUID(id.Value())
		case IdentifierByPartLabel:
			match = !entry.PartLabel.IsZero() && entry.PartLabel == id
		}
		if match {
			return entry, true
		}
	}
	return TableEntry{}, false
}
