package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	partid "github.com/deitch/partitionidentity"
)

var kindNames = map[partid.Identifier]string{
	partid.IdentifierByID:        "ID",
	partid.IdentifierByLabel:     "Label",
	partid.IdentifierByPartLabel: "PartLabel",
	partid.IdentifierByPartUUID:  "PartUUID",
	partid.IdentifierByPath:      "Path",
	partid.IdentifierByUUID:      "UUID",
}

const (
	notFound     = "not found"
	notAvailable = "unavailable"
	noValue      = "none"
)

func fromPathCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "from-path <device>...",
		Short: "Print every identifier of the given devices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, device := range args {
				if i > 0 {
					_, _ = fmt.Fprintln(out)
				}
				if err := printFromPath(out, opts, device); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printFromPath(out io.Writer, opts *options, device string) error {
	_, _ = fmt.Fprintf(out, "%s:\n", device)
	for _, by := range partid.Identifiers() {
		value := noValue
		id, found, err := opts.resolver.Identify(by, device)
		switch {
		case unavailable(err):
			opts.logger.Debug("no backing directory", zap.String("kind", by.Token()), zap.Error(err))
			value = notAvailable
		case err != nil:
			return err
		case found:
			value = id.Value()
		}
		_, _ = fmt.Fprintf(out, "%s: %s\n", kindNames[by], value)
	}
	if major, minor, err := partid.DeviceNumber(device); err == nil && (major != 0 || minor != 0) {
		_, _ = fmt.Fprintf(out, "Device: %d:%d\n", major, minor)
	}
	if info, err := partid.ReadBlockInfo(device, opts.cfg.SysRoot); err == nil {
		_, _ = fmt.Fprintf(out, "Size: %s\n", humanize.IBytes(uint64(info.Size)))
		if info.Partition > 0 {
			_, _ = fmt.Fprintf(out, "Partition: %d\n", info.Partition)
		}
	} else {
		opts.logger.Debug("no sysfs entry", zap.String("device", device), zap.Error(err))
	}
	return nil
}

func byValueCmd(opts *options, use string, by partid.Identifier) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <" + by.Token() + ">...",
		Short: fmt.Sprintf("Print the device path for each %s", kindNames[by]),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, value := range args {
				if err := printDevicePath(cmd.OutOrStdout(), opts, value, partid.NewPartitionIdentity(by, value)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printDevicePath(out io.Writer, opts *options, label string, id partid.PartitionIdentity) error {
	path, found, err := opts.resolver.DevicePath(id)
	switch {
	case unavailable(err):
		// no device has this kind of identifier at all
		opts.logger.Warn("lookup directory missing", zap.Error(err))
		path = notFound
	case err != nil:
		return err
	case !found:
		path = notFound
	}
	_, _ = fmt.Fprintf(out, "%s: %s\n", label, path)
	return nil
}

func resolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [identifier]...",
		Short: "Print the device path for identifiers such as UUID=... or PARTLABEL=...",
		Long: `Print the device path for identifiers such as UUID=... or PARTLABEL=...

  With no arguments, resolves the identities listed in the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := opts.cfg.Identities
			if len(args) > 0 {
				ids = nil
				for _, arg := range args {
					id, err := parseIdentifierArg(arg)
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}
			}
			if len(ids) == 0 {
				return errors.New("no identifiers given and none configured")
			}
			for _, id := range ids {
				if err := printDevicePath(cmd.OutOrStdout(), opts, id.String(), id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func fstabCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fstab [file]",
		Short: "Print the device behind every source in an fstab file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := partid.DefaultFstabPath
			if len(args) > 0 {
				path = args[0]
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			entries, err := partid.ParseFstab(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			for _, entry := range entries {
				id, err := entry.Identity()
				if err != nil {
					opts.logger.Debug("skipping pseudo filesystem", zap.String("source", entry.Source), zap.String("mountpoint", entry.MountPoint))
					continue
				}
				if err := printDevicePath(cmd.OutOrStdout(), opts, entry.MountPoint+" ("+id.String()+")", id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func tableCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "table <disk> [PARTUUID=...|PARTLABEL=...]...",
		Short: "List the PARTUUID and PARTLABEL recorded in a disk's partition table, and where they resolve",
		Long: `List the PARTUUID and PARTLABEL recorded in a disk's partition table, and where they resolve.

  The table is read directly from the disk, so this shows what udev should be linking.
  Further arguments restrict the listing to the matching partitions.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := partid.TableIdentities(args[0])
			if err != nil {
				return err
			}
			if len(args) > 1 {
				entries, err = filterTable(entries, args[1:])
				if err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			for _, entry := range entries {
				label := noValue
				if !entry.PartLabel.IsZero() {
					label = entry.PartLabel.String()
				}
				partUUID := noValue
				if !entry.PartUUID.IsZero() {
					partUUID = entry.PartUUID.String()
				}
				_, _ = fmt.Fprintf(out, "%d\t%s\t%s\t%s\t", entry.Number, humanize.IBytes(uint64(entry.Size)), partUUID, label)
				if entry.PartUUID.IsZero() {
					_, _ = fmt.Fprintf(out, "device: %s\n", notFound)
					continue
				}
				if err := printDevicePath(out, opts, "device", entry.PartUUID); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func filterTable(entries []partid.TableEntry, args []string) ([]partid.TableEntry, error) {
	var matched []partid.TableEntry
	for _, arg := range args {
		id, err := parseIdentifierArg(arg)
		if err != nil {
			return nil, err
		}
		entry, found := partid.MatchTableEntry(entries, id)
		if !found {
			return nil, fmt.Errorf("no partition in the table matches %s", id)
		}
		matched = append(matched, entry)
	}
	return matched, nil
}
