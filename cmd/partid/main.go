package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	partid "github.com/deitch/partitionidentity"
	"github.com/deitch/partitionidentity/internal/config"
)

// options is shared by all subcommands, filled in by the root command before any of them run.
type options struct {
	configPath string
	diskRoot   string
	sysRoot    string
	debug      bool

	cfg      *config.Config
	logger   *zap.Logger
	resolver *partid.Resolver
}

var subcommandNames = []string{"from-path", "by-uuid", "by-partuuid", "resolve", "fstab", "table"}

var rootCmd = func() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "partid",
		Short: "Find partitions by UUID, label, PARTUUID, PARTLABEL or id, and the other way around",
		Long: `Find partitions by UUID, label, PARTUUID, PARTLABEL or id, and the other way around.

  Lookups read the /dev/disk/by-* directories maintained by udev on every call.
  Identifiers use the fstab notation: UUID=..., LABEL=..., PARTUUID=..., PARTLABEL=...,
  ID=..., or a bare device path. kind:value (e.g. partuuid:1234-01) is accepted too.

  Example usage:
    partid from-path /dev/sda1 /dev/nvme0n1p2
    partid by-uuid 0a1b2c3d-0000-4000-8000-1234567890ab
    partid resolve PARTLABEL=EFI\ System LABEL=data
    partid fstab /etc/fstab
    partid table /dev/sda
  `,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// errors from here on are about the lookups, not how the command was called
			cmd.SilenceUsage = true
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return fmt.Errorf("must give subcommand: [%s]", strings.Join(subcommandNames, ", "))
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file, defaults to /etc/partid/config.yaml or ~/.config/partid/config.yaml if present")
	cmd.PersistentFlags().StringVar(&opts.diskRoot, "root", "", "Directory holding the by-* directories (default /dev/disk)")
	cmd.PersistentFlags().StringVar(&opts.sysRoot, "sys", "", "sysfs mount point (default /sys)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log at debug level, including skipped entries")

	cmd.AddCommand(
		fromPathCmd(opts),
		byValueCmd(opts, "by-uuid", partid.IdentifierByUUID),
		byValueCmd(opts, "by-partuuid", partid.IdentifierByPartUUID),
		resolveCmd(opts),
		fstabCmd(opts),
		tableCmd(opts),
	)
	return cmd
}

// setup loads the config, lets flags override it, and builds the logger and resolver.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("root") {
		cfg.DiskRoot = o.diskRoot
	}
	if cmd.Flags().Changed("sys") {
		cfg.SysRoot = o.sysRoot
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if o.debug {
		level = zapcore.DebugLevel
	}
	logger, err := newLogger(level)
	if err != nil {
		return err
	}
	partid.SetLogger(logger)
	o.cfg = cfg
	o.logger = logger
	o.resolver = partid.NewResolver(partid.WithRoot(cfg.DiskRoot), partid.WithLogger(logger))
	return nil
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.DisableStacktrace = true
	zcfg.DisableCaller = true
	return zcfg.Build()
}

// parseIdentifierArg accepts the fstab form (UUID=..., /dev/...) and kind:value.
func parseIdentifierArg(s string) (partid.PartitionIdentity, error) {
	id, err := partid.Parse(s)
	if err == nil {
		return id, nil
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return partid.PartitionIdentity{}, err
	}
	by := partid.Identifier(strings.ToLower(parts[0]))
	if !by.Valid() {
		return partid.PartitionIdentity{}, fmt.Errorf("unknown identifier type: %s", parts[0])
	}
	return partid.NewPartitionIdentity(by, parts[1]), nil
}

// unavailable reports whether err is a missing by-* directory, which on a real
// system just means no device has that kind of identifier.
func unavailable(err error) bool {
	var dirErr *partid.DirectoryUnavailableError
	return errors.As(err, &dirErr)
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
