package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sigreer/zfsfacts/internal/config"
	"github.com/sigreer/zfsfacts/internal/facts"
	"github.com/sigreer/zfsfacts/internal/logging"
	"github.com/sigreer/zfsfacts/internal/zfs"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Swappable in tests.
var (
	newFs     = afero.NewOsFs
	newRunner = func() zfs.Runner { return zfs.ExecRunner{} }
	environ   = os.Environ
)

// errQueryFailed means a failure document was already written to stdout.
var errQueryFailed = errors.New("query failed")

type rootOptions struct {
	cfgFile  string
	logLevel string
	output   string
}

// app bundles what every query command needs.
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	assembler *facts.Assembler
	fs        afero.Fs
	format    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "zfsfacts",
		Short: "Gather facts about ZFS datasets and pools",
		Long: `zfsfacts queries dataset and pool properties through the zfs and zpool
tools and prints them as structured facts for configuration management.

It never changes ZFS state; every command is a read-only query.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is /etc/zfsfacts/config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "output format: auto, json, yaml, table")

	root.AddCommand(newDatasetCmd(opts))
	root.AddCommand(newPoolCmd(opts))
	root.AddCommand(newModuleCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// setup loads config and wires the logger, client and assembler.
func setup(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	fs := newFs()
	cfg, err := config.Load(fs, opts.cfgFile, environ())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}

	var stdout *os.File
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		stdout = f
	}
	format, err := facts.ResolveFormat(cfg.Output, stdout)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.Debug).
		With("invocation", uuid.NewString()[:8])
	logger.Debug("starting", "command", cmd.Name(), "zfs", cfg.ZFSPath, "zpool", cfg.ZpoolPath)

	client := zfs.New(newRunner(), logger, zfs.WithBinaries(cfg.ZFSPath, cfg.ZpoolPath))
	return &app{
		cfg:       cfg,
		logger:    logger,
		assembler: facts.NewAssembler(client, cfg.FactsPrefix),
		fs:        fs,
		format:    format,
	}, nil
}

// emit writes the response, or a failure document for err, to w.
func (a *app) emit(w io.Writer, format string, resp *facts.Response, err error) error {
	if err != nil {
		fail := facts.NewFailure(err)
		a.logger.Error(fail.Message, "exit_code", fail.ExitCode)
		if perr := facts.Print(w, format, fail); perr != nil {
			return perr
		}
		return errQueryFailed
	}
	return facts.Print(w, format, resp)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errQueryFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
