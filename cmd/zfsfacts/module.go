package main

import (
	"fmt"

	"github.com/sigreer/zfsfacts/internal/facts"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newModuleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "module <zfs|zpool> <args-file>",
		Short: "Run as a configuration-management module",
		Long: `Read module arguments from a JSON or YAML file and print a single JSON
result document, the way an orchestrator invokes a facts module.

zfs accepts: name (aliases ds, dataset), recurse, parsable,
properties (alias props), type, depth.
zpool accepts: name (aliases pool, zpool), parsable, properties (alias props).

Failures are printed as {"failed": true, ...} and exit non-zero.`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"zfs", "zpool"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			data, err := afero.ReadFile(a.fs, args[1])
			if err != nil {
				return a.emit(out, facts.FormatJSON, nil, fmt.Errorf("reading module arguments: %w", err))
			}

			switch args[0] {
			case "zfs":
				req, err := facts.ParseDatasetArgs(data)
				if err != nil {
					return a.emit(out, facts.FormatJSON, nil, err)
				}
				resp, err := a.assembler.Datasets(cmd.Context(), req)
				return a.emit(out, facts.FormatJSON, resp, err)
			case "zpool":
				req, err := facts.ParsePoolArgs(data)
				if err != nil {
					return a.emit(out, facts.FormatJSON, nil, err)
				}
				resp, err := a.assembler.Pools(cmd.Context(), req)
				return a.emit(out, facts.FormatJSON, resp, err)
			default:
				return fmt.Errorf("unknown module %q, want zfs or zpool", args[0])
			}
		},
	}
}
