package main

import (
	"strings"

	"github.com/sigreer/zfsfacts/internal/zfs"
	"github.com/spf13/cobra"
)

func newDatasetCmd(opts *rootOptions) *cobra.Command {
	req := zfs.DatasetRequest{}

	cmd := &cobra.Command{
		Use:     "dataset <name>",
		Aliases: []string{"ds", "zfs"},
		Short:   "Show properties of a dataset and optionally its children",
		Long: `Query properties of a ZFS dataset with 'zfs get'.

The dataset must exist; a missing dataset is reported before any property
query runs.

Examples:
  zfsfacts dataset rpool/export/home
  zfsfacts dataset data/home --recurse --type filesystem
  zfsfacts dataset tank --depth 1 --properties used,avail --parsable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			req.Name = args[0]
			resp, err := a.assembler.Datasets(cmd.Context(), req)
			return a.emit(cmd.OutOrStdout(), a.format, resp, err)
		},
	}

	cmd.Flags().BoolVarP(&req.Recurse, "recurse", "r", false, "include children recursively")
	cmd.Flags().BoolVarP(&req.Parsable, "parsable", "p", false, "exact numeric values instead of human-readable units")
	cmd.Flags().StringVar(&req.Properties, "properties", zfs.PropertiesAll, "comma-separated property names, or all")
	cmd.Flags().StringVarP(&req.Type, "type", "t", zfs.TypeAll,
		"dataset types to list: "+strings.Join(zfs.SupportedTypes, ", "))
	cmd.Flags().IntVarP(&req.Depth, "depth", "d", 0, "limit recursion depth (0 for no limit)")
	return cmd
}
