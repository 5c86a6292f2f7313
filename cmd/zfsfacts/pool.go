package main

import (
	"github.com/sigreer/zfsfacts/internal/zfs"
	"github.com/spf13/cobra"
)

func newPoolCmd(opts *rootOptions) *cobra.Command {
	req := zfs.PoolRequest{}

	cmd := &cobra.Command{
		Use:     "pool [name]",
		Aliases: []string{"zpool"},
		Short:   "Show properties of one pool or all pools",
		Long: `Query pool properties with 'zpool get'.

Without a name every imported pool is listed. With a name the pool must
exist.

Examples:
  zfsfacts pool rpool
  zfsfacts pool --properties free,size --parsable`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				req.Name = args[0]
			}
			resp, err := a.assembler.Pools(cmd.Context(), req)
			return a.emit(cmd.OutOrStdout(), a.format, resp, err)
		},
	}

	cmd.Flags().BoolVarP(&req.Parsable, "parsable", "p", false, "exact numeric values instead of human-readable units")
	cmd.Flags().StringVar(&req.Properties, "properties", zfs.PropertiesAll, "comma-separated property names, or all")
	return cmd
}
