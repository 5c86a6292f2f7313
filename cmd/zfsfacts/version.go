package main

import (
	"fmt"

	"github.com/sigreer/zfsfacts/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zfsfacts %s\n", version.Version)
		},
	}
}
