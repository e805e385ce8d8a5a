package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ternarybob/corporate-reports/internal/common"
)

func newVersionCmd() *cobra.Command {
	var showBanner bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// No configuration needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			if showBanner {
				common.PrintBanner(common.GetVersion())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "corporate-reports version %s\n", common.GetFullVersion())
		},
	}
	cmd.Flags().BoolVar(&showBanner, "banner", false, "Print the application banner")
	return cmd
}
