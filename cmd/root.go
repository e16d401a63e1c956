package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "billaged",
	Short: "billaged - invoice computation and rendering engine",
	Long: `billaged computes invoice totals, derives payment and workflow
statuses and renders invoices as paginated PDF documents.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
