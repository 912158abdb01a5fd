// Package cli implements the censotec command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			_ = printJSON(os.Stdout, map[string]any{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		output string
		quiet  bool
	)

	rootCmd := &cobra.Command{
		Use:           "censotec",
		Short:         "School census statistics CLI",
		Long:          "Ingest school census extracts, compute descriptive statistics, and test whether technology infrastructure correlates with pass rates.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("CENSOTEC_OUTPUT"); v != "" {
					output = v
					_ = cmd.Root().PersistentFlags().Set("output", v)
				}
			}
			return validateOutputFormat(output)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress log output")

	rootCmd.AddCommand(
		newIngestCmd(),
		newDescribeCmd(),
		newTTestCmd(),
		newChartsCmd(),
		newDistributionsCmd(),
		newSynthCmd(),
		newRunsCmd(),
		newDatasetsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
