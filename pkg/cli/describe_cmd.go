package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rudidomingues/censotec/internal/domain"
)

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <name>",
		Short: "Print descriptive pass-rate statistics per infrastructure group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			summary, err := h.App.Services.Analysis.Summary(cmdContext(cmd), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, summary)
			}
			printSummary(summary)
			return nil
		},
	}
}

func printSummary(summary *domain.DatasetSummary) {
	ds := summary.Dataset
	fmt.Printf("dataset %s: %d rows (%d with tech, %d without)\n\n",
		ds.Name, ds.Rows, ds.WithTech, ds.WithoutTech)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tN\tMEAN\tMEDIAN\tMODE\tSTD\tVAR\tMIN\tQ1\tQ3\tMAX\tSKEW")
	for _, g := range summary.Groups {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			g.Group, g.Count, g.Mean, g.Median, g.Mode, g.StdDev, g.Variance,
			g.Min, g.Q1, g.Q3, g.Max, g.Skewness)
	}
	_ = w.Flush()
}
