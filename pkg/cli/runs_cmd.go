package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	var (
		dataset string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded analysis runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			runs, err := h.App.Services.Analysis.Runs(cmdContext(cmd), dataset, limit)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{"runs": runs, "total_count": len(runs)})
			}

			if len(runs) == 0 {
				fmt.Println("no analysis runs recorded")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATASET\tALPHA\tT\tDF\tP\tSIGNIFICANT\tWHEN")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%.3g\t%.4f\t%.2f\t%.6g\t%t\t%s\n",
					run.DatasetName, run.Alpha, run.TStatistic, run.DegreesFree,
					run.PValue, run.Significant, run.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", "", "filter by dataset name")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum runs to list (0 = default)")
	return cmd
}
