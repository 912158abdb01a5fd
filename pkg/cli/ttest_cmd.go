package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newTTestCmd() *cobra.Command {
	var alpha float64

	cmd := &cobra.Command{
		Use:   "ttest <name>",
		Short: "Run a Welch t-test comparing mean pass rates between the groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			if !cmd.Flags().Changed("alpha") {
				alpha = h.Cfg.Alpha
			}

			res, err := h.App.Services.Analysis.TTest(cmdContext(cmd), args[0], alpha)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{
					"dataset":  args[0],
					"result":   res,
					"decision": res.Decision(),
				})
			}

			fmt.Printf("Welch t-test on %s (alpha=%.3g)\n", args[0], res.Alpha)
			fmt.Printf("  groups:   with_tech n=%d mean=%.4f, without_tech n=%d mean=%.4f\n",
				res.NWithTech, res.MeanWith, res.NWithout, res.MeanWithout)
			fmt.Printf("  t=%.4f df=%.2f p=%.6g\n", res.TStatistic, res.DegreesFree, res.PValue)
			fmt.Printf("  decision: %s\n", res.Decision())
			return nil
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level in (0,1)")
	return cmd
}
