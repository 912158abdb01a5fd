package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rudidomingues/censotec/internal/service/synth"
)

func newSynthCmd() *cobra.Command {
	var opts synth.Options

	cmd := &cobra.Command{
		Use:   "synth <path>",
		Short: "Generate a synthetic census CSV",
		Long:  "Write a synthetic school census extract with pass rates drawn from two normal distributions, one per infrastructure group.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := synth.Generate(args[0], opts); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{"path": args[0], "rows": opts.N})
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.N, "n", 500, "number of schools")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 42, "sampler seed")
	cmd.Flags().Float64Var(&opts.WithTechShare, "share", 0.55, "fraction of schools with tech infrastructure")
	cmd.Flags().Float64Var(&opts.MeanWithTech, "mean-with", 0.85, "mean pass rate of the with-tech group")
	cmd.Flags().Float64Var(&opts.MeanWithout, "mean-without", 0.72, "mean pass rate of the without-tech group")
	cmd.Flags().Float64Var(&opts.StdDev, "stddev", 0.07, "pass-rate standard deviation")
	return cmd
}
