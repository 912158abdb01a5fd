package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newChartsCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "charts <name>",
		Short: "Render the dataset's SVG charts (histogram, boxplot, group means)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			if dir == "" {
				dir = h.Cfg.ChartDir
			}

			paths, err := h.App.Services.Charts.WriteDataset(cmdContext(cmd), args[0], dir)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{"charts": paths})
			}
			for _, p := range paths {
				fmt.Println(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default: CENSOTEC_CHART_DIR)")
	return cmd
}

func newDistributionsCmd() *cobra.Command {
	var (
		dir  string
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "distributions",
		Short: "Render reference histograms of the standard probability distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			if dir == "" {
				dir = h.Cfg.ChartDir
			}
			if !cmd.Flags().Changed("seed") {
				seed = h.Cfg.Seed
			}

			paths, err := h.App.Services.Charts.WriteReference(cmdContext(cmd), dir, seed)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{"charts": paths})
			}
			for _, p := range paths {
				fmt.Println(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default: CENSOTEC_CHART_DIR)")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "sampler seed")
	return cmd
}
