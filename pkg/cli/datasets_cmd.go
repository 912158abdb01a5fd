package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDatasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Manage registered datasets",
	}
	cmd.AddCommand(newDatasetsListCmd(), newDatasetsDeleteCmd())
	return cmd
}

func newDatasetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			datasets, err := h.App.Services.Ingestion.List(cmdContext(cmd))
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{"datasets": datasets, "total_count": len(datasets)})
			}

			if len(datasets) == 0 {
				fmt.Println("no datasets registered")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tROWS\tWITH_TECH\tWITHOUT_TECH\tSOURCE\tINGESTED")
			for _, ds := range datasets {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
					ds.Name, ds.Rows, ds.WithTech, ds.WithoutTech, ds.SourcePath,
					ds.IngestedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
}

func newDatasetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a dataset registration and drop its table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			if err := h.App.Services.Ingestion.Delete(cmdContext(cmd), args[0]); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{"deleted": args[0]})
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}
}
