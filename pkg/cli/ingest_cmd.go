package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rudidomingues/censotec/internal/service/ingestion"
)

func newIngestCmd() *cobra.Command {
	var mappingFile string

	cmd := &cobra.Command{
		Use:   "ingest <name> <source>",
		Short: "Ingest a census CSV into the analysis engine",
		Long:  "Load a census CSV (local path or s3:// URI) and register it as a named dataset. Column names can be remapped with --mapping.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			mapping, err := ingestion.LoadMappingFile(mappingFile)
			if err != nil {
				return err
			}

			ds, err := h.App.Services.Ingestion.Ingest(cmdContext(cmd), args[0], args[1], mapping)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, ds)
			}
			fmt.Printf("ingested %s: %d rows (%d with tech, %d without)\n",
				ds.Name, ds.Rows, ds.WithTech, ds.WithoutTech)
			return nil
		},
	}

	cmd.Flags().StringVar(&mappingFile, "mapping", "", "YAML file overriding the source column names")
	return cmd
}
