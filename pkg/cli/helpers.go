package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rudidomingues/censotec/internal/app"
	"github.com/rudidomingues/censotec/internal/config"
	"github.com/rudidomingues/censotec/internal/engine"
)

// appHandle bundles the wired application with its open resources.
type appHandle struct {
	App    *app.App
	Cfg    *config.Config
	Logger *slog.Logger

	closers []func() error
}

func (h *appHandle) Close() {
	for i := len(h.closers) - 1; i >= 0; i-- {
		_ = h.closers[i]()
	}
}

// openApp loads config from the environment (and .env), opens the engine
// and metastore, and wires the application. Registered datasets with missing
// engine tables are re-loaded so one-shot runs see previous registrations.
func openApp(cmd *cobra.Command) (*appHandle, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd, cfg)
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	eng, err := engine.Open(cfg.DuckDBPath, logger)
	if err != nil {
		return nil, err
	}

	writeDB, readDB, err := app.OpenMetastore(cfg)
	if err != nil {
		_ = eng.Close()
		return nil, err
	}

	a, err := app.New(app.Deps{Cfg: cfg, Engine: eng, WriteDB: writeDB, ReadDB: readDB, Logger: logger})
	if err != nil {
		_ = readDB.Close()
		_ = writeDB.Close()
		_ = eng.Close()
		return nil, err
	}

	if err := a.Services.Ingestion.Restore(cmd.Context()); err != nil {
		logger.Warn("dataset restore failed", "error", err)
	}

	return &appHandle{
		App:     a,
		Cfg:     cfg,
		Logger:  logger,
		closers: []func() error{eng.Close, writeDB.Close, readDB.Close},
	}, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// getOutputFormat returns the effective output format from the root command.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

func validateOutputFormat(output string) error {
	if output != "" && output != "text" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'text' or 'json'", output)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
