// Package app wires repositories, the analysis engine, and services from
// configuration so that the CLI and the HTTP server share one setup path.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rudidomingues/censotec/internal/config"
	"github.com/rudidomingues/censotec/internal/db"
	"github.com/rudidomingues/censotec/internal/db/repository"
	"github.com/rudidomingues/censotec/internal/engine"
	"github.com/rudidomingues/censotec/internal/service/analysis"
	"github.com/rudidomingues/censotec/internal/service/charts"
	"github.com/rudidomingues/censotec/internal/service/ingestion"
)

// Deps holds the external dependencies that main() must provide: config,
// database handles, and the logger.
type Deps struct {
	Cfg     *config.Config
	Engine  *engine.Engine
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the API handler, UI, and CLI need.
type Services struct {
	Ingestion *ingestion.Service
	Analysis  *analysis.Service
	Charts    *charts.Service
}

// App is the fully wired application.
type App struct {
	Services Services
	Datasets *repository.DatasetRepo
	Runs     *repository.RunRepo
}

// New wires repositories and services from the provided deps. An S3 fetcher
// is attached to the ingestion service only when S3 is configured.
func New(deps Deps) (*App, error) {
	// Dataset writes go through the single-connection write pool; the
	// analysis path only reads and uses the read pool.
	datasets := repository.NewDatasetRepo(deps.WriteDB)
	datasetsRead := repository.NewDatasetRepo(deps.ReadDB)
	runs := repository.NewRunRepo(deps.WriteDB)

	var fetcher *ingestion.S3Fetcher
	if deps.Cfg.HasS3Config() {
		f, err := ingestion.NewS3Fetcher(deps.Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 fetcher: %w", err)
		}
		fetcher = f
		deps.Logger.Info("s3 ingestion enabled", "endpoint", *deps.Cfg.S3Endpoint)
	}

	ingestionSvc := ingestion.NewService(deps.Engine, datasets, fetcher, deps.Logger)
	analysisSvc := analysis.NewService(deps.Engine, datasetsRead, runs, deps.Logger)
	chartsSvc := charts.NewService(analysisSvc, deps.Logger)

	return &App{
		Services: Services{
			Ingestion: ingestionSvc,
			Analysis:  analysisSvc,
			Charts:    chartsSvc,
		},
		Datasets: datasets,
		Runs:     runs,
	}, nil
}

// OpenMetastore opens the SQLite metastore write and read pools and runs
// migrations on the write pool.
func OpenMetastore(cfg *config.Config) (writeDB, readDB *sql.DB, err error) {
	writeDB, err = db.OpenSQLite(cfg.MetaDBPath, "write", 0)
	if err != nil {
		return nil, nil, fmt.Errorf("open metastore (write): %w", err)
	}
	if err := db.RunMigrations(writeDB); err != nil {
		_ = writeDB.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	readDB, err = db.OpenSQLite(cfg.MetaDBPath, "read", 0)
	if err != nil {
		_ = writeDB.Close()
		return nil, nil, fmt.Errorf("open metastore (read): %w", err)
	}
	return writeDB, readDB, nil
}
