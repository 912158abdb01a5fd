// Package engine wraps a DuckDB connection used as the analysis engine:
// CSV ingestion with load-time validation, and typed retrieval of school
// records partitioned by infrastructure group.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/rudidomingues/censotec/internal/domain"
)

// Engine is the DuckDB-backed analysis engine. A single Engine owns the
// connection pool; datasets live in one table each.
type Engine struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the DuckDB database at path. An empty path opens an in-memory
// database, which is the default for one-shot CLI runs.
func Open(path string, logger *slog.Logger) (*Engine, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	return &Engine{db: db, logger: logger.With("component", "engine")}, nil
}

// Close releases the underlying connection pool.
func (e *Engine) Close() error {
	return e.db.Close()
}

// DB exposes the underlying pool for ad-hoc queries.
func (e *Engine) DB() *sql.DB {
	return e.db
}

// GroupValues returns the pass rates of the two infrastructure groups.
// The partition is exhaustive and disjoint: every row lands in exactly one
// slice.
func (e *Engine) GroupValues(ctx context.Context, table string) (withTech, withoutTech []float64, err error) {
	q := fmt.Sprintf(`SELECT pass_rate, has_tech FROM %s`, quoteIdent(table))
	rows, err := e.db.QueryContext(ctx, q)
	if err != nil {
		return nil, nil, mapTableError(table, err)
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var rate float64
		var hasTech bool
		if err := rows.Scan(&rate, &hasTech); err != nil {
			return nil, nil, fmt.Errorf("scan pass rate: %w", err)
		}
		if hasTech {
			withTech = append(withTech, rate)
		} else {
			withoutTech = append(withoutTech, rate)
		}
	}
	return withTech, withoutTech, rows.Err()
}

// Records returns up to limit school records from the dataset table
// (limit <= 0 means all).
func (e *Engine) Records(ctx context.Context, table string, limit int) ([]domain.SchoolRecord, error) {
	q := fmt.Sprintf(`SELECT school_id, has_lab, has_internet, has_devices, has_tech, pass_rate
		FROM %s ORDER BY school_id`, quoteIdent(table))
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := e.db.QueryContext(ctx, q)
	if err != nil {
		return nil, mapTableError(table, err)
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.SchoolRecord
	for rows.Next() {
		var r domain.SchoolRecord
		if err := rows.Scan(&r.SchoolID, &r.HasLab, &r.HasInternet, &r.HasDevices, &r.HasTech, &r.PassRate); err != nil {
			return nil, fmt.Errorf("scan school record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TableExists reports whether a table is present in the engine database.
func (e *Engine) TableExists(ctx context.Context, table string) (bool, error) {
	var count int
	err := e.db.QueryRowContext(ctx,
		`SELECT count(*) FROM information_schema.tables WHERE table_name = ?`, table).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return count > 0, nil
}

// DropTable removes a dataset table. Dropping a missing table is not an error.
func (e *Engine) DropTable(ctx context.Context, table string) error {
	_, err := e.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quoteIdent(table)))
	if err != nil {
		return fmt.Errorf("drop table %s: %w", table, err)
	}
	return nil
}

// quoteIdent quotes a SQL identifier for DuckDB.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteString quotes a SQL string literal for DuckDB.
func quoteString(s string) string {
	return `'` + strings.ReplaceAll(s, `'`, `''`) + `'`
}

// mapTableError turns a missing-table DuckDB error into a domain NotFoundError.
func mapTableError(table string, err error) error {
	if strings.Contains(err.Error(), "does not exist") {
		return domain.ErrNotFound("dataset table %q not found", table)
	}
	return err
}
