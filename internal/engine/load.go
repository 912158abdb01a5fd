package engine

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rudidomingues/censotec/internal/domain"
)

// LoadCSV ingests the CSV at csvPath into the given dataset table, mapping
// source columns onto the canonical schema (school_id, has_lab, has_internet,
// has_devices, has_tech, pass_rate).
//
// Load-time validation rejects the whole file when any pass rate is missing
// or outside [0,1]; a rejected load leaves no table behind.
func (e *Engine) LoadCSV(ctx context.Context, table, csvPath string, m domain.ColumnMapping) (*domain.LoadReport, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(csvPath); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound("dataset file %q not found", csvPath)
		}
		return nil, fmt.Errorf("stat %s: %w", csvPath, err)
	}

	staging := table + "_staging"
	defer func() {
		_, _ = e.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quoteIdent(staging)))
	}()

	// Stage the raw file. read_csv infers types; malformed rows fail here.
	stageSQL := fmt.Sprintf(`CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv(%s, header=true)`,
		quoteIdent(staging), quoteString(csvPath))
	if _, err := e.db.ExecContext(ctx, stageSQL); err != nil {
		return nil, domain.ErrValidation("read %s: %v", csvPath, err)
	}

	cols, err := e.tableColumns(ctx, staging)
	if err != nil {
		return nil, err
	}

	sel, err := buildSelect(m, cols)
	if err != nil {
		return nil, err
	}

	ctasSQL := fmt.Sprintf(`CREATE OR REPLACE TABLE %s AS %s FROM %s`,
		quoteIdent(table), sel, quoteIdent(staging))
	if _, err := e.db.ExecContext(ctx, ctasSQL); err != nil {
		return nil, domain.ErrValidation("malformed rows in %s: %v", csvPath, err)
	}

	if err := e.validateLoadedTable(ctx, table); err != nil {
		_ = e.DropTable(ctx, table)
		return nil, err
	}

	report, err := e.countGroups(ctx, table)
	if err != nil {
		return nil, err
	}

	e.logger.Info("dataset loaded",
		"table", table,
		"source", csvPath,
		"rows", report.Rows,
		"with_tech", report.WithTech,
		"without_tech", report.WithoutTech)
	return report, nil
}

// tableColumns returns the column names of a table, lowercased for
// case-insensitive matching against the mapping.
func (e *Engine) tableColumns(ctx context.Context, table string) (map[string]string, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_name = ?`, table)
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", table, err)
	}
	defer rows.Close() //nolint:errcheck

	cols := make(map[string]string)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		cols[strings.ToLower(name)] = name
	}
	return cols, rows.Err()
}

// buildSelect produces the SELECT list that normalises the staged CSV into
// the canonical schema. The combined flag wins over component indicators
// when both are mapped and present.
func buildSelect(m domain.ColumnMapping, cols map[string]string) (string, error) {
	col := func(mapped string) (string, bool) {
		actual, ok := cols[strings.ToLower(mapped)]
		return actual, ok && mapped != ""
	}

	schoolCol, ok := col(m.SchoolID)
	if !ok {
		return "", domain.ErrValidation("missing required column %q", m.SchoolID)
	}
	rateCol, ok := col(m.PassRate)
	if !ok {
		return "", domain.ErrValidation("missing required column %q", m.PassRate)
	}

	indicator := func(mapped string) string {
		actual, ok := col(mapped)
		if !ok {
			return "FALSE"
		}
		return fmt.Sprintf("(CAST(%s AS INTEGER) <> 0)", quoteIdent(actual))
	}

	labExpr := indicator(m.Lab)
	internetExpr := indicator(m.Internet)
	devicesExpr := indicator(m.Devices)

	var techExpr string
	if actual, ok := col(m.Combined); ok {
		techExpr = fmt.Sprintf("(CAST(%s AS INTEGER) <> 0)", quoteIdent(actual))
	} else if labExpr == "FALSE" && internetExpr == "FALSE" && devicesExpr == "FALSE" {
		return "", domain.ErrValidation("no infrastructure column found: need %q or one of the indicator columns", m.Combined)
	} else {
		techExpr = fmt.Sprintf("(%s OR %s OR %s)", labExpr, internetExpr, devicesExpr)
	}

	return fmt.Sprintf(`SELECT
		CAST(%s AS VARCHAR) AS school_id,
		%s AS has_lab,
		%s AS has_internet,
		%s AS has_devices,
		%s AS has_tech,
		CAST(%s AS DOUBLE) AS pass_rate`,
		quoteIdent(schoolCol), labExpr, internetExpr, devicesExpr, techExpr, quoteIdent(rateCol)), nil
}

// validateLoadedTable enforces the pass-rate invariant: non-null and in [0,1].
func (e *Engine) validateLoadedTable(ctx context.Context, table string) error {
	var bad int64
	q := fmt.Sprintf(`SELECT count(*) FROM %s
		WHERE pass_rate IS NULL OR pass_rate < 0 OR pass_rate > 1`, quoteIdent(table))
	if err := e.db.QueryRowContext(ctx, q).Scan(&bad); err != nil {
		return fmt.Errorf("validate %s: %w", table, err)
	}
	if bad > 0 {
		return domain.ErrValidation("%d row(s) with pass rate missing or outside [0,1]", bad)
	}

	var empty int64
	if err := e.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, quoteIdent(table))).Scan(&empty); err != nil {
		return fmt.Errorf("validate %s: %w", table, err)
	}
	if empty == 0 {
		return domain.ErrValidation("dataset has no rows")
	}
	return nil
}

func (e *Engine) countGroups(ctx context.Context, table string) (*domain.LoadReport, error) {
	var r domain.LoadReport
	q := fmt.Sprintf(`SELECT count(*),
		count(*) FILTER (WHERE has_tech),
		count(*) FILTER (WHERE NOT has_tech)
		FROM %s`, quoteIdent(table))
	if err := e.db.QueryRowContext(ctx, q).Scan(&r.Rows, &r.WithTech, &r.WithoutTech); err != nil {
		return nil, fmt.Errorf("count groups in %s: %w", table, err)
	}
	return &r, nil
}
