package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dbsmedya/gopipeline/internal/logger"
	"github.com/dbsmedya/gopipeline/internal/sqlutil"
	"github.com/dbsmedya/gopipeline/internal/table"
)

// SummaryTableName is the metadata table written alongside the data tables.
const SummaryTableName = "summary_statistics"

// insertBatchSize caps rows per INSERT statement.
const insertBatchSize = 500

// Writer persists derived tables into the warehouse. Each table write
// fully replaces any existing table of the same name; there is no
// transactional atomicity across tables, so a failure partway through
// leaves earlier tables updated and later ones untouched.
type Writer struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewWriter creates a new warehouse writer.
func NewWriter(db *sql.DB, log *logger.Logger) (*Writer, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Writer{db: db, logger: log}, nil
}

// Load writes every table in the set plus a computed summary
// statistics table. It returns false as soon as any individual write
// fails; the error is logged, not propagated, so callers only see the
// boolean outcome.
func (w *Writer) Load(ctx context.Context, tables *table.Set) bool {
	ok := true
	tables.Each(func(key string, t *table.Table) {
		if !ok {
			return
		}
		log := w.logger.WithTable(key)
		if err := w.replaceTable(ctx, key, t); err != nil {
			log.Errorw("Failed to load table", "error", err)
			ok = false
			return
		}
		log.Infow("Loaded table", "records", t.NumRows())
	})
	if !ok {
		return false
	}

	stats := SummaryStatistics(tables, time.Now())
	log := w.logger.WithTable(SummaryTableName)
	if err := w.replaceTable(ctx, SummaryTableName, stats); err != nil {
		log.Errorw("Failed to load table", "error", err)
		return false
	}
	log.Infow("Loaded table", "records", stats.NumRows())

	return true
}

// replaceTable drops and recreates the named table, then inserts all
// rows in batches.
func (w *Writer) replaceTable(ctx context.Context, name string, t *table.Table) error {
	quoted, err := sqlutil.QuoteIdentifierSafe(name)
	if err != nil {
		return err
	}

	if _, err := w.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoted); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}

	createStmt, err := createTableStatement(quoted, t)
	if err != nil {
		return err
	}
	if _, err := w.db.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	return w.insertRows(ctx, quoted, t)
}

// createTableStatement builds a CREATE TABLE statement from the
// table's column schema.
func createTableStatement(quotedName string, t *table.Table) (string, error) {
	defs := make([]string, 0, t.NumColumns())
	for _, col := range t.Columns() {
		quotedCol, err := sqlutil.QuoteIdentifierSafe(col.Name)
		if err != nil {
			return "", err
		}
		defs = append(defs, quotedCol+" "+columnType(col))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quotedName, strings.Join(defs, ", ")), nil
}

// columnType infers the SQL column type from the first non-nil cell.
// Timestamps are stored as RFC3339 text.
func columnType(col *table.Column) string {
	for _, v := range col.Values {
		switch v.(type) {
		case int64:
			return "INTEGER"
		case float64:
			return "REAL"
		case string, time.Time:
			return "TEXT"
		case nil:
			continue
		}
	}
	return "TEXT"
}

// insertRows inserts all rows of the table in multi-row batches.
func (w *Writer) insertRows(ctx context.Context, quotedName string, t *table.Table) error {
	numRows := t.NumRows()
	if numRows == 0 {
		return nil
	}

	cols := t.Columns()
	quotedCols := make([]string, len(cols))
	for i, col := range cols {
		quoted, err := sqlutil.QuoteIdentifierSafe(col.Name)
		if err != nil {
			return err
		}
		quotedCols[i] = quoted
	}

	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ",
		quotedName, strings.Join(quotedCols, ", "))

	for start := 0; start < numRows; start += insertBatchSize {
		end := start + insertBatchSize
		if end > numRows {
			end = numRows
		}

		batch := end - start
		placeholders := make([]string, batch)
		args := make([]interface{}, 0, batch*len(cols))
		for row := start; row < end; row++ {
			placeholders[row-start] = rowPlaceholder
			for _, col := range cols {
				args = append(args, cellValue(col.Values[row]))
			}
		}

		stmt := prefix + strings.Join(placeholders, ", ")
		if _, err := w.db.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("insert rows %d-%d: %w", start, end-1, err)
		}
	}

	return nil
}

// cellValue converts a cell to a driver-friendly value.
func cellValue(v interface{}) interface{} {
	if ts, ok := v.(time.Time); ok {
		return ts.Format(time.RFC3339)
	}
	return v
}
