// Package verifier checks that warehouse writes landed intact.
package verifier

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dbsmedya/gopipeline/internal/logger"
	"github.com/dbsmedya/gopipeline/internal/sqlutil"
	"github.com/dbsmedya/gopipeline/internal/table"
)

// VerifyResult holds the verification outcome for a single table.
type VerifyResult struct {
	Table        string
	ExpectedRows int64
	ActualRows   int64
	Match        bool
	ErrorMessage string
}

// VerifyStats contains overall verification statistics.
type VerifyStats struct {
	TablesVerified int
	TablesPassed   int
	TablesFailed   int
	TotalRows      int64
}

// Verifier compares warehouse row counts against the in-memory tables
// that were just written.
type Verifier struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewVerifier creates a verifier for the given warehouse connection.
func NewVerifier(db *sql.DB, log *logger.Logger) (*Verifier, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Verifier{db: db, logger: log}, nil
}

// Verify counts every table in the set against the warehouse. The first
// mismatch aborts with a detailed error; query failures abort likewise.
// Tables are visited in the set's insertion order.
func (v *Verifier) Verify(ctx context.Context, tables *table.Set) (*VerifyStats, error) {
	stats := &VerifyStats{}

	v.logger.Infof("Starting verification for %d tables", tables.Len())

	var firstErr error
	tables.Each(func(key string, t *table.Table) {
		if firstErr != nil {
			return
		}
		if err := ctx.Err(); err != nil {
			firstErr = fmt.Errorf("verification interrupted: %w", err)
			return
		}

		result, err := v.verifyByCount(ctx, key, t)
		if err != nil {
			firstErr = fmt.Errorf("verification failed for table %s: %w", key, err)
			return
		}

		stats.TablesVerified++
		stats.TotalRows += result.ActualRows

		if result.Match {
			stats.TablesPassed++
			v.logger.Debugf("Verification PASSED for table %q (%d rows)", key, result.ActualRows)
		} else {
			stats.TablesFailed++
			v.logger.Errorf("Verification FAILED for table %q: %s", key, result.ErrorMessage)
			firstErr = fmt.Errorf("verification mismatch in table %s: %s", key, result.ErrorMessage)
		}
	})
	if firstErr != nil {
		return stats, firstErr
	}

	v.logger.Infof("Verification complete: %d tables verified, %d passed, %d failed, %d total rows",
		stats.TablesVerified, stats.TablesPassed, stats.TablesFailed, stats.TotalRows)

	return stats, nil
}

// verifyByCount compares the warehouse row count to the written table.
func (v *Verifier) verifyByCount(ctx context.Context, name string, t *table.Table) (*VerifyResult, error) {
	quoted, err := sqlutil.QuoteIdentifierSafe(name)
	if err != nil {
		return nil, err
	}

	var actual int64
	query := "SELECT COUNT(*) FROM " + quoted
	if err := v.db.QueryRowContext(ctx, query).Scan(&actual); err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	expected := int64(t.NumRows())
	result := &VerifyResult{
		Table:        name,
		ExpectedRows: expected,
		ActualRows:   actual,
		Match:        expected == actual,
	}
	if !result.Match {
		result.ErrorMessage = fmt.Sprintf("count mismatch: expected=%d, actual=%d", expected, actual)
	}
	return result, nil
}
