package quality

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/gopipeline/internal/table"
)

// Thresholds for the heuristic checks.
const (
	completenessThreshold = 0.95
	uniquenessThreshold   = 0.95
)

// restrictedColumns are numeric columns that must never go negative.
var restrictedColumns = map[string]bool{
	"price":    true,
	"quantity": true,
	"rating":   true,
}

// CheckFunc runs one named check against a single table. It returns
// the pass/fail verdict and any issue strings describing violations.
type CheckFunc func(key string, t *table.Table) (bool, []string)

// Check is a named entry in the check registry.
type Check struct {
	Name string
	Fn   CheckFunc
}

// Registry returns the enumerated checks in evaluation order. The
// type consistency and referential integrity entries are explicit
// no-op placeholders so real checks can be substituted per-name
// without restructuring the scorer.
func Registry() []Check {
	return []Check{
		{Name: "completeness", Fn: checkCompleteness},
		{Name: "uniqueness", Fn: checkUniqueness},
		{Name: "type_consistency", Fn: checkTypeConsistency},
		{Name: "range_validity", Fn: checkRangeValidity},
		{Name: "referential_integrity", Fn: checkReferentialIntegrity},
	}
}

// checkCompleteness passes when the fraction of non-missing cells
// across all columns exceeds the threshold. A table with no cells is
// trivially complete.
func checkCompleteness(_ string, t *table.Table) (bool, []string) {
	totalCells := t.NumRows() * t.NumColumns()
	if totalCells == 0 {
		return true, nil
	}

	missing := 0
	for _, col := range t.Columns() {
		for _, v := range col.Values {
			if v == nil {
				missing++
			}
		}
	}

	completeness := 1 - float64(missing)/float64(totalCells)
	return completeness > completenessThreshold, nil
}

// checkUniqueness fails when any column whose name contains "id"
// (case-insensitive) has a distinct ratio at or below the threshold.
// Each failing column records an issue; the verdict is a single
// boolean across all id columns.
func checkUniqueness(key string, t *table.Table) (bool, []string) {
	pass := true
	var issues []string

	for _, col := range t.Columns() {
		if !strings.Contains(strings.ToLower(col.Name), "id") {
			continue
		}
		rows := len(col.Values)
		if rows == 0 {
			continue
		}

		distinct := make(map[interface{}]struct{}, rows)
		for _, v := range col.Values {
			distinct[v] = struct{}{}
		}

		if float64(len(distinct))/float64(rows) <= uniquenessThreshold {
			pass = false
			issues = append(issues, fmt.Sprintf("%s.%s: Low uniqueness", key, col.Name))
		}
	}

	return pass, issues
}

// checkTypeConsistency is a placeholder; no actual check is performed.
func checkTypeConsistency(_ string, _ *table.Table) (bool, []string) {
	return true, nil
}

// checkRangeValidity fails when a restricted numeric column (price,
// quantity, rating) contains a negative value.
func checkRangeValidity(key string, t *table.Table) (bool, []string) {
	pass := true
	var issues []string

	for _, col := range t.Columns() {
		if !restrictedColumns[col.Name] || !col.IsNumeric() {
			continue
		}
		for _, v := range col.Values {
			if v != nil && table.ToFloat64(v) < 0 {
				pass = false
				issues = append(issues, fmt.Sprintf("%s.%s: Invalid negative values", key, col.Name))
				break
			}
		}
	}

	return pass, issues
}

// checkReferentialIntegrity is a placeholder; no actual check is performed.
func checkReferentialIntegrity(_ string, _ *table.Table) (bool, []string) {
	return true, nil
}
