// Package quality computes the heuristic data-quality score for the
// derived tables before they are reported.
package quality

import (
	"github.com/dbsmedya/gopipeline/internal/logger"
	"github.com/dbsmedya/gopipeline/internal/table"
)

// Fixed recommendation strings appended based on the overall verdict.
const (
	recommendValidationRules = "Implement automated data validation rules"
	recommendAddressIssues   = "Address identified data quality issues"
)

// overallThreshold is the overall score below which the validation
// rules recommendation is added.
const overallThreshold = 0.9

// Report is the aggregate data-quality verdict for one pipeline run.
type Report struct {
	OverallScore    float64            `json:"overall_score"`
	TableScores     map[string]float64 `json:"table_scores"`
	IssuesFound     []string           `json:"issues_found"`
	Recommendations []string           `json:"recommendations"`
}

// Checker runs the registered checks against every table in a set.
type Checker struct {
	checks []Check
	logger *logger.Logger
}

// NewChecker creates a checker with the default check registry.
func NewChecker(log *logger.Logger) *Checker {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Checker{
		checks: Registry(),
		logger: log,
	}
}

// Check scores every table in the set. The per-table score is the
// fraction of passed checks; the overall score is the mean across all
// tables. An empty set yields an overall score of 0 rather than a
// division by zero. Tables are visited in the set's insertion order,
// so issue ordering is deterministic.
func (c *Checker) Check(tables *table.Set) *Report {
	report := &Report{
		TableScores:     make(map[string]float64, tables.Len()),
		IssuesFound:     []string{},
		Recommendations: []string{},
	}

	var totalScore float64
	tables.Each(func(key string, t *table.Table) {
		passed := 0
		for _, check := range c.checks {
			ok, issues := check.Fn(key, t)
			if ok {
				passed++
			}
			report.IssuesFound = append(report.IssuesFound, issues...)
		}

		score := float64(passed) / float64(len(c.checks))
		report.TableScores[key] = score
		totalScore += score

		c.logger.Debugw("Table quality checked",
			"table", key,
			"score", score,
			"checks_passed", passed,
			"checks_total", len(c.checks),
		)
	})

	if tables.Len() > 0 {
		report.OverallScore = totalScore / float64(tables.Len())
	}

	if report.OverallScore < overallThreshold {
		report.Recommendations = append(report.Recommendations, recommendValidationRules)
	}
	if len(report.IssuesFound) > 0 {
		report.Recommendations = append(report.Recommendations, recommendAddressIssues)
	}

	c.logger.Infow("Data quality check completed",
		"overall_score", report.OverallScore,
		"tables", tables.Len(),
		"issues", len(report.IssuesFound),
	)

	return report
}
