package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/gookit/color"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
)

const summaryTitle = "=== Data Pipeline Report ==="

// summaryLabels are the fixed summary lines, padded to a common width.
var summaryLabels = []string{
	"Status",
	"Records Processed",
	"Execution Time",
	"Data Quality Score",
	"Performance",
}

// PrintSummary writes the fixed-format human-readable run summary.
// It matches on the outcome variant: a successful run prints the full
// figures and the completion line, a failed run prints the failure
// status with zeroed figures and never the completion line.
func PrintSummary(w io.Writer, outcome RunOutcome) {
	fmt.Fprintln(w, summaryTitle)

	pad := labelWidth(summaryLabels)
	line := func(label, value string) {
		fmt.Fprintf(w, "%s: %s\n", runewidth.FillRight(label, pad), value)
	}

	if !outcome.Succeeded() {
		line("Status", color.Red.Sprint("failed"))
		line("Records Processed", "0")
		line("Execution Time", "0.00 seconds")
		line("Data Quality Score", "0.00")
		line("Performance", "0 records/second")
		fmt.Fprintf(w, "Error: %s\n", outcome.Error())
		return
	}

	r := outcome.Report()
	line("Status", color.Green.Sprint(r.PipelineExecution.Status))
	line("Records Processed", fmt.Sprintf("%d", r.PipelineExecution.RecordsProcessed))
	line("Execution Time", fmt.Sprintf("%.2f seconds", r.PipelineExecution.ExecutionTimeSeconds))
	line("Data Quality Score", fmt.Sprintf("%.2f", r.DataQuality.OverallScore))
	line("Performance", fmt.Sprintf("%.0f records/second", r.PerformanceMetrics.RecordsPerSecond))

	printTableScores(w, r)

	fmt.Fprintln(w, "Pipeline completed successfully!")
}

// printTableScores renders the per-table quality scores.
func printTableScores(w io.Writer, r *PipelineReport) {
	if len(r.DataQuality.TableScores) == 0 {
		return
	}

	names := make([]string, 0, len(r.DataQuality.TableScores))
	for name := range r.DataQuality.TableScores {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := prettytable.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(prettytable.Row{"Table", "Quality Score"})
	for _, name := range names {
		tw.AppendRow(prettytable.Row{name, fmt.Sprintf("%.2f", r.DataQuality.TableScores[name])})
	}
	tw.Render()
}

// labelWidth returns the display width of the widest label.
func labelWidth(labels []string) int {
	max := 0
	for _, label := range labels {
		if w := runewidth.StringWidth(label); w > max {
			max = w
		}
	}
	return max
}
