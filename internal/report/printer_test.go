package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrintSummary_Success(t *testing.T) {
	r := Build(RunContext{
		RunID:            "run-print",
		StartTime:        time.Now().Add(-2 * time.Second),
		RecordsProcessed: 18000,
	}, sampleQuality())

	var buf bytes.Buffer
	PrintSummary(&buf, Success(r))
	out := buf.String()

	assert.Contains(t, out, summaryTitle)
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "18000")
	assert.Contains(t, out, "0.95")
	assert.Contains(t, out, "records/second")
	assert.Contains(t, out, "Pipeline completed successfully!")

	// Per-table scores in sorted order.
	assert.Contains(t, out, "products")
	assert.Contains(t, out, "transactions")
	assert.Less(t, strings.Index(out, "products"), strings.Index(out, "transactions"))
}

func TestPrintSummary_Failure(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, Failure("transform social_media: missing expected column likes"))
	out := buf.String()

	assert.Contains(t, out, summaryTitle)
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "Error: transform social_media: missing expected column likes")
	assert.NotContains(t, out, "Pipeline completed successfully!")
	assert.Contains(t, out, "0.00 seconds")
	assert.Contains(t, out, "0 records/second")
}

func TestPrintSummary_NoTableScores(t *testing.T) {
	q := sampleQuality()
	q.TableScores = map[string]float64{}

	r := Build(RunContext{
		RunID:            "run-empty",
		StartTime:        time.Now().Add(-time.Second),
		RecordsProcessed: 0,
	}, q)

	var buf bytes.Buffer
	PrintSummary(&buf, Success(r))
	out := buf.String()

	assert.NotContains(t, out, "Table")
	assert.Contains(t, out, "Pipeline completed successfully!")
}

func TestLabelWidth(t *testing.T) {
	assert.Equal(t, 18, labelWidth(summaryLabels))
	assert.Equal(t, 0, labelWidth(nil))
}
