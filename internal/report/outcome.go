package report

import "encoding/json"

// RunOutcome is the final result of a pipeline run: either a full
// report or a failure message. Using one sum-typed value keeps the
// printer and the artifact writer matching on the variant explicitly
// instead of probing for absent fields.
type RunOutcome struct {
	report *PipelineReport
	errMsg string
	failed bool
}

// Success wraps a completed pipeline report.
func Success(r *PipelineReport) RunOutcome {
	return RunOutcome{report: r}
}

// Failure wraps a terminal failure message.
func Failure(msg string) RunOutcome {
	return RunOutcome{errMsg: msg, failed: true}
}

// Succeeded reports whether the run completed.
func (o RunOutcome) Succeeded() bool {
	return !o.failed
}

// Report returns the pipeline report, or nil for a failed run.
func (o RunOutcome) Report() *PipelineReport {
	return o.report
}

// Error returns the failure message, or "" for a successful run.
func (o RunOutcome) Error() string {
	return o.errMsg
}

// failureBody is the JSON shape of a failed run.
type failureBody struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// MarshalJSON serializes the success variant as the full report and
// the failure variant as {"status":"failed","error":...}.
func (o RunOutcome) MarshalJSON() ([]byte, error) {
	if o.failed {
		return json.Marshal(failureBody{Status: "failed", Error: o.errMsg})
	}
	return json.Marshal(o.report)
}
