package harness

// TraceEvent records one dispatched action.
type TraceEvent struct {
	Seq    int64          `json:"seq"`
	Tag    string         `json:"tag"`
	Fields map[string]any `json:"fields,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass indicates overall success: all assertions held.
	Pass bool `json:"pass"`

	// Trace lists every dispatch in order.
	Trace []TraceEvent `json:"trace"`

	// Final is the state after the last step.
	Final map[string]any `json:"final"`

	// Errors contains assertion failure messages. Empty when Pass.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result to accumulate into.
func NewResult() *Result {
	return &Result{Pass: true}
}

// AddError records an assertion failure and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
