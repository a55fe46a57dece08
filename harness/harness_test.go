package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tact"
)

// counterReducer folds increment/label/reset actions into a map state.
func counterReducer(t *testing.T) *tact.Reducer[State] {
	t.Helper()

	increment := func(s State, a tact.Action) State {
		next := cloneState(s)
		by, _ := a.Field("by")
		next["count"] = asInt(next["count"]) + asInt(by)
		return next
	}
	label := func(s State, a tact.Action) State {
		next := cloneState(s)
		next["label"] = a.Payload()
		return next
	}
	reset := func(s State, _ tact.Action) State {
		next := cloneState(s)
		next["count"] = 0
		return next
	}

	return tact.MustReducer(State{"count": 0},
		tact.On[State](increment, tact.Tag("counter.increment")),
		tact.On[State](label, tact.Tag("counter.label")),
		tact.On[State](reset, tact.Tag("counter.reset")),
	)
}

func cloneState(s State) State {
	next := make(State, len(s))
	for k, v := range s {
		next[k] = v
	}
	return next
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func TestRunFinalState(t *testing.T) {
	s := &Scenario{
		Name: "final-state",
		Steps: []Step{
			{Dispatch: "counter.increment", Props: map[string]any{"by": 2}},
			{Dispatch: "counter.increment", Props: map[string]any{"by": 3}},
			{Dispatch: "counter.label", Payload: "warm"},
		},
		Assertions: []Assertion{
			{Type: AssertFinalState, Expect: map[string]any{"count": 5, "label": "warm"}},
		},
	}

	res := Run(s, counterReducer(t))
	assert.True(t, res.Pass)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 5, res.Final["count"])
	require.Len(t, res.Trace, 3)
	assert.Equal(t, int64(1), res.Trace[0].Seq)
	assert.Equal(t, "counter.increment", res.Trace[0].Tag)
}

func TestRunFinalStateFailures(t *testing.T) {
	s := &Scenario{
		Name:  "final-state-fail",
		Steps: []Step{{Dispatch: "counter.increment", Props: map[string]any{"by": 1}}},
		Assertions: []Assertion{
			{Type: AssertFinalState, Expect: map[string]any{"count": 7, "missing": true}},
		},
	}

	res := Run(s, counterReducer(t))
	assert.False(t, res.Pass)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], `"count"`)
	assert.Contains(t, res.Errors[1], `"missing"`)
}

// Final-state expectations loaded from YAML may decode numbers as floats
// while handlers keep ints; the comparison is canonical, so both pass.
func TestRunNumericEquivalence(t *testing.T) {
	s := &Scenario{
		Name:  "numeric-equivalence",
		Steps: []Step{{Dispatch: "counter.increment", Props: map[string]any{"by": 5}}},
		Assertions: []Assertion{
			{Type: AssertFinalState, Expect: map[string]any{"count": float64(5)}},
		},
	}

	res := Run(s, counterReducer(t))
	assert.True(t, res.Pass, "errors: %v", res.Errors)
}

func TestRunTraceCount(t *testing.T) {
	s := &Scenario{
		Name: "trace-count",
		Steps: []Step{
			{Dispatch: "counter.increment", Props: map[string]any{"by": 1}},
			{Dispatch: "counter.reset"},
			{Dispatch: "counter.increment", Props: map[string]any{"by": 1}},
		},
		Assertions: []Assertion{
			{Type: AssertTraceCount, Tag: "counter.increment", Count: 2},
			{Type: AssertTraceCount, Tag: "counter.reset", Count: 1},
			{Type: AssertTraceCount, Tag: "counter.label", Count: 0},
		},
	}

	res := Run(s, counterReducer(t))
	assert.True(t, res.Pass, "errors: %v", res.Errors)

	s.Assertions = []Assertion{{Type: AssertTraceCount, Tag: "counter.reset", Count: 2}}
	res = Run(s, counterReducer(t))
	assert.False(t, res.Pass)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "trace_count")
}

func TestRunTraceOrderSubsequence(t *testing.T) {
	s := &Scenario{
		Name: "trace-order",
		Steps: []Step{
			{Dispatch: "counter.increment", Props: map[string]any{"by": 1}},
			{Dispatch: "unrelated.noise"},
			{Dispatch: "counter.label", Payload: "x"},
			{Dispatch: "counter.reset"},
		},
		Assertions: []Assertion{
			{Type: AssertTraceOrder, Tags: []string{"counter.increment", "counter.reset"}},
		},
	}

	res := Run(s, counterReducer(t))
	assert.True(t, res.Pass, "errors: %v", res.Errors)

	s.Assertions = []Assertion{
		{Type: AssertTraceOrder, Tags: []string{"counter.reset", "counter.increment"}},
	}
	res = Run(s, counterReducer(t))
	assert.False(t, res.Pass)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "trace_order")
}

// Unmatched tags pass through the reducer untouched but still appear in
// the trace.
func TestRunUnmatchedPassthrough(t *testing.T) {
	s := &Scenario{
		Name: "passthrough",
		Steps: []Step{
			{Dispatch: "counter.increment", Props: map[string]any{"by": 4}},
			{Dispatch: "unrelated.noise"},
		},
	}

	res := Run(s, counterReducer(t))
	assert.True(t, res.Pass)
	assert.Equal(t, 4, res.Final["count"])
	require.Len(t, res.Trace, 2)
	assert.Equal(t, "unrelated.noise", res.Trace[1].Tag)
	assert.Nil(t, res.Trace[1].Fields)
}
