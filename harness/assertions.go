package harness

import (
	"bytes"
	"fmt"

	"github.com/roach88/tact/internal/canon"
)

func checkAssertion(res *Result, a Assertion) {
	switch a.Type {
	case AssertFinalState:
		checkFinalState(res, a)
	case AssertTraceCount:
		checkTraceCount(res, a)
	case AssertTraceOrder:
		checkTraceOrder(res, a)
	}
}

// checkFinalState verifies a subset match: every expected field must be
// present in the final state with an equal value. Extra state fields are
// allowed.
func checkFinalState(res *Result, a Assertion) {
	for key, want := range a.Expect {
		got, ok := res.Final[key]
		if !ok {
			res.AddError(fmt.Sprintf("final_state: field %q missing from final state", key))
			continue
		}
		if !equalCanonical(got, want) {
			res.AddError(fmt.Sprintf("final_state: field %q = %v, want %v", key, got, want))
		}
	}
}

func checkTraceCount(res *Result, a Assertion) {
	n := 0
	for _, ev := range res.Trace {
		if ev.Tag == a.Tag {
			n++
		}
	}
	if n != a.Count {
		res.AddError(fmt.Sprintf("trace_count: tag %q dispatched %d times, want %d", a.Tag, n, a.Count))
	}
}

// checkTraceOrder verifies the expected tags appear as a subsequence of
// the trace; unrelated dispatches may interleave.
func checkTraceOrder(res *Result, a Assertion) {
	next := 0
	for _, ev := range res.Trace {
		if next < len(a.Tags) && ev.Tag == a.Tags[next] {
			next++
		}
	}
	if next != len(a.Tags) {
		res.AddError(fmt.Sprintf("trace_order: expected order %v not found in trace (matched %d of %d)",
			a.Tags, next, len(a.Tags)))
	}
}

// equalCanonical compares values by their canonical JSON form, which
// irons out int/float representation differences between YAML-decoded
// expectations and handler-produced state.
func equalCanonical(a, b any) bool {
	ab, err := canon.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := canon.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}
