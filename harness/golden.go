package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/tact"
	"github.com/roach88/tact/internal/canon"
)

// TraceSnapshot captures a scenario run for golden comparison. Snapshots
// serialize through canonical JSON, so byte-equal goldens mean
// byte-equal behavior.
type TraceSnapshot struct {
	ScenarioName string
	Trace        []TraceEvent
	Final        map[string]any
}

// toCanonicalMap flattens the snapshot into plain maps and slices for
// canonical serialization.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	trace := make([]any, len(s.Trace))
	for i, ev := range s.Trace {
		m := map[string]any{
			"seq": ev.Seq,
			"tag": ev.Tag,
		}
		if ev.Fields != nil {
			m["fields"] = ev.Fields
		}
		trace[i] = m
	}

	out := map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         trace,
	}
	if s.Final != nil {
		out["final"] = s.Final
	}
	return out
}

// RunWithGolden runs the scenario against r and compares the resulting
// trace snapshot to testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./harness -update
func RunWithGolden(t *testing.T, s *Scenario, r *tact.Reducer[State]) (*Result, error) {
	t.Helper()

	res := Run(s, r)

	snapshot := TraceSnapshot{
		ScenarioName: s.Name,
		Trace:        res.Trace,
		Final:        res.Final,
	}
	data, err := canon.Marshal(snapshot.toCanonicalMap())
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, data)

	return res, nil
}
