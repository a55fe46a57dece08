package harness

import (
	"github.com/roach88/tact"
)

// State is the scenario-facing state shape. Reducers under harness test
// fold map states so scenarios can assert on them as plain data.
type State = map[string]any

// Run dispatches the scenario's steps through r, starting from the
// reducer's initial state, then evaluates the assertions.
func Run(s *Scenario, r *tact.Reducer[State]) *Result {
	res := NewResult()

	state := r.Initial()
	for i, step := range s.Steps {
		act := step.action()
		state = r.Reduce(&state, act)

		res.Trace = append(res.Trace, TraceEvent{
			Seq:    int64(i + 1),
			Tag:    act.Tag,
			Fields: act.Fields,
		})
	}
	res.Final = state

	for _, a := range s.Assertions {
		checkAssertion(res, a)
	}

	return res
}

// action builds the tagged value a step dispatches. Steps are data, so
// shapes are inferred: props when a props map is present, payload when a
// payload value is present, empty otherwise.
func (st Step) action() tact.Action {
	switch {
	case st.Props != nil:
		return tact.MustCreator(st.Dispatch, tact.Props()).New(st.Props)
	case st.Payload != nil:
		return tact.MustCreator(st.Dispatch, tact.Payload()).New(st.Payload)
	default:
		return tact.MustCreator(st.Dispatch).New()
	}
}
