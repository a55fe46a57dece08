package harness

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a dispatch conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files are keyed by it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Steps are dispatched in order against the reducer under test.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state and the dispatch trace.
	// Supported types: final_state, trace_count, trace_order.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step dispatches one action. Exactly one of Payload/Props should be set
// for shaped actions; both empty dispatches a bare tagged value.
type Step struct {
	// Dispatch is the action tag to dispatch.
	Dispatch string `yaml:"dispatch"`

	// Payload populates a payload-shaped action.
	Payload any `yaml:"payload,omitempty"`

	// Props populates a props-shaped action.
	Props map[string]any `yaml:"props,omitempty"`
}

// Assertion validates the trace or final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Expect contains expected final-state field values (final_state).
	// Subset match - only specified fields are validated.
	Expect map[string]any `yaml:"expect,omitempty"`

	// Tag is the action tag (trace_count).
	Tag string `yaml:"tag,omitempty"`

	// Count is the expected number of dispatches of Tag (trace_count).
	Count int `yaml:"count,omitempty"`

	// Tags is the expected relative dispatch order (trace_order).
	// Subsequence match - other tags may interleave.
	Tags []string `yaml:"tags,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalState = "final_state"
	AssertTraceCount = "trace_count"
	AssertTraceOrder = "trace_order"
)

// LoadScenario decodes a scenario from YAML.
func LoadScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScenarioFile reads a scenario from path.
func LoadScenarioFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	s, err := LoadScenario(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	for i, step := range s.Steps {
		if step.Dispatch == "" {
			return fmt.Errorf("scenario %q: steps[%d] has no dispatch tag", s.Name, i)
		}
		if step.Payload != nil && step.Props != nil {
			return fmt.Errorf("scenario %q: steps[%d] sets both payload and props", s.Name, i)
		}
	}
	for i, a := range s.Assertions {
		switch a.Type {
		case AssertFinalState, AssertTraceCount, AssertTraceOrder:
		default:
			return fmt.Errorf("scenario %q: assertions[%d] has unknown type %q", s.Name, i, a.Type)
		}
	}
	return nil
}
