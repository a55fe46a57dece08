package tact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Value int
}

func TestNewReducer_InvalidConfig(t *testing.T) {
	inc := func(s counter, _ Action) counter { s.Value++; return s }

	tests := []struct {
		name     string
		clauses  []Clause[counter]
		wantCode ConfigErrorCode
	}{
		{
			name:     "empty tag set",
			clauses:  []Clause[counter]{On(inc)},
			wantCode: ErrCodeEmptyMatch,
		},
		{
			name:     "nil handler",
			clauses:  []Clause[counter]{On[counter](nil, Tag("FOO"))},
			wantCode: ErrCodeNilHandler,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReducer(counter{}, tt.clauses...)
			require.Error(t, err)
			assert.Nil(t, r)

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantCode, ce.Code)
			assert.Equal(t, "clauses[0]", ce.Field)
		})
	}
}

func TestReducer_DefaultCaseReturnsStateUnchanged(t *testing.T) {
	h1Called := false
	r, err := NewReducer(counter{Value: 7},
		On(func(s counter, _ Action) counter { h1Called = true; return s }, Tag("FOO")),
	)
	require.NoError(t, err)

	state := counter{Value: 3}
	next := r.Reduce(&state, Action{Tag: "BAR"})

	assert.Equal(t, counter{Value: 3}, next)
	assert.False(t, h1Called, "unmatched dispatch must not invoke any handler")
}

func TestReducer_NilStateSubstitutesInitial(t *testing.T) {
	r := MustReducer(counter{Value: 10},
		On(func(s counter, _ Action) counter { s.Value++; return s }, Tag("FOO")),
	)

	assert.Equal(t, counter{Value: 11}, r.Reduce(nil, Action{Tag: "FOO"}))
	assert.Equal(t, counter{Value: 10}, r.Reduce(nil, Action{Tag: "BAR"}))
	assert.Equal(t, counter{Value: 10}, r.Initial())
}

func TestReducer_FirstMatchWins(t *testing.T) {
	var fired []string
	record := func(name string) Handler[counter] {
		return func(s counter, _ Action) counter {
			fired = append(fired, name)
			return s
		}
	}

	// Both clauses contain FOO; the earlier clause always shadows the
	// later for that tag.
	r := MustReducer(counter{},
		On(record("h1"), Tag("FOO")),
		On(record("h2"), Tag("FOO"), Tag("BAR")),
	)

	r.Reduce(nil, Action{Tag: "FOO"})
	r.Reduce(nil, Action{Tag: "FOO"})
	r.Reduce(nil, Action{Tag: "BAR"})

	assert.Equal(t, []string{"h1", "h1", "h2"}, fired)
}

func TestReducer_MatchesThroughUnionClause(t *testing.T) {
	foo := MustCreator("FOO")
	bar := MustCreator("BAR")

	r := MustReducer(0,
		On(func(s int, _ Action) int { return s + 1 }, NewUnion(foo, bar)),
	)

	state := r.Reduce(nil, foo.New())
	state = r.Reduce(&state, bar.New())
	assert.Equal(t, 2, state)
}

func TestReducer_EndToEnd(t *testing.T) {
	foo := MustCreator("FOO", Payload())
	bar := MustCreator("BAR", Payload())

	type appState map[string]any

	r, err := NewReducer(appState{},
		On(func(s appState, v Action) appState {
			next := appState{}
			for k, val := range s {
				next[k] = val
			}
			next["foo"] = v.Payload().(map[string]any)["foo"]
			return next
		}, foo),
		On(func(s appState, v Action) appState {
			next := appState{}
			for k, val := range s {
				next[k] = val
			}
			next["bar"] = v.Payload().(map[string]any)["bar"]
			return next
		}, bar),
	)
	require.NoError(t, err)

	state := r.Reduce(nil, foo.New(map[string]any{"foo": 42}))
	assert.Equal(t, appState{"foo": 42}, state)

	state = r.Reduce(&state, bar.New(map[string]any{"bar": 7}))
	assert.Equal(t, appState{"foo": 42, "bar": 7}, state)
}
