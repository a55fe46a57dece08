package tact

import "fmt"

// Handler computes the next state from the current state and an incoming
// action. Handlers must be synchronous and perform no I/O; the reducer
// invokes at most one handler per dispatch.
type Handler[S any] func(state S, v Action) S

// Clause associates a non-empty tag set with a handler. Build clauses
// with On and pass them to NewReducer in the order they should match.
type Clause[S any] struct {
	tags    []string
	handler Handler[S]
}

// On builds a clause dispatching the given matchers' tags to handler.
// Matchers may overlap across clauses; only the first matching clause in
// reducer order ever fires.
func On[S any](handler Handler[S], ms ...Matcher) Clause[S] {
	return Clause[S]{tags: flattenTags(ms), handler: handler}
}

// Reducer dispatches actions to the first clause whose tag set contains
// the action's tag, falling back to identity passthrough.
//
// INVARIANTS:
//   - Clause order never changes after construction; list order is the
//     sole tie-break when clauses share a tag. The earlier clause always
//     wins and the later is unreachable for that tag. This is allowed,
//     not an error, but usually indicates a registration mistake.
//   - Dispatch is a pure function of (state, action); the reducer holds
//     no mutable state and is safe for concurrent use.
type Reducer[S any] struct {
	initial S
	clauses []Clause[S]
}

// NewReducer builds a reducer from clauses evaluated in the order given.
//
// Fails fast with a ConfigError when a clause has an empty tag set (it
// could never match) or a nil handler.
func NewReducer[S any](initial S, clauses ...Clause[S]) (*Reducer[S], error) {
	for i, c := range clauses {
		if len(c.tags) == 0 {
			return nil, newConfigError(ErrCodeEmptyMatch,
				fmt.Sprintf("clauses[%d]", i), "clause has an empty tag set and can never match")
		}
		if c.handler == nil {
			return nil, newConfigError(ErrCodeNilHandler,
				fmt.Sprintf("clauses[%d]", i), "clause has no handler")
		}
	}

	return &Reducer[S]{initial: initial, clauses: clauses}, nil
}

// MustReducer is like NewReducer but panics on configuration errors.
// Intended for package-level reducer declarations.
func MustReducer[S any](initial S, clauses ...Clause[S]) *Reducer[S] {
	r, err := NewReducer(initial, clauses...)
	if err != nil {
		panic(err)
	}
	return r
}

// Initial returns the reducer's initial state.
func (r *Reducer[S]) Initial() S { return r.initial }

// Reduce dispatches v against the clause list and returns the next state.
//
// A nil state substitutes the initial state, mirroring a store's first
// dispatch. Clauses are scanned in declaration order; the first whose tag
// set contains v.Tag handles the action. When none matches, the state is
// returned unchanged and no handler runs.
func (r *Reducer[S]) Reduce(state *S, v Action) S {
	cur := r.initial
	if state != nil {
		cur = *state
	}

	for _, c := range r.clauses {
		for _, tag := range c.tags {
			if tag == v.Tag {
				return c.handler(cur, v)
			}
		}
	}

	return cur
}
