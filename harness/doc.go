// Package harness runs declarative dispatch scenarios against a reducer.
//
// A scenario is a YAML document naming a sequence of actions to dispatch
// and assertions over the resulting trace and final state. The reducer
// under test operates on map[string]any state, which keeps scenarios
// fully expressible as data.
//
// Scenarios serve as conformance tests for reducer wiring: they pin the
// observable dispatch behavior (what was dispatched, in what order, and
// what state fell out) without reaching into handler internals. Golden
// trace comparison (see golden.go) additionally pins the exact trace
// byte-for-byte.
package harness
