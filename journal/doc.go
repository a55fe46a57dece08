// Package journal persists dispatched actions to an append-only SQLite
// log and replays them through a reducer to rebuild state.
//
// Entries are stamped with a monotonic logical sequence number, never a
// wall-clock timestamp, so replay always reproduces the original
// dispatch order. Field maps are stored as canonical JSON: equal actions
// persist as byte-equal rows.
//
// The journal is an optional collaborator for tact reducers - nothing in
// the core library depends on it. Typical use is a store that records
// each action as it dispatches, then folds the log on startup:
//
//	j, err := journal.Open(path)
//	...
//	state, n, err := journal.Replay(ctx, j, reducer)
package journal
