package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/tact"
)

// Replay folds the whole journal through r, in seq order, and returns
// the resulting state along with the number of entries applied.
//
// Unmatched entries pass through the reducer's default case and count as
// applied; replay is deterministic because both the log order and the
// reducer's clause order are fixed.
func Replay[S any](ctx context.Context, j *Journal, r *tact.Reducer[S]) (S, int, error) {
	return ReplaySince(ctx, j, r, 0)
}

// ReplaySince folds entries with seq greater than after into r, starting
// from the reducer's initial state. Callers resuming from a checkpoint
// should fold the checkpointed state themselves via ReadSince.
func ReplaySince[S any](ctx context.Context, j *Journal, r *tact.Reducer[S], after int64) (S, int, error) {
	state := r.Initial()

	entries, err := j.ReadSince(ctx, after)
	if err != nil {
		return state, 0, fmt.Errorf("replay: %w", err)
	}

	for _, e := range entries {
		state = r.Reduce(&state, e.Action())
	}

	slog.Debug("journal: replayed entries", "count", len(entries), "after", after)
	return state, len(entries), nil
}
