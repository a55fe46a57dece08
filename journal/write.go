package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/tact"
	"github.com/roach88/tact/internal/canon"
)

// Entry is one persisted action.
type Entry struct {
	// ID uniquely identifies the entry (UUIDv7 in production).
	ID string

	// Seq is the logical clock value assigned at record time; replay
	// follows ascending seq.
	Seq int64

	// Tag is the action's variant tag.
	Tag string

	// Fields is the action's open field mapping.
	Fields map[string]any
}

// Action converts the entry back into a tact.Action.
func (e Entry) Action() tact.Action {
	return tact.Action{Tag: e.Tag, Fields: e.Fields}
}

// Append inserts an entry into the journal.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored. Other constraint violations (e.g. a reused seq with
// a fresh ID) still return errors.
//
// Fields are serialized to canonical JSON so equal actions always
// persist as byte-equal rows.
func (j *Journal) Append(ctx context.Context, e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("append entry: id is required")
	}
	if e.Tag == "" {
		return fmt.Errorf("append entry: tag is required")
	}

	fieldsJSON, err := canon.Marshal(normalizeFields(e.Fields))
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO entries (id, seq, tag, fields)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, e.ID, e.Seq, e.Tag, string(fieldsJSON))
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}

	return nil
}

// Record stamps act with a fresh ID and the next seq, appends it, and
// returns the persisted entry.
func (j *Journal) Record(ctx context.Context, act tact.Action) (Entry, error) {
	e := Entry{
		ID:     j.idGen.Generate(),
		Seq:    j.clock.Next(),
		Tag:    act.Tag,
		Fields: act.Fields,
	}

	if err := j.Append(ctx, e); err != nil {
		return Entry{}, err
	}

	slog.Debug("journal: recorded action", "tag", e.Tag, "seq", e.Seq, "id", e.ID)
	return e, nil
}

// normalizeFields maps a nil field set to an empty object so empty-shaped
// actions round-trip as {} rather than null.
func normalizeFields(fields map[string]any) map[string]any {
	if fields == nil {
		return map[string]any{}
	}
	return fields
}
