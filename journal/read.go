package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// ReadAll returns every entry in ascending seq order.
func (j *Journal) ReadAll(ctx context.Context) ([]Entry, error) {
	return j.readEntries(ctx, `
		SELECT id, seq, tag, fields FROM entries ORDER BY seq ASC
	`)
}

// ReadSince returns entries with seq strictly greater than after, in
// ascending seq order. ReadSince(ctx, 0) is equivalent to ReadAll.
func (j *Journal) ReadSince(ctx context.Context, after int64) ([]Entry, error) {
	return j.readEntries(ctx, `
		SELECT id, seq, tag, fields FROM entries WHERE seq > ? ORDER BY seq ASC
	`, after)
}

// LastSeq returns the highest persisted seq, or 0 for an empty journal.
func (j *Journal) LastSeq(ctx context.Context) (int64, error) {
	var last sql.NullInt64
	err := j.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM entries`).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return last.Int64, nil
}

// Tags returns the distinct tags present in the journal with their entry
// counts, ordered by tag.
func (j *Journal) Tags(ctx context.Context) (map[string]int64, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT tag, COUNT(*) FROM entries GROUP BY tag ORDER BY tag ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var tag string
		var n int64
		if err := rows.Scan(&tag, &n); err != nil {
			return nil, fmt.Errorf("read tags: %w", err)
		}
		counts[tag] = n
	}
	return counts, rows.Err()
}

func (j *Journal) readEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var fieldsJSON string
		if err := rows.Scan(&e.ID, &e.Seq, &e.Tag, &fieldsJSON); err != nil {
			return nil, fmt.Errorf("read entries: %w", err)
		}
		if err := json.Unmarshal([]byte(fieldsJSON), &e.Fields); err != nil {
			return nil, fmt.Errorf("read entries: decode fields for %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
