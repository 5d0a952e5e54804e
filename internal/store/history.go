package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lifewheel/internal/wheel"
)

type historyRepo struct {
	db *sql.DB
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Append is idempotent on e.ID: saving an entry that is already stored
// succeeds and leaves the stored row alone.
func (r *historyRepo) Append(ctx context.Context, e wheel.Entry) error {
	scores, err := json.Marshal(e.Scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append entry %s: %w", e.ID, err)
	}
	defer tx.Rollback()

	query, args := builder().Insert("wheel_entries").
		Columns("id", "user_id", "created_at", "scores", "contact_email").
		Values(e.ID, e.UserID, e.CreatedAt.UnixMilli(), string(scores), e.ContactEmail).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append entry %s: %w", e.ID, err)
	}
	if e.Narrative != "" {
		if err := appendNarrative(ctx, tx, e.ID, e.Narrative); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append entry %s: %w", e.ID, err)
	}
	return nil
}

func (r *historyRepo) AppendNarrative(ctx context.Context, entryID, text string) error {
	return appendNarrative(ctx, r.db, entryID, text)
}

func appendNarrative(ctx context.Context, db execer, entryID, text string) error {
	query, args := builder().Insert("entry_narratives").
		Columns("entry_id", "body", "created_at").
		Values(entryID, text, time.Now().UnixMilli()).
		OnConflict(entsql.ConflictColumns("entry_id"), entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append narrative for %s: %w", entryID, err)
	}
	return nil
}

func (r *historyRepo) ListByUser(ctx context.Context, userID string) ([]wheel.Entry, error) {
	return r.list(ctx, func(e *entsql.SelectTable, sel *entsql.Selector) {
		sel.Where(entsql.EQ(e.C("user_id"), userID))
	})
}

func (r *historyRepo) ListAll(ctx context.Context) ([]wheel.Entry, error) {
	return r.list(ctx, nil)
}

func (r *historyRepo) list(ctx context.Context, filter func(*entsql.SelectTable, *entsql.Selector)) ([]wheel.Entry, error) {
	e := entsql.Table("wheel_entries").As("e")
	n := entsql.Table("entry_narratives").As("n")

	sel := builder().Select(
		e.C("id"), e.C("user_id"), e.C("created_at"), e.C("scores"), e.C("contact_email"), n.C("body"),
	).
		From(e).
		LeftJoin(n).On(e.C("id"), n.C("entry_id")).
		OrderBy(entsql.Desc(e.C("created_at")), entsql.Desc(e.C("id")))
	if filter != nil {
		filter(e, sel)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []wheel.Entry
	for rows.Next() {
		var (
			entry     wheel.Entry
			created   int64
			scores    string
			narrative sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &created, &scores, &entry.ContactEmail, &narrative); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if err := json.Unmarshal([]byte(scores), &entry.Scores); err != nil {
			return nil, fmt.Errorf("decode scores of %s: %w", entry.ID, err)
		}
		entry.CreatedAt = time.UnixMilli(created).UTC()
		entry.Narrative = narrative.String
		out = append(out, entry)
	}
	return out, rows.Err()
}
