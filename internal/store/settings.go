package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lifewheel/internal/advice"
)

type settingsRepo struct {
	db *sql.DB
}

func (r *settingsRepo) Get(ctx context.Context) (advice.Settings, error) {
	query, args := builder().Select("slot", "body").
		From(entsql.Table("settings")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return advice.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	s := advice.DefaultSettings()
	for rows.Next() {
		var slot, body string
		if err := rows.Scan(&slot, &body); err != nil {
			return advice.Settings{}, fmt.Errorf("scan setting: %w", err)
		}
		parsed, err := advice.ParseSlot(slot)
		if err != nil {
			continue
		}
		s = s.With(parsed, body)
	}
	return s, rows.Err()
}

func (r *settingsRepo) Put(ctx context.Context, s advice.Settings) error {
	now := time.Now().UnixMilli()
	ins := builder().Insert("settings").Columns("slot", "body", "updated_at")
	for _, slot := range advice.Slots {
		ins.Values(string(slot), s.Get(slot), now)
	}
	query, args := ins.
		OnConflict(entsql.ConflictColumns("slot"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (r *settingsRepo) Reset(ctx context.Context) error {
	query, args := builder().Delete("settings").Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}
