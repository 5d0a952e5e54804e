package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var deliveryColumns = []string{
	"id", "kind", "channel", "user_id", "entry_id", "recipient", "recipients", "message", "created_at",
}

type deliveryRepo struct {
	db *sql.DB
}

func (r *deliveryRepo) Record(ctx context.Context, d Delivery) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	query, args := builder().Insert("deliveries").
		Columns(deliveryColumns...).
		Values(d.ID, d.Kind, d.Channel, d.UserID, d.EntryID, d.Recipient, d.Recipients, d.Message, d.CreatedAt.UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record %s delivery: %w", d.Kind, err)
	}
	return nil
}

func (r *deliveryRepo) List(ctx context.Context, kind string, limit int) ([]Delivery, error) {
	sel := builder().Select(deliveryColumns...).
		From(entsql.Table("deliveries")).
		OrderBy(entsql.Desc("created_at"))
	if kind != "" {
		sel.Where(entsql.EQ("kind", kind))
	}
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var out []Delivery
	for rows.Next() {
		var (
			d       Delivery
			created int64
		)
		if err := rows.Scan(&d.ID, &d.Kind, &d.Channel, &d.UserID, &d.EntryID, &d.Recipient, &d.Recipients, &d.Message, &created); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, d)
	}
	return out, rows.Err()
}
