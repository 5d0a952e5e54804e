package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var userColumns = []string{"id", "contact", "name", "age", "email", "role", "created_at", "updated_at"}

type userRepo struct {
	db *sql.DB
}

func (r *userRepo) Upsert(ctx context.Context, u User) (*User, error) {
	if u.Contact == "" {
		return nil, errors.New("upsert user: empty contact")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	now := u.CreatedAt.UnixMilli()

	query, args := builder().Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.Contact, u.Name, u.Age, u.Email, u.Role, now, now).
		OnConflict(
			entsql.ConflictColumns("contact"),
			entsql.ResolveWith(func(s *entsql.UpdateSet) {
				s.SetExcluded("name")
				s.SetExcluded("age")
				s.SetExcluded("email")
				s.SetExcluded("updated_at")
			}),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	return r.GetByContact(ctx, u.Contact)
}

func (r *userRepo) Get(ctx context.Context, id string) (*User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepo) GetByContact(ctx context.Context, contact string) (*User, error) {
	return r.getBy(ctx, "contact", contact)
}

func (r *userRepo) getBy(ctx context.Context, column, value string) (*User, error) {
	query, args := builder().Select(userColumns...).
		From(entsql.Table("users")).
		Where(entsql.EQ(column, value)).
		Limit(1).
		Query()

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s=%q: %w", column, value, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *userRepo) List(ctx context.Context) ([]User, error) {
	query, args := builder().Select(userColumns...).
		From(entsql.Table("users")).
		OrderBy("created_at", "id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var (
		u                User
		created, updated int64
	)
	if err := row.Scan(&u.ID, &u.Contact, &u.Name, &u.Age, &u.Email, &u.Role, &created, &updated); err != nil {
		return nil, err
	}
	u.CreatedAt = time.UnixMilli(created).UTC()
	u.UpdatedAt = time.UnixMilli(updated).UTC()
	return &u, nil
}
