package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// entryRepo implements EntryRepo on the storage_entries table.
type entryRepo struct {
	drv *entsql.Driver
}

func (r *entryRepo) Get(ctx context.Context, key string) (string, bool, error) {
	b := builder()
	query, args := b.Select("value").
		From(b.Table(entriesTable)).
		Where(entsql.EQ("key", key)).
		Limit(1).
		Query()

	var value string
	err := r.drv.DB().QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get entry %q: %w", key, err)
	}
	return value, true, nil
}

func (r *entryRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().Insert(entriesTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("set entry %q: %w", key, err)
	}
	return nil
}

func (r *entryRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(entriesTable).
		Where(entsql.EQ("key", key)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete entry %q: %w", key, err)
	}
	return nil
}
