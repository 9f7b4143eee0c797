package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the attempt_events table.
type eventRepo struct {
	drv *entsql.Driver
}

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	query, args := builder().Insert(eventsTable).
		Columns("attempt_id", "character_id", "action", "question_index", "correct", "xp", "timestamp").
		Values(data.AttemptID, data.CharacterID, data.Action, data.QuestionIndex, data.Correct, data.XP, time.Now().UnixMilli()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentAttemptEvents(ctx context.Context, limit int) ([]AttemptEvent, error) {
	b := builder()
	sel := b.Select("id", "attempt_id", "character_id", "action", "question_index", "correct", "xp", "timestamp").
		From(b.Table(eventsTable)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.drv.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var events []AttemptEvent
	for rows.Next() {
		var (
			ev AttemptEvent
			ts int64
		)
		if err := rows.Scan(&ev.ID, &ev.AttemptID, &ev.CharacterID, &ev.Action,
			&ev.QuestionIndex, &ev.Correct, &ev.XP, &ts); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ts)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) CountAttemptEvents(ctx context.Context, characterID, action string) (int, error) {
	b := builder()
	preds := []*entsql.Predicate{entsql.EQ("action", action)}
	if characterID != "" {
		preds = append(preds, entsql.EQ("character_id", characterID))
	}
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(eventsTable)).
		Where(entsql.And(preds...)).
		Query()

	var n int
	if err := r.drv.DB().QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count attempt events: %w", err)
	}
	return n, nil
}
