package store

import (
	"context"
	"time"
)

// EntryRepo is a small string key/value store. It plays the role of a
// browser's local storage: one named entry per persisted blob or flag.
type EntryRepo interface {
	// Get returns the value stored under key. ok is false when no entry exists.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set creates or replaces the entry under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes the entry under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Attempt event actions.
const (
	ActionStart    = "start"
	ActionAnswer   = "answer"
	ActionRestart  = "restart"
	ActionComplete = "complete"
)

// AttemptEventData captures one step of a quiz attempt.
type AttemptEventData struct {
	AttemptID     string
	CharacterID   string
	Action        string
	QuestionIndex int
	Correct       bool
	XP            int
}

// AttemptEvent is a persisted AttemptEventData.
type AttemptEvent struct {
	ID        int64
	Timestamp time.Time
	AttemptEventData
}

// EventRepo provides append and query access to quiz attempt events.
type EventRepo interface {
	// AppendAttemptEvent records one attempt step.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// RecentAttemptEvents returns up to limit events, newest first.
	RecentAttemptEvents(ctx context.Context, limit int) ([]AttemptEvent, error)

	// CountAttemptEvents returns how many events with the given action exist
	// for characterID. An empty characterID counts across all characters.
	CountAttemptEvents(ctx context.Context, characterID, action string) (int, error)
}
