// Package store defines the durable state interfaces the application relies
// on: the per-action processed sets that make re-runs idempotent, and the
// session store that lets authentication cookies survive between invocations.
// Implementations live in subpackages (e.g. jsonfile).
//
//go:generate mockgen -package mockstore -source=interface.go -destination=mock/mockstore.go *
package store

import (
	"context"
	"net/http"
)

// ProcessedSet is the durable record of user IDs already acted upon.
// Implementations persist every addition immediately so that an interrupted
// run loses at most the in-flight action.
type ProcessedSet interface {
	// Load reads the persisted set. A missing backing file is not an error;
	// the set starts empty.
	Load(ctx context.Context) error
	// Contains reports whether the ID has already been processed.
	Contains(id string) bool
	// Add marks the ID as processed and persists the set. Adding an ID that
	// is already present is a no-op.
	Add(ctx context.Context, id string) error
	// Len returns the number of processed IDs.
	Len() int
}

// SessionStore persists authentication cookies between invocations.
type SessionStore interface {
	// Load returns the persisted session cookies, or (nil, nil) when no
	// usable session exists.
	Load(ctx context.Context) ([]*http.Cookie, error)
	// Save persists the given session cookies, replacing any stored session.
	Save(ctx context.Context, cookies []*http.Cookie) error
	// Clear removes the stored session.
	Clear(ctx context.Context) error
}
