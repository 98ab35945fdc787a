// Package history stores the short conversation log the resolver draws on:
// the last few turns per session, append-only, oldest evicted first.
package history

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound indicates no turns exist for the session.
var ErrSessionNotFound = errors.New("session not found")

// Turn is one completed exchange. MentionedPlayerIDs records the players
// the engine resolved for the turn, in mention order; the resolver prefers
// them over re-parsing the text.
type Turn struct {
	SessionID          string
	TurnIndex          int
	RawQuery           string
	ResolvedQuery      string
	MentionedPlayerIDs []int
	AnswerText         string
	AskedAt            time.Time
}

// Store persists conversation turns. Appends for one session are serialized
// by the caller; TurnIndex assignment relies on it.
type Store interface {
	// Append records a turn, assigning the next TurnIndex for the session,
	// and evicts turns beyond the store's depth.
	Append(ctx context.Context, turn Turn) (Turn, error)

	// Recent returns up to limit turns for a session, most recent first.
	// A session with no turns returns an empty slice, not an error.
	Recent(ctx context.Context, sessionID string, limit int) ([]Turn, error)

	// SetAnswer records the generated answer on an existing turn so later
	// referent resolution can read it.
	SetAnswer(ctx context.Context, sessionID string, turnIndex int, answer string) error

	// Clear drops all turns for a session.
	Clear(ctx context.Context, sessionID string) error

	Close() error
}
