package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fplchat/query-engine/internal/observability"
)

// ErrNoSnapshot indicates the store has not been loaded yet.
var ErrNoSnapshot = errors.New("no snapshot loaded")

// Provider fetches a fresh dataset. Implementations build the full slices;
// the store turns them into an indexed Snapshot.
type Provider interface {
	Fetch(ctx context.Context) ([]Player, []Team, []Fixture, error)
}

// Store holds the current snapshot behind an atomic pointer. Readers get a
// consistent snapshot with one load; refresh builds the replacement off to
// the side and swaps once.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the live snapshot.
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Replace swaps in a new snapshot. The old one stays valid for requests
// already holding it.
func (s *Store) Replace(snap *Snapshot) {
	s.current.Store(snap)
}

// Refresh fetches from the provider, builds a snapshot and swaps it in. On
// any error the previous snapshot stays live.
func (s *Store) Refresh(ctx context.Context, provider Provider) error {
	players, teams, fixtures, err := provider.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch dataset: %w", err)
	}

	snap, err := New(players, teams, fixtures)
	if err != nil {
		return fmt.Errorf("build snapshot: %w", err)
	}

	s.Replace(snap)
	return nil
}

// Refresher periodically refreshes a store from a provider.
type Refresher struct {
	store    *Store
	provider Provider
	interval time.Duration
	logger   *observability.Logger
	trigger  chan chan error
}

// NewRefresher creates a refresher. interval <= 0 disables the timer; only
// explicit RefreshNow calls refresh then.
func NewRefresher(store *Store, provider Provider, interval time.Duration, logger *observability.Logger) *Refresher {
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &Refresher{
		store:    store,
		provider: provider,
		interval: interval,
		logger:   logger.WithOperation("snapshot_refresh"),
		trigger:  make(chan chan error),
	}
}

// Run refreshes on the interval until ctx is cancelled. A failed refresh is
// logged and retried on the next tick.
func (r *Refresher) Run(ctx context.Context) {
	var ticker *time.Ticker
	var tick <-chan time.Time
	if r.interval > 0 {
		ticker = time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			if err := r.refresh(ctx); err != nil {
				r.logger.Warn().Err(err).Msg("scheduled refresh failed, keeping previous snapshot")
			}
		case reply := <-r.trigger:
			reply <- r.refresh(ctx)
		}
	}
}

// RefreshNow triggers an immediate refresh and waits for the result. It
// requires Run to be active.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	reply := make(chan error, 1)
	select {
	case r.trigger <- reply:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Refresher) refresh(ctx context.Context) error {
	start := time.Now()
	if err := r.store.Refresh(ctx, r.provider); err != nil {
		return err
	}

	snap, _ := r.store.Current()
	r.logger.Info().
		Str("generation", snap.Generation).
		Int("players", len(snap.Players)).
		Int("teams", len(snap.Teams)).
		Int("fixtures", len(snap.Fixtures)).
		Dur("took", time.Since(start)).
		Msg("snapshot refreshed")
	return nil
}
