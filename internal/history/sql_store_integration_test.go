//go:build integration

package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgresStore(t *testing.T) *SQLStore {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("queryengine"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := OpenSQL("postgres", dsn, 3)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStoreRoundTrip(t *testing.T) {
	store := startPostgresStore(t)
	ctx := context.Background()

	turn, err := store.Append(ctx, Turn{
		SessionID:          "s1",
		RawQuery:           "how much does haaland cost",
		ResolvedQuery:      "how much does haaland cost",
		MentionedPlayerIDs: []int{233},
		AnswerText:         "Haaland costs £15.1m.",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, turn.TurnIndex)

	recent, err := store.Recent(ctx, "s1", 3)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, []int{233}, recent[0].MentionedPlayerIDs)
	assert.Equal(t, "Haaland costs £15.1m.", recent[0].AnswerText)
}

func TestSQLStoreDepthEviction(t *testing.T) {
	store := startPostgresStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Append(ctx, Turn{SessionID: "s1", RawQuery: "q", ResolvedQuery: "q"})
		require.NoError(t, err)
	}

	recent, err := store.Recent(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, 5, recent[0].TurnIndex)
	assert.Equal(t, 3, recent[2].TurnIndex)
}

func TestSQLStoreClearAndIsolation(t *testing.T) {
	store := startPostgresStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, Turn{SessionID: "a", RawQuery: "qa", ResolvedQuery: "qa"})
	require.NoError(t, err)
	_, err = store.Append(ctx, Turn{SessionID: "b", RawQuery: "qb", ResolvedQuery: "qb"})
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, "a"))

	recentA, err := store.Recent(ctx, "a", 3)
	require.NoError(t, err)
	assert.Empty(t, recentA)

	recentB, err := store.Recent(ctx, "b", 3)
	require.NoError(t, err)
	assert.Len(t, recentB, 1)
}
