package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplchat/query-engine/internal/dictionary"
	"github.com/fplchat/query-engine/internal/history"
	"github.com/fplchat/query-engine/internal/snapshot"
)

func buildTestDictionary(t *testing.T) *dictionary.Dictionary {
	t.Helper()

	teams := []snapshot.Team{
		{ID: 1, Name: "Man City"},
		{ID: 2, Name: "Liverpool"},
	}
	players := []snapshot.Player{
		{ID: 1, DisplayName: "Haaland", FirstName: "Erling", LastName: "Haaland", TeamID: 1, Position: snapshot.Forward, Status: snapshot.Active},
		{ID: 2, DisplayName: "Salah", FirstName: "Mohamed", LastName: "Salah", TeamID: 2, Position: snapshot.Midfielder, Status: snapshot.Active},
	}

	snap, err := snapshot.New(players, teams, nil)
	require.NoError(t, err)

	dict, err := dictionary.New(snap, 0.8)
	require.NoError(t, err)
	return dict
}

func TestResolveFromRecordedPlayerIDs(t *testing.T) {
	dict := buildTestDictionary(t)
	store := history.NewMemoryStore(3)
	ctx := context.Background()

	_, err := store.Append(ctx, history.Turn{
		SessionID:          "s1",
		RawQuery:           "Tell me about Haaland",
		ResolvedQuery:      "Tell me about Haaland",
		MentionedPlayerIDs: []int{1},
	})
	require.NoError(t, err)

	r := New(store, 3, nil)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"subject pronoun", "How much does he cost?", "How much does Haaland cost?"},
		{"object pronoun", "Should I buy him?", "Should I buy Haaland?"},
		{"possessive", "What is his form like?", "What is Haaland's form like?"},
		{"generic referent", "Is that player worth it?", "Is Haaland worth it?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, resolved, err := r.Resolve(ctx, dict, "s1", tt.query)
			require.NoError(t, err)
			assert.True(t, resolved)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePrefersMostRecentTurn(t *testing.T) {
	dict := buildTestDictionary(t)
	store := history.NewMemoryStore(3)
	ctx := context.Background()

	_, err := store.Append(ctx, history.Turn{SessionID: "s1", MentionedPlayerIDs: []int{1}})
	require.NoError(t, err)
	_, err = store.Append(ctx, history.Turn{SessionID: "s1", MentionedPlayerIDs: []int{2}})
	require.NoError(t, err)

	got, resolved, err := r(t, store).Resolve(ctx, dict, "s1", "Should I captain him?")
	require.NoError(t, err)
	assert.True(t, resolved)
	assert.Equal(t, "Should I captain Salah?", got)
}

func r(t *testing.T, store history.Store) *Resolver {
	t.Helper()
	return New(store, 3, nil)
}

func TestResolveFallsBackToTurnText(t *testing.T) {
	dict := buildTestDictionary(t)
	store := history.NewMemoryStore(3)
	ctx := context.Background()

	_, err := store.Append(ctx, history.Turn{
		SessionID:     "s1",
		RawQuery:      "Tell me about Salah",
		ResolvedQuery: "Tell me about Salah",
	})
	require.NoError(t, err)

	got, resolved, err := New(store, 3, nil).Resolve(ctx, dict, "s1", "How many goals does he have?")
	require.NoError(t, err)
	assert.True(t, resolved)
	assert.Equal(t, "How many goals does Salah have?", got)
}

func TestResolveFromAnswerText(t *testing.T) {
	dict := buildTestDictionary(t)
	store := history.NewMemoryStore(3)
	ctx := context.Background()

	_, err := store.Append(ctx, history.Turn{
		SessionID:  "s1",
		RawQuery:   "best striker?",
		AnswerText: "**Haaland** is the standout forward right now.",
	})
	require.NoError(t, err)

	got, resolved, err := New(store, 3, nil).Resolve(ctx, dict, "s1", "How much does he cost?")
	require.NoError(t, err)
	assert.True(t, resolved)
	assert.Equal(t, "How much does Haaland cost?", got)
}

func TestResolveNoReferentOrNoHistory(t *testing.T) {
	dict := buildTestDictionary(t)
	store := history.NewMemoryStore(3)
	ctx := context.Background()
	res := New(store, 3, nil)

	// No referent in the query.
	got, resolved, err := res.Resolve(ctx, dict, "s1", "How much does Haaland cost?")
	require.NoError(t, err)
	assert.False(t, resolved)
	assert.Equal(t, "How much does Haaland cost?", got)

	// Referent but empty history: never invent a player.
	got, resolved, err = res.Resolve(ctx, dict, "s1", "Should I buy him?")
	require.NoError(t, err)
	assert.False(t, resolved)
	assert.Equal(t, "Should I buy him?", got)
}
