package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplchat/query-engine/internal/history"
	"github.com/fplchat/query-engine/internal/snapshot"
)

func buildEngine(t *testing.T, cacheResults bool) *Engine {
	t.Helper()

	teams := []snapshot.Team{
		{ID: 1, Name: "Man City"},
		{ID: 2, Name: "Liverpool"},
		{ID: 3, Name: "Arsenal"},
	}
	kickoff := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	fixtures := []snapshot.Fixture{
		{ID: 1, Gameweek: 3, HomeTeamID: 1, AwayTeamID: 2, KickoffAt: kickoff},
		{ID: 2, Gameweek: 4, HomeTeamID: 3, AwayTeamID: 1, KickoffAt: kickoff.AddDate(0, 0, 7)},
	}
	players := []snapshot.Player{
		{ID: 1, DisplayName: "Haaland", FirstName: "Erling", LastName: "Haaland", TeamID: 1, Position: snapshot.Forward, PriceTenths: 151, TotalPoints: 224, Goals: 27, Form: 9.1, Ownership: 62.4, Status: snapshot.Active},
		{ID: 2, DisplayName: "Salah", FirstName: "Mohamed", LastName: "Salah", TeamID: 2, Position: snapshot.Midfielder, PriceTenths: 131, TotalPoints: 211, Assists: 13, Form: 8.4, Ownership: 55.0, Status: snapshot.Active},
		{ID: 3, DisplayName: "Saka", FirstName: "Bukayo", LastName: "Saka", TeamID: 3, Position: snapshot.Midfielder, PriceTenths: 102, TotalPoints: 180, Assists: 11, Form: 7.2, Ownership: 38.9, Status: snapshot.Active},
	}

	store := snapshot.NewStore()
	require.NoError(t, store.Refresh(context.Background(), &snapshot.StaticProvider{
		Players: players, Teams: teams, Fixtures: fixtures,
	}))

	eng, err := New(Options{
		Snapshots:    store,
		History:      history.NewMemoryStore(3),
		CacheResults: cacheResults,
	})
	require.NoError(t, err)
	return eng
}

func TestQueryPlayerDetail(t *testing.T) {
	eng := buildEngine(t, false)
	ctx := context.Background()

	resp, err := eng.Query(ctx, "s1", "How much does Haaland cost?")
	require.NoError(t, err)
	assert.Equal(t, "player_detail", resp.Context.Intent)
	require.Len(t, resp.Context.Players, 1)
	assert.Equal(t, "Haaland", resp.Context.Players[0].Name)
	assert.InDelta(t, 15.1, resp.Context.Players[0].Price, 1e-9)
	assert.Equal(t, 1, resp.TurnIndex)
	assert.NotEmpty(t, resp.Generation)
}

func TestQueryPronounFollowUp(t *testing.T) {
	eng := buildEngine(t, false)
	ctx := context.Background()

	_, err := eng.Query(ctx, "s1", "Tell me about Haaland")
	require.NoError(t, err)

	resp, err := eng.Query(ctx, "s1", "How many goals does he have?")
	require.NoError(t, err)
	assert.True(t, resp.Resolved)
	assert.Equal(t, "How many goals does Haaland have?", resp.ResolvedQuery)
	require.NotEmpty(t, resp.Context.Players)
	assert.Equal(t, "Haaland", resp.Context.Players[0].Name)
}

func TestQueryPronounWithoutHistoryStaysUnchanged(t *testing.T) {
	eng := buildEngine(t, false)

	resp, err := eng.Query(context.Background(), "fresh", "Should I buy him?")
	require.NoError(t, err)
	assert.False(t, resp.Resolved)
	assert.Equal(t, "Should I buy him?", resp.ResolvedQuery)
	assert.Equal(t, "contextual", resp.Context.Intent)
	assert.Empty(t, resp.Context.Players, "no referent is ever invented")
}

func TestQuerySessionsIsolated(t *testing.T) {
	eng := buildEngine(t, false)
	ctx := context.Background()

	_, err := eng.Query(ctx, "a", "Tell me about Haaland")
	require.NoError(t, err)
	_, err = eng.Query(ctx, "b", "Tell me about Salah")
	require.NoError(t, err)

	respA, err := eng.Query(ctx, "a", "How much does he cost?")
	require.NoError(t, err)
	respB, err := eng.Query(ctx, "b", "How much does he cost?")
	require.NoError(t, err)

	assert.Contains(t, respA.ResolvedQuery, "Haaland")
	assert.Contains(t, respB.ResolvedQuery, "Salah")
}

func TestQueryRankedAndFixtures(t *testing.T) {
	eng := buildEngine(t, false)
	ctx := context.Background()

	resp, err := eng.Query(ctx, "s1", "who has the most assists")
	require.NoError(t, err)
	assert.Equal(t, "stat_leader", resp.Context.Intent)
	require.NotEmpty(t, resp.Context.Players)
	assert.Equal(t, "Salah", resp.Context.Players[0].Name)

	resp, err = eng.Query(ctx, "s1", "what are Arsenal's fixtures")
	require.NoError(t, err)
	assert.Equal(t, "fixture", resp.Context.Intent)
	require.NotEmpty(t, resp.Context.Fixtures)
	assert.Equal(t, "Arsenal", resp.Context.Fixtures[0].Home)
}

func TestQueryCachesByGeneration(t *testing.T) {
	eng := buildEngine(t, true)
	ctx := context.Background()

	first, err := eng.Query(ctx, "s1", "who has the most assists")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := eng.Query(ctx, "s2", "who has the most assists")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Context, second.Context)
}

func TestQueryNoSnapshot(t *testing.T) {
	eng, err := New(Options{Snapshots: snapshot.NewStore()})
	require.NoError(t, err)

	_, err = eng.Query(context.Background(), "s1", "hello")
	assert.ErrorIs(t, err, snapshot.ErrNoSnapshot)
	assert.False(t, eng.Ready())
}

func TestRecordAnswerFeedsResolution(t *testing.T) {
	eng := buildEngine(t, false)
	ctx := context.Background()

	resp, err := eng.Query(ctx, "s1", "who should I captain")
	require.NoError(t, err)

	require.NoError(t, eng.RecordAnswer(ctx, "s1", resp.TurnIndex, "**Haaland** is the obvious armband."))

	follow, err := eng.Query(ctx, "s1", "How much does he cost?")
	require.NoError(t, err)
	assert.True(t, follow.Resolved)
	assert.Contains(t, follow.ResolvedQuery, "Haaland")
}

func TestClearSession(t *testing.T) {
	eng := buildEngine(t, false)
	ctx := context.Background()

	_, err := eng.Query(ctx, "s1", "Tell me about Haaland")
	require.NoError(t, err)
	require.NoError(t, eng.ClearSession(ctx, "s1"))

	resp, err := eng.Query(ctx, "s1", "How much does he cost?")
	require.NoError(t, err)
	assert.False(t, resp.Resolved)
}
