package assemble

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplchat/query-engine/internal/extract"
	"github.com/fplchat/query-engine/internal/intent"
	"github.com/fplchat/query-engine/internal/knowledge"
	"github.com/fplchat/query-engine/internal/retrieval"
	"github.com/fplchat/query-engine/internal/snapshot"
)

func buildSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()

	teams := []snapshot.Team{
		{ID: 1, Name: "Man City"},
		{ID: 2, Name: "Liverpool"},
	}
	players := []snapshot.Player{
		{ID: 1, DisplayName: "Haaland", FirstName: "Erling", LastName: "Haaland", TeamID: 1, Position: snapshot.Forward, PriceTenths: 151, TotalPoints: 224, Goals: 27, Form: 9.1, Ownership: 62.4, Status: snapshot.Active},
		{ID: 2, DisplayName: "Salah", FirstName: "Mohamed", LastName: "Salah", TeamID: 2, Position: snapshot.Midfielder, PriceTenths: 131, TotalPoints: 211, Assists: 13, Status: snapshot.Active},
	}
	snap, err := snapshot.New(players, teams, nil)
	require.NoError(t, err)
	return snap
}

func TestAssembleRankedPlayers(t *testing.T) {
	snap := buildSnapshot(t)

	cls := intent.Classification{Intent: intent.StatLeader, Confidence: 0.90, StatKey: snapshot.StatGoals}
	ret := retrieval.Result{
		Players: []*snapshot.Player{snap.PlayerByID(1)},
		StatKey: snapshot.StatGoals,
		Ranked:  true,
		Filters: retrieval.Filters{TopN: 5},
	}

	ctx := Assemble(cls, ret, snap)
	assert.Equal(t, "stat_leader", ctx.Intent)
	assert.InDelta(t, 0.90, ctx.Confidence, 1e-9)
	assert.Equal(t, "goals", ctx.RankedBy)
	require.Len(t, ctx.Players, 1)
	assert.Equal(t, "Haaland", ctx.Players[0].Name)
	assert.Equal(t, "Man City", ctx.Players[0].Team)
	assert.InDelta(t, 15.1, ctx.Players[0].Price, 1e-9)
	assert.Equal(t, 5, ctx.Filters.TopN)
}

func TestAssembleCarriesEveryOutcome(t *testing.T) {
	snap := buildSnapshot(t)

	injured := &snapshot.Player{ID: 9, DisplayName: "Solanke", Status: snapshot.Injured}
	ret := retrieval.Result{
		Players: []*snapshot.Player{snap.PlayerByID(2)},
		Unavailable: []retrieval.UnavailableMention{
			{Candidate: "Solanke", Player: injured, Reason: "injured and unavailable"},
		},
		Ambiguous: []retrieval.AmbiguousMention{
			{Candidate: "Silva", Candidates: []*snapshot.Player{snap.PlayerByID(1), snap.PlayerByID(2)}},
		},
		NotFound: []retrieval.NotFoundMention{
			{Candidate: "Messi", Suggestions: []string{"Salah"}},
		},
	}
	cls := intent.Classification{Intent: intent.PlayerDetail, Confidence: 0.80}

	ctx := Assemble(cls, ret, snap)
	assert.Len(t, ctx.Players, 1)
	require.Len(t, ctx.Unavailable, 1)
	assert.Equal(t, "injured and unavailable", ctx.Unavailable[0].Reason)
	require.Len(t, ctx.Ambiguous, 1)
	assert.Equal(t, []string{"Erling Haaland", "Mohamed Salah"}, ctx.Ambiguous[0].Options)
	require.Len(t, ctx.NotFound, 1)
	assert.Equal(t, "Messi", ctx.NotFound[0].Candidate)
	assert.Equal(t, []string{"Salah"}, ctx.NotFound[0].Suggestions)
}

func TestAssembleFixturesAndRules(t *testing.T) {
	snap := buildSnapshot(t)
	kickoff := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)

	ret := retrieval.Result{
		Fixtures: []retrieval.FixtureView{
			{Fixture: snapshot.Fixture{Gameweek: 3, KickoffAt: kickoff}, HomeName: "Man City", AwayName: "Liverpool"},
		},
		RuleEntries: knowledge.New().Search("how does triple captain work", 1),
	}
	cls := intent.Classification{Intent: intent.Fixture, Confidence: 0.95}

	ctx := Assemble(cls, ret, snap)
	require.Len(t, ctx.Fixtures, 1)
	assert.Equal(t, "Man City", ctx.Fixtures[0].Home)
	assert.Equal(t, kickoff, ctx.Fixtures[0].Kickoff)
	require.Len(t, ctx.Rules, 1)
	assert.Equal(t, "chips", ctx.Rules[0].Topic)
}

func TestAssemblePriceFilterRendered(t *testing.T) {
	snap := buildSnapshot(t)

	ret := retrieval.Result{
		Ranked:  true,
		StatKey: snapshot.StatPoints,
		Filters: retrieval.Filters{
			Position: "Midfielder",
			Price:    &extract.PriceRange{MinTenths: 65, MaxTenths: 90},
		},
	}
	cls := intent.Classification{Intent: intent.FilteredStat, Confidence: 0.92}

	ctx := Assemble(cls, ret, snap)
	assert.InDelta(t, 6.5, ctx.Filters.PriceMin, 1e-9)
	assert.InDelta(t, 9.0, ctx.Filters.PriceMax, 1e-9)
	assert.Equal(t, "Midfielder", ctx.Filters.Position)
	assert.Equal(t, "total points", ctx.RankedBy)
}

func TestAssembleIsPure(t *testing.T) {
	snap := buildSnapshot(t)
	cls := intent.Classification{Intent: intent.General, Confidence: 0.50}
	ret := retrieval.Result{Players: []*snapshot.Player{snap.PlayerByID(1)}}

	first := Assemble(cls, ret, snap)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Assemble(cls, ret, snap))
	}
}
