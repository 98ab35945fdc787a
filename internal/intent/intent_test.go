package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplchat/query-engine/internal/dictionary"
	"github.com/fplchat/query-engine/internal/extract"
	"github.com/fplchat/query-engine/internal/snapshot"
)

func buildTestExtractor(t *testing.T) *extract.Extractor {
	t.Helper()

	teams := []snapshot.Team{
		{ID: 1, Name: "Arsenal"},
		{ID: 2, Name: "Man City"},
		{ID: 3, Name: "Liverpool"},
	}
	players := []snapshot.Player{
		{ID: 1, DisplayName: "Haaland", FirstName: "Erling", LastName: "Haaland", TeamID: 2, Position: snapshot.Forward, PriceTenths: 151, TotalPoints: 224, Status: snapshot.Active},
		{ID: 2, DisplayName: "Salah", FirstName: "Mohamed", LastName: "Salah", TeamID: 3, Position: snapshot.Midfielder, PriceTenths: 131, TotalPoints: 211, Status: snapshot.Active},
	}

	snap, err := snapshot.New(players, teams, nil)
	require.NoError(t, err)
	dict, err := dictionary.New(snap, 0.8)
	require.NoError(t, err)
	return extract.New(dict)
}

func TestClassifyRuleOrder(t *testing.T) {
	e := buildTestExtractor(t)
	c := New()

	tests := []struct {
		name           string
		query          string
		wantIntent     Intent
		wantConfidence float64
	}{
		{"greeting", "hello!", Conversational, 0.98},
		{"thanks", "thanks", Conversational, 0.98},
		{"pronoun follow-up", "how much does he cost", Contextual, 0.96},
		{"generic referent", "is that player any good", Contextual, 0.96},
		{"fixtures keyword", "what are Arsenal's fixtures", Fixture, 0.95},
		{"next n games", "who do Liverpool play in the next 3 games", Fixture, 0.95},
		{"filtered stat", "best midfielders under £8m", FilteredStat, 0.92},
		{"stat leader", "who has the most assists", StatLeader, 0.90},
		{"rules strong", "how many points for a clean sheet", Rules, 0.85},
		{"rules chip", "how does triple captain work", Rules, 0.85},
		{"strategy differential", "give me some differentials", Strategy, 0.85},
		{"strategy captaincy", "captaincy picks for this week", Strategy, 0.85},
		{"team position", "arsenal midfielders", TeamPosition, 0.80},
		{"player detail", "Tell me about Haaland", PlayerDetail, 0.80},
		{"general fallback", "something wonderful", General, 0.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := e.Extract(tt.query)
			got := c.Classify(tt.query, ext)
			assert.Equal(t, tt.wantIntent, got.Intent, "query %q", tt.query)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
		})
	}
}

func TestClassifyRulesGatedByPlayerVocabulary(t *testing.T) {
	e := buildTestExtractor(t)
	c := New()

	// "squad size" alone is a rules question...
	ext := e.Extract("what is the squad size")
	assert.Equal(t, Rules, c.Classify("what is the squad size", ext).Intent)

	// ...but player vocabulary alongside medium rules vocabulary is not.
	q := "who are the best bonus points system players"
	ext = e.Extract(q)
	got := c.Classify(q, ext)
	assert.NotEqual(t, Rules, got.Intent)
}

func TestClassifyComparison(t *testing.T) {
	e := buildTestExtractor(t)
	c := New()

	q := "Haaland or Salah for my last spot"
	got := c.Classify(q, e.Extract(q))
	assert.Equal(t, Comparison, got.Intent)
}

func TestClassifyStatKeyAndLimit(t *testing.T) {
	e := buildTestExtractor(t)
	c := New()

	tests := []struct {
		query string
		want  snapshot.StatKey
	}{
		{"who has the most assists", snapshot.StatAssists},
		{"top scorer this season", snapshot.StatGoals},
		{"highest expected goals", snapshot.StatExpectedGoals},
		{"most owned players", snapshot.StatOwnership},
		{"best form right now", snapshot.StatForm},
		{"best points per million", snapshot.StatValue},
		{"who has the most points", snapshot.StatPoints},
		{"who is the best", snapshot.StatPoints},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := c.Classify(tt.query, e.Extract(tt.query))
			assert.Equal(t, tt.want, got.StatKey)
		})
	}

	q := "top 3 midfielders by goals"
	got := c.Classify(q, e.Extract(q))
	assert.Equal(t, 3, got.Limit)
}

func TestClassifyDeterministic(t *testing.T) {
	e := buildTestExtractor(t)
	c := New()

	q := "best Liverpool midfielders under £9m in the next 3 games"
	first := c.Classify(q, e.Extract(q))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(q, e.Extract(q)))
	}
}
