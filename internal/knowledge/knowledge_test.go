package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplchat/query-engine/internal/snapshot"
)

func TestScoringConstants(t *testing.T) {
	assert.Equal(t, 6, GoalPoints(snapshot.Keeper))
	assert.Equal(t, 6, GoalPoints(snapshot.Defender))
	assert.Equal(t, 5, GoalPoints(snapshot.Midfielder))
	assert.Equal(t, 4, GoalPoints(snapshot.Forward))

	assert.Equal(t, 4, CleanSheetPoints(snapshot.Keeper))
	assert.Equal(t, 4, CleanSheetPoints(snapshot.Defender))
	assert.Equal(t, 1, CleanSheetPoints(snapshot.Midfielder))
	assert.Zero(t, CleanSheetPoints(snapshot.Forward))
}

func TestSearchFindsRelevantEntry(t *testing.T) {
	kb := New()

	tests := []struct {
		name   string
		query  string
		wantID string
	}{
		{"clean sheet", "how many points for a clean sheet", "scoring-clean-sheets"},
		{"triple captain", "how does triple captain work", "chips-triple-captain"},
		{"wildcard", "when should I play my wildcard", "chips-wildcard"},
		{"budget", "how much budget do I start with", "squad-budget"},
		{"deadline", "when is the transfer deadline", "transfers-deadline"},
		{"differential", "what is a differential", "strategy-differentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := kb.Search(tt.query, 3)
			require.NotEmpty(t, hits, "query %q", tt.query)
			assert.Equal(t, tt.wantID, hits[0].ID)
		})
	}
}

func TestSearchBoundsAndDeterminism(t *testing.T) {
	kb := New()

	hits := kb.Search("points for goals assists and clean sheets", 2)
	assert.Len(t, hits, 2)

	first := kb.Search("transfer rules", 3)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, kb.Search("transfer rules", 3))
	}
}

func TestSearchNoMatch(t *testing.T) {
	kb := New()
	assert.Empty(t, kb.Search("completely unrelated cooking question", 3))
	assert.Empty(t, kb.Search("", 3))
}
