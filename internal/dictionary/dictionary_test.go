package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplchat/query-engine/internal/snapshot"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "Haaland", "haaland"},
		{"diacritics stripped", "João Félix", "joao felix"},
		{"nordic marks", "Ødegaard", "ødegaard"},
		{"whitespace collapsed", "  Mohamed   Salah  ", "mohamed salah"},
		{"mixed case", "SAKA", "saka"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalization must be idempotent")
		})
	}
}

func buildTestDictionary(t *testing.T) *Dictionary {
	t.Helper()

	teams := []snapshot.Team{
		{ID: 1, Name: "Arsenal"},
		{ID: 2, Name: "Man City"},
		{ID: 3, Name: "Spurs"},
		{ID: 4, Name: "Nottingham Forest"},
	}
	players := []snapshot.Player{
		{ID: 1, DisplayName: "Haaland", FirstName: "Erling", LastName: "Haaland", TeamID: 2, Position: snapshot.Forward, TotalPoints: 224, Status: snapshot.Active},
		{ID: 2, DisplayName: "Saka", FirstName: "Bukayo", LastName: "Saka", TeamID: 1, Position: snapshot.Midfielder, TotalPoints: 180, Status: snapshot.Active},
		{ID: 3, DisplayName: "B.Silva", FirstName: "Bernardo", LastName: "Silva", TeamID: 2, Position: snapshot.Midfielder, TotalPoints: 130, Status: snapshot.Active},
		{ID: 4, DisplayName: "F.Silva", FirstName: "Fabio", LastName: "Silva", TeamID: 4, Position: snapshot.Forward, TotalPoints: 40, Status: snapshot.Active},
		{ID: 5, DisplayName: "João Félix", FirstName: "João", LastName: "Félix", TeamID: 3, Position: snapshot.Forward, TotalPoints: 65, Status: snapshot.Active},
		{ID: 6, DisplayName: "Solanke", FirstName: "Dominic", LastName: "Solanke", TeamID: 3, Position: snapshot.Forward, TotalPoints: 12, Status: snapshot.Injured, StatusNote: "Ankle injury - expected back 20 Sep"},
	}

	snap, err := snapshot.New(players, teams, nil)
	require.NoError(t, err)

	d, err := New(snap, 0.8)
	require.NoError(t, err)
	return d
}

func TestMatchPlayerTiers(t *testing.T) {
	d := buildTestDictionary(t)

	tests := []struct {
		name       string
		candidate  string
		wantKind   MatchKind
		wantPlayer int
	}{
		{"exact display name", "Haaland", MatchExact, 1},
		{"exact full name", "Erling Haaland", MatchExact, 1},
		{"lowercase", "haaland", MatchExact, 1},
		{"given name", "Bukayo", MatchExact, 2},
		{"diacritics folded", "Joao Felix", MatchExact, 5},
		{"accented input", "João Félix", MatchExact, 5},
		{"all words partial", "bern silva", MatchExact, 3},
		{"surname shared", "Silva", MatchAmbiguous, 0},
		{"unknown player", "Messi", MatchNotFound, 0},
		{"empty", "", MatchNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.MatchPlayer(tt.candidate, false)
			assert.Equal(t, tt.wantKind, res.Kind, "kind for %q", tt.candidate)
			if tt.wantKind == MatchExact {
				require.NotNil(t, res.Player)
				assert.Equal(t, tt.wantPlayer, res.Player.ID)
			}
		})
	}
}

func TestMatchPlayerAmbiguousOrdering(t *testing.T) {
	d := buildTestDictionary(t)

	res := d.MatchPlayer("Silva", false)
	require.Equal(t, MatchAmbiguous, res.Kind)
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, "B.Silva", res.Candidates[0].DisplayName, "higher points first")
	assert.Equal(t, "F.Silva", res.Candidates[1].DisplayName)
}

func TestMatchPlayerUnavailable(t *testing.T) {
	d := buildTestDictionary(t)

	res := d.MatchPlayer("Solanke", false)
	require.Equal(t, MatchUnavailable, res.Kind)
	require.NotNil(t, res.Player)
	assert.Equal(t, 6, res.Player.ID)
	assert.Equal(t, "injured and unavailable (Ankle injury - expected back 20 Sep)", res.Reason)

	// includeUnavailable folds the player into the main tiers.
	folded := d.MatchPlayer("Solanke", true)
	assert.Equal(t, MatchUnavailable, folded.Kind)
	assert.Equal(t, 6, folded.Player.ID)
}

func TestMatchPlayerFuzzySuggestions(t *testing.T) {
	d := buildTestDictionary(t)

	res := d.MatchPlayer("Haalandson", false)
	require.Equal(t, MatchNotFound, res.Kind)
	assert.Contains(t, res.Suggestions, "Haaland")
	assert.Nil(t, res.Player, "suggestions are never auto-picked")
}

func TestScanTeams(t *testing.T) {
	d := buildTestDictionary(t)

	cases := []struct {
		name    string
		query   string
		wantIDs []int
	}{
		{"canonical name", "best Arsenal midfielders", []int{1}},
		{"nickname", "any gunners worth buying", []int{1}},
		{"longest alias wins", "nottingham forest defenders", []int{4}},
		{"short alias word bounded", "is city a good pick", []int{2}},
		{"no embedded match", "velocity of the ball", nil},
		{"two teams", "arsenal or spurs assets", []int{1, 3}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			mentions := d.ScanTeams(tt.query)
			var ids []int
			for _, m := range mentions {
				ids = append(ids, m.TeamID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestIsTeamAlias(t *testing.T) {
	d := buildTestDictionary(t)

	assert.True(t, d.IsTeamAlias("Arsenal"))
	assert.True(t, d.IsTeamAlias("gunners"))
	assert.True(t, d.IsTeamAlias("Tottenham"))
	assert.False(t, d.IsTeamAlias("Haaland"))
	assert.False(t, d.IsTeamAlias("arsenal players"))
}
