// Package retrieval selects and ranks the dataset slice a query asks for:
// structural filters first, then a deterministic stat ordering, then the
// size bound. One Retrieve call reads exactly one snapshot.
package retrieval

import (
	"sort"
	"strings"

	"github.com/fplchat/query-engine/internal/dictionary"
	"github.com/fplchat/query-engine/internal/extract"
	"github.com/fplchat/query-engine/internal/intent"
	"github.com/fplchat/query-engine/internal/knowledge"
	"github.com/fplchat/query-engine/internal/observability"
	"github.com/fplchat/query-engine/internal/snapshot"
)

// UnavailableMention is a mentioned player who cannot be selected.
type UnavailableMention struct {
	Candidate string
	Player    *snapshot.Player
	Reason    string
}

// AmbiguousMention is a mention several players share.
type AmbiguousMention struct {
	Candidate  string
	Candidates []*snapshot.Player
}

// NotFoundMention is a mention nothing matched.
type NotFoundMention struct {
	Candidate   string
	Suggestions []string
}

// FixtureView is a fixture with team names resolved for rendering.
type FixtureView struct {
	Fixture  snapshot.Fixture
	HomeName string
	AwayName string
}

// Filters records the structural constraints a retrieval applied.
type Filters struct {
	Teams    []string
	Position string
	Price    *extract.PriceRange
	Gameweek int
	TopN     int
}

// Result is everything a retrieval produced. Mention outcomes travel in
// parallel so mixed queries lose nothing.
type Result struct {
	Players []*snapshot.Player
	StatKey snapshot.StatKey
	Ranked  bool

	Unavailable []UnavailableMention
	Ambiguous   []AmbiguousMention
	NotFound    []NotFoundMention

	Fixtures    []FixtureView
	RuleEntries []knowledge.Entry
	Strategy    string

	Filters Filters
}

// Engine runs retrieval for classified queries.
type Engine struct {
	kb          *knowledge.Base
	defaultTopN int
	maxTopN     int
	logger      *observability.Logger
}

// New creates a retrieval engine. defaultTopN bounds ranked results when the
// query names no bound; maxTopN caps explicit requests.
func New(kb *knowledge.Base, defaultTopN, maxTopN int, logger *observability.Logger) *Engine {
	if defaultTopN <= 0 {
		defaultTopN = 5
	}
	if maxTopN < defaultTopN {
		maxTopN = defaultTopN
	}
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &Engine{kb: kb, defaultTopN: defaultTopN, maxTopN: maxTopN, logger: logger}
}

// Retrieve dispatches on intent and returns the typed slice of the snapshot
// the assembler renders.
func (e *Engine) Retrieve(query string, cls intent.Classification, ext extract.Result, snap *snapshot.Snapshot) Result {
	switch cls.Intent {
	case intent.Conversational:
		return Result{}

	case intent.Fixture:
		return e.retrieveFixtures(ext, snap)

	case intent.Rules:
		return Result{RuleEntries: e.kb.Search(query, 3)}

	case intent.Strategy:
		return e.retrieveStrategy(query, cls, ext, snap)

	case intent.FilteredStat, intent.StatLeader, intent.TeamPosition:
		return e.retrieveRanked(cls, ext, snap)

	case intent.Comparison, intent.PlayerDetail, intent.Contextual:
		if ext.HasNameLikeMention() || len(ext.Mentions) > 0 {
			return e.retrieveMentioned(ext, snap)
		}
		return e.retrieveGeneral(query, snap)

	default:
		return e.retrieveGeneral(query, snap)
	}
}

// retrieveMentioned serves player-detail and comparison queries: mention
// order, no ranking, every outcome surfaced.
func (e *Engine) retrieveMentioned(ext extract.Result, snap *snapshot.Snapshot) Result {
	var res Result
	for _, m := range ext.Mentions {
		switch m.Match.Kind {
		case dictionary.MatchExact:
			res.Players = append(res.Players, m.Match.Player)
		case dictionary.MatchUnavailable:
			res.Unavailable = append(res.Unavailable, UnavailableMention{
				Candidate: m.Candidate,
				Player:    m.Match.Player,
				Reason:    m.Match.Reason,
			})
		case dictionary.MatchAmbiguous:
			res.Ambiguous = append(res.Ambiguous, AmbiguousMention{
				Candidate:  m.Candidate,
				Candidates: m.Match.Candidates,
			})
		case dictionary.MatchNotFound:
			res.NotFound = append(res.NotFound, NotFoundMention{
				Candidate:   m.Candidate,
				Suggestions: m.Match.Suggestions,
			})
		}
	}
	return res
}

// retrieveRanked applies structural filters, sorts by the stat key and
// truncates. Ordering is total: stat descending, display name ascending, so
// repeated calls on one snapshot are byte-identical.
func (e *Engine) retrieveRanked(cls intent.Classification, ext extract.Result, snap *snapshot.Snapshot) Result {
	topN := e.clampTopN(cls.Limit)

	teamSet := make(map[int]bool, len(ext.TeamIDs))
	for _, id := range ext.TeamIDs {
		teamSet[id] = true
	}

	var players []*snapshot.Player
	for i := range snap.Players {
		p := &snap.Players[i]
		if p.Status != snapshot.Active {
			continue
		}
		if len(teamSet) > 0 && !teamSet[p.TeamID] {
			continue
		}
		if ext.HasPosition && p.Position != ext.Position {
			continue
		}
		if !ext.Price.Contains(p.PriceTenths) {
			continue
		}
		players = append(players, p)
	}

	sortByStat(players, cls.StatKey)
	if len(players) > topN {
		players = players[:topN]
	}

	return Result{
		Players: players,
		StatKey: cls.StatKey,
		Ranked:  true,
		Filters: e.filters(ext, snap, topN),
	}
}

// retrieveFixtures looks up upcoming matches for the mentioned teams, or
// for the mentioned players' teams when the query names no team.
func (e *Engine) retrieveFixtures(ext extract.Result, snap *snapshot.Snapshot) Result {
	teamIDs := ext.TeamIDs
	if len(teamIDs) == 0 {
		for _, p := range ext.FoundPlayers() {
			teamIDs = append(teamIDs, p.TeamID)
		}
	}

	horizon := ext.NextGames
	if horizon <= 0 {
		horizon = 3
	}

	var res Result
	res.Filters = e.filters(ext, snap, 0)
	for _, teamID := range teamIDs {
		var fixtures []snapshot.Fixture
		if ext.Gameweek > 0 {
			fixtures = snap.FixturesForGameweek(teamID, ext.Gameweek)
		} else {
			fixtures = snap.UpcomingFixtures(teamID, horizon)
		}
		for _, f := range fixtures {
			res.Fixtures = append(res.Fixtures, FixtureView{
				Fixture:  f,
				HomeName: snap.TeamName(f.HomeTeamID),
				AwayName: snap.TeamName(f.AwayTeamID),
			})
		}
	}
	return res
}

// retrieveGeneral ranks players by lexical overlap between the query and
// each player's searchable text. Queries sharing no vocabulary with the
// dataset come back empty rather than padded.
func (e *Engine) retrieveGeneral(query string, snap *snapshot.Snapshot) Result {
	words := make(map[string]bool)
	for _, w := range strings.Fields(dictionary.Normalize(query)) {
		if len(w) >= 3 {
			words[w] = true
		}
	}
	if len(words) == 0 {
		return Result{}
	}

	type scored struct {
		player *snapshot.Player
		score  int
	}
	var hits []scored

	for i := range snap.Players {
		p := &snap.Players[i]
		if p.Status != snapshot.Active {
			continue
		}
		text := searchableText(p, snap)
		score := 0
		for w := range words {
			if strings.Contains(text, w) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{player: p, score: score})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		if hits[i].player.TotalPoints != hits[j].player.TotalPoints {
			return hits[i].player.TotalPoints > hits[j].player.TotalPoints
		}
		return hits[i].player.DisplayName < hits[j].player.DisplayName
	})

	if len(hits) > e.defaultTopN {
		hits = hits[:e.defaultTopN]
	}

	var res Result
	for _, h := range hits {
		res.Players = append(res.Players, h.player)
	}
	return res
}

func searchableText(p *snapshot.Player, snap *snapshot.Snapshot) string {
	parts := []string{
		dictionary.Normalize(p.FullName()),
		dictionary.Normalize(p.DisplayName),
		dictionary.Normalize(snap.TeamName(p.TeamID)),
		dictionary.Normalize(p.Position.String()),
	}
	return strings.Join(parts, " ")
}

func (e *Engine) clampTopN(requested int) int {
	if requested <= 0 {
		return e.defaultTopN
	}
	if requested > e.maxTopN {
		return e.maxTopN
	}
	return requested
}

func (e *Engine) filters(ext extract.Result, snap *snapshot.Snapshot, topN int) Filters {
	f := Filters{
		Price:    ext.Price,
		Gameweek: ext.Gameweek,
		TopN:     topN,
	}
	for _, id := range ext.TeamIDs {
		f.Teams = append(f.Teams, snap.TeamName(id))
	}
	if ext.HasPosition {
		f.Position = ext.Position.String()
	}
	return f
}

// sortByStat orders players by the stat descending with a display-name
// ascending tie break.
func sortByStat(players []*snapshot.Player, key snapshot.StatKey) {
	sort.Slice(players, func(i, j int) bool {
		vi, vj := key.Value(players[i]), key.Value(players[j])
		if vi != vj {
			return vi > vj
		}
		return players[i].DisplayName < players[j].DisplayName
	})
}
