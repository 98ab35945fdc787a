// Package extract pulls typed entities out of a raw query: player mentions,
// team and position constraints, price ranges, gameweeks and result bounds.
package extract

import (
	"regexp"
	"strings"

	"github.com/fplchat/query-engine/internal/dictionary"
	"github.com/fplchat/query-engine/internal/snapshot"
)

// Mention is one player reference found in the query, in mention order.
type Mention struct {
	Candidate string // surface form as typed, possessive stripped
	Match     dictionary.MatchResult
}

// PriceRange bounds prices in tenths of a million. Zero means unbounded on
// that side. One-sided bounds ("under £9m", "over £10m") exclude the bound
// itself; "between" keeps both ends.
type PriceRange struct {
	MinTenths int
	MaxTenths int
	Inclusive bool
}

// Result is everything the extractor found. Mixed outcomes all survive: a
// query naming one known and one unknown player carries both.
type Result struct {
	Mentions []Mention
	TeamIDs  []int

	Position    snapshot.Position
	HasPosition bool

	Price     *PriceRange
	Gameweek  int // 0 = none
	TopN      int // 0 = not requested
	NextGames int // "next N games" horizon, 0 = none

	Comparison bool
}

// FoundPlayers returns the exactly-resolved players in mention order.
func (r *Result) FoundPlayers() []*snapshot.Player {
	var out []*snapshot.Player
	for _, m := range r.Mentions {
		if m.Match.Kind == dictionary.MatchExact {
			out = append(out, m.Match.Player)
		}
	}
	return out
}

// HasPlayerMention reports whether any mention resolved to a player, even an
// unavailable or ambiguous one.
func (r *Result) HasPlayerMention() bool {
	for _, m := range r.Mentions {
		if m.Match.Kind != dictionary.MatchNotFound {
			return true
		}
	}
	return false
}

// HasNameLikeMention reports whether any mention resolved to a player or at
// least reads as a typed proper name. Lowercase whole-query fallbacks that
// matched nothing do not count.
func (r *Result) HasNameLikeMention() bool {
	for _, m := range r.Mentions {
		if m.Match.Kind != dictionary.MatchNotFound {
			return true
		}
		if m.Candidate != "" && m.Candidate[0] >= 'A' && m.Candidate[0] <= 'Z' {
			return true
		}
	}
	return false
}

// Name-pair phrasings. Checked before the n-gram walk so both sides of a
// comparison survive as separate mentions.
var (
	namePattern = `[A-ZÀ-Þ][a-zà-þ'\-]+(?:\s+[A-ZÀ-Þ][a-zà-þ'\-]+)*`

	orPattern       = regexp.MustCompile(`(` + namePattern + `)\s+or\s+(` + namePattern + `)`)
	comparePattern  = regexp.MustCompile(`(?i)compare\s+(` + namePattern + `)\s+(?:and|with|vs\.?|versus)\s+(` + namePattern + `)`)
	transferPattern = regexp.MustCompile(`(?i)(?:sell(?:ing)?|swap(?:ping)?|replac(?:e|ing))\s+(` + namePattern + `)\s+(?:for|with)\s+(` + namePattern + `)`)
	listPattern     = regexp.MustCompile(`(` + namePattern + `)\s*,\s*(` + namePattern + `)(?:\s*,\s*(` + namePattern + `))?`)

	ngramPattern    = regexp.MustCompile(`[A-ZÀ-Þ][a-zà-þ'\-]+(?:\.[A-ZÀ-Þ][a-zà-þ'\-]+)?`)
	possessiveTrail = regexp.MustCompile(`['’]s$`)
)

// queryStopWords are capitalized tokens that start questions or name the
// game itself, never a player.
var queryStopWords = map[string]bool{
	"who": true, "what": true, "which": true, "when": true, "where": true,
	"how": true, "why": true, "should": true, "is": true, "are": true,
	"can": true, "will": true, "does": true, "do": true, "did": true,
	"the": true, "a": true, "an": true, "my": true, "i": true,
	"best": true, "top": true, "show": true, "tell": true, "give": true,
	"get": true, "find": true, "list": true, "compare": true,
	"premier": true, "league": true, "fpl": true, "fantasy": true,
	"football": true, "gameweek": true, "captain": true, "team": true,
	"squad": true, "player": true, "players": true, "transfer": true,
	"wildcard": true, "bench": true, "buy": true, "sell": true,
	"points": true, "goals": true, "assists": true, "form": true,
	"price": true, "value": true, "cheap": true, "against": true,
	"under": true, "over": true, "between": true, "next": true,
	"this": true, "that": true, "good": true, "worth": true,
}

// Extractor finds entities in queries against one dictionary generation.
type Extractor struct {
	dict *dictionary.Dictionary
}

// New creates an extractor over the given dictionary.
func New(dict *dictionary.Dictionary) *Extractor {
	return &Extractor{dict: dict}
}

// Extract runs full entity extraction over a query.
func (e *Extractor) Extract(query string) Result {
	res := Result{
		TeamIDs:   e.teamIDs(query),
		Gameweek:  parseGameweek(query),
		TopN:      parseTopN(query),
		NextGames: parseNextGames(query),
		Price:     parsePrice(query),
	}
	res.Position, res.HasPosition = parsePosition(query)

	candidates, comparison := e.nameCandidates(query)
	res.Comparison = comparison

	seen := make(map[int]int) // player id -> index in Mentions
	for _, cand := range candidates {
		if e.skipCandidate(cand) {
			continue
		}
		match := e.dict.MatchPlayer(cand, false)
		if match.Kind == dictionary.MatchNotFound && len(match.Suggestions) == 0 {
			// Plain vocabulary, not a failed player lookup.
			if !looksLikeName(cand) {
				continue
			}
		}

		if id, dup := dedupID(match); dup {
			if prev, ok := seen[id]; ok {
				// Keep the longest surface form for the same player.
				if len(cand) > len(res.Mentions[prev].Candidate) {
					res.Mentions[prev].Candidate = cand
					res.Mentions[prev].Match = match
				}
				continue
			}
			seen[id] = len(res.Mentions)
		}
		res.Mentions = append(res.Mentions, Mention{Candidate: cand, Match: match})
	}

	return res
}

// dedupID returns the player id to dedup on, when the match carries one.
func dedupID(m dictionary.MatchResult) (int, bool) {
	switch m.Kind {
	case dictionary.MatchExact, dictionary.MatchUnavailable:
		return m.Player.ID, true
	}
	return 0, false
}

// nameCandidates walks the query for name-shaped spans: pair phrasings
// first, then capitalized bigrams, then leftover capitalized unigrams, then
// the whole-query fallback for very short queries.
func (e *Extractor) nameCandidates(query string) ([]string, bool) {
	var out []string
	comparison := false
	taken := make(map[string]bool)

	add := func(cand string) {
		cand = strings.TrimSpace(possessiveTrail.ReplaceAllString(cand, ""))
		if cand == "" || taken[strings.ToLower(cand)] {
			return
		}
		taken[strings.ToLower(cand)] = true
		out = append(out, cand)
	}

	for _, re := range []*regexp.Regexp{comparePattern, transferPattern, orPattern} {
		for _, m := range re.FindAllStringSubmatch(query, -1) {
			comparison = true
			for _, g := range m[1:] {
				if g != "" {
					add(g)
				}
			}
		}
	}
	if !comparison {
		for _, m := range listPattern.FindAllStringSubmatch(query, -1) {
			comparison = true
			for _, g := range m[1:] {
				if g != "" && !queryStopWords[strings.ToLower(g)] {
					add(g)
				}
			}
		}
	}

	// Capitalized n-grams, bigrams before unigrams so "Erling Haaland"
	// beats "Erling" + "Haaland".
	tokens := ngramPattern.FindAllString(query, -1)
	for i := 0; i+1 < len(tokens); i++ {
		a, b := tokens[i], tokens[i+1]
		if queryStopWords[strings.ToLower(a)] || queryStopWords[strings.ToLower(b)] {
			continue
		}
		if strings.Contains(query, a+" "+b) {
			add(a + " " + b)
		}
	}
	for _, tok := range tokens {
		if queryStopWords[strings.ToLower(tok)] {
			continue
		}
		if coveredBy(tok, out) {
			continue
		}
		add(tok)
	}

	// Bare-name queries like "haaland" or "joao felix" carry no capitals.
	if len(out) == 0 {
		words := strings.Fields(query)
		if n := len(words); n >= 1 && n <= 2 {
			all := strings.Trim(query, " ?!.")
			if !queryStopWords[strings.ToLower(all)] {
				add(all)
			}
		}
	}

	return out, comparison
}

// coveredBy reports whether tok already appears inside an accepted longer
// candidate.
func coveredBy(tok string, accepted []string) bool {
	for _, a := range accepted {
		if a != tok && strings.Contains(a, tok) {
			return true
		}
	}
	return false
}

// skipCandidate drops candidates that name a team, a position or stop
// vocabulary rather than a player.
func (e *Extractor) skipCandidate(cand string) bool {
	lower := strings.ToLower(strings.TrimSpace(cand))
	if lower == "" || queryStopWords[lower] {
		return true
	}
	if _, ok := positionSynonyms[lower]; ok {
		return true
	}
	return e.dict.IsTeamAlias(cand)
}

// looksLikeName reports whether a failed lookup is worth surfacing as a
// not-found outcome: multi-word, or a single long-enough capitalized token.
func looksLikeName(cand string) bool {
	if strings.Contains(cand, " ") {
		return true
	}
	if len(cand) < 4 {
		return false
	}
	r := cand[0]
	return r >= 'A' && r <= 'Z'
}

// teamIDs returns the distinct teams mentioned, in query order.
func (e *Extractor) teamIDs(query string) []int {
	var out []int
	seen := make(map[int]bool)
	for _, m := range e.dict.ScanTeams(query) {
		if seen[m.TeamID] {
			continue
		}
		seen[m.TeamID] = true
		out = append(out, m.TeamID)
	}
	return out
}
