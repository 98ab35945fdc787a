package dictionary

import (
	"sort"
	"strings"

	"github.com/fplchat/query-engine/internal/snapshot"
)

// MatchKind tags the outcome of a name lookup.
type MatchKind int

const (
	// MatchExact resolved to a single player.
	MatchExact MatchKind = iota
	// MatchAmbiguous resolved to several players; the caller must not pick one.
	MatchAmbiguous
	// MatchUnavailable resolved to a player who cannot be selected.
	MatchUnavailable
	// MatchNotFound resolved to nothing; Suggestions may carry fuzzy guesses.
	MatchNotFound
)

// String returns the kind name.
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchAmbiguous:
		return "ambiguous"
	case MatchUnavailable:
		return "unavailable"
	case MatchNotFound:
		return "not_found"
	}
	return "unknown"
}

// MatchResult is the outcome of MatchPlayer. Exactly the fields implied by
// Kind are set; everything else is zero.
type MatchResult struct {
	Kind        MatchKind
	Player      *snapshot.Player   // Exact, Unavailable
	Candidates  []*snapshot.Player // Ambiguous
	Reason      string             // Unavailable
	Suggestions []string           // NotFound, never auto-picked
}

// Match tiers, strongest first. A hit at a stronger tier suppresses all
// weaker tiers.
const (
	tierExactName = iota
	tierExactToken
	tierAllWords
	tierSubstring
	tierNone
)

const maxSuggestions = 3

// MatchPlayer resolves a free-text candidate to a player. Active players are
// tried first; players who cannot be selected only match when no active
// player does, unless includeUnavailable folds them into the main tiers.
func (d *Dictionary) MatchPlayer(candidate string, includeUnavailable bool) MatchResult {
	name := Normalize(candidate)
	if name == "" {
		return MatchResult{Kind: MatchNotFound}
	}
	words := Tokens(name)

	if includeUnavailable {
		tier, hits := d.bestTier(name, words, nil)
		return d.resolveTier(tier, hits)
	}

	isActive := func(e *playerEntry) bool { return e.active }
	tier, hits := d.bestTier(name, words, isActive)
	if tier != tierNone {
		return d.resolveTier(tier, hits)
	}

	isInactive := func(e *playerEntry) bool { return !e.active }
	tier, hits = d.bestTier(name, words, isInactive)
	if tier != tierNone {
		res := d.resolveTier(tier, hits)
		if res.Kind == MatchExact {
			return MatchResult{
				Kind:   MatchUnavailable,
				Player: res.Player,
				Reason: res.Player.UnavailableReason(),
			}
		}
		return res
	}

	return MatchResult{Kind: MatchNotFound, Suggestions: d.suggest(name)}
}

func (d *Dictionary) resolveTier(tier int, hits []*snapshot.Player) MatchResult {
	switch {
	case tier == tierNone || len(hits) == 0:
		return MatchResult{Kind: MatchNotFound}
	case len(hits) == 1:
		p := hits[0]
		if p.Status != snapshot.Active {
			return MatchResult{Kind: MatchUnavailable, Player: p, Reason: p.UnavailableReason()}
		}
		return MatchResult{Kind: MatchExact, Player: p}
	default:
		sort.Slice(hits, func(i, j int) bool {
			if hits[i].TotalPoints != hits[j].TotalPoints {
				return hits[i].TotalPoints > hits[j].TotalPoints
			}
			return hits[i].DisplayName < hits[j].DisplayName
		})
		return MatchResult{Kind: MatchAmbiguous, Candidates: hits}
	}
}

// bestTier returns the strongest tier with at least one hit among entries
// passing the filter, and all hits at that tier.
func (d *Dictionary) bestTier(name string, words []string, filter func(*playerEntry) bool) (int, []*snapshot.Player) {
	best := tierNone
	var hits []*snapshot.Player

	for i := range d.entries {
		e := &d.entries[i]
		if filter != nil && !filter(e) {
			continue
		}
		tier := matchTier(name, words, e)
		if tier == tierNone || tier > best {
			continue
		}
		if tier < best {
			best = tier
			hits = hits[:0]
		}
		hits = append(hits, e.player)
	}
	return best, hits
}

func matchTier(name string, words []string, e *playerEntry) int {
	if name == e.display || name == e.full {
		return tierExactName
	}

	for _, tok := range e.tokens {
		if name == tok {
			return tierExactToken
		}
	}

	if len(words) > 1 && allWordsMatch(words, e.tokens) {
		return tierAllWords
	}

	if len(name) >= 3 {
		if substringAtBoundary(e.full, name) || substringAtBoundary(e.display, name) {
			return tierSubstring
		}
	}

	return tierNone
}

// allWordsMatch reports whether every search word substring-matches some
// full-name token, in either direction.
func allWordsMatch(words, tokens []string) bool {
	for _, w := range words {
		found := false
		for _, tok := range tokens {
			if strings.Contains(tok, w) || strings.Contains(w, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// substringAtBoundary reports whether needle occurs in haystack starting at
// a word boundary.
func substringAtBoundary(haystack, needle string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		at := idx + i
		if at == 0 || haystack[at-1] == ' ' {
			return true
		}
		idx = at + 1
		if idx >= len(haystack) {
			return false
		}
	}
}

// suggest collects fuzzy candidates among active players for a name nothing
// matched. Suggestions are display names, deterministic, capped.
func (d *Dictionary) suggest(name string) []string {
	if len(name) < 3 {
		return nil
	}

	type scored struct {
		name  string
		score float64
	}
	var found []scored

	for i := range d.entries {
		e := &d.entries[i]
		if !e.active {
			continue
		}
		best := 0.0
		for _, form := range append([]string{e.display}, e.tokens...) {
			if s, ok := fuzzyScore(name, form, d.fuzzyThreshold); ok && s > best {
				best = s
			}
		}
		if best > 0 {
			found = append(found, scored{name: e.player.DisplayName, score: best})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].score != found[j].score {
			return found[i].score > found[j].score
		}
		return found[i].name < found[j].name
	})

	var out []string
	seen := make(map[string]bool)
	for _, f := range found {
		if seen[f.name] {
			continue
		}
		seen[f.name] = true
		out = append(out, f.name)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// fuzzyScore measures closeness of two normalized names. Similar lengths use
// positional character overlap against the threshold; a larger length gap
// falls back to shared 3-gram containment.
func fuzzyScore(a, b string, threshold float64) (float64, bool) {
	if len(a) < 3 || len(b) < 3 {
		return 0, false
	}

	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}

	if diff <= 2 {
		shorter, longer := a, b
		if len(shorter) > len(longer) {
			shorter, longer = longer, shorter
		}
		matches := 0
		for i := 0; i < len(shorter); i++ {
			if shorter[i] == longer[i] {
				matches++
			}
		}
		ratio := float64(matches) / float64(len(longer))
		if ratio >= threshold {
			return ratio, true
		}
		return 0, false
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	for i := 0; i+3 <= len(shorter); i++ {
		if strings.Contains(longer, shorter[i:i+3]) {
			return float64(3) / float64(len(longer)), true
		}
	}
	return 0, false
}
