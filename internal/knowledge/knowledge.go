// Package knowledge carries the static FPL rules and strategy facts the
// engine answers rules questions from. Entries are compiled in; nothing here
// touches the dataset snapshot.
package knowledge

import (
	"sort"
	"strings"

	"github.com/fplchat/query-engine/internal/snapshot"
)

// Game constants the strategy paths share.
const (
	SquadSize            = 15
	StartingBudgetTenths = 1000 // £100.0m
	MaxPlayersPerClub    = 3
	TransferCostPoints   = 4
	FreeTransfersPerWeek = 1

	// DifferentialOwnershipMax bounds ownership for differential picks.
	DifferentialOwnershipMax = 15.0
	// TemplateOwnershipMin is the ownership above which a player is template.
	TemplateOwnershipMin = 40.0
	// ValuePickMaxTenths bounds price for budget value picks (£6.0m).
	ValuePickMaxTenths = 60
)

// GoalPoints returns the points for a goal by position.
func GoalPoints(pos snapshot.Position) int {
	switch pos {
	case snapshot.Keeper, snapshot.Defender:
		return 6
	case snapshot.Midfielder:
		return 5
	case snapshot.Forward:
		return 4
	}
	return 0
}

// CleanSheetPoints returns the points for a clean sheet by position.
func CleanSheetPoints(pos snapshot.Position) int {
	switch pos {
	case snapshot.Keeper, snapshot.Defender:
		return 4
	case snapshot.Midfielder:
		return 1
	}
	return 0
}

// Scoring constants independent of position.
const (
	AssistPoints     = 3
	YellowCardPoints = -1
	RedCardPoints    = -3
	SavesPerPoint    = 3 // goalkeepers: 1 point per 3 saves
)

// Entry is one answerable rules or strategy fact.
type Entry struct {
	ID       string
	Topic    string // scoring, chips, squad, transfers, strategy
	Question string // canonical phrasing
	Text     string
	Keywords []string
}

// Base holds the entries and serves lexical search over them.
type Base struct {
	entries []Entry
}

// New builds the knowledge base from the compiled-in entries.
func New() *Base {
	return &Base{entries: defaultEntries()}
}

// All returns every entry.
func (b *Base) All() []Entry {
	return b.entries
}

// Search ranks entries by keyword overlap with the query and returns up to
// limit hits. Ties break on entry id so results never reorder between calls.
func (b *Base) Search(query string, limit int) []Entry {
	if limit <= 0 {
		limit = 3
	}

	words := queryWords(query)
	if len(words) == 0 {
		return nil
	}

	type scored struct {
		entry Entry
		score int
	}
	var hits []scored

	for _, e := range b.entries {
		score := 0
		for _, kw := range e.Keywords {
			if kwMatches(kw, words, query) {
				score++
				if strings.Contains(kw, " ") {
					// Multi-word keywords are stronger signals.
					score++
				}
			}
		}
		if score > 0 {
			hits = append(hits, scored{entry: e, score: score})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].entry.ID < hits[j].entry.ID
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out
}

func kwMatches(kw string, words map[string]bool, query string) bool {
	if strings.Contains(kw, " ") {
		return strings.Contains(strings.ToLower(query), kw)
	}
	return words[kw]
}

func queryWords(query string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(query)) {
		w = strings.Trim(w, ",.?!'\"")
		if w != "" {
			out[w] = true
		}
	}
	return out
}
