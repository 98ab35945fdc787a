// Package resolver rewrites follow-up questions that refer back to a player
// by pronoun ("how much does he cost?") into standalone queries, using the
// session's recent turns.
package resolver

import (
	"context"
	"regexp"
	"strings"

	"github.com/fplchat/query-engine/internal/dictionary"
	"github.com/fplchat/query-engine/internal/history"
	"github.com/fplchat/query-engine/internal/observability"
	"github.com/fplchat/query-engine/internal/snapshot"
)

var referentPattern = regexp.MustCompile(`(?i)\b(he|she|they|him|her|them|his|their|theirs)\b|(?i)\b(?:this|that|the)\s+player\b`)

// possessiveReferents substitute as "Name's" rather than "Name".
var possessiveReferents = map[string]bool{
	"his": true, "their": true, "theirs": true, "her": true,
}

// Fallback mention patterns for turns recorded without resolved player ids:
// first the phrasings users lead with, then the shapes answers take.
var queryMentionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)how\s+much\s+(?:does\s+|is\s+)([A-Z][a-zà-þ]+(?:\s+[A-Z][a-zà-þ]+)?)(?:\s+cost|\s+worth)`),
	regexp.MustCompile(`(?i)tell\s+me\s+about\s+([A-Z][a-zà-þ]+(?:\s+[A-Z][a-zà-þ]+)?)`),
	regexp.MustCompile(`(?i)which\s+team\s+does\s+([A-Za-zà-þ]+)\s+play\s+for`),
}

var answerMentionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\*\*([A-Z][a-zà-þ]+(?:\s+[A-Z][a-zà-þ]+)?)\*\*`),
	regexp.MustCompile(`([A-Z][a-zà-þ]+)\s+plays\s+for`),
}

// Resolver resolves referents against conversation history.
type Resolver struct {
	store  history.Store
	depth  int
	logger *observability.Logger
}

// New creates a resolver reading up to depth recent turns per session.
func New(store history.Store, depth int, logger *observability.Logger) *Resolver {
	if depth <= 0 {
		depth = 3
	}
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &Resolver{store: store, depth: depth, logger: logger}
}

// Resolve rewrites referent tokens in the query to the most recently
// mentioned player. The query comes back unchanged when it carries no
// referent or when no prior player can be found; the engine never invents a
// referent. The bool reports whether a rewrite happened.
func (r *Resolver) Resolve(ctx context.Context, dict *dictionary.Dictionary, sessionID, query string) (string, bool, error) {
	if sessionID == "" || !referentPattern.MatchString(query) {
		return query, false, nil
	}

	turns, err := r.store.Recent(ctx, sessionID, r.depth)
	if err != nil {
		return query, false, err
	}

	player := r.lastMentionedPlayer(dict, turns)
	if player == nil {
		return query, false, nil
	}

	rewritten := substituteReferents(query, player.DisplayName)
	if rewritten == query {
		return query, false, nil
	}

	r.logger.Debug().
		Str("session_id", sessionID).
		Str("player", player.DisplayName).
		Msg("resolved referent from history")
	return rewritten, true, nil
}

// lastMentionedPlayer scans turns most-recent-first. Recorded player ids win;
// turns without them fall back to mention patterns over the query and answer
// text.
func (r *Resolver) lastMentionedPlayer(dict *dictionary.Dictionary, turns []history.Turn) *snapshot.Player {
	snap := dict.Snapshot()

	for _, turn := range turns {
		for _, id := range turn.MentionedPlayerIDs {
			if p := snap.PlayerByID(id); p != nil {
				return p
			}
		}
	}

	for _, turn := range turns {
		for _, re := range queryMentionPatterns {
			if p := matchedPlayer(dict, re, turn.ResolvedQuery); p != nil {
				return p
			}
		}
		for _, re := range answerMentionPatterns {
			if p := matchedPlayer(dict, re, turn.AnswerText); p != nil {
				return p
			}
		}
	}
	return nil
}

func matchedPlayer(dict *dictionary.Dictionary, re *regexp.Regexp, text string) *snapshot.Player {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	res := dict.MatchPlayer(m[1], true)
	switch res.Kind {
	case dictionary.MatchExact, dictionary.MatchUnavailable:
		return res.Player
	}
	return nil
}

// substituteReferents replaces every referent token with the player's name,
// keeping possessives possessive.
func substituteReferents(query, name string) string {
	return referentPattern.ReplaceAllStringFunc(query, func(tok string) string {
		if possessiveReferents[strings.ToLower(tok)] {
			return name + "'s"
		}
		return name
	})
}
