// Package intent classifies queries into retrieval strategies. Rules run in
// a fixed order and the first hit wins, so a query matching several rules
// always classifies the same way.
package intent

import (
	"regexp"
	"strings"

	"github.com/fplchat/query-engine/internal/extract"
	"github.com/fplchat/query-engine/internal/snapshot"
)

// Intent selects the retrieval path for a query.
type Intent string

const (
	Conversational Intent = "conversational"
	Contextual     Intent = "contextual"
	Fixture        Intent = "fixture"
	FilteredStat   Intent = "filtered_stat"
	StatLeader     Intent = "stat_leader"
	Rules          Intent = "rules"
	Strategy       Intent = "strategy"
	TeamPosition   Intent = "team_position"
	Comparison     Intent = "comparison"
	PlayerDetail   Intent = "player_detail"
	General        Intent = "general"
)

// Classification is the classifier's output. Confidence is fixed per rule
// and feeds logging only; no downstream decision branches on it.
type Classification struct {
	Intent     Intent
	Confidence float64
	StatKey    snapshot.StatKey
	Limit      int // explicit "top N", 0 when absent
}

var (
	conversationalPattern = regexp.MustCompile(`(?i)^\s*(hi|hello|hey|yo|howdy|good\s+(morning|afternoon|evening)|thanks?|thank\s+you|cheers|bye|goodbye|see\s+you|ok(ay)?|great|nice|cool)\s*[!.?]*\s*$`)

	referentPattern = regexp.MustCompile(`(?i)\b(he|she|they|him|her|them|his|their|theirs)\b|(?i)\b(?:this|that|the)\s+player\b`)

	fixtureKeywordPattern = regexp.MustCompile(`(?i)\b(fixtures?|schedule|playing\s+against|play\s+next|who\s+do\s+\w+\s+play|upcoming\s+(games?|matches?)|next\s+(game|match|opponent))\b`)
	nextNGamesPattern     = regexp.MustCompile(`(?i)\bnext\s+\d+\s+(games?|fixtures?|matches?|gameweeks?)\b`)

	superlativePattern = regexp.MustCompile(`(?i)\b(best|top|most|highest|leading|greatest)\b`)

	statLeaderPattern = regexp.MustCompile(`(?i)\b(most|top|highest|best|leading)\b.*\b(assists?|goals?|points?|scorers?|form|xg|expected\s+goals|owned|ownership|selected|minutes)\b|\btop\s+scorer\b`)

	rulesStrongPattern = regexp.MustCompile(`(?i)\b(how\s+many\s+points\s+(for|do(es)?)|scoring\s+rules?|points?\s+system|how\s+do(es)?\s+(scoring|the\s+game|fpl|chips?|captaincy)\s+work|triple\s+captain|bench\s+boost|free\s+hit|assistant\s+manager\s+chip|what\s+is\s+a\s+(chip|wildcard|free\s+hit)|rules?\s+(of|for)|squad\s+rules?|budget\s+rules?|transfer\s+(rules?|deadline|cost)|price\s+changes?\s+work)\b`)
	rulesMediumPattern = regexp.MustCompile(`(?i)\b(clean\s+sheet\s+points|yellow\s+card\s+points|red\s+card\s+points|bonus\s+points?\s+system|bps|how\s+much\s+budget|starting\s+budget|squad\s+size|max(imum)?\s+players?\s+per\s+(team|club))\b`)

	strategyPattern = regexp.MustCompile(`(?i)\b(differentials?|template|value\s+picks?|budget\s+(options?|picks?|enablers?)|captain(cy)?\s+(picks?|options?|choice)|should\s+i\s+captain|wildcard\s+draft|ppm|points\s+per\s+million|double\s+gameweek|dgw|blank\s+gameweek|bgw|set\s+and\s+forget)\b`)

	playerVocabularyPattern = regexp.MustCompile(`(?i)\b(who|which\s+players?|best|top|under|over|cheap(est)?)\b`)
)

// Classifier assigns intents. It owns no state beyond the rule tables.
type Classifier struct{}

// New creates a classifier.
func New() *Classifier {
	return &Classifier{}
}

// Classify runs the rule table over the resolved query and its extraction.
func (c *Classifier) Classify(query string, ext extract.Result) Classification {
	statKey := detectStatKey(query)
	limit := ext.TopN

	build := func(in Intent, conf float64) Classification {
		return Classification{Intent: in, Confidence: conf, StatKey: statKey, Limit: limit}
	}

	switch {
	case conversationalPattern.MatchString(query):
		return build(Conversational, 0.98)

	case referentPattern.MatchString(query):
		return build(Contextual, 0.96)

	case fixtureKeywordPattern.MatchString(query) || nextNGamesPattern.MatchString(query):
		return build(Fixture, 0.95)

	case hasStructuralFilter(ext) && superlativePattern.MatchString(query):
		return build(FilteredStat, 0.92)

	case statLeaderPattern.MatchString(query) && !ext.HasPlayerMention():
		return build(StatLeader, 0.90)

	case isRulesQuery(query):
		return build(Rules, 0.85)

	case strategyPattern.MatchString(query):
		return build(Strategy, 0.85)

	case ext.Comparison && len(ext.Mentions) >= 2:
		return build(Comparison, 0.85)

	case len(ext.TeamIDs) > 0 || ext.HasPosition:
		return build(TeamPosition, 0.80)

	case ext.HasNameLikeMention():
		return build(PlayerDetail, 0.80)

	default:
		return build(General, 0.50)
	}
}

// hasStructuralFilter reports whether the query constrains team, position or
// price.
func hasStructuralFilter(ext extract.Result) bool {
	return ext.Price != nil || ext.HasPosition || len(ext.TeamIDs) > 0
}

// isRulesQuery gates rules vocabulary off when player or strategy
// vocabulary co-occurs: "best players under £8m" is a player question even
// though "under" appears in the rules glossary.
func isRulesQuery(query string) bool {
	if strategyPattern.MatchString(query) || playerVocabularyPattern.MatchString(query) {
		return false
	}
	return rulesStrongPattern.MatchString(query) || rulesMediumPattern.MatchString(query)
}

// statVocabulary maps stat phrasings to sort keys. Longest phrases first so
// "expected goals" is not read as "goals".
var statVocabulary = []struct {
	phrase string
	key    snapshot.StatKey
}{
	{"expected goals", snapshot.StatExpectedGoals},
	{"points per million", snapshot.StatValue},
	{"xg", snapshot.StatExpectedGoals},
	{"assist", snapshot.StatAssists},
	{"goal", snapshot.StatGoals},
	{"scorer", snapshot.StatGoals},
	{"ownership", snapshot.StatOwnership},
	{"owned", snapshot.StatOwnership},
	{"selected", snapshot.StatOwnership},
	{"form", snapshot.StatForm},
	{"minutes", snapshot.StatMinutes},
	{"value", snapshot.StatValue},
	{"ppm", snapshot.StatValue},
	{"point", snapshot.StatPoints},
}

// detectStatKey finds the statistic a query ranks by, defaulting to total
// points.
func detectStatKey(query string) snapshot.StatKey {
	lower := strings.ToLower(query)
	for _, sv := range statVocabulary {
		if strings.Contains(lower, sv.phrase) {
			return sv.key
		}
	}
	return snapshot.StatPoints
}
