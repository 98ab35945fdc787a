// Package assemble renders a retrieval into the typed context block handed
// to the text generator. Pure: same inputs, same output, no narrative.
package assemble

import (
	"time"

	"github.com/fplchat/query-engine/internal/intent"
	"github.com/fplchat/query-engine/internal/retrieval"
	"github.com/fplchat/query-engine/internal/snapshot"
)

// PlayerRecord is one player rendered for the generator.
type PlayerRecord struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	FullName      string  `json:"full_name"`
	Team          string  `json:"team"`
	Position      string  `json:"position"`
	Price         float64 `json:"price"`
	TotalPoints   int     `json:"total_points"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	Minutes       int     `json:"minutes"`
	ExpectedGoals float64 `json:"expected_goals"`
	Form          float64 `json:"form"`
	Ownership     float64 `json:"ownership"`
}

// FixtureRecord is one fixture rendered for the generator.
type FixtureRecord struct {
	Gameweek int       `json:"gameweek"`
	Home     string    `json:"home"`
	Away     string    `json:"away"`
	Kickoff  time.Time `json:"kickoff"`
	Finished bool      `json:"finished"`
}

// RuleRecord is one knowledge-base hit.
type RuleRecord struct {
	Topic    string `json:"topic"`
	Question string `json:"question"`
	Text     string `json:"text"`
}

// UnavailableRecord reports a mentioned player who cannot be selected. The
// reason comes from the dataset's status fields, never invented.
type UnavailableRecord struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// AmbiguousRecord reports a mention shared by several players.
type AmbiguousRecord struct {
	Candidate string   `json:"candidate"`
	Options   []string `json:"options"`
}

// NotFoundRecord reports a mention nothing matched.
type NotFoundRecord struct {
	Candidate   string   `json:"candidate"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// FiltersRecord reports the structural constraints applied.
type FiltersRecord struct {
	Teams    []string `json:"teams,omitempty"`
	Position string   `json:"position,omitempty"`
	PriceMin float64  `json:"price_min,omitempty"`
	PriceMax float64  `json:"price_max,omitempty"`
	Gameweek int      `json:"gameweek,omitempty"`
	TopN     int      `json:"top_n,omitempty"`
}

// StructuredContext is the engine's output block.
type StructuredContext struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	RankedBy   string  `json:"ranked_by,omitempty"`
	Strategy   string  `json:"strategy,omitempty"`

	Players     []PlayerRecord      `json:"players,omitempty"`
	Fixtures    []FixtureRecord     `json:"fixtures,omitempty"`
	Rules       []RuleRecord        `json:"rules,omitempty"`
	Unavailable []UnavailableRecord `json:"unavailable,omitempty"`
	Ambiguous   []AmbiguousRecord   `json:"ambiguous,omitempty"`
	NotFound    []NotFoundRecord    `json:"not_found,omitempty"`

	Filters FiltersRecord `json:"filters"`
}

// Assemble renders a classification plus retrieval into the structured
// context. Every outcome the retrieval carried survives; nothing is added.
func Assemble(cls intent.Classification, ret retrieval.Result, snap *snapshot.Snapshot) StructuredContext {
	out := StructuredContext{
		Intent:     string(cls.Intent),
		Confidence: cls.Confidence,
		Strategy:   ret.Strategy,
	}

	if ret.Ranked {
		out.RankedBy = ret.StatKey.Label()
	}

	for _, p := range ret.Players {
		out.Players = append(out.Players, playerRecord(p, snap))
	}

	for _, f := range ret.Fixtures {
		out.Fixtures = append(out.Fixtures, FixtureRecord{
			Gameweek: f.Fixture.Gameweek,
			Home:     f.HomeName,
			Away:     f.AwayName,
			Kickoff:  f.Fixture.KickoffAt,
			Finished: f.Fixture.Finished,
		})
	}

	for _, r := range ret.RuleEntries {
		out.Rules = append(out.Rules, RuleRecord{
			Topic:    r.Topic,
			Question: r.Question,
			Text:     r.Text,
		})
	}

	for _, u := range ret.Unavailable {
		out.Unavailable = append(out.Unavailable, UnavailableRecord{
			Name:   u.Player.DisplayName,
			Reason: u.Reason,
		})
	}

	for _, a := range ret.Ambiguous {
		rec := AmbiguousRecord{Candidate: a.Candidate}
		for _, c := range a.Candidates {
			rec.Options = append(rec.Options, c.FullName())
		}
		out.Ambiguous = append(out.Ambiguous, rec)
	}

	for _, n := range ret.NotFound {
		out.NotFound = append(out.NotFound, NotFoundRecord{
			Candidate:   n.Candidate,
			Suggestions: n.Suggestions,
		})
	}

	out.Filters = FiltersRecord{
		Teams:    ret.Filters.Teams,
		Position: ret.Filters.Position,
		Gameweek: ret.Filters.Gameweek,
		TopN:     ret.Filters.TopN,
	}
	if ret.Filters.Price != nil {
		out.Filters.PriceMin = float64(ret.Filters.Price.MinTenths) / 10.0
		out.Filters.PriceMax = float64(ret.Filters.Price.MaxTenths) / 10.0
	}

	return out
}

func playerRecord(p *snapshot.Player, snap *snapshot.Snapshot) PlayerRecord {
	return PlayerRecord{
		ID:            p.ID,
		Name:          p.DisplayName,
		FullName:      p.FullName(),
		Team:          snap.TeamName(p.TeamID),
		Position:      p.Position.String(),
		Price:         p.Price(),
		TotalPoints:   p.TotalPoints,
		Goals:         p.Goals,
		Assists:       p.Assists,
		Minutes:       p.Minutes,
		ExpectedGoals: p.ExpectedGoals,
		Form:          p.Form,
		Ownership:     p.Ownership,
	}
}
