package retrieval

import (
	"regexp"

	"github.com/fplchat/query-engine/internal/extract"
	"github.com/fplchat/query-engine/internal/intent"
	"github.com/fplchat/query-engine/internal/knowledge"
	"github.com/fplchat/query-engine/internal/snapshot"
)

// Strategy flavors.
const (
	StrategyDifferentials = "differentials"
	StrategyTemplate      = "template"
	StrategyValue         = "value_picks"
	StrategyCaptaincy     = "captaincy"
)

var (
	captaincyQueryPattern = regexp.MustCompile(`(?i)\bcaptain`)
	templateQueryPattern  = regexp.MustCompile(`(?i)\b(template|highly\s+owned|essential)\b`)
	valueQueryPattern     = regexp.MustCompile(`(?i)\b(value|budget|cheap|enablers?|ppm|points\s+per\s+million)\b`)
)

// retrieveStrategy picks a strategy flavor from the query and serves the
// matching slice: low-owned differentials, the highly-owned template, cheap
// value picks by points per million, or in-form captaincy options.
func (e *Engine) retrieveStrategy(query string, cls intent.Classification, ext extract.Result, snap *snapshot.Snapshot) Result {
	topN := e.clampTopN(cls.Limit)

	flavor := StrategyDifferentials
	switch {
	case captaincyQueryPattern.MatchString(query):
		flavor = StrategyCaptaincy
	case templateQueryPattern.MatchString(query):
		flavor = StrategyTemplate
	case valueQueryPattern.MatchString(query):
		flavor = StrategyValue
	}

	keep := func(p *snapshot.Player) bool { return true }
	key := snapshot.StatPoints

	switch flavor {
	case StrategyDifferentials:
		keep = func(p *snapshot.Player) bool {
			return p.Ownership < knowledge.DifferentialOwnershipMax && p.TotalPoints > 0
		}
		key = snapshot.StatForm
	case StrategyTemplate:
		keep = func(p *snapshot.Player) bool {
			return p.Ownership > knowledge.TemplateOwnershipMin
		}
		key = snapshot.StatOwnership
	case StrategyValue:
		keep = func(p *snapshot.Player) bool {
			return p.PriceTenths <= knowledge.ValuePickMaxTenths && p.TotalPoints > 0
		}
		key = snapshot.StatValue
	case StrategyCaptaincy:
		keep = func(p *snapshot.Player) bool { return p.TotalPoints > 0 }
		key = snapshot.StatForm
	}

	var players []*snapshot.Player
	for i := range snap.Players {
		p := &snap.Players[i]
		if p.Status != snapshot.Active || !keep(p) {
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

	sortByStat(players, key)
	if len(players) > topN {
		players = players[:topN]
	}

	return Result{
		Players:  players,
		StatKey:  key,
		Ranked:   true,
		Strategy: flavor,
		Filters:  e.filters(ext, snap, topN),
	}
}
