package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fplchat/query-engine/internal/snapshot"
)

// positionSynonyms maps the words supporters use to FPL positions.
var positionSynonyms = map[string]snapshot.Position{
	"goalkeeper":  snapshot.Keeper,
	"goalkeepers": snapshot.Keeper,
	"keeper":      snapshot.Keeper,
	"keepers":     snapshot.Keeper,
	"gk":          snapshot.Keeper,
	"gks":         snapshot.Keeper,

	"defender":  snapshot.Defender,
	"defenders": snapshot.Defender,
	"def":       snapshot.Defender,
	"defs":      snapshot.Defender,
	"back":      snapshot.Defender,
	"backs":     snapshot.Defender,
	"fullback":  snapshot.Defender,
	"fullbacks": snapshot.Defender,

	"midfielder":  snapshot.Midfielder,
	"midfielders": snapshot.Midfielder,
	"mid":         snapshot.Midfielder,
	"mids":        snapshot.Midfielder,
	"cm":          snapshot.Midfielder,
	"dm":          snapshot.Midfielder,
	"am":          snapshot.Midfielder,
	"winger":      snapshot.Midfielder,
	"wingers":     snapshot.Midfielder,

	"forward":   snapshot.Forward,
	"forwards":  snapshot.Forward,
	"fwd":       snapshot.Forward,
	"fwds":      snapshot.Forward,
	"striker":   snapshot.Forward,
	"strikers":  snapshot.Forward,
	"attacker":  snapshot.Forward,
	"attackers": snapshot.Forward,
}

var (
	priceUnderPattern   = regexp.MustCompile(`(?i)(?:under|below|less\s+than|cheaper\s+than|max(?:imum)?(?:\s+of)?)\s*[£$]?\s*(\d+(?:\.\d+)?)\s*m(?:illion)?\b`)
	priceOverPattern    = regexp.MustCompile(`(?i)(?:over|above|more\s+than|at\s+least)\s*[£$]?\s*(\d+(?:\.\d+)?)\s*m(?:illion)?\b`)
	priceBetweenPattern = regexp.MustCompile(`(?i)between\s*[£$]?\s*(\d+(?:\.\d+)?)\s*m?(?:illion)?\s*(?:and|-|–)\s*[£$]?\s*(\d+(?:\.\d+)?)\s*m(?:illion)?\b`)

	gameweekPattern  = regexp.MustCompile(`(?i)\b(?:gw\s*|gameweek\s+)(\d{1,2})\b`)
	topNPattern      = regexp.MustCompile(`(?i)\btop\s+(\d{1,2})\b`)
	nextGamesPattern = regexp.MustCompile(`(?i)\bnext\s+(\d{1,2})\s+(?:games?|fixtures?|matches?|gameweeks?)\b`)
)

// parsePosition finds a position constraint anywhere in the query.
func parsePosition(query string) (snapshot.Position, bool) {
	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ",.?!")
		if pos, ok := positionSynonyms[word]; ok {
			return pos, true
		}
	}
	return 0, false
}

// parsePrice finds a price constraint, converted to tenths of a million.
// "between" wins over one-sided phrasings when both appear.
func parsePrice(query string) *PriceRange {
	if m := priceBetweenPattern.FindStringSubmatch(query); m != nil {
		lo, hi := toTenths(m[1]), toTenths(m[2])
		if lo > hi {
			lo, hi = hi, lo
		}
		return &PriceRange{MinTenths: lo, MaxTenths: hi, Inclusive: true}
	}
	if m := priceUnderPattern.FindStringSubmatch(query); m != nil {
		return &PriceRange{MaxTenths: toTenths(m[1])}
	}
	if m := priceOverPattern.FindStringSubmatch(query); m != nil {
		return &PriceRange{MinTenths: toTenths(m[1])}
	}
	return nil
}

func toTenths(s string) int {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f*10 + 0.5)
}

// parseGameweek finds an explicit gameweek reference ("gw7", "gameweek 7").
func parseGameweek(query string) int {
	m := gameweekPattern.FindStringSubmatch(query)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > 38 {
		return 0
	}
	return n
}

// parseNextGames finds a "next N games" horizon.
func parseNextGames(query string) int {
	m := nextGamesPattern.FindStringSubmatch(query)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// parseTopN finds an explicit "top N" bound.
func parseTopN(query string) int {
	m := topNPattern.FindStringSubmatch(query)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// Contains reports whether the range admits the given price. A player priced
// exactly at a one-sided bound is out: "under £9m" means strictly below it.
func (r *PriceRange) Contains(priceTenths int) bool {
	if r == nil {
		return true
	}
	if r.MinTenths > 0 {
		if priceTenths < r.MinTenths || (priceTenths == r.MinTenths && !r.Inclusive) {
			return false
		}
	}
	if r.MaxTenths > 0 {
		if priceTenths > r.MaxTenths || (priceTenths == r.MaxTenths && !r.Inclusive) {
			return false
		}
	}
	return true
}
