package snapshot

// StatKey names a sortable player statistic.
type StatKey string

// Stat keys recognised by the classifier and the ranking engine.
const (
	StatPoints        StatKey = "total_points"
	StatGoals         StatKey = "goals_scored"
	StatAssists       StatKey = "assists"
	StatExpectedGoals StatKey = "expected_goals"
	StatOwnership     StatKey = "selected_by_percent"
	StatForm          StatKey = "form"
	StatMinutes       StatKey = "minutes"
	StatValue         StatKey = "value" // points per £1.0m
)

// Valid reports whether k names a known statistic.
func (k StatKey) Valid() bool {
	switch k {
	case StatPoints, StatGoals, StatAssists, StatExpectedGoals,
		StatOwnership, StatForm, StatMinutes, StatValue:
		return true
	}
	return false
}

// Label returns a short human-readable name for the statistic.
func (k StatKey) Label() string {
	switch k {
	case StatPoints:
		return "total points"
	case StatGoals:
		return "goals"
	case StatAssists:
		return "assists"
	case StatExpectedGoals:
		return "expected goals"
	case StatOwnership:
		return "ownership"
	case StatForm:
		return "form"
	case StatMinutes:
		return "minutes"
	case StatValue:
		return "points per million"
	}
	return string(k)
}

// Value extracts the statistic from a player. StatValue divides points by
// price so a zero-priced row can never rank.
func (k StatKey) Value(p *Player) float64 {
	switch k {
	case StatPoints:
		return float64(p.TotalPoints)
	case StatGoals:
		return float64(p.Goals)
	case StatAssists:
		return float64(p.Assists)
	case StatExpectedGoals:
		return p.ExpectedGoals
	case StatOwnership:
		return p.Ownership
	case StatForm:
		return p.Form
	case StatMinutes:
		return float64(p.Minutes)
	case StatValue:
		if p.PriceTenths == 0 {
			return 0
		}
		return float64(p.TotalPoints) / p.Price()
	}
	return 0
}
