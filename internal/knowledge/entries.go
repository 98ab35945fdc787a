package knowledge

func defaultEntries() []Entry {
	return []Entry{
		{
			ID:       "scoring-goals",
			Topic:    "scoring",
			Question: "How many points for a goal?",
			Text:     "Goals are worth 6 points for goalkeepers and defenders, 5 for midfielders and 4 for forwards.",
			Keywords: []string{"goal", "goals", "points for a goal", "scoring"},
		},
		{
			ID:       "scoring-assists",
			Topic:    "scoring",
			Question: "How many points for an assist?",
			Text:     "Every assist is worth 3 points regardless of position.",
			Keywords: []string{"assist", "assists", "points for an assist"},
		},
		{
			ID:       "scoring-clean-sheets",
			Topic:    "scoring",
			Question: "How many points for a clean sheet?",
			Text:     "Clean sheets earn 4 points for goalkeepers and defenders and 1 point for midfielders; forwards get nothing. The player must play at least 60 minutes.",
			Keywords: []string{"clean sheet", "clean sheets", "shutout"},
		},
		{
			ID:       "scoring-cards",
			Topic:    "scoring",
			Question: "What do cards cost?",
			Text:     "A yellow card costs 1 point and a red card costs 3 points. A red card also rules the player out of upcoming fixtures.",
			Keywords: []string{"yellow card", "red card", "card", "booking", "sent off"},
		},
		{
			ID:       "scoring-saves",
			Topic:    "scoring",
			Question: "How do goalkeeper saves score?",
			Text:     "Goalkeepers earn 1 point for every 3 saves made in a match.",
			Keywords: []string{"save", "saves", "goalkeeper points"},
		},
		{
			ID:       "scoring-bonus",
			Topic:    "scoring",
			Question: "How do bonus points work?",
			Text:     "The three best-performing players in each match earn 3, 2 and 1 bonus points, decided by the Bonus Points System (BPS).",
			Keywords: []string{"bonus", "bonus points", "bps"},
		},
		{
			ID:       "squad-rules",
			Topic:    "squad",
			Question: "What are the squad rules?",
			Text:     "A squad has 15 players: 2 goalkeepers, 5 defenders, 5 midfielders and 3 forwards, with at most 3 players from any one club.",
			Keywords: []string{"squad", "squad size", "squad rules", "players per team", "players per club", "formation"},
		},
		{
			ID:       "squad-budget",
			Topic:    "squad",
			Question: "What is the starting budget?",
			Text:     "The starting budget is £100.0m for the full 15-player squad.",
			Keywords: []string{"budget", "starting budget", "100 million", "money"},
		},
		{
			ID:       "transfers-free",
			Topic:    "transfers",
			Question: "How do transfers work?",
			Text:     "You get 1 free transfer per gameweek, and unused free transfers roll over (up to 5). Extra transfers cost 4 points each.",
			Keywords: []string{"transfer", "transfers", "free transfer", "transfer cost", "hit", "points hit"},
		},
		{
			ID:       "transfers-deadline",
			Topic:    "transfers",
			Question: "When is the deadline?",
			Text:     "The deadline is 90 minutes before the first kickoff of each gameweek.",
			Keywords: []string{"deadline", "transfer deadline", "when is the deadline"},
		},
		{
			ID:       "chips-wildcard",
			Topic:    "chips",
			Question: "What is a wildcard?",
			Text:     "The wildcard lets you rebuild your whole squad in one gameweek with no points cost. You get two per season, one per half.",
			Keywords: []string{"wildcard", "rebuild squad"},
		},
		{
			ID:       "chips-triple-captain",
			Topic:    "chips",
			Question: "How does triple captain work?",
			Text:     "Triple captain multiplies your captain's score by 3 instead of 2 for one gameweek. Best saved for a double gameweek.",
			Keywords: []string{"triple captain", "tc"},
		},
		{
			ID:       "chips-bench-boost",
			Topic:    "chips",
			Question: "How does bench boost work?",
			Text:     "Bench boost counts the points of all 15 squad players, bench included, for one gameweek.",
			Keywords: []string{"bench boost", "bb", "bench"},
		},
		{
			ID:       "chips-free-hit",
			Topic:    "chips",
			Question: "How does free hit work?",
			Text:     "Free hit lets you field an entirely different squad for a single gameweek; your squad reverts afterwards.",
			Keywords: []string{"free hit", "fh"},
		},
		{
			ID:       "captaincy",
			Topic:    "scoring",
			Question: "How does captaincy work?",
			Text:     "Your captain scores double points. If the captain does not play, the vice-captain is doubled instead.",
			Keywords: []string{"captain", "captaincy", "vice captain", "double points"},
		},
		{
			ID:       "strategy-differentials",
			Topic:    "strategy",
			Question: "What is a differential?",
			Text:     "A differential is a low-owned player (under 15% ownership) who can move you up ranks when they score because few rivals own them.",
			Keywords: []string{"differential", "differentials", "low owned", "low ownership"},
		},
		{
			ID:       "strategy-template",
			Topic:    "strategy",
			Question: "What is the template?",
			Text:     "The template is the set of very highly owned players (over 40% ownership) most squads carry; skipping them is a risk against the field.",
			Keywords: []string{"template", "highly owned", "essential players"},
		},
		{
			ID:       "strategy-value",
			Topic:    "strategy",
			Question: "What are value picks?",
			Text:     "Value picks are cheap players (under £6.0m) delivering strong points per million, freeing budget for premiums elsewhere.",
			Keywords: []string{"value", "value picks", "budget picks", "enablers", "points per million", "ppm"},
		},
		{
			ID:       "strategy-gameweeks",
			Topic:    "strategy",
			Question: "What are double and blank gameweeks?",
			Text:     "In a double gameweek some clubs play twice, doubling their players' scoring chances; in a blank gameweek they do not play at all. Chips are usually planned around them.",
			Keywords: []string{"double gameweek", "blank gameweek", "dgw", "bgw"},
		},
		{
			ID:       "prices",
			Topic:    "transfers",
			Question: "How do price changes work?",
			Text:     "Player prices rise and fall with transfer activity, usually by £0.1m steps overnight. You bank half of any profit when selling.",
			Keywords: []string{"price", "prices", "price change", "price rise", "price fall", "selling price"},
		},
	}
}
