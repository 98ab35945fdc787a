// Package snapshot holds the immutable in-memory dataset the query engine
// answers from: players, teams and fixtures for the current FPL season,
// refreshed as a whole and swapped atomically.
package snapshot

import (
	"fmt"
	"time"
)

// Position is an FPL element type.
type Position int

// Position values match the FPL element_type ids.
const (
	Keeper     Position = 1
	Defender   Position = 2
	Midfielder Position = 3
	Forward    Position = 4
)

// String returns the human-readable position name.
func (p Position) String() string {
	switch p {
	case Keeper:
		return "Goalkeeper"
	case Defender:
		return "Defender"
	case Midfielder:
		return "Midfielder"
	case Forward:
		return "Forward"
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// Valid reports whether p is one of the four FPL positions.
func (p Position) Valid() bool {
	return p >= Keeper && p <= Forward
}

// Availability is a player's selection status.
type Availability int

// Availability values, from the FPL status codes.
const (
	Active      Availability = iota // status "a"
	Injured                         // status "i"
	Unavailable                     // status "u"
	OnLoan                          // status "d" with loan news
	Doubtful                        // status "d"
)

// ParseAvailability maps an FPL status code to an Availability.
func ParseAvailability(code string) Availability {
	switch code {
	case "i":
		return Injured
	case "u":
		return Unavailable
	case "d":
		return Doubtful
	case "n":
		return OnLoan
	}
	return Active
}

// Reason returns the stock unavailability phrasing for the status.
// Active players have no reason.
func (a Availability) Reason() string {
	switch a {
	case Injured:
		return "injured and unavailable"
	case Unavailable:
		return "unavailable for selection in FPL"
	case OnLoan:
		return "on loan and unavailable"
	case Doubtful:
		return "a doubt for selection"
	}
	return ""
}

// String returns the availability name.
func (a Availability) String() string {
	switch a {
	case Active:
		return "active"
	case Injured:
		return "injured"
	case Unavailable:
		return "unavailable"
	case OnLoan:
		return "on_loan"
	case Doubtful:
		return "doubtful"
	}
	return fmt.Sprintf("Availability(%d)", int(a))
}

// Player is one FPL element. Fields are season-to-date aggregates; a Player
// is immutable once its Snapshot is built.
type Player struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"` // FPL web_name, e.g. "Haaland"
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	TeamID      int    `json:"team_id"`

	Position    Position `json:"position"`
	PriceTenths int      `json:"price_tenths"` // now_cost, tenths of £1.0m

	TotalPoints   int     `json:"total_points"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	Minutes       int     `json:"minutes"`
	ExpectedGoals float64 `json:"expected_goals"`
	Form          float64 `json:"form"`
	Ownership     float64 `json:"ownership"` // selected_by_percent

	Status     Availability `json:"status"`
	StatusNote string       `json:"status_note"` // FPL news text, may be empty
}

// FullName returns "First Last", falling back to the display name when the
// feed carries no split name.
func (p *Player) FullName() string {
	if p.FirstName == "" && p.LastName == "" {
		return p.DisplayName
	}
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Price returns the price in millions.
func (p *Player) Price() float64 {
	return float64(p.PriceTenths) / 10.0
}

// UnavailableReason combines the status phrasing with the feed's news text.
// Empty for active players.
func (p *Player) UnavailableReason() string {
	reason := p.Status.Reason()
	if reason == "" {
		return ""
	}
	if p.StatusNote != "" {
		return reason + " (" + p.StatusNote + ")"
	}
	return reason
}

// Team is one of the twenty clubs.
type Team struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`    // canonical, e.g. "Arsenal"
	Aliases []string `json:"aliases"` // nicknames and abbreviations
}

// Fixture is a scheduled or finished match.
type Fixture struct {
	ID         int       `json:"id"`
	Gameweek   int       `json:"gameweek"`
	HomeTeamID int       `json:"home_team_id"`
	AwayTeamID int       `json:"away_team_id"`
	KickoffAt  time.Time `json:"kickoff_at"`
	Finished   bool      `json:"finished"`
}
