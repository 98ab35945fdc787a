package snapshot

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one immutable generation of the dataset. All lookups the
// engine performs during a request run against a single Snapshot, so a
// mid-request refresh can never produce a mixed view.
type Snapshot struct {
	Players  []Player
	Teams    []Team
	Fixtures []Fixture

	// Generation identifies this build of the dataset; cache keys and log
	// lines carry it.
	Generation string
	FetchedAt  time.Time

	playersByID map[int]*Player
	teamsByID   map[int]*Team
	byTeam      map[int][]*Player
}

// New builds a Snapshot from raw slices, indexing by id and validating
// referential integrity: every player's team id must resolve to a team in
// the same snapshot.
func New(players []Player, teams []Team, fixtures []Fixture) (*Snapshot, error) {
	s := &Snapshot{
		Players:     players,
		Teams:       teams,
		Fixtures:    fixtures,
		Generation:  uuid.New().String(),
		FetchedAt:   time.Now().UTC(),
		playersByID: make(map[int]*Player, len(players)),
		teamsByID:   make(map[int]*Team, len(teams)),
		byTeam:      make(map[int][]*Player),
	}

	for i := range teams {
		t := &teams[i]
		if _, dup := s.teamsByID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate team id %d", t.ID)
		}
		s.teamsByID[t.ID] = t
	}

	for i := range players {
		p := &players[i]
		if _, dup := s.playersByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate player id %d", p.ID)
		}
		if _, ok := s.teamsByID[p.TeamID]; !ok {
			return nil, fmt.Errorf("player %d (%s): unknown team id %d", p.ID, p.DisplayName, p.TeamID)
		}
		if !p.Position.Valid() {
			return nil, fmt.Errorf("player %d (%s): invalid position %d", p.ID, p.DisplayName, int(p.Position))
		}
		s.playersByID[p.ID] = p
		s.byTeam[p.TeamID] = append(s.byTeam[p.TeamID], p)
	}

	for i := range fixtures {
		f := &fixtures[i]
		if _, ok := s.teamsByID[f.HomeTeamID]; !ok {
			return nil, fmt.Errorf("fixture %d: unknown home team id %d", f.ID, f.HomeTeamID)
		}
		if _, ok := s.teamsByID[f.AwayTeamID]; !ok {
			return nil, fmt.Errorf("fixture %d: unknown away team id %d", f.ID, f.AwayTeamID)
		}
	}

	return s, nil
}

// PlayerByID returns the player with the given id, or nil.
func (s *Snapshot) PlayerByID(id int) *Player {
	return s.playersByID[id]
}

// TeamByID returns the team with the given id, or nil.
func (s *Snapshot) TeamByID(id int) *Team {
	return s.teamsByID[id]
}

// TeamName returns the canonical name for a team id, or "" if unknown.
func (s *Snapshot) TeamName(id int) string {
	if t := s.teamsByID[id]; t != nil {
		return t.Name
	}
	return ""
}

// PlayersByTeam returns the players of one team in dataset order.
func (s *Snapshot) PlayersByTeam(teamID int) []*Player {
	return s.byTeam[teamID]
}

// UpcomingFixtures returns the unfinished fixtures for a team ordered by
// gameweek then kickoff, bounded to limit (0 means no bound).
func (s *Snapshot) UpcomingFixtures(teamID int, limit int) []Fixture {
	var out []Fixture
	for _, f := range s.Fixtures {
		if f.Finished {
			continue
		}
		if f.HomeTeamID != teamID && f.AwayTeamID != teamID {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gameweek != out[j].Gameweek {
			return out[i].Gameweek < out[j].Gameweek
		}
		return out[i].KickoffAt.Before(out[j].KickoffAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FixturesForGameweek returns a team's fixtures in the given gameweek.
// Double gameweeks return more than one.
func (s *Snapshot) FixturesForGameweek(teamID, gameweek int) []Fixture {
	var out []Fixture
	for _, f := range s.Fixtures {
		if f.Gameweek != gameweek {
			continue
		}
		if f.HomeTeamID != teamID && f.AwayTeamID != teamID {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].KickoffAt.Before(out[j].KickoffAt)
	})
	return out
}
