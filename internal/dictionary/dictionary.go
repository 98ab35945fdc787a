package dictionary

import (
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/fplchat/query-engine/internal/snapshot"
)

// playerEntry is one player's precomputed normalized forms.
type playerEntry struct {
	player  *snapshot.Player
	display string   // normalized web name
	full    string   // normalized "first last"
	tokens  []string // words of the full name
	active  bool
}

// TeamMention is one team surface form found in a query.
type TeamMention struct {
	TeamID  int
	Surface string // the alias as it appeared, normalized
	Start   int    // byte offsets into the normalized query
	End     int
}

// Dictionary indexes one snapshot generation for entity matching. Build once
// per snapshot and share across requests; it is read-only after New.
type Dictionary struct {
	snap    *snapshot.Snapshot
	entries []playerEntry

	teamAutomaton *ahocorasick.Automaton
	teamByPattern []int // pattern id -> team id

	fuzzyThreshold float64
}

// New builds the dictionary for a snapshot. fuzzyThreshold is the
// char-overlap ratio below which fuzzy candidates are discarded.
func New(snap *snapshot.Snapshot, fuzzyThreshold float64) (*Dictionary, error) {
	if fuzzyThreshold <= 0 || fuzzyThreshold > 1 {
		return nil, fmt.Errorf("fuzzy threshold %v out of range", fuzzyThreshold)
	}

	d := &Dictionary{
		snap:           snap,
		entries:        make([]playerEntry, 0, len(snap.Players)),
		fuzzyThreshold: fuzzyThreshold,
	}

	for i := range snap.Players {
		p := &snap.Players[i]
		full := Normalize(p.FullName())
		d.entries = append(d.entries, playerEntry{
			player:  p,
			display: Normalize(p.DisplayName),
			full:    full,
			tokens:  Tokens(full),
			active:  p.Status == snapshot.Active,
		})
	}

	if err := d.buildTeamAutomaton(); err != nil {
		return nil, err
	}

	return d, nil
}

// Generation returns the generation of the snapshot this dictionary indexes.
func (d *Dictionary) Generation() string {
	return d.snap.Generation
}

// Snapshot returns the underlying snapshot.
func (d *Dictionary) Snapshot() *snapshot.Snapshot {
	return d.snap
}

func (d *Dictionary) buildTeamAutomaton() error {
	var patterns []string
	seen := make(map[string]bool)

	add := func(teamID int, surface string) {
		surface = Normalize(surface)
		if surface == "" || seen[surface] {
			return
		}
		seen[surface] = true
		patterns = append(patterns, surface)
		d.teamByPattern = append(d.teamByPattern, teamID)
	}

	for i := range d.snap.Teams {
		t := &d.snap.Teams[i]
		add(t.ID, t.Name)
		for _, alias := range t.Aliases {
			add(t.ID, alias)
		}
		for _, alias := range defaultTeamAliases[Normalize(t.Name)] {
			add(t.ID, alias)
		}
	}

	if len(patterns) == 0 {
		return nil
	}

	ac, err := ahocorasick.NewBuilder().
		AddStrings(patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return fmt.Errorf("build team alias automaton: %w", err)
	}
	d.teamAutomaton = ac
	return nil
}

// ScanTeams finds team mentions in a query. The query is normalized before
// scanning; matches must fall on word boundaries, and of overlapping matches
// only the longest survives.
func (d *Dictionary) ScanTeams(query string) []TeamMention {
	if d.teamAutomaton == nil {
		return nil
	}
	text := Normalize(query)
	if text == "" {
		return nil
	}

	var mentions []TeamMention
	for _, m := range d.teamAutomaton.FindAllOverlapping([]byte(text)) {
		if !wordBounded(text, m.Start, m.End) {
			continue
		}
		mentions = append(mentions, TeamMention{
			TeamID:  d.teamByPattern[m.PatternID],
			Surface: text[m.Start:m.End],
			Start:   m.Start,
			End:     m.End,
		})
	}
	return dropOverlaps(mentions)
}

// IsTeamAlias reports whether the candidate, as a whole, names a team.
func (d *Dictionary) IsTeamAlias(candidate string) bool {
	text := Normalize(candidate)
	for _, m := range d.ScanTeams(text) {
		if m.Start == 0 && m.End == len(text) {
			return true
		}
	}
	return false
}

func wordBounded(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}

// isWordByte treats letters, digits and non-ASCII bytes as word characters,
// so "arsenal's" still bounds "arsenal" but "velocity" never yields "city".
func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b >= 0x80
}

// dropOverlaps keeps the longest mention in each overlapping group,
// preferring the earlier one on ties.
func dropOverlaps(mentions []TeamMention) []TeamMention {
	var out []TeamMention
	for _, m := range mentions {
		overlapping := false
		for i, kept := range out {
			if m.Start < kept.End && kept.Start < m.End {
				overlapping = true
				if m.End-m.Start > kept.End-kept.Start {
					out[i] = m
				}
				break
			}
		}
		if !overlapping {
			out = append(out, m)
		}
	}
	return out
}
