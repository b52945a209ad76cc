package domain

import (
	"slices"

	"github.com/google/uuid"
)

// MatchRecord is one historical match from the match log
type MatchRecord struct {
	ID         uuid.UUID `json:"id"`
	Date       string    `json:"date"`
	Tournament string    `json:"tournament"`
	Team1Name  string    `json:"team1"`
	Team2Name  string    `json:"team2"`
	Picks1     []string  `json:"picks1"` // lineup order, at most 5
	Picks2     []string  `json:"picks2"`
	Bans1      []string  `json:"bans1"`
	Bans2      []string  `json:"bans2"`
	Winner     string    `json:"winner"`
}

// Validate checks the fields every aggregate depends on. A record with an
// unknown winner is still valid; see WinnerKnown.
func (m *MatchRecord) Validate() error {
	if m.Team1Name == "" || m.Team2Name == "" || m.Team1Name == m.Team2Name {
		return ErrMalformedRecord
	}
	if len(m.Picks1) > PicksPerTeam || len(m.Picks2) > PicksPerTeam {
		return ErrMalformedRecord
	}
	return nil
}

// WinnerKnown reports whether the winner names one of the two teams
func (m *MatchRecord) WinnerKnown() bool {
	return m.Winner != "" && (m.Winner == m.Team1Name || m.Winner == m.Team2Name)
}

// Team1Won is only meaningful when WinnerKnown is true
func (m *MatchRecord) Team1Won() bool {
	return m.Winner == m.Team1Name
}

// Side returns 1 or 2 for the roster a hero was picked on, or 0
func (m *MatchRecord) Side(hero string) TeamID {
	switch {
	case slices.Contains(m.Picks1, hero):
		return Team1
	case slices.Contains(m.Picks2, hero):
		return Team2
	}
	return 0
}

// BannedHeroes returns bans1 ∪ bans2 without duplicates
func (m *MatchRecord) BannedHeroes() []string {
	seen := make(map[string]bool, len(m.Bans1)+len(m.Bans2))
	var out []string
	for _, list := range [][]string{m.Bans1, m.Bans2} {
		for _, name := range list {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// ReferencesHero reports whether the hero was picked or banned in this match
func (m *MatchRecord) ReferencesHero(hero string) bool {
	return m.Side(hero) != 0 || slices.Contains(m.Bans1, hero) || slices.Contains(m.Bans2, hero)
}
