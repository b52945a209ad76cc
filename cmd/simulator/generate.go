package main

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/dom/hero-draft-assistant/internal/domain"
)

var teamNames = []string{"Saigon Phantom", "Team Flash", "Buriram United", "Talon", "ONE Team", "Hong Kong Attitude"}

// heroNames lists every hero in the table once, in role order
func heroNames(roles domain.RoleTable) []string {
	var out []string
	for _, role := range domain.AllRoles {
		for _, name := range roles[role] {
			if !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}
	return out
}

// randomMatch drafts one hero per lane for each side in pick order, with
// three bans apiece, and no hero used twice.
func randomMatch(rng *rand.Rand, roles domain.RoleTable, n int) domain.MatchRecord {
	used := map[string]bool{}
	take := func(pool []string) string {
		free := make([]string, 0, len(pool))
		for _, name := range pool {
			if !used[name] {
				free = append(free, name)
			}
		}
		if len(free) == 0 {
			return ""
		}
		name := free[rng.IntN(len(free))]
		used[name] = true
		return name
	}

	lineup := func() []string {
		picks := make([]string, 0, domain.PicksPerTeam)
		for _, role := range domain.RolePickOrder {
			if name := take(roles[role]); name != "" {
				picks = append(picks, name)
			}
		}
		return picks
	}

	i := rng.IntN(len(teamNames))
	j := (i + 1 + rng.IntN(len(teamNames)-1)) % len(teamNames)
	match := domain.MatchRecord{
		Date:       fmt.Sprintf("2024-%02d-%02d", 1+n/28%12, 1+n%28),
		Tournament: "Simulated League",
		Team1Name:  teamNames[i],
		Team2Name:  teamNames[j],
		Picks1:     lineup(),
		Picks2:     lineup(),
	}

	all := heroNames(roles)
	for k := 0; k < 3; k++ {
		if name := take(all); name != "" {
			match.Bans1 = append(match.Bans1, name)
		}
		if name := take(all); name != "" {
			match.Bans2 = append(match.Bans2, name)
		}
	}

	match.Winner = match.Team1Name
	if rng.IntN(2) == 1 {
		match.Winner = match.Team2Name
	}
	return match
}

// firstFree returns the first name not already in a slot
func firstFree(names []string, state *domain.DraftState) string {
	for _, name := range names {
		if !inDraft(state, name) {
			return name
		}
	}
	return ""
}

func inDraft(state *domain.DraftState, name string) bool {
	for _, team := range []*domain.TeamDraft{&state.Team1, &state.Team2} {
		if slices.Contains(team.Bans[:], name) || slices.Contains(team.Picks[:], name) {
			return true
		}
	}
	return false
}
