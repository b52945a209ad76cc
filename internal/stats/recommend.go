package stats

import (
	"sort"

	"github.com/dom/hero-draft-assistant/internal/domain"
)

// RecommendationsForRole returns the role's best heroes by win rate. Heroes
// with no recorded games are never recommended.
func (s *Store) RecommendationsForRole(role domain.RoleTag) []domain.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.forRole(role, nil)
}

func (s *Store) forRole(role domain.RoleTag, skip map[string]bool) []domain.Recommendation {
	recs := []domain.Recommendation{}
	for _, name := range s.eligible(role) {
		if skip[name] {
			continue
		}
		st := s.stats[name]
		if st.TotalGames == 0 {
			continue
		}
		recs = append(recs, domain.Recommendation{
			Name:    name,
			WinRate: st.WinRate,
			Games:   st.TotalGames,
			Image:   s.heroes[name].Image,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].WinRate > recs[j].WinRate
	})
	if len(recs) > s.limit {
		recs = recs[:s.limit]
	}
	for i := range recs {
		recs[i].WinRate = round1(recs[i].WinRate)
	}
	return recs
}

// RecommendationsAgainst ranks the role's heroes by their average matchup
// win rate against the given opponents. With no opponents it falls back to
// RecommendationsForRole.
func (s *Store) RecommendationsAgainst(opponents []string, role domain.RoleTag) []domain.Recommendation {
	return s.AvailableRecommendations(opponents, role, nil)
}

// AvailableRecommendations is RecommendationsAgainst with the heroes in
// unavailable removed before the list is cut to size.
func (s *Store) AvailableRecommendations(opponents []string, role domain.RoleTag, unavailable map[string]bool) []domain.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opp := make([]string, 0, len(opponents))
	for _, name := range opponents {
		if name != "" {
			opp = append(opp, name)
		}
	}
	if len(opp) == 0 {
		return s.forRole(role, unavailable)
	}

	recs := []domain.Recommendation{}
	for _, name := range s.eligible(role) {
		if unavailable[name] || contains(opp, name) {
			continue
		}
		var sum float64
		for _, o := range opp {
			sum += s.matchup(name, o)
		}
		st := s.stats[name]
		recs = append(recs, domain.Recommendation{
			Name:         name,
			MatchupScore: sum / float64(len(opp)),
			WinRate:      st.WinRate,
			Games:        st.TotalGames,
			Image:        s.heroes[name].Image,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchupScore > recs[j].MatchupScore
	})
	if len(recs) > s.limit {
		recs = recs[:s.limit]
	}
	for i := range recs {
		recs[i].MatchupScore = round1(recs[i].MatchupScore)
		recs[i].WinRate = round1(recs[i].WinRate)
	}
	return recs
}

// PairwiseMatchupWinRate returns how often heroA's team won when heroA and
// heroB were on opposite rosters, as a percentage. Unseen pairings return 50.
func (s *Store) PairwiseMatchupWinRate(heroA, heroB string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matchup(heroA, heroB)
}

func (s *Store) matchup(a, b string) float64 {
	var games, wins int
	for i := range s.matches {
		m := &s.matches[i]
		if !m.WinnerKnown() {
			continue
		}
		sideA, sideB := m.Side(a), m.Side(b)
		if sideA == 0 || sideB == 0 || sideA == sideB {
			continue
		}
		games++
		if (sideA == domain.Team1) == m.Team1Won() {
			wins++
		}
	}
	if games == 0 {
		return NeutralMatchup
	}
	return float64(wins) / float64(games) * 100
}

// CompositeWinRate estimates team 1's chance of winning from the average
// individual win rate of each side's picks. Picks without games count as 0.
func (s *Store) CompositeWinRate(team1Picks, team2Picks []string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	avg1, n1 := s.averageWinRate(team1Picks)
	avg2, n2 := s.averageWinRate(team2Picks)
	if n1 == 0 && n2 == 0 {
		return NeutralWinRate
	}
	if avg1+avg2 == 0 {
		return NeutralWinRate
	}

	rate := avg1 / (avg1 + avg2) * 100
	switch {
	case rate < 0:
		return 0
	case rate > 100:
		return 100
	}
	return rate
}

func (s *Store) averageWinRate(picks []string) (float64, int) {
	var sum float64
	n := 0
	for _, name := range picks {
		if name == "" {
			continue
		}
		n++
		if st, ok := s.stats[name]; ok {
			sum += st.WinRate
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// eligible returns the tracked heroes on a role's allow-list, deduplicated
// and in allow-list order
func (s *Store) eligible(role domain.RoleTag) []string {
	names := s.roles[role]
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := s.stats[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
