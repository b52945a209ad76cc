package draft

import "github.com/dom/hero-draft-assistant/internal/domain"

// PickTurn is the advisory "who picks next" answer
type PickTurn struct {
	Team          domain.TeamID  `json:"team"`
	PositionIndex int            `json:"positionIndex"` // index into the team's own picks, 0..4
	Role          domain.RoleTag `json:"role"`
}

// TurnFor walks the pick phases against the number of filled pick slots.
// It returns false once all ten picks are in.
func TurnFor(s *domain.DraftState) (PickTurn, bool) {
	total := s.TotalPicks()
	if total >= domain.TotalPicks {
		return PickTurn{}, false
	}

	team := domain.Team1
	seen := 0
	for _, phase := range domain.PickPhases {
		seen += phase.Count
		if total < seen {
			team = phase.Team
			break
		}
	}

	// picks placed out of order can leave the owning team already full
	idx := s.Team(team).PickCount()
	if idx >= domain.PicksPerTeam {
		idx = domain.PicksPerTeam - 1
	}

	return PickTurn{
		Team:          team,
		PositionIndex: idx,
		Role:          domain.RolePickOrder[idx],
	}, true
}
