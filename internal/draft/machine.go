// Package draft owns the live ban/pick session.
//
// A Machine enforces slot ranges and hero uniqueness. Turn order is only
// reported by CurrentPickTurn; picks may be written in any order, and bans
// may be placed at any time before the draft completes. Once all ten picks
// are in, only Reset changes the state.
package draft

import (
	"github.com/dom/hero-draft-assistant/internal/domain"
)

// Recommender supplies role recommendations for NextPickSuggestion.
// *stats.Store satisfies it.
type Recommender interface {
	RecommendationsForRole(role domain.RoleTag) []domain.Recommendation
}

// Machine holds one draft session. It is not safe for concurrent use;
// callers serialize access.
type Machine struct {
	state domain.DraftState
}

// New creates a machine with an empty draft in the given format
func New(format domain.Format) *Machine {
	return &Machine{state: domain.NewDraftState(format)}
}

// Restore creates a machine from a previously saved state. Unknown
// perspective values fall back to their defaults, and a hero found in more
// than one slot keeps only its first: picks before bans, team 1 before
// team 2, lower slots first.
func Restore(state domain.DraftState) *Machine {
	defaults := domain.NewDraftState(state.Format)
	state.Format = defaults.Format
	if !state.SelectedTeam.IsValid() {
		state.SelectedTeam = defaults.SelectedTeam
	}
	if !state.CurrentPositionFilter.IsValid() {
		state.CurrentPositionFilter = defaults.CurrentPositionFilter
	}

	seen := make(map[string]bool)
	dedupe := func(slots []string) {
		for i, name := range slots {
			if name == "" {
				continue
			}
			if seen[name] {
				slots[i] = ""
				continue
			}
			seen[name] = true
		}
	}
	dedupe(state.Team1.Picks[:])
	dedupe(state.Team2.Picks[:])
	dedupe(state.Team1.Bans[:])
	dedupe(state.Team2.Bans[:])

	return &Machine{state: state}
}

// State returns a snapshot. Slot arrays are values, so the copy shares nothing.
func (m *Machine) State() domain.DraftState {
	return m.state
}

// AddBan writes hero into one of the team's ban slots
func (m *Machine) AddBan(team domain.TeamID, hero string, slot int) error {
	if m.Complete() {
		return domain.ErrDraftComplete
	}
	if err := validate(team, hero); err != nil {
		return err
	}
	if slot < 0 || slot >= m.state.Format.MaxBans() {
		return domain.ErrInvalidSlot
	}

	bans := &m.state.Team(team).Bans
	if bans[slot] == hero {
		return nil
	}
	if m.taken(hero) {
		return domain.ErrHeroUnavailable
	}

	bans[slot] = hero
	return nil
}

// AddPick writes hero into one of the team's pick slots. It does not check
// whose turn it is.
func (m *Machine) AddPick(team domain.TeamID, hero string, slot int) error {
	if m.Complete() {
		return domain.ErrDraftComplete
	}
	if err := validate(team, hero); err != nil {
		return err
	}
	if slot < 0 || slot >= domain.PicksPerTeam {
		return domain.ErrInvalidSlot
	}

	picks := &m.state.Team(team).Picks
	if picks[slot] == hero {
		return nil
	}
	if m.taken(hero) {
		return domain.ErrHeroUnavailable
	}

	picks[slot] = hero
	return nil
}

// SetFormat changes the ban capacity. Bans left in slots the new format
// cannot address stay stored but hidden; they reappear if the format is
// widened again.
func (m *Machine) SetFormat(format domain.Format) error {
	if !format.IsValid() {
		return domain.ErrInvalidFormat
	}
	if m.Complete() {
		return domain.ErrDraftComplete
	}
	m.state.Format = format
	return nil
}

// SetSelectedTeam changes whose perspective drives recommendations
func (m *Machine) SetSelectedTeam(team domain.TeamID) error {
	if !team.IsValid() {
		return domain.ErrInvalidTeam
	}
	if m.Complete() {
		return domain.ErrDraftComplete
	}
	m.state.SelectedTeam = team
	return nil
}

// SetPosition changes the role being browsed
func (m *Machine) SetPosition(role domain.RoleTag) error {
	if !role.IsValid() {
		return domain.ErrInvalidRole
	}
	if m.Complete() {
		return domain.ErrDraftComplete
	}
	m.state.CurrentPositionFilter = role
	return nil
}

// Reset discards the session and starts over in the given format
func (m *Machine) Reset(format domain.Format) {
	m.state = domain.NewDraftState(format)
}

// CurrentPickTurn reports the team and position expected to pick next
func (m *Machine) CurrentPickTurn() (PickTurn, bool) {
	return TurnFor(&m.state)
}

// NextPickSuggestion returns the best available hero for the current turn's
// role, or nil when the draft is complete or nothing is available.
func (m *Machine) NextPickSuggestion(rec Recommender) *domain.Recommendation {
	if rec == nil {
		return nil
	}
	turn, ok := m.CurrentPickTurn()
	if !ok {
		return nil
	}
	candidates := rec.RecommendationsForRole(turn.Role)
	for i := range candidates {
		if !m.taken(candidates[i].Name) {
			return &candidates[i]
		}
	}
	return nil
}

// Phase derives the nominal phase from the pick count
func (m *Machine) Phase() domain.DraftPhase {
	return m.state.Phase()
}

// Complete is true once all ten pick slots are filled
func (m *Machine) Complete() bool {
	return m.state.TotalPicks() >= domain.TotalPicks
}

// Unavailable returns every hero currently in a ban or pick slot, including
// bans hidden by a narrower format.
func (m *Machine) Unavailable() map[string]bool {
	out := make(map[string]bool, 2*(domain.MaxBanSlots+domain.PicksPerTeam))
	for _, t := range []*domain.TeamDraft{&m.state.Team1, &m.state.Team2} {
		for _, name := range t.Bans {
			if name != "" {
				out[name] = true
			}
		}
		for _, name := range t.Picks {
			if name != "" {
				out[name] = true
			}
		}
	}
	return out
}

// taken reports whether hero occupies any slot of either team
func (m *Machine) taken(hero string) bool {
	for _, t := range []*domain.TeamDraft{&m.state.Team1, &m.state.Team2} {
		for _, name := range t.Bans {
			if name == hero {
				return true
			}
		}
		for _, name := range t.Picks {
			if name == hero {
				return true
			}
		}
	}
	return false
}

func validate(team domain.TeamID, hero string) error {
	if !team.IsValid() {
		return domain.ErrInvalidTeam
	}
	if hero == "" {
		return domain.ErrInvalidHero
	}
	return nil
}
