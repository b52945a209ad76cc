package domain

import "strconv"

const (
	PicksPerTeam = 5
	TotalPicks   = 2 * PicksPerTeam
	MaxBanSlots  = 4
)

// TeamID selects one of the two drafting teams
type TeamID int

const (
	Team1 TeamID = 1
	Team2 TeamID = 2
)

// IsValid checks if a team id is 1 or 2
func (t TeamID) IsValid() bool {
	return t == Team1 || t == Team2
}

// Other returns the opposing team
func (t TeamID) Other() TeamID {
	if t == Team1 {
		return Team2
	}
	return Team1
}

func (t TeamID) String() string {
	return "team" + strconv.Itoa(int(t))
}

// Format is the tournament ruleset. It only changes the ban capacity.
type Format string

const (
	FormatRanking Format = "ranking"
	FormatGlobal  Format = "global"
)

// IsValid checks if a format is known
func (f Format) IsValid() bool {
	return f == FormatRanking || f == FormatGlobal
}

// MaxBans returns how many ban slots per team the format allows
func (f Format) MaxBans() int {
	if f == FormatGlobal {
		return 4
	}
	return 3
}

// ParseFormat resolves a format name
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !f.IsValid() {
		return "", ErrInvalidFormat
	}
	return f, nil
}

// DraftPhase is derived from the pick count, never stored
type DraftPhase string

const (
	DraftPhaseBan      DraftPhase = "ban"
	DraftPhasePick     DraftPhase = "pick"
	DraftPhaseComplete DraftPhase = "complete"
)

// TeamDraft holds one team's ban and pick slots. Empty strings are empty slots.
type TeamDraft struct {
	Bans  [MaxBanSlots]string  `json:"bans"`
	Picks [PicksPerTeam]string `json:"picks"`
}

// PickCount returns the number of filled pick slots
func (t *TeamDraft) PickCount() int {
	n := 0
	for _, p := range t.Picks {
		if p != "" {
			n++
		}
	}
	return n
}

// ActiveBans returns the ban slots the format can address
func (t *TeamDraft) ActiveBans(f Format) []string {
	return t.Bans[:f.MaxBans()]
}

// FilledPicks returns the non-empty picks in slot order
func (t *TeamDraft) FilledPicks() []string {
	out := make([]string, 0, PicksPerTeam)
	for _, p := range t.Picks {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DraftState is the live session object
type DraftState struct {
	Team1                 TeamDraft `json:"team1"`
	Team2                 TeamDraft `json:"team2"`
	SelectedTeam          TeamID    `json:"selectedTeam"`
	CurrentPositionFilter RoleTag   `json:"currentPositionFilter"`
	Format                Format    `json:"format"`
}

// NewDraftState returns a zeroed draft in the given format
func NewDraftState(format Format) DraftState {
	if !format.IsValid() {
		format = FormatRanking
	}
	return DraftState{
		SelectedTeam:          Team1,
		CurrentPositionFilter: RoleSlayer,
		Format:                format,
	}
}

// Team returns the team's slots
func (s *DraftState) Team(id TeamID) *TeamDraft {
	if id == Team2 {
		return &s.Team2
	}
	return &s.Team1
}

// TotalPicks returns the number of filled pick slots across both teams
func (s *DraftState) TotalPicks() int {
	return s.Team1.PickCount() + s.Team2.PickCount()
}

// Phase derives the nominal phase from the pick count
func (s *DraftState) Phase() DraftPhase {
	switch n := s.TotalPicks(); {
	case n >= TotalPicks:
		return DraftPhaseComplete
	case n > 0:
		return DraftPhasePick
	default:
		return DraftPhaseBan
	}
}

// PickPhase is one run of consecutive picks by the same team
type PickPhase struct {
	Team  TeamID
	Count int
}

// PickPhases is the fixed pick order. Bans are not part of it.
var PickPhases = []PickPhase{
	{Team1, 1},
	{Team2, 2},
	{Team1, 2},
	{Team2, 2},
	{Team1, 2},
	{Team2, 1},
}
