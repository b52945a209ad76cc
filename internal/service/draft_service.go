package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/draft"
	"github.com/dom/hero-draft-assistant/internal/repository"
	"github.com/dom/hero-draft-assistant/internal/stats"
	"go.uber.org/zap"
)

// DraftRecommendations is the recommendation panel for the selected team
type DraftRecommendations struct {
	Team            domain.TeamID           `json:"team"`
	Role            domain.RoleTag          `json:"role"`
	Against         []string                `json:"against"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// WinRateEstimate splits the composite estimate between the two teams
type WinRateEstimate struct {
	Team1 float64 `json:"team1"`
	Team2 float64 `json:"team2"`
}

// TurnInfo is the advisory turn, with Complete set once all picks are in
type TurnInfo struct {
	Complete bool              `json:"complete"`
	Phase    domain.DraftPhase `json:"phase"`
	Turn     *draft.PickTurn   `json:"turn,omitempty"`
}

// DraftView is the session together with everything derived from it, all
// read at the same instant
type DraftView struct {
	Draft           domain.DraftState
	Turn            TurnInfo
	WinRate         WinRateEstimate
	Recommendations DraftRecommendations
	DefaultFormat   domain.Format
}

// DraftService serializes access to the single draft session. Each
// mutation is saved before the next one is accepted; if the save fails the
// session goes back to where it was.
type DraftService struct {
	catalog  *repository.Catalog
	stats    *stats.Store
	log      *zap.Logger
	fallback domain.Format

	mu            sync.Mutex
	machine       *draft.Machine
	defaultFormat domain.Format
	subscribers   []func(domain.DraftState)
}

func NewDraftService(catalog *repository.Catalog, st *stats.Store, defaultFormat domain.Format, log *zap.Logger) *DraftService {
	if !defaultFormat.IsValid() {
		defaultFormat = domain.FormatRanking
	}
	return &DraftService{
		catalog:       catalog,
		stats:         st,
		log:           log.With(zap.String("component", "draft")),
		fallback:      defaultFormat,
		machine:       draft.New(defaultFormat),
		defaultFormat: defaultFormat,
	}
}

// Subscribe registers fn to receive the state after every accepted change.
// fn runs outside the lock, so concurrent changes may be delivered out of
// order; listeners that need the latest state should read View.
func (s *DraftService) Subscribe(fn func(domain.DraftState)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Restore loads the saved default format and session
func (s *DraftService) Restore(ctx context.Context) error {
	format, err := s.catalog.DefaultFormat(ctx, s.fallback)
	if err != nil {
		return err
	}
	state, err := s.catalog.DraftState(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.defaultFormat = format
	if state != nil {
		s.machine = draft.Restore(*state)
		if s.machine.State() != *state {
			s.log.Warn("saved draft was invalid and has been repaired")
		}
	} else {
		s.machine = draft.New(format)
	}
	snapshot := s.machine.State()
	subscribers := s.subscribers
	s.mu.Unlock()

	s.log.Info("draft restored",
		zap.Bool("saved", state != nil),
		zap.String("format", string(snapshot.Format)),
		zap.Int("picks", snapshot.TotalPicks()))
	publish(subscribers, snapshot)
	return nil
}

// Snapshot returns a copy of the current state
func (s *DraftService) Snapshot() domain.DraftState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

func (s *DraftService) AddBan(ctx context.Context, team domain.TeamID, hero string, slot int) (domain.DraftState, error) {
	return s.mutate(ctx, "AddBan", func(m *draft.Machine) error {
		return m.AddBan(team, hero, slot)
	})
}

func (s *DraftService) AddPick(ctx context.Context, team domain.TeamID, hero string, slot int) (domain.DraftState, error) {
	return s.mutate(ctx, "AddPick", func(m *draft.Machine) error {
		return m.AddPick(team, hero, slot)
	})
}

func (s *DraftService) SetFormat(ctx context.Context, format domain.Format) (domain.DraftState, error) {
	return s.mutate(ctx, "SetFormat", func(m *draft.Machine) error {
		return m.SetFormat(format)
	})
}

func (s *DraftService) SetSelectedTeam(ctx context.Context, team domain.TeamID) (domain.DraftState, error) {
	return s.mutate(ctx, "SetSelectedTeam", func(m *draft.Machine) error {
		return m.SetSelectedTeam(team)
	})
}

func (s *DraftService) SetPosition(ctx context.Context, role domain.RoleTag) (domain.DraftState, error) {
	return s.mutate(ctx, "SetPosition", func(m *draft.Machine) error {
		return m.SetPosition(role)
	})
}

// Reset starts a new draft in the configured default format
func (s *DraftService) Reset(ctx context.Context) (domain.DraftState, error) {
	return s.mutate(ctx, "Reset", func(m *draft.Machine) error {
		m.Reset(s.defaultFormat)
		return nil
	})
}

func (s *DraftService) mutate(ctx context.Context, op string, fn func(m *draft.Machine) error) (domain.DraftState, error) {
	s.mu.Lock()

	prev := s.machine.State()
	if err := fn(s.machine); err != nil {
		s.mu.Unlock()
		s.log.Debug("draft change rejected", zap.String("op", op), zap.Error(err))
		return prev, err
	}

	next := s.machine.State()
	if next == prev {
		s.mu.Unlock()
		return next, nil
	}

	if err := s.catalog.SaveDraftState(ctx, next); err != nil {
		s.machine = draft.Restore(prev)
		s.mu.Unlock()
		s.log.Error("failed to save draft state", zap.String("op", op), zap.Error(err))
		return prev, fmt.Errorf("save draft state: %w", err)
	}
	subscribers := s.subscribers
	s.mu.Unlock()

	publish(subscribers, next)
	return next, nil
}

// DefaultFormat returns the format Reset uses
func (s *DraftService) DefaultFormat() domain.Format {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultFormat
}

// SetDefaultFormat saves the format used by later resets. The running
// draft keeps its format.
func (s *DraftService) SetDefaultFormat(ctx context.Context, format domain.Format) error {
	if !format.IsValid() {
		return domain.ErrInvalidFormat
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.SaveDefaultFormat(ctx, format); err != nil {
		s.log.Error("failed to save default format", zap.Error(err))
		return fmt.Errorf("save default format: %w", err)
	}
	s.defaultFormat = format
	return nil
}

// Recommendations ranks heroes for the selected team's current position
// against the other team's picks. Heroes already in a slot are left out.
func (s *DraftService) Recommendations() DraftRecommendations {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommendationsLocked()
}

// WinRate estimates each team's chance from the current picks
func (s *DraftService) WinRate() WinRateEstimate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winRateLocked()
}

// NextPick suggests a hero for the team whose turn it is, or nil
func (s *DraftService) NextPick() *domain.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.NextPickSuggestion(s.stats)
}

func (s *DraftService) CurrentTurn() TurnInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turnLocked()
}

// View returns the state and its derived panels under a single lock, so
// they always describe the same draft.
func (s *DraftService) View() DraftView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DraftView{
		Draft:           s.machine.State(),
		Turn:            s.turnLocked(),
		WinRate:         s.winRateLocked(),
		Recommendations: s.recommendationsLocked(),
		DefaultFormat:   s.defaultFormat,
	}
}

func (s *DraftService) recommendationsLocked() DraftRecommendations {
	state := s.machine.State()
	against := state.Team(state.SelectedTeam.Other()).FilledPicks()
	return DraftRecommendations{
		Team:            state.SelectedTeam,
		Role:            state.CurrentPositionFilter,
		Against:         against,
		Recommendations: s.stats.AvailableRecommendations(against, state.CurrentPositionFilter, s.machine.Unavailable()),
	}
}

func (s *DraftService) winRateLocked() WinRateEstimate {
	state := s.machine.State()
	team1 := s.stats.CompositeWinRate(state.Team1.FilledPicks(), state.Team2.FilledPicks())
	return WinRateEstimate{Team1: team1, Team2: 100 - team1}
}

func (s *DraftService) turnLocked() TurnInfo {
	info := TurnInfo{Phase: s.machine.Phase()}
	turn, ok := s.machine.CurrentPickTurn()
	if !ok {
		info.Complete = true
		return info
	}
	info.Turn = &turn
	return info
}

func publish(subscribers []func(domain.DraftState), state domain.DraftState) {
	for _, fn := range subscribers {
		fn(state)
	}
}
