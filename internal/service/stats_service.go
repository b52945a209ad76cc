package service

import (
	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/stats"
)

// MatchupResult is heroA's win rate when facing heroB
type MatchupResult struct {
	HeroA   string  `json:"heroA"`
	HeroB   string  `json:"heroB"`
	WinRate float64 `json:"winRate"`
}

// StatsSummary describes the data behind the statistics
type StatsSummary struct {
	Matches int `json:"matches"`
	Skipped int `json:"skipped"`
}

// StatsService answers read-only queries for arbitrary rosters
type StatsService struct {
	stats *stats.Store
}

func NewStatsService(st *stats.Store) *StatsService {
	return &StatsService{stats: st}
}

func (s *StatsService) HeroStats() []domain.HeroStat {
	return s.stats.AllStats()
}

func (s *StatsService) HeroStat(name string) (domain.HeroStat, error) {
	st, ok := s.stats.HeroStat(name)
	if !ok {
		return domain.HeroStat{}, domain.ErrHeroNotFound
	}
	return st, nil
}

func (s *StatsService) Summary() StatsSummary {
	return StatsSummary{
		Matches: s.stats.MatchCount(),
		Skipped: s.stats.Skipped(),
	}
}

// RoleRecommendations ranks a role's heroes, against opponents when given
func (s *StatsService) RoleRecommendations(role string, against []string) ([]domain.Recommendation, error) {
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return s.stats.RecommendationsAgainst(against, r), nil
}

func (s *StatsService) Matchup(heroA, heroB string) (MatchupResult, error) {
	if heroA == "" || heroB == "" {
		return MatchupResult{}, domain.ErrInvalidHero
	}
	return MatchupResult{
		HeroA:   heroA,
		HeroB:   heroB,
		WinRate: s.stats.PairwiseMatchupWinRate(heroA, heroB),
	}, nil
}

func (s *StatsService) CompositeWinRate(team1, team2 []string) WinRateEstimate {
	rate := s.stats.CompositeWinRate(team1, team2)
	return WinRateEstimate{Team1: rate, Team2: 100 - rate}
}
