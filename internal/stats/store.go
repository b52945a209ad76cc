// Package stats turns the hero catalog, the role table and the match log
// into aggregate hero statistics and ranked recommendations.
//
// Every query degrades to a neutral value instead of failing when data is
// missing: unknown matchups score 50, heroes without games have a win rate
// of 0 and never appear in role recommendations, and an empty draft has a
// composite win rate of 50.
package stats

import (
	"math"
	"sort"
	"sync"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"go.uber.org/zap"
)

const (
	// DefaultLimit is the number of candidates a recommendation query returns
	DefaultLimit = 5

	// NeutralMatchup is the matchup score for a pairing never seen in the log
	NeutralMatchup = 50.0

	// NeutralWinRate is the composite estimate when neither side has data
	NeutralWinRate = 50.0
)

// Store holds the ingested data and the statistics derived from it.
// Ingest swaps everything at once, so readers never see a partial recompute.
type Store struct {
	mu         sync.RWMutex
	log        *zap.Logger
	limit      int
	heroes     map[string]domain.Hero
	roles      domain.RoleTable
	matches    []domain.MatchRecord
	stats      map[string]*domain.HeroStat
	matchCount int
	skipped    int
}

// NewStore creates an empty store. A non-positive limit selects DefaultLimit.
func NewStore(log *zap.Logger, limit int) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		log:    log.With(zap.String("component", "stats")),
		limit:  limit,
		heroes: map[string]domain.Hero{},
		roles:  domain.RoleTable{},
		stats:  map[string]*domain.HeroStat{},
	}
}

// Ingest replaces the catalog, role table and match log and recomputes all
// statistics. Malformed records are skipped; it never fails.
func (s *Store) Ingest(catalog []domain.Hero, roles domain.RoleTable, matches []domain.MatchRecord) {
	s.IngestLog(catalog, roles, matches, 0)
}

// IngestLog is Ingest for a match log that already lost undecodable
// entries while being read. They are counted in Skipped.
func (s *Store) IngestLog(catalog []domain.Hero, roles domain.RoleTable, matches []domain.MatchRecord, undecodable int) {
	heroes := make(map[string]domain.Hero, len(catalog))
	for _, h := range catalog {
		if h.Name == "" {
			continue
		}
		heroes[h.Name] = h
	}

	valid := make([]domain.MatchRecord, 0, len(matches))
	skipped := undecodable
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			skipped++
			s.log.Debug("skipping match record",
				zap.Int("index", i),
				zap.String("matchId", matches[i].ID.String()),
				zap.Error(err))
			continue
		}
		valid = append(valid, matches[i])
	}

	computed := recompute(heroes, valid)

	if roles == nil {
		roles = domain.RoleTable{}
	}

	s.mu.Lock()
	s.heroes = heroes
	s.roles = roles.Clone()
	s.matches = valid
	s.stats = computed
	s.matchCount = len(valid)
	s.skipped = skipped
	s.mu.Unlock()

	s.log.Info("statistics recomputed",
		zap.Int("heroes", len(heroes)),
		zap.Int("matches", len(valid)),
		zap.Int("skipped", skipped))
}

// recompute tallies every catalog hero from scratch
func recompute(heroes map[string]domain.Hero, matches []domain.MatchRecord) map[string]*domain.HeroStat {
	out := make(map[string]*domain.HeroStat, len(heroes))
	for name := range heroes {
		out[name] = &domain.HeroStat{
			HeroName:       name,
			PositionCounts: map[domain.RoleTag]int{},
		}
	}

	tally := func(picks []string, won, known bool) {
		for i, name := range picks {
			st, ok := out[name]
			if !ok {
				continue
			}
			st.TotalGames++
			if i < len(domain.RolePickOrder) {
				st.PositionCounts[domain.RolePickOrder[i]]++
			}
			if !known {
				continue
			}
			if won {
				st.Wins++
			} else {
				st.Losses++
			}
		}
	}

	for i := range matches {
		m := &matches[i]
		known := m.WinnerKnown()
		team1Won := m.Team1Won()
		tally(m.Picks1, team1Won, known)
		tally(m.Picks2, !team1Won, known)

		for _, name := range m.BannedHeroes() {
			if st, ok := out[name]; ok {
				st.Bans++
			}
		}
	}

	total := float64(len(matches))
	for _, st := range out {
		if st.TotalGames > 0 {
			st.WinRate = float64(st.Wins) / float64(st.TotalGames) * 100
		}
		if total > 0 {
			st.PickRate = float64(st.TotalGames) / total * 100
			st.BanRate = float64(st.Bans) / total * 100
		}
	}
	return out
}

// HeroStat returns a copy of one hero's statistics
func (s *Store) HeroStat(name string) (domain.HeroStat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stats[name]
	if !ok {
		return domain.HeroStat{}, false
	}
	return copyStat(st), true
}

// AllStats returns every tracked hero ordered by win rate, then name
func (s *Store) AllStats() []domain.HeroStat {
	s.mu.RLock()
	out := make([]domain.HeroStat, 0, len(s.stats))
	for _, st := range s.stats {
		out = append(out, copyStat(st))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate != out[j].WinRate {
			return out[i].WinRate > out[j].WinRate
		}
		return out[i].HeroName < out[j].HeroName
	})
	return out
}

// MatchCount returns the number of records used for the statistics
func (s *Store) MatchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matchCount
}

// Skipped returns the number of malformed records dropped by the last Ingest
func (s *Store) Skipped() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skipped
}

// Hero returns the catalog entry for a name
func (s *Store) Hero(name string) (domain.Hero, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.heroes[name]
	return h, ok
}

// RolesFor returns the roles the hero is eligible for
func (s *Store) RolesFor(name string) []domain.RoleTag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roles.RolesFor(name)
}

func copyStat(st *domain.HeroStat) domain.HeroStat {
	c := *st
	c.PositionCounts = make(map[domain.RoleTag]int, len(st.PositionCounts))
	for k, v := range st.PositionCounts {
		c.PositionCounts[k] = v
	}
	return c
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
