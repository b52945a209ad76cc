package stats_test

import (
	"testing"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationsForRole_TopFiveByWinRate(t *testing.T) {
	store := newStore(t)
	roles := domain.RoleTable{
		domain.RoleMid: {"M1", "M2", "M3", "M4", "M5", "M6", "M7"},
	}
	heroes := testutil.Heroes("M1", "M2", "M3", "M4", "M5", "M6", "M7", "Opp")

	// Mn wins n-1 of 6 games, so the ranking is M7 > M6 > ... > M1
	var matches []domain.MatchRecord
	for i, name := range roles[domain.RoleMid] {
		for g := 0; g < 6; g++ {
			winner := "B"
			if g < i {
				winner = "A"
			}
			matches = append(matches, testutil.NewMatchBuilder().
				WithTeams("A", "B").
				WithPicks1(name).
				WithPicks2("Opp").
				WithWinner(winner).
				Build())
		}
	}
	store.Ingest(heroes, roles, matches)

	recs := store.RecommendationsForRole(domain.RoleMid)
	require.Len(t, recs, 5)

	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"M7", "M6", "M5", "M4", "M3"}, names)
	assert.Equal(t, 100.0, recs[0].WinRate)
	assert.Equal(t, 83.3, recs[1].WinRate, "win rate is rounded to one decimal")
	assert.Equal(t, 6, recs[0].Games)
	assert.Equal(t, "https://img.example.com/heroes/M7.png", recs[0].Image)
}

func TestRecommendationsForRole_UnknownRole(t *testing.T) {
	store := newStore(t)
	store.Ingest(testutil.Heroes("Tulen"), domain.DefaultRoleTable(), nil)

	recs := store.RecommendationsForRole(domain.RoleTag("Jungle"))
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestPairwiseMatchupWinRate(t *testing.T) {
	store := newStore(t)

	matches := []domain.MatchRecord{
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Tulen").WithPicks2("Zata").WithWinner("A").Build(),
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Zata").WithPicks2("Tulen").WithWinner("A").Build(),
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Zata").WithPicks2("Tulen").WithWinner("B").Build(),
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Tulen", "Airi").WithPicks2("Raz").WithWinner("B").Build(),
		// same roster, not a matchup
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Tulen", "Zata").WithWinner("B").Build(),
		// indeterminate winner, ignored
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Tulen").WithPicks2("Zata").WithWinner("").Build(),
	}
	store.Ingest(testutil.Heroes("Tulen", "Zata", "Airi", "Raz"), domain.DefaultRoleTable(), matches)

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "either ordering counts", a: "Tulen", b: "Zata", want: 200.0 / 3},
		{name: "symmetric complement", a: "Zata", b: "Tulen", want: 100.0 / 3},
		{name: "single loss", a: "Tulen", b: "Raz", want: 0},
		{name: "single win", a: "Raz", b: "Airi", want: 100},
		{name: "never faced", a: "Airi", b: "Zata", want: 50},
		{name: "unknown heroes", a: "Nobody", b: "Else", want: 50},
		{name: "teammates only", a: "Tulen", b: "Airi", want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, store.PairwiseMatchupWinRate(tt.a, tt.b), 0.0001)
		})
	}
}

func TestRecommendationsAgainst(t *testing.T) {
	store := newStore(t)
	roles := domain.RoleTable{domain.RoleMid: {"Tulen", "Liliana", "Zata"}}

	matches := []domain.MatchRecord{
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Liliana").WithPicks2("Airi").WithWinner("A").Build(),
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Tulen").WithPicks2("Airi").WithWinner("B").Build(),
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Tulen").WithPicks2("Raz").WithWinner("A").Build(),
	}
	store.Ingest(testutil.Heroes("Tulen", "Liliana", "Zata", "Airi", "Raz"), roles, matches)

	t.Run("ranks by average matchup", func(t *testing.T) {
		recs := store.RecommendationsAgainst([]string{"Airi", "Raz"}, domain.RoleMid)
		require.Len(t, recs, 3)

		// Liliana: (100 + 50) / 2, Tulen: (0 + 100) / 2, Zata: (50 + 50) / 2
		assert.Equal(t, "Liliana", recs[0].Name)
		assert.Equal(t, 75.0, recs[0].MatchupScore)
		assert.Equal(t, 100.0, recs[0].WinRate)
		assert.Equal(t, 50.0, recs[1].MatchupScore)
		assert.Equal(t, 50.0, recs[2].MatchupScore)
	})

	t.Run("cold start heroes are scored neutrally", func(t *testing.T) {
		recs := store.RecommendationsAgainst([]string{"Airi"}, domain.RoleMid)
		names := make([]string, len(recs))
		for i, r := range recs {
			names[i] = r.Name
		}
		assert.Contains(t, names, "Zata")
	})

	t.Run("empty opponents delegates to role recommendations", func(t *testing.T) {
		against := store.RecommendationsAgainst(nil, domain.RoleMid)
		forRole := store.RecommendationsForRole(domain.RoleMid)
		assert.Equal(t, forRole, against)

		blanks := store.RecommendationsAgainst([]string{"", ""}, domain.RoleMid)
		assert.Equal(t, forRole, blanks)
	})

	t.Run("opponent heroes are not recommended", func(t *testing.T) {
		recs := store.RecommendationsAgainst([]string{"Tulen"}, domain.RoleMid)
		for _, r := range recs {
			assert.NotEqual(t, "Tulen", r.Name)
		}
	})
}

func TestCompositeWinRate(t *testing.T) {
	store := newStore(t)

	matches := []domain.MatchRecord{
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Tulen", "Airi").WithPicks2("Zata", "Raz").WithWinner("A").Build(),
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Tulen").WithPicks2("Raz").WithWinner("B").Build(),
	}
	// Tulen 50, Airi 100, Zata 0, Raz 50
	store.Ingest(testutil.Heroes("Tulen", "Airi", "Zata", "Raz", "Liliana"), domain.DefaultRoleTable(), matches)

	tests := []struct {
		name  string
		team1 []string
		team2 []string
		want  float64
	}{
		{name: "empty draft", want: 50},
		{name: "only empty slots", team1: []string{"", ""}, team2: []string{""}, want: 50},
		{name: "no history on either side", team1: []string{"Liliana"}, team2: []string{"Unknown"}, want: 50},
		{name: "zero win rate opponent", team1: []string{"Airi"}, team2: []string{"Zata"}, want: 100},
		{name: "only team two picked", team2: []string{"Tulen"}, want: 0},
		{name: "average of picks", team1: []string{"Tulen", "Airi"}, team2: []string{"Raz"}, want: 60},
		{name: "no-data pick drags average", team1: []string{"Airi", "Liliana"}, team2: []string{"Airi"}, want: 100.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.CompositeWinRate(tt.team1, tt.team2)
			assert.InDelta(t, tt.want, got, 0.0001)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestAvailableRecommendations_FiltersBeforeLimit(t *testing.T) {
	store := newStore(t)
	roles := domain.RoleTable{domain.RoleMid: {"M1", "M2", "M3", "M4", "M5", "M6"}}

	var matches []domain.MatchRecord
	for _, name := range roles[domain.RoleMid] {
		matches = append(matches, testutil.NewMatchBuilder().
			WithTeams("A", "B").WithPicks1(name).WithPicks2("Opp").WithWinner("A").Build())
	}
	store.Ingest(testutil.Heroes("M1", "M2", "M3", "M4", "M5", "M6", "Opp"), roles, matches)

	unavailable := map[string]bool{"M1": true, "M2": true}

	recs := store.AvailableRecommendations(nil, domain.RoleMid, unavailable)
	require.Len(t, recs, 4)
	for _, r := range recs {
		assert.False(t, unavailable[r.Name])
	}

	against := store.AvailableRecommendations([]string{"Opp"}, domain.RoleMid, unavailable)
	require.Len(t, against, 4)
	assert.Equal(t, 100.0, against[0].MatchupScore)
}
