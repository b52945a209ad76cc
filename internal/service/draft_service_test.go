package service_test

import (
	"context"
	"testing"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/repository"
	"github.com/dom/hero-draft-assistant/internal/repository/memory"
	"github.com/dom/hero-draft-assistant/internal/service"
	"github.com/dom/hero-draft-assistant/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSlayers gives Florentino a win and Allain a loss against Tulen
func seedSlayers(t *testing.T, svc *service.Services) {
	t.Helper()
	ctx := context.Background()

	for _, h := range testutil.Heroes("Florentino", "Allain", "Tulen", "Zata") {
		_, err := svc.Catalog.AddHero(ctx, h, nil)
		require.NoError(t, err)
	}
	matches := []domain.MatchRecord{
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Florentino").WithPicks2("Tulen").WithWinner("A").Build(),
		testutil.NewMatchBuilder().WithTeams("A", "B").WithPicks1("Allain").WithPicks2("Tulen").WithWinner("B").Build(),
	}
	for _, m := range matches {
		_, err := svc.Catalog.AddMatch(ctx, m)
		require.NoError(t, err)
	}
}

func TestDraftService_MutationsArePersisted(t *testing.T) {
	store := memory.NewStore()
	svc, _ := newServices(t, store)
	ctx := context.Background()

	_, err := svc.Draft.AddBan(ctx, domain.Team1, "Zata", 0)
	require.NoError(t, err)
	state, err := svc.Draft.AddPick(ctx, domain.Team2, "Tulen", 0)
	require.NoError(t, err)

	assert.Equal(t, "Zata", state.Team1.Bans[0])
	assert.Equal(t, "Tulen", state.Team2.Picks[0])

	saved, err := repository.NewCatalog(store).DraftState(ctx)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, state, *saved)

	// a fresh process picks the session back up
	restarted, _ := newServices(t, store)
	assert.Equal(t, state, restarted.Draft.Snapshot())
}

func TestDraftService_RejectedChangesLeaveStateAlone(t *testing.T) {
	svc, _ := newServices(t, memory.NewStore())
	ctx := context.Background()

	_, err := svc.Draft.AddPick(ctx, domain.Team1, "Tulen", 0)
	require.NoError(t, err)
	before := svc.Draft.Snapshot()

	tests := []struct {
		name    string
		apply   func() error
		wantErr error
	}{
		{name: "hero already picked", apply: func() error {
			_, err := svc.Draft.AddBan(ctx, domain.Team2, "Tulen", 0)
			return err
		}, wantErr: domain.ErrHeroUnavailable},
		{name: "bad team", apply: func() error {
			_, err := svc.Draft.AddPick(ctx, domain.TeamID(3), "Zata", 0)
			return err
		}, wantErr: domain.ErrInvalidTeam},
		{name: "ban slot out of range", apply: func() error {
			_, err := svc.Draft.AddBan(ctx, domain.Team1, "Zata", 3)
			return err
		}, wantErr: domain.ErrInvalidSlot},
		{name: "unknown format", apply: func() error {
			_, err := svc.Draft.SetFormat(ctx, domain.Format("casual"))
			return err
		}, wantErr: domain.ErrInvalidFormat},
		{name: "unknown position", apply: func() error {
			_, err := svc.Draft.SetPosition(ctx, domain.RoleTag("Jungle"))
			return err
		}, wantErr: domain.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.apply(), tt.wantErr)
			assert.Equal(t, before, svc.Draft.Snapshot())
		})
	}
}

func TestDraftService_SaveFailureRollsBack(t *testing.T) {
	store := newFlakyStore()
	svc, _ := newServices(t, store)
	ctx := context.Background()

	notified := 0
	svc.Draft.Subscribe(func(domain.DraftState) { notified++ })

	store.setFailing(true)
	state, err := svc.Draft.AddPick(ctx, domain.Team1, "Tulen", 0)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, state.Team1.Picks[0])
	assert.Empty(t, svc.Draft.Snapshot().Team1.Picks[0])
	assert.Zero(t, notified)

	store.setFailing(false)
	_, err = svc.Draft.AddPick(ctx, domain.Team1, "Tulen", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, notified)
}

func TestDraftService_SubscribersSeeEveryChange(t *testing.T) {
	svc, _ := newServices(t, memory.NewStore())
	ctx := context.Background()

	var seen []domain.DraftState
	svc.Draft.Subscribe(func(s domain.DraftState) { seen = append(seen, s) })

	_, err := svc.Draft.SetSelectedTeam(ctx, domain.Team2)
	require.NoError(t, err)
	_, err = svc.Draft.AddBan(ctx, domain.Team1, "Zata", 1)
	require.NoError(t, err)
	// same hero, same slot
	_, err = svc.Draft.AddBan(ctx, domain.Team1, "Zata", 1)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, domain.Team2, seen[0].SelectedTeam)
	assert.Equal(t, "Zata", seen[1].Team1.Bans[1])
}

func TestDraftService_DefaultFormat(t *testing.T) {
	store := memory.NewStore()
	svc, _ := newServices(t, store)
	ctx := context.Background()

	assert.Equal(t, domain.FormatRanking, svc.Draft.DefaultFormat())
	assert.ErrorIs(t, svc.Draft.SetDefaultFormat(ctx, domain.Format("casual")), domain.ErrInvalidFormat)

	require.NoError(t, svc.Draft.SetDefaultFormat(ctx, domain.FormatGlobal))
	assert.Equal(t, domain.FormatRanking, svc.Draft.Snapshot().Format, "running draft keeps its format")

	_, err := svc.Draft.AddPick(ctx, domain.Team1, "Tulen", 0)
	require.NoError(t, err)

	state, err := svc.Draft.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NewDraftState(domain.FormatGlobal), state)

	restarted, _ := newServices(t, store)
	assert.Equal(t, domain.FormatGlobal, restarted.Draft.DefaultFormat())
}

func TestDraftService_Recommendations(t *testing.T) {
	svc, _ := newServices(t, memory.NewStore())
	seedSlayers(t, svc)
	ctx := context.Background()

	recs := svc.Draft.Recommendations()
	assert.Equal(t, domain.Team1, recs.Team)
	assert.Equal(t, domain.RoleSlayer, recs.Role)
	assert.Empty(t, recs.Against)
	require.Len(t, recs.Recommendations, 2)
	assert.Equal(t, "Florentino", recs.Recommendations[0].Name)

	_, err := svc.Draft.AddBan(ctx, domain.Team2, "Florentino", 0)
	require.NoError(t, err)
	_, err = svc.Draft.AddPick(ctx, domain.Team2, "Tulen", 0)
	require.NoError(t, err)

	recs = svc.Draft.Recommendations()
	assert.Equal(t, []string{"Tulen"}, recs.Against)
	require.Len(t, recs.Recommendations, 1)
	assert.Equal(t, "Allain", recs.Recommendations[0].Name)
	assert.Equal(t, 0.0, recs.Recommendations[0].MatchupScore)
}

func TestDraftService_WinRate(t *testing.T) {
	svc, _ := newServices(t, memory.NewStore())
	seedSlayers(t, svc)
	ctx := context.Background()

	assert.Equal(t, service.WinRateEstimate{Team1: 50, Team2: 50}, svc.Draft.WinRate())

	_, err := svc.Draft.AddPick(ctx, domain.Team1, "Florentino", 0)
	require.NoError(t, err)
	_, err = svc.Draft.AddPick(ctx, domain.Team2, "Allain", 0)
	require.NoError(t, err)

	est := svc.Draft.WinRate()
	assert.InDelta(t, 100.0, est.Team1, 0.0001)
	assert.InDelta(t, 0.0, est.Team2, 0.0001)
}

func TestDraftService_TurnAndNextPick(t *testing.T) {
	svc, _ := newServices(t, memory.NewStore())
	seedSlayers(t, svc)
	ctx := context.Background()

	info := svc.Draft.CurrentTurn()
	assert.False(t, info.Complete)
	assert.Equal(t, domain.DraftPhaseBan, info.Phase)
	require.NotNil(t, info.Turn)
	assert.Equal(t, domain.Team1, info.Turn.Team)
	assert.Equal(t, domain.RoleSlayer, info.Turn.Role)

	next := svc.Draft.NextPick()
	require.NotNil(t, next)
	assert.Equal(t, "Florentino", next.Name)

	_, err := svc.Draft.AddBan(ctx, domain.Team2, "Florentino", 0)
	require.NoError(t, err)
	next = svc.Draft.NextPick()
	require.NotNil(t, next)
	assert.Equal(t, "Allain", next.Name)

	_, err = svc.Draft.AddBan(ctx, domain.Team2, "Allain", 1)
	require.NoError(t, err)
	assert.Nil(t, svc.Draft.NextPick())
}

func TestDraftService_CompleteDraft(t *testing.T) {
	svc, _ := newServices(t, memory.NewStore())
	ctx := context.Background()

	names := []string{"A1", "B1", "B2", "A2", "A3", "B3", "B4", "A4", "A5", "B5"}
	for i, turn := range []struct {
		team domain.TeamID
		slot int
	}{
		{domain.Team1, 0}, {domain.Team2, 0}, {domain.Team2, 1}, {domain.Team1, 1}, {domain.Team1, 2},
		{domain.Team2, 2}, {domain.Team2, 3}, {domain.Team1, 3}, {domain.Team1, 4}, {domain.Team2, 4},
	} {
		_, err := svc.Draft.AddPick(ctx, turn.team, names[i], turn.slot)
		require.NoError(t, err)
	}

	info := svc.Draft.CurrentTurn()
	assert.True(t, info.Complete)
	assert.Equal(t, domain.DraftPhaseComplete, info.Phase)
	assert.Nil(t, info.Turn)
	assert.Nil(t, svc.Draft.NextPick())

	_, err := svc.Draft.AddBan(ctx, domain.Team1, "Zata", 0)
	assert.ErrorIs(t, err, domain.ErrDraftComplete)

	before := svc.Draft.Snapshot()
	_, err = svc.Draft.SetSelectedTeam(ctx, domain.Team2)
	assert.ErrorIs(t, err, domain.ErrDraftComplete)
	_, err = svc.Draft.SetPosition(ctx, domain.RoleMid)
	assert.ErrorIs(t, err, domain.ErrDraftComplete)
	assert.Equal(t, before, svc.Draft.Snapshot())

	state, err := svc.Draft.Reset(ctx)
	require.NoError(t, err)
	assert.Zero(t, state.TotalPicks())
}
