package websocket_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dom/hero-draft-assistant/internal/api/handlers"
	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/testutil"
	"github.com/dom/hero-draft-assistant/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wait = 2 * time.Second

func TestHub_SnapshotOnConnect(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, err := ts.Services.Draft.AddBan(t.Context(), domain.Team1, "Zata", 0)
	require.NoError(t, err)

	client := testutil.NewWSClient(t, ts.WebSocketURL())
	snap := client.WaitForSnapshot(wait)

	assert.Equal(t, "Zata", snap.Draft.Team1.Bans[0])
	assert.Equal(t, domain.FormatRanking, snap.DefaultFormat)
	assert.Equal(t, 50.0, snap.WinRate.Team1)
	require.NotNil(t, snap.Turn.Turn)
	assert.Equal(t, domain.Team1, snap.Turn.Turn.Team)

	assert.Eventually(t, func() bool { return ts.Hub.ClientCount() == 1 }, wait, 10*time.Millisecond)
}

func TestHub_BroadcastsMutations(t *testing.T) {
	ts := testutil.NewTestServer(t)

	first := testutil.NewWSClient(t, ts.WebSocketURL())
	second := testutil.NewWSClient(t, ts.WebSocketURL())
	first.WaitForSnapshot(wait)
	second.WaitForSnapshot(wait)

	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/draft/picks"), handlers.NewSlotRequest(domain.Team1, "Tulen", 0))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	for _, c := range []*testutil.WSClient{first, second} {
		msg := c.WaitForMessage(websocket.MessageTypeDraftSnapshot, wait)
		assert.Positive(t, msg.Seq)

		var snap websocket.DraftSnapshotPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &snap))
		assert.Equal(t, "Tulen", snap.Draft.Team1.Picks[0])
		assert.Equal(t, domain.DraftPhasePick, snap.Turn.Phase)
	}

	// rejected changes are not broadcast
	resp = testutil.DoJSON(t, http.MethodPost, ts.APIURL("/draft/bans"), handlers.NewSlotRequest(domain.Team2, "Tulen", 0))
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
	resp.Body.Close()
	first.ExpectNoMessage(200 * time.Millisecond)
}

func TestHub_ConcurrentMutationsEndOnCurrentState(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedHeroes(t, ts, "Tulen", "Zata", "Airi", "Raz")

	client := testutil.NewWSClient(t, ts.WebSocketURL())
	client.WaitForSnapshot(wait)
	client.CollectSnapshots(200 * time.Millisecond)

	type change struct {
		ban  bool
		team domain.TeamID
		hero string
		slot int
	}
	changes := []change{
		{ban: true, team: domain.Team1, hero: "Hayate", slot: 0},
		{ban: true, team: domain.Team1, hero: "Laville", slot: 1},
		{ban: true, team: domain.Team1, hero: "Capheny", slot: 2},
		{ban: true, team: domain.Team2, hero: "Elsu", slot: 0},
		{ban: true, team: domain.Team2, hero: "Violet", slot: 1},
		{ban: true, team: domain.Team2, hero: "Yorn", slot: 2},
		{team: domain.Team1, hero: "Tulen", slot: 0},
		{team: domain.Team2, hero: "Zata", slot: 0},
		{team: domain.Team2, hero: "Airi", slot: 1},
		{team: domain.Team1, hero: "Raz", slot: 1},
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(changes))
	for _, c := range changes {
		wg.Add(1)
		go func(c change) {
			defer wg.Done()
			var err error
			if c.ban {
				_, err = ts.Services.Draft.AddBan(t.Context(), c.team, c.hero, c.slot)
			} else {
				_, err = ts.Services.Draft.AddPick(t.Context(), c.team, c.hero, c.slot)
			}
			errs <- err
		}(c)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	frames := client.CollectSnapshots(500 * time.Millisecond)
	require.NotEmpty(t, frames)
	for i := 1; i < len(frames); i++ {
		assert.Greater(t, frames[i].Seq, frames[i-1].Seq)
	}

	var last websocket.DraftSnapshotPayload
	require.NoError(t, json.Unmarshal(frames[len(frames)-1].Payload, &last))
	view := ts.Services.Draft.View()
	assert.Equal(t, view.Draft, last.Draft)
	assert.Equal(t, view.Turn, last.Turn)
	assert.Equal(t, view.WinRate, last.WinRate)
	assert.Equal(t, 4, last.Draft.TotalPicks())
}

func TestHub_CatalogChanges(t *testing.T) {
	ts := testutil.NewTestServer(t)

	client := testutil.NewWSClient(t, ts.WebSocketURL())
	client.WaitForSnapshot(wait)

	testutil.SeedHeroes(t, ts, "Tulen")

	msg := client.WaitForMessage(websocket.MessageTypeCatalogChanged, wait)
	var payload websocket.CatalogChangedPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, websocket.CatalogChangedPayload{Heroes: 1, Matches: 0}, payload)

	client.WaitForSnapshot(wait)
}

func TestHub_ClientMessages(t *testing.T) {
	ts := testutil.NewTestServer(t)

	client := testutil.NewWSClient(t, ts.WebSocketURL())
	client.WaitForSnapshot(wait)

	client.Send(websocket.MessageTypeSyncState, nil)
	client.WaitForSnapshot(wait)

	client.Send(websocket.MessageType("LOCK_IN"), nil)
	msg := client.WaitForMessage(websocket.MessageTypeError, wait)
	var payload websocket.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "UNKNOWN_MESSAGE", payload.Code)

	client.SendRaw([]byte("{not json"))
	msg = client.WaitForMessage(websocket.MessageTypeError, wait)
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "INVALID_MESSAGE", payload.Code)
}

func TestHub_Disconnect(t *testing.T) {
	ts := testutil.NewTestServer(t)

	client := testutil.NewWSClient(t, ts.WebSocketURL())
	client.WaitForSnapshot(wait)
	require.Eventually(t, func() bool { return ts.Hub.ClientCount() == 1 }, wait, 10*time.Millisecond)

	client.Close()
	assert.Eventually(t, func() bool { return ts.Hub.ClientCount() == 0 }, wait, 10*time.Millisecond)
}

func TestHub_StopClosesClients(t *testing.T) {
	ts := testutil.NewTestServer(t)

	client := testutil.NewWSClient(t, ts.WebSocketURL())
	client.WaitForSnapshot(wait)

	ts.Hub.Stop()
	client.WaitForClose(wait)

	// publishing after stop must not block
	done := make(chan struct{})
	go func() {
		ts.Hub.DraftChanged(ts.Services.Draft.Snapshot())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(wait):
		t.Fatal("DraftChanged blocked after Stop")
	}
}
