package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/google/uuid"
)

// HeroImageURL is the image every fixture hero gets
func HeroImageURL(name string) string {
	return fmt.Sprintf("https://img.example.com/heroes/%s.png", name)
}

// HeroBuilder creates test heroes with a builder pattern
type HeroBuilder struct {
	name    string
	classes []string
	image   string
}

// NewHeroBuilder creates a new HeroBuilder with default values
func NewHeroBuilder() *HeroBuilder {
	name := fmt.Sprintf("Hero%s", uuid.New().String()[:8])
	return &HeroBuilder{
		name:    name,
		classes: []string{string(domain.ClassMage)},
		image:   HeroImageURL(name),
	}
}

// WithName sets the hero name and its default image
func (b *HeroBuilder) WithName(name string) *HeroBuilder {
	b.name = name
	b.image = HeroImageURL(name)
	return b
}

// WithClasses sets the hero classes
func (b *HeroBuilder) WithClasses(classes ...string) *HeroBuilder {
	b.classes = classes
	return b
}

// WithImage sets the image url
func (b *HeroBuilder) WithImage(image string) *HeroBuilder {
	b.image = image
	return b
}

// Build returns the hero
func (b *HeroBuilder) Build() domain.Hero {
	classes := make([]string, len(b.classes))
	copy(classes, b.classes)
	return domain.Hero{
		Name:    b.name,
		Classes: classes,
		Image:   b.image,
	}
}

// Heroes builds one default hero per name
func Heroes(names ...string) []domain.Hero {
	out := make([]domain.Hero, len(names))
	for i, name := range names {
		out[i] = NewHeroBuilder().WithName(name).Build()
	}
	return out
}

// MatchBuilder creates test match records. Team names and rosters are
// empty until set.
type MatchBuilder struct {
	date       string
	tournament string
	team1      string
	team2      string
	picks1     []string
	picks2     []string
	bans1      []string
	bans2      []string
	winner     string
}

// NewMatchBuilder creates a new MatchBuilder with default values
func NewMatchBuilder() *MatchBuilder {
	return &MatchBuilder{
		date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		tournament: "Test Cup",
	}
}

// WithTeams sets both team names
func (b *MatchBuilder) WithTeams(team1, team2 string) *MatchBuilder {
	b.team1 = team1
	b.team2 = team2
	return b
}

// WithTournament sets the tournament label
func (b *MatchBuilder) WithTournament(name string) *MatchBuilder {
	b.tournament = name
	return b
}

// WithDate sets the match date
func (b *MatchBuilder) WithDate(date string) *MatchBuilder {
	b.date = date
	return b
}

// WithPicks1 sets team 1's lineup
func (b *MatchBuilder) WithPicks1(heroes ...string) *MatchBuilder {
	b.picks1 = heroes
	return b
}

// WithPicks2 sets team 2's lineup
func (b *MatchBuilder) WithPicks2(heroes ...string) *MatchBuilder {
	b.picks2 = heroes
	return b
}

// WithBans1 sets team 1's bans
func (b *MatchBuilder) WithBans1(heroes ...string) *MatchBuilder {
	b.bans1 = heroes
	return b
}

// WithBans2 sets team 2's bans
func (b *MatchBuilder) WithBans2(heroes ...string) *MatchBuilder {
	b.bans2 = heroes
	return b
}

// WithWinner sets the winner name
func (b *MatchBuilder) WithWinner(winner string) *MatchBuilder {
	b.winner = winner
	return b
}

// Build returns the record with a fresh id
func (b *MatchBuilder) Build() domain.MatchRecord {
	return domain.MatchRecord{
		ID:         uuid.New(),
		Date:       b.date,
		Tournament: b.tournament,
		Team1Name:  b.team1,
		Team2Name:  b.team2,
		Picks1:     b.picks1,
		Picks2:     b.picks2,
		Bans1:      b.bans1,
		Bans2:      b.bans2,
		Winner:     b.winner,
	}
}

// SeedHeroes adds heroes through the API
func SeedHeroes(t *testing.T, ts *TestServer, names ...string) []domain.Hero {
	t.Helper()

	heroes := Heroes(names...)
	for _, h := range heroes {
		resp := DoJSON(t, http.MethodPost, ts.APIURL("/heroes"), h)
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("failed to seed hero %s: status %d", h.Name, resp.StatusCode)
		}
	}
	return heroes
}

// SeedMatch adds a match record through the API and returns the stored record
func SeedMatch(t *testing.T, ts *TestServer, match domain.MatchRecord) domain.MatchRecord {
	t.Helper()

	resp := DoJSON(t, http.MethodPost, ts.APIURL("/matches"), match)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("failed to seed match: status %d", resp.StatusCode)
	}

	var stored domain.MatchRecord
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		t.Fatalf("failed to decode match: %v", err)
	}
	return stored
}

// NewJSONRequest creates an HTTP request with a JSON body
func NewJSONRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return req
}

// DoJSON sends a JSON request and returns the response. The caller closes the body.
func DoJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(NewJSONRequest(t, method, url, body))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, url, err)
	}
	return resp
}
