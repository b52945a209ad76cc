package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/google/uuid"
)

// Catalog reads and writes the typed documents behind each key. Absent
// keys load as their empty value.
type Catalog struct {
	store Store
}

func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

// Store returns the underlying key-value store
func (c *Catalog) Store() Store {
	return c.store
}

func (c *Catalog) Heroes(ctx context.Context) ([]domain.Hero, error) {
	var heroes []domain.Hero
	if _, err := c.load(ctx, KeyHeroes, &heroes); err != nil {
		return nil, err
	}
	return heroes, nil
}

func (c *Catalog) SaveHeroes(ctx context.Context, heroes []domain.Hero) error {
	if heroes == nil {
		heroes = []domain.Hero{}
	}
	return c.save(ctx, KeyHeroes, heroes)
}

// HeroImages returns the hero name to image URL overrides
func (c *Catalog) HeroImages(ctx context.Context) (map[string]string, error) {
	images := map[string]string{}
	if _, err := c.load(ctx, KeyHeroImages, &images); err != nil {
		return nil, err
	}
	if images == nil {
		images = map[string]string{}
	}
	return images, nil
}

func (c *Catalog) SaveHeroImages(ctx context.Context, images map[string]string) error {
	if images == nil {
		images = map[string]string{}
	}
	return c.save(ctx, KeyHeroImages, images)
}

// Roles returns the saved role table, or the built-in one if none was saved
func (c *Catalog) Roles(ctx context.Context) (domain.RoleTable, error) {
	var roles domain.RoleTable
	found, err := c.load(ctx, KeyHeroRoles, &roles)
	if err != nil {
		return nil, err
	}
	if !found || roles == nil {
		return domain.DefaultRoleTable(), nil
	}
	return roles, nil
}

func (c *Catalog) SaveRoles(ctx context.Context, roles domain.RoleTable) error {
	return c.save(ctx, KeyHeroRoles, roles)
}

// matchNamespace seeds the ids derived for records saved without one
var matchNamespace = uuid.MustParse("6f1c2a0e-8d4b-4e57-9a3e-2b7d5c41f0a9")

// MatchLog is the decoded match log. Entries that do not decode as a match
// record are kept verbatim in Undecodable so a later save writes them back.
type MatchLog struct {
	Records     []domain.MatchRecord
	Undecodable []json.RawMessage
}

// Matches loads the match log entry by entry. A record saved without an id
// gets one derived from its content, so it keeps the same id on every load.
func (c *Catalog) Matches(ctx context.Context) (MatchLog, error) {
	var entries []json.RawMessage
	if _, err := c.load(ctx, KeyMatches, &entries); err != nil {
		return MatchLog{}, err
	}

	log := MatchLog{Records: make([]domain.MatchRecord, 0, len(entries))}
	seen := make(map[uuid.UUID]int)
	for _, entry := range entries {
		var m domain.MatchRecord
		if err := json.Unmarshal(entry, &m); err != nil {
			log.Undecodable = append(log.Undecodable, entry)
			continue
		}
		if m.ID == uuid.Nil {
			m.ID = derivedMatchID(m, seen)
		}
		log.Records = append(log.Records, m)
	}
	return log, nil
}

// derivedMatchID hashes the record. Identical records are told apart by how
// many copies came before them.
func derivedMatchID(m domain.MatchRecord, seen map[uuid.UUID]int) uuid.UUID {
	data, _ := json.Marshal(m)
	id := uuid.NewSHA1(matchNamespace, data)
	n := seen[id]
	seen[id]++
	if n == 0 {
		return id
	}
	return uuid.NewSHA1(id, []byte(strconv.Itoa(n)))
}

// SaveMatches writes the records followed by any undecodable entries
func (c *Catalog) SaveMatches(ctx context.Context, matches []domain.MatchRecord, undecodable ...json.RawMessage) error {
	entries := make([]interface{}, 0, len(matches)+len(undecodable))
	for _, m := range matches {
		entries = append(entries, m)
	}
	for _, raw := range undecodable {
		entries = append(entries, raw)
	}
	return c.save(ctx, KeyMatches, entries)
}

// DraftState returns the saved session, or nil if there is none
func (c *Catalog) DraftState(ctx context.Context) (*domain.DraftState, error) {
	var state domain.DraftState
	found, err := c.load(ctx, KeyDraftState, &state)
	if err != nil || !found {
		return nil, err
	}
	return &state, nil
}

func (c *Catalog) SaveDraftState(ctx context.Context, state domain.DraftState) error {
	return c.save(ctx, KeyDraftState, state)
}

// DefaultFormat returns the saved setting, or fallback if unset or unknown
func (c *Catalog) DefaultFormat(ctx context.Context, fallback domain.Format) (domain.Format, error) {
	var format domain.Format
	found, err := c.load(ctx, KeyDefaultFormat, &format)
	if err != nil {
		return "", err
	}
	if !found || !format.IsValid() {
		return fallback, nil
	}
	return format, nil
}

func (c *Catalog) SaveDefaultFormat(ctx context.Context, format domain.Format) error {
	return c.save(ctx, KeyDefaultFormat, format)
}

func (c *Catalog) load(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, err := c.store.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *Catalog) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
