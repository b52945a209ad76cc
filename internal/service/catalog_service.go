package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/repository"
	"github.com/dom/hero-draft-assistant/internal/stats"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeroView is a catalog hero with its effective image and eligible roles
type HeroView struct {
	domain.Hero
	Roles []domain.RoleTag `json:"roles"`
}

// HeroUpdate holds the optional changes applied by UpdateHero
type HeroUpdate struct {
	Name    *string           `json:"name,omitempty"`
	Classes *[]string         `json:"classes,omitempty"`
	Image   *string           `json:"image,omitempty"`
	Roles   *[]domain.RoleTag `json:"roles,omitempty"`
}

// CatalogService maintains the hero catalog, the role table and the match
// log. Every change is saved and then re-ingested into the stats store.
type CatalogService struct {
	catalog *repository.Catalog
	stats   *stats.Store
	log     *zap.Logger

	mu       sync.RWMutex
	heroes   []domain.Hero
	images   map[string]string
	roles    domain.RoleTable
	matches  []domain.MatchRecord
	onChange []func()

	// match log entries that could not be decoded, written back untouched
	undecodable []json.RawMessage
}

func NewCatalogService(catalog *repository.Catalog, st *stats.Store, log *zap.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		stats:   st,
		log:     log.With(zap.String("component", "catalog")),
		images:  map[string]string{},
		roles:   domain.DefaultRoleTable(),
	}
}

// OnChange registers fn to run after every successful change or reload
func (s *CatalogService) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// Reload re-reads everything from the store and recomputes statistics
func (s *CatalogService) Reload(ctx context.Context) error {
	heroes, err := s.catalog.Heroes(ctx)
	if err != nil {
		return err
	}
	images, err := s.catalog.HeroImages(ctx)
	if err != nil {
		return err
	}
	roles, err := s.catalog.Roles(ctx)
	if err != nil {
		return err
	}
	matchLog, err := s.catalog.Matches(ctx)
	if err != nil {
		return err
	}
	matches := matchLog.Records
	if len(matchLog.Undecodable) > 0 {
		s.log.Debug("skipping undecodable match records", zap.Int("count", len(matchLog.Undecodable)))
	}

	s.mu.Lock()
	s.heroes = heroes
	s.images = images
	s.roles = roles
	s.matches = matches
	s.undecodable = matchLog.Undecodable
	s.ingestLocked()
	listeners := s.onChange
	s.mu.Unlock()

	s.log.Info("catalog loaded",
		zap.Int("heroes", len(heroes)),
		zap.Int("matches", len(matches)))
	notify(listeners)
	return nil
}

// ListHeroes returns the catalog sorted by name
func (s *CatalogService) ListHeroes() []HeroView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]HeroView, 0, len(s.heroes))
	for _, h := range s.heroes {
		out = append(out, s.viewLocked(h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *CatalogService) GetHero(name string) (HeroView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOfHero(s.heroes, name)
	if i < 0 {
		return HeroView{}, domain.ErrHeroNotFound
	}
	return s.viewLocked(s.heroes[i]), nil
}

// AddHero adds a new hero and assigns it to roles
func (s *CatalogService) AddHero(ctx context.Context, hero domain.Hero, roles []domain.RoleTag) (HeroView, error) {
	if hero.Name == "" {
		return HeroView{}, domain.ErrInvalidHero
	}
	if err := validateRoles(roles); err != nil {
		return HeroView{}, err
	}

	s.mu.Lock()
	if indexOfHero(s.heroes, hero.Name) >= 0 {
		s.mu.Unlock()
		return HeroView{}, domain.ErrHeroExists
	}

	heroes := append(cloneHeroes(s.heroes), hero)
	table := s.roles.Clone()
	if len(roles) > 0 {
		table.Assign(hero.Name, roles)
	}

	if err := s.commitHeroesLocked(ctx, heroes, s.images, table); err != nil {
		s.mu.Unlock()
		return HeroView{}, err
	}
	view := s.viewLocked(hero)
	listeners := s.onChange
	s.mu.Unlock()

	s.log.Info("hero added", zap.String("hero", hero.Name))
	notify(listeners)
	return view, nil
}

// UpdateHero applies every non-nil field of update. A rename carries the
// hero's role memberships and image override over to the new name.
func (s *CatalogService) UpdateHero(ctx context.Context, name string, update HeroUpdate) (HeroView, error) {
	if update.Roles != nil {
		if err := validateRoles(*update.Roles); err != nil {
			return HeroView{}, err
		}
	}

	s.mu.Lock()
	i := indexOfHero(s.heroes, name)
	if i < 0 {
		s.mu.Unlock()
		return HeroView{}, domain.ErrHeroNotFound
	}

	heroes := cloneHeroes(s.heroes)
	images := cloneImages(s.images)
	table := s.roles.Clone()
	hero := &heroes[i]

	if update.Name != nil && *update.Name != name {
		newName := *update.Name
		if newName == "" {
			s.mu.Unlock()
			return HeroView{}, domain.ErrInvalidHero
		}
		if indexOfHero(heroes, newName) >= 0 {
			s.mu.Unlock()
			return HeroView{}, domain.ErrHeroExists
		}
		hero.Name = newName
		table.Rename(name, newName)
		if img, ok := images[name]; ok {
			delete(images, name)
			images[newName] = img
		}
	}
	if update.Classes != nil {
		hero.Classes = append([]string(nil), (*update.Classes)...)
	}
	if update.Image != nil {
		if *update.Image == "" {
			delete(images, hero.Name)
		} else {
			images[hero.Name] = *update.Image
		}
	}
	if update.Roles != nil {
		table.Assign(hero.Name, *update.Roles)
	}

	if err := s.commitHeroesLocked(ctx, heroes, images, table); err != nil {
		s.mu.Unlock()
		return HeroView{}, err
	}
	view := s.viewLocked(*hero)
	listeners := s.onChange
	s.mu.Unlock()

	s.log.Info("hero updated", zap.String("hero", name), zap.String("name", view.Name))
	notify(listeners)
	return view, nil
}

func (s *CatalogService) RenameHero(ctx context.Context, oldName, newName string) (HeroView, error) {
	return s.UpdateHero(ctx, oldName, HeroUpdate{Name: &newName})
}

func (s *CatalogService) SetHeroClasses(ctx context.Context, name string, classes []string) (HeroView, error) {
	return s.UpdateHero(ctx, name, HeroUpdate{Classes: &classes})
}

// SetHeroImage overrides the hero's image. An empty url removes the override.
func (s *CatalogService) SetHeroImage(ctx context.Context, name, url string) (HeroView, error) {
	return s.UpdateHero(ctx, name, HeroUpdate{Image: &url})
}

// SetHeroRoles makes roles the exact set of roles the hero is listed under
func (s *CatalogService) SetHeroRoles(ctx context.Context, name string, roles []domain.RoleTag) (HeroView, error) {
	return s.UpdateHero(ctx, name, HeroUpdate{Roles: &roles})
}

// RemoveHero deletes a hero along with its role memberships and image.
// Historical matches keep referencing the name.
func (s *CatalogService) RemoveHero(ctx context.Context, name string) error {
	s.mu.Lock()
	i := indexOfHero(s.heroes, name)
	if i < 0 {
		s.mu.Unlock()
		return domain.ErrHeroNotFound
	}

	heroes := cloneHeroes(s.heroes)
	heroes = append(heroes[:i], heroes[i+1:]...)
	images := cloneImages(s.images)
	delete(images, name)
	table := s.roles.Clone()
	table.Remove(name)

	if err := s.commitHeroesLocked(ctx, heroes, images, table); err != nil {
		s.mu.Unlock()
		return err
	}
	listeners := s.onChange
	s.mu.Unlock()

	s.log.Info("hero removed", zap.String("hero", name))
	notify(listeners)
	return nil
}

// Roles returns a copy of the role table
func (s *CatalogService) Roles() domain.RoleTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roles.Clone()
}

// ListMatches returns the match log in stored order
func (s *CatalogService) ListMatches() []domain.MatchRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.MatchRecord{}, s.matches...)
}

func (s *CatalogService) GetMatch(id uuid.UUID) (domain.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOfMatch(s.matches, id)
	if i < 0 {
		return domain.MatchRecord{}, domain.ErrMatchNotFound
	}
	return s.matches[i], nil
}

// AddMatch appends a record under a fresh id
func (s *CatalogService) AddMatch(ctx context.Context, match domain.MatchRecord) (domain.MatchRecord, error) {
	if err := match.Validate(); err != nil {
		return domain.MatchRecord{}, err
	}
	match.ID = uuid.New()

	s.mu.Lock()
	matches := append(append([]domain.MatchRecord{}, s.matches...), match)
	if err := s.commitMatchesLocked(ctx, matches); err != nil {
		s.mu.Unlock()
		return domain.MatchRecord{}, err
	}
	listeners := s.onChange
	s.mu.Unlock()

	s.log.Info("match added", zap.String("matchId", match.ID.String()))
	notify(listeners)
	return match, nil
}

// UpdateMatch replaces the record with the given id
func (s *CatalogService) UpdateMatch(ctx context.Context, id uuid.UUID, match domain.MatchRecord) (domain.MatchRecord, error) {
	if err := match.Validate(); err != nil {
		return domain.MatchRecord{}, err
	}
	match.ID = id

	s.mu.Lock()
	i := indexOfMatch(s.matches, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.MatchRecord{}, domain.ErrMatchNotFound
	}
	matches := append([]domain.MatchRecord{}, s.matches...)
	matches[i] = match
	if err := s.commitMatchesLocked(ctx, matches); err != nil {
		s.mu.Unlock()
		return domain.MatchRecord{}, err
	}
	listeners := s.onChange
	s.mu.Unlock()

	s.log.Info("match updated", zap.String("matchId", id.String()))
	notify(listeners)
	return match, nil
}

func (s *CatalogService) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	i := indexOfMatch(s.matches, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.ErrMatchNotFound
	}
	matches := append([]domain.MatchRecord{}, s.matches[:i]...)
	matches = append(matches, s.matches[i+1:]...)
	if err := s.commitMatchesLocked(ctx, matches); err != nil {
		s.mu.Unlock()
		return err
	}
	listeners := s.onChange
	s.mu.Unlock()

	s.log.Info("match deleted", zap.String("matchId", id.String()))
	notify(listeners)
	return nil
}

// commitHeroesLocked saves the hero documents and swaps them in on success
func (s *CatalogService) commitHeroesLocked(ctx context.Context, heroes []domain.Hero, images map[string]string, roles domain.RoleTable) error {
	if err := s.catalog.SaveHeroes(ctx, heroes); err != nil {
		s.log.Error("failed to save heroes", zap.Error(err))
		return fmt.Errorf("save heroes: %w", err)
	}
	if err := s.catalog.SaveHeroImages(ctx, images); err != nil {
		s.log.Error("failed to save hero images", zap.Error(err))
		return fmt.Errorf("save hero images: %w", err)
	}
	if err := s.catalog.SaveRoles(ctx, roles); err != nil {
		s.log.Error("failed to save role table", zap.Error(err))
		return fmt.Errorf("save roles: %w", err)
	}

	s.heroes = heroes
	s.images = images
	s.roles = roles
	s.ingestLocked()
	return nil
}

func (s *CatalogService) commitMatchesLocked(ctx context.Context, matches []domain.MatchRecord) error {
	if err := s.catalog.SaveMatches(ctx, matches, s.undecodable...); err != nil {
		s.log.Error("failed to save matches", zap.Error(err))
		return fmt.Errorf("save matches: %w", err)
	}
	s.matches = matches
	s.ingestLocked()
	return nil
}

// ingestLocked feeds the stats store the catalog with images applied
func (s *CatalogService) ingestLocked() {
	heroes := make([]domain.Hero, len(s.heroes))
	for i, h := range s.heroes {
		heroes[i] = s.withImageLocked(h)
	}
	s.stats.IngestLog(heroes, s.roles, s.matches, len(s.undecodable))
}

func (s *CatalogService) withImageLocked(h domain.Hero) domain.Hero {
	if img, ok := s.images[h.Name]; ok && img != "" {
		h.Image = img
	}
	return h
}

func (s *CatalogService) viewLocked(h domain.Hero) HeroView {
	return HeroView{
		Hero:  s.withImageLocked(h),
		Roles: s.roles.RolesFor(h.Name),
	}
}

func validateRoles(roles []domain.RoleTag) error {
	for _, r := range roles {
		if !r.IsValid() {
			return domain.ErrInvalidRole
		}
	}
	return nil
}

func indexOfHero(heroes []domain.Hero, name string) int {
	for i := range heroes {
		if heroes[i].Name == name {
			return i
		}
	}
	return -1
}

func indexOfMatch(matches []domain.MatchRecord, id uuid.UUID) int {
	for i := range matches {
		if matches[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneHeroes(heroes []domain.Hero) []domain.Hero {
	return append([]domain.Hero{}, heroes...)
}

func cloneImages(images map[string]string) map[string]string {
	out := make(map[string]string, len(images))
	for k, v := range images {
		out[k] = v
	}
	return out
}

func notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
