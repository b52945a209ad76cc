package repository

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrNotFound     = errors.New("key not found")
	ErrInvalidValue = errors.New("value is not valid JSON")
)

// Known keys
const (
	KeyHeroes        = "heroes"
	KeyHeroImages    = "hero_images"
	KeyHeroRoles     = "hero_roles"
	KeyMatches       = "matches"
	KeyDraftState    = "draft_state"
	KeyDefaultFormat = "default_format"
)

// Keys lists every key the application reads or writes
var Keys = []string{
	KeyHeroes,
	KeyHeroImages,
	KeyHeroRoles,
	KeyMatches,
	KeyDraftState,
	KeyDefaultFormat,
}

// IsKnownKey reports whether key is one of Keys
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Store is a key-value store of JSON documents. Keys are independent;
// there is no transaction spanning more than one Save.
type Store interface {
	Load(ctx context.Context, key string) (json.RawMessage, error)
	Save(ctx context.Context, key string, value json.RawMessage) error
	Close() error
}

// Watcher is implemented by stores whose contents can change behind the
// process's back. fn receives the key that changed.
type Watcher interface {
	Watch(ctx context.Context, fn func(key string)) error
}
