package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dom/hero-draft-assistant/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one stored document
type KVEntry struct {
	Key       string         `gorm:"primaryKey;type:varchar(64)"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

type kvRepository struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *kvRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Load(ctx context.Context, key string) (json.RawMessage, error) {
	var entry KVEntry
	err := r.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return json.RawMessage(entry.Value), nil
}

func (r *kvRepository) Save(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return repository.ErrInvalidValue
	}

	entry := &KVEntry{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry).Error
}

func (r *kvRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
