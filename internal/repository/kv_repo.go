package repository

import (
	"context"
	"errors"

	"portal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository is the durable key-value slot the asset collection persists
// into. Values are opaque serialized blobs; callers own the format.
type KVRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type kvRepository struct {
	db *gorm.DB
}

func NewKVRepository(db *gorm.DB) KVRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry model.KVEntry
	err := r.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry.Value, true, nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	entry := model.KVEntry{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
