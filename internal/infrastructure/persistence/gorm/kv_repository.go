package gorm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
)

// KVRepository implements outbound.KeyValueStore on a relational table.
type KVRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewKVRepository wraps an opened and migrated database.
func NewKVRepository(db *gorm.DB, logger *zap.Logger) *KVRepository {
	return &KVRepository{db: db, logger: logger.Named("kv-gorm")}
}

// Get returns the value stored under key, or outbound.ErrKeyNotFound.
func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	var entry KVEntryModel
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", outbound.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return entry.Value, nil
}

// Set inserts or overwrites key.
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	entry := KVEntryModel{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		r.logger.Error("failed to store key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Where("key = ?", key).Delete(&KVEntryModel{}).Error; err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Ping checks the database connection.
func (r *KVRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (r *KVRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
