package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero settings fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 30 minutes
//   - ConnMaxIdleTime: 5 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 30 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 5 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// Close implements Store
func (s *pgStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// UpsertTimeline stores an entity bundle, leaving the row untouched when the checksum is unchanged
func (s *pgStore) UpsertTimeline(ctx context.Context, input UpsertTimelineInput) (bool, error) {
	timeline := schema.EntityTimeline{
		EntityType: input.EntityType,
		Key:        input.Key,
		Bundle:     datatypes.JSON(input.Bundle),
		Checksum:   input.Checksum,
		RunID:      input.RunID,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_type"}, {Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"bundle":     gorm.Expr("excluded.bundle"),
			"checksum":   gorm.Expr("excluded.checksum"),
			"run_id":     gorm.Expr("excluded.run_id"),
			"updated_at": gorm.Expr("now()"),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "entity_timelines.checksum <> excluded.checksum"},
		}},
	}).Create(&timeline)
	if result.Error != nil {
		return false, fmt.Errorf("failed to upsert timeline: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetTimeline retrieves the bundle of an entity
func (s *pgStore) GetTimeline(ctx context.Context, entityType domain.EntityType, key string) (*schema.EntityTimeline, error) {
	var timeline schema.EntityTimeline
	err := s.db.WithContext(ctx).
		Where("entity_type = ? AND key = ?", entityType, key).
		First(&timeline).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get timeline: %w", err)
	}

	return &timeline, nil
}

// SetKeyValue sets a key-value pair in the key-value store
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// GetKeyValue retrieves a value by key from the key-value store
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key-value: %w", err)
	}

	return kv.Value, nil
}
