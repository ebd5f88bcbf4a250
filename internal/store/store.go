package store

import (
	"context"

	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/store/schema"
)

// UpsertTimelineInput holds the data to persist for one entity
type UpsertTimelineInput struct {
	EntityType domain.EntityType
	Key        string
	Bundle     []byte // JSON encoded bundle
	Checksum   string // Hex sha256 of the canonical JSON of Bundle
	RunID      string
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// UpsertTimeline stores an entity bundle; it reports false when the stored checksum already matches
	UpsertTimeline(ctx context.Context, input UpsertTimelineInput) (bool, error)
	// GetTimeline retrieves the bundle of an entity, nil when it was never stored
	GetTimeline(ctx context.Context, entityType domain.EntityType, key string) (*schema.EntityTimeline, error)
	// SetKeyValue sets a key-value pair in the key-value store
	SetKeyValue(ctx context.Context, key string, value string) error
	// GetKeyValue retrieves a value by key, empty when the key is unset
	GetKeyValue(ctx context.Context, key string) (string, error)
	// Close releases the database connection pool
	Close() error
}
