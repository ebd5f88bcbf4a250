package results

import (
	"context"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// Sink persists the analyzed bundle of an entity under its id or name
//
//go:generate mockgen -source=sink.go -destination=../mocks/sink.go -package=mocks -mock_names=Sink=MockSink
type Sink interface {
	// Put stores the bundle for the given key, replacing any earlier one
	Put(ctx context.Context, key string, bundle domain.Bundle) error

	// Close releases the sink's resources
	Close() error
}
