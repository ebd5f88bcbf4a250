package messaging

import (
	"context"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// Publisher defines the interface for publishing timelines to a message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishTimeline publishes the bundle of one entity
	PublishTimeline(ctx context.Context, msg *domain.TimelineMessage) error
	// Close drains and closes the connection
	Close()
}
