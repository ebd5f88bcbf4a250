package results

import (
	"context"

	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/messaging"
)

type publisherSink struct {
	publisher messaging.Publisher
}

// NewPublisherSink creates a sink publishing every bundle to the message broker
func NewPublisherSink(publisher messaging.Publisher) Sink {
	return &publisherSink{publisher: publisher}
}

// Put implements Sink
func (s *publisherSink) Put(ctx context.Context, key string, bundle domain.Bundle) error {
	return s.publisher.PublishTimeline(ctx, &domain.TimelineMessage{
		RunID:      domain.RunIDFromContext(ctx),
		EntityType: bundle.EntityType(),
		Key:        key,
		Bundle:     bundle,
	})
}

// Close implements Sink
func (s *publisherSink) Close() error {
	s.publisher.Close()
	return nil
}
