package results

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-timeline/internal/adapter"
	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/logger"
	"github.com/feral-file/ff-timeline/internal/store"
)

type storeSink struct {
	store store.Store
	json  adapter.JSON
	jcs   adapter.JCS
}

// NewStoreSink creates a sink persisting bundles to the database
func NewStoreSink(st store.Store, json adapter.JSON, jcs adapter.JCS) Sink {
	return &storeSink{
		store: st,
		json:  json,
		jcs:   jcs,
	}
}

// Put implements Sink
func (s *storeSink) Put(ctx context.Context, key string, bundle domain.Bundle) error {
	data, err := s.json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to marshal %s bundle: %w", bundle.EntityType(), err)
	}

	checksum, err := s.jcs.Digest(data)
	if err != nil {
		return err
	}

	written, err := s.store.UpsertTimeline(ctx, store.UpsertTimelineInput{
		EntityType: bundle.EntityType(),
		Key:        key,
		Bundle:     data,
		Checksum:   checksum,
		RunID:      domain.RunIDFromContext(ctx),
	})
	if err != nil {
		return err
	}

	if !written {
		logger.DebugCtx(ctx, "Timeline unchanged",
			zap.String("entity_type", string(bundle.EntityType())),
			zap.String("key", key),
		)
	}

	return nil
}

// Close implements Sink, closing the underlying store
func (s *storeSink) Close() error {
	return s.store.Close()
}
