package snapshot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-timeline/internal/adapter"
	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/logger"
)

type liveSource struct {
	base       Source
	url        string
	httpClient adapter.HTTPClient
	clock      adapter.Clock
}

// WithLive appends the current world state, fetched from url, to the snapshots of base.
// The appended snapshot carries domain.LiveIdentifier.
func WithLive(base Source, url string, httpClient adapter.HTTPClient, clock adapter.Clock) Source {
	return &liveSource{
		base:       base,
		url:        url,
		httpClient: httpClient,
		clock:      clock,
	}
}

// Load implements Source
func (s *liveSource) Load(ctx context.Context) ([]domain.Snapshot, error) {
	snapshots, err := s.base.Load(ctx)
	if err != nil {
		return nil, err
	}

	var data domain.SnapshotData
	if err := s.httpClient.Get(ctx, s.url, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch live snapshot: %w", err)
	}

	live := domain.NewSnapshot(domain.LiveIdentifier, s.clock.Now().Unix(), data)
	logger.InfoCtx(ctx, "Fetched live snapshot",
		zap.String("url", s.url),
		zap.Int("residents", len(live.Residents)),
		zap.Int("towns", len(live.Towns)),
	)

	return append(snapshots, live), nil
}
