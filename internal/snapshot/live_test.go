package snapshot_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/mocks"
	"github.com/feral-file/ff-timeline/internal/snapshot"
)

func TestWithLive(t *testing.T) {
	ctrl := gomock.NewController(t)
	base := mocks.NewMockSnapshotSource(ctrl)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	const url = "https://world.example.com/api/nodes-towns"
	now := time.Date(2024, 3, 3, 9, 30, 0, 0, time.UTC)
	backup := domain.NewSnapshot("nodes-towns-20240301_000000.json", 1709251200, domain.SnapshotData{})

	source := snapshot.WithLive(base, url, httpClient, clock)

	t.Run("appends the live snapshot", func(t *testing.T) {
		base.EXPECT().Load(gomock.Any()).Return([]domain.Snapshot{backup}, nil)
		clock.EXPECT().Now().Return(now)
		httpClient.EXPECT().
			Get(gomock.Any(), url, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
				data := result.(*domain.SnapshotData)
				data.Residents = map[string]domain.ResidentRecord{"r1": {Name: "Alice"}}
				return nil
			})

		snaps, err := source.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, snaps, 2)
		assert.Equal(t, backup, snaps[0])

		latest := snaps[1]
		assert.True(t, latest.IsLive())
		assert.Equal(t, now.Unix(), latest.Timestamp)
		assert.Contains(t, latest.Residents, "r1")
		assert.NotNil(t, latest.Towns)
	})

	t.Run("fetch error", func(t *testing.T) {
		base.EXPECT().Load(gomock.Any()).Return([]domain.Snapshot{backup}, nil)
		httpClient.EXPECT().Get(gomock.Any(), url, gomock.Any()).Return(errors.New("503"))

		_, err := source.Load(context.Background())
		assert.ErrorContains(t, err, "failed to fetch live snapshot")
	})

	t.Run("base error", func(t *testing.T) {
		baseErr := errors.New("missing directory")
		base.EXPECT().Load(gomock.Any()).Return(nil, baseErr)

		_, err := source.Load(context.Background())
		assert.ErrorIs(t, err, baseErr)
	})
}
