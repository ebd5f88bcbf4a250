package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// RunStoreTests runs the store suite against a Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	t.Run("UpsertTimeline", func(t *testing.T) { testUpsertTimeline(t, initDB(t)) })
	t.Run("GetTimeline", func(t *testing.T) { testGetTimeline(t, initDB(t)) })
	t.Run("KeyValue", func(t *testing.T) { testKeyValue(t, initDB(t)) })
}

// buildTimelineInput creates an upsert input for a resident bundle
func buildTimelineInput(key, bundle, checksum, runID string) UpsertTimelineInput {
	return UpsertTimelineInput{
		EntityType: domain.EntityTypeResident,
		Key:        key,
		Bundle:     []byte(bundle),
		Checksum:   checksum,
		RunID:      runID,
	}
}

func checksumOf(c byte) string {
	b := make([]byte, 64)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

func testUpsertTimeline(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("first write inserts", func(t *testing.T) {
		written, err := store.UpsertTimeline(ctx, buildTimelineInput("res-1", `{"lastonline":[],"lasttown":[]}`, checksumOf('a'), "01J0000000000000000000000A"))
		require.NoError(t, err)
		assert.True(t, written)
	})

	t.Run("same checksum is skipped", func(t *testing.T) {
		written, err := store.UpsertTimeline(ctx, buildTimelineInput("res-1", `{"lastonline":[],"lasttown":[]}`, checksumOf('a'), "01J0000000000000000000000B"))
		require.NoError(t, err)
		assert.False(t, written)

		stored, err := store.GetTimeline(ctx, domain.EntityTypeResident, "res-1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "01J0000000000000000000000A", stored.RunID)
	})

	t.Run("changed checksum updates", func(t *testing.T) {
		written, err := store.UpsertTimeline(ctx, buildTimelineInput("res-1", `{"lastonline":["x"],"lasttown":[]}`, checksumOf('b'), "01J0000000000000000000000C"))
		require.NoError(t, err)
		assert.True(t, written)

		stored, err := store.GetTimeline(ctx, domain.EntityTypeResident, "res-1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "01J0000000000000000000000C", stored.RunID)
		assert.Equal(t, checksumOf('b'), stored.Checksum)
		assert.JSONEq(t, `{"lastonline":["x"],"lasttown":[]}`, string(stored.Bundle))
	})

	t.Run("same key of another entity type is independent", func(t *testing.T) {
		input := buildTimelineInput("res-1", `{"compareofficers":[]}`, checksumOf('a'), "01J0000000000000000000000D")
		input.EntityType = domain.EntityTypeTown

		written, err := store.UpsertTimeline(ctx, input)
		require.NoError(t, err)
		assert.True(t, written)
	})
}

func testGetTimeline(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing entity returns nil", func(t *testing.T) {
		stored, err := store.GetTimeline(ctx, domain.EntityTypeTown, "Nowhere")
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("stored town is returned", func(t *testing.T) {
		input := buildTimelineInput("Ravenholm", `{"compareofficers":["👮 `+"`Alice`"+` was an Officer. (data from <t:1>)"]}`, checksumOf('c'), "01J0000000000000000000000E")
		input.EntityType = domain.EntityTypeTown
		_, err := store.UpsertTimeline(ctx, input)
		require.NoError(t, err)

		stored, err := store.GetTimeline(ctx, domain.EntityTypeTown, "Ravenholm")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, domain.EntityTypeTown, stored.EntityType)
		assert.Equal(t, "Ravenholm", stored.Key)
	})
}

func testKeyValue(t *testing.T, store Store) {
	ctx := context.Background()

	value, err := store.GetKeyValue(ctx, domain.LastSnapshotKey)
	require.NoError(t, err)
	assert.Equal(t, "", value)

	require.NoError(t, store.SetKeyValue(ctx, domain.LastSnapshotKey, "nodes-towns_20250726_224156.json"))
	require.NoError(t, store.SetKeyValue(ctx, domain.LastSnapshotKey, "nodes-towns_20250727_224156.json"))

	value, err = store.GetKeyValue(ctx, domain.LastSnapshotKey)
	require.NoError(t, err)
	assert.Equal(t, "nodes-towns_20250727_224156.json", value)
}
