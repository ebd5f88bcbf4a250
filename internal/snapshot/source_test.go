package snapshot_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-timeline/internal/adapter"
	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/mocks"
	"github.com/feral-file/ff-timeline/internal/snapshot"
)

func writeSnapshot(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "nodes-towns-20240302_000000.json", `{
		"residents": {
			"r1": {"name": "Alice", "lastOnline": 1709337600000, "town": "Ravenholm", "townJoinTime": 1709251200000},
			"r2": {"name": "Bob", "lastOnline": null, "town": null},
			"r3": {"name": "Carol", "town": 0}
		},
		"towns": {"Ravenholm": {"officers": ["r1"]}}
	}`)
	writeSnapshot(t, dir, "nodes-towns-20240301_000000.json", `{"residents": {}, "towns": {}}`)
	writeSnapshot(t, dir, "notes.txt", "not a snapshot")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nodes-towns-archive"), 0750))

	source := snapshot.NewFileSource(&snapshot.Config{Dir: dir, Prefix: domain.DefaultSnapshotPrefix},
		adapter.NewFileSystem(), adapter.NewJSON(), adapter.NewClockIn(time.UTC))

	snaps, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	assert.Equal(t, "nodes-towns-20240301_000000.json", snaps[0].Identifier)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Unix(), snaps[0].Timestamp)
	assert.Empty(t, snaps[0].Residents)

	latest := snaps[1]
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC).Unix(), latest.Timestamp)
	assert.False(t, latest.IsLive())

	alice, ok := latest.Resident("r1")
	require.True(t, ok)
	require.NotNil(t, alice.LastOnline)
	assert.Equal(t, int64(1709337600000), *alice.LastOnline)
	assert.Equal(t, domain.NamedTown("Ravenholm"), alice.Town)
	assert.Equal(t, int64(1709251200000), alice.TownJoinTime)

	bob, ok := latest.Resident("r2")
	require.True(t, ok)
	assert.Nil(t, bob.LastOnline)
	assert.True(t, bob.Town.IsNone())
	assert.Zero(t, bob.TownJoinTime)

	carol, ok := latest.Resident("r3")
	require.True(t, ok)
	assert.True(t, carol.Town.IsZero())

	town, ok := latest.Town("Ravenholm")
	require.True(t, ok)
	assert.Equal(t, []string{"r1"}, town.Officers)
}

func TestFileSource_Load_InvalidIdentifier(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "nodes-towns-latest.json", `{}`)

	source := snapshot.NewFileSource(&snapshot.Config{Dir: dir, Prefix: domain.DefaultSnapshotPrefix},
		adapter.NewFileSystem(), adapter.NewJSON(), adapter.NewClockIn(time.UTC))

	_, err := source.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}

func TestFileSource_Load_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsMock := mocks.NewMockFileSystem(ctrl)
	jsonMock := mocks.NewMockJSON(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Location().Return(time.UTC).AnyTimes()

	source := snapshot.NewFileSource(&snapshot.Config{Dir: "/backups", Prefix: "nodes-towns"}, fsMock, jsonMock, clock)
	entries := []fs.DirEntry{fakeEntry("nodes-towns-20240301_000000.json")}

	t.Run("list error", func(t *testing.T) {
		fsMock.EXPECT().ReadDir("/backups").Return(nil, errors.New("permission denied"))

		_, err := source.Load(context.Background())
		assert.ErrorContains(t, err, "failed to list snapshot directory")
	})

	t.Run("read error", func(t *testing.T) {
		fsMock.EXPECT().ReadDir("/backups").Return(entries, nil)
		fsMock.EXPECT().ReadFile("/backups/nodes-towns-20240301_000000.json").Return(nil, errors.New("io error"))

		_, err := source.Load(context.Background())
		assert.ErrorContains(t, err, "failed to read snapshot nodes-towns-20240301_000000.json")
	})

	t.Run("parse error", func(t *testing.T) {
		fsMock.EXPECT().ReadDir("/backups").Return(entries, nil)
		fsMock.EXPECT().ReadFile("/backups/nodes-towns-20240301_000000.json").Return([]byte("{"), nil)
		jsonMock.EXPECT().Unmarshal([]byte("{"), gomock.Any()).Return(errors.New("unexpected end of JSON input"))

		_, err := source.Load(context.Background())
		assert.ErrorContains(t, err, "failed to parse snapshot")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fsMock.EXPECT().ReadDir("/backups").Return(entries, nil)

		_, err := source.Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// fakeEntry is a regular file directory entry
type fakeEntry string

func (e fakeEntry) Name() string               { return string(e) }
func (e fakeEntry) IsDir() bool                { return false }
func (e fakeEntry) Type() fs.FileMode          { return 0 }
func (e fakeEntry) Info() (fs.FileInfo, error) { return nil, errors.New("not implemented") }
