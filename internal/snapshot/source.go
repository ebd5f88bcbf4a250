package snapshot

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/ff-timeline/internal/adapter"
	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/logger"
)

// Source supplies the ordered snapshot batch of a run
//
//go:generate mockgen -source=source.go -destination=../mocks/snapshot_source.go -package=mocks -mock_names=Source=MockSnapshotSource
type Source interface {
	// Load returns every snapshot, oldest first
	Load(ctx context.Context) ([]domain.Snapshot, error)
}

// Config holds configuration for the snapshot file source
type Config struct {
	Dir    string // Directory holding the backups
	Prefix string // Filename prefix of the backups
}

type fileSource struct {
	config *Config
	fs     adapter.FileSystem
	json   adapter.JSON
	clock  adapter.Clock
}

// NewFileSource creates a source reading snapshot backups from a directory
func NewFileSource(config *Config, fs adapter.FileSystem, json adapter.JSON, clock adapter.Clock) Source {
	return &fileSource{
		config: config,
		fs:     fs,
		json:   json,
		clock:  clock,
	}
}

// Load implements Source.
// Backups are ordered by filename, which orders them chronologically for a fixed prefix.
func (s *fileSource) Load(ctx context.Context) ([]domain.Snapshot, error) {
	entries, err := s.fs.ReadDir(s.config.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), s.config.Prefix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	snapshots := make([]domain.Snapshot, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		snap, err := s.load(name)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)

		logger.InfoCtx(ctx, "Loaded snapshot",
			zap.String("identifier", name),
			zap.Int("residents", len(snap.Residents)),
			zap.Int("towns", len(snap.Towns)),
		)
	}

	return snapshots, nil
}

func (s *fileSource) load(name string) (domain.Snapshot, error) {
	timestamp, err := ParseIdentifier(name, s.clock.Location())
	if err != nil {
		return domain.Snapshot{}, err
	}

	raw, err := s.fs.ReadFile(filepath.Join(s.config.Dir, name))
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to read snapshot %s: %w", name, err)
	}

	var data domain.SnapshotData
	if err := s.json.Unmarshal(raw, &data); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to parse snapshot %s: %w", name, err)
	}

	return domain.NewSnapshot(name, timestamp, data), nil
}
