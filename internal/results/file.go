package results

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/feral-file/ff-timeline/internal/adapter"
	"github.com/feral-file/ff-timeline/internal/domain"
)

const (
	townsDir = "towns"
	dirPerm  = 0o755
	filePerm = 0o644
)

type fileSink struct {
	dir  string
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewFileSink creates a sink writing one indented JSON file per entity.
// Residents land in <dir>/<id>.json and towns in <dir>/towns/<name>.json.
func NewFileSink(dir string, fs adapter.FileSystem, json adapter.JSON) Sink {
	return &fileSink{
		dir:  dir,
		fs:   fs,
		json: json,
	}
}

// Put implements Sink
func (s *fileSink) Put(ctx context.Context, key string, bundle domain.Bundle) error {
	path := s.path(key, bundle.EntityType())

	data, err := s.json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s bundle: %w", bundle.EntityType(), err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}

	if err := s.fs.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// path escapes the key so town names cannot leave the result directory
func (s *fileSink) path(key string, entityType domain.EntityType) string {
	name := url.PathEscape(key) + ".json"
	if entityType == domain.EntityTypeTown {
		return filepath.Join(s.dir, townsDir, name)
	}
	return filepath.Join(s.dir, name)
}

// Close implements Sink
func (s *fileSink) Close() error {
	return nil
}
