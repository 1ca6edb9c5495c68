// Package storage provides the JSON-file persistence layer for the
// assessment pipeline: the current assessment, the append-only snapshot
// archive, and the change-log collection. These files are the published
// interface read by the dashboard, so every write is atomic
// (write-to-temp-then-rename) and a reader never observes a partial
// document.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"riskwatch/internal/catalog"
)

const (
	currentFile   = "current.json"
	changelogFile = "changelog.json"
	metadataFile  = "categories.json"
	snapshotsDir  = "snapshots"
)

// Store reads and writes the published assessment documents under one data
// directory.
type Store struct {
	catalog  *catalog.Catalog
	validate *validator.Validate
	dataDir  string
}

// New creates a store rooted at dataDir, creating the directory layout if
// needed.
func New(dataDir string, cat *catalog.Catalog) (*Store, error) {
	if err := validateString(dataDir, "dataDir"); err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: catalog", ErrNilParameter)
	}

	if err := os.MkdirAll(filepath.Join(dataDir, snapshotsDir), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Store{
		dataDir:  dataDir,
		catalog:  cat,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// DataDir returns the directory the store persists into.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) currentPath() string {
	return filepath.Join(s.dataDir, currentFile)
}

func (s *Store) changelogPath() string {
	return filepath.Join(s.dataDir, changelogFile)
}

func (s *Store) metadataPath() string {
	return filepath.Join(s.dataDir, metadataFile)
}

func (s *Store) snapshotPath(date string) string {
	return filepath.Join(s.dataDir, snapshotsDir, date+".json")
}

// writeJSON marshals v and atomically replaces path with the result. The
// temp file lives in the target directory so the rename stays on one
// filesystem.
func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}

	return nil
}
