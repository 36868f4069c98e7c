// Package experiment keeps the output of every CLI run in its own directory.
package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jdginn/go-virtual-venue/internal/log"
)

const (
	RunsDir       = "runs"
	LatestSymlink = "latest"
)

type RunDir struct {
	Path      string    // Absolute path to the run directory
	ID        string    // Unique run identifier
	Timestamp time.Time // When the run was created
}

// CreateRunDirectory creates a new run directory under root and points root/latest at it.
func CreateRunDirectory(root string) (*RunDir, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating runs directory: %w", err)
	}

	now := time.Now().UTC()
	id := GenerateRunID(now)

	absPath, err := filepath.Abs(filepath.Join(root, id))
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	if err := os.Mkdir(absPath, 0755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	latestPath := filepath.Join(root, LatestSymlink)
	_ = os.Remove(latestPath)
	if err := os.Symlink(id, latestPath); err != nil {
		log.Warn("failed to create latest symlink", "path", latestPath, "err", err)
	}

	return &RunDir{
		Path:      absPath,
		ID:        id,
		Timestamp: now,
	}, nil
}

// FilePath returns the absolute path for a file in the run directory
func (r *RunDir) FilePath(filename string) string {
	return filepath.Join(r.Path, filename)
}

// CopyConfigFile copies the config a run was made from into the run directory
func (r *RunDir) CopyConfigFile(srcPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	destPath := r.FilePath(filepath.Base(srcPath))
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
