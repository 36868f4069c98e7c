package experiment

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID(time.Date(2026, 3, 14, 20, 30, 5, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^[a-z]+-[a-z]+-20260314-203005$`), id)
}

func TestCreateRunDirectory(t *testing.T) {
	assert := assert.New(t)
	root := filepath.Join(t.TempDir(), RunsDir)

	run, err := CreateRunDirectory(root)
	require.NoError(t, err)
	assert.DirExists(run.Path)
	assert.True(filepath.IsAbs(run.Path))
	assert.Equal(filepath.Join(run.Path, "seats.json"), run.FilePath("seats.json"))

	target, err := os.Readlink(filepath.Join(root, LatestSymlink))
	require.NoError(t, err)
	assert.Equal(run.ID, target)

	src := filepath.Join(t.TempDir(), "venue.yaml")
	require.NoError(t, os.WriteFile(src, []byte("venue: {}\n"), 0644))
	require.NoError(t, run.CopyConfigFile(src))
	copied, err := os.ReadFile(run.FilePath("venue.yaml"))
	require.NoError(t, err)
	assert.Equal("venue: {}\n", string(copied))

	assert.Error(run.CopyConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
