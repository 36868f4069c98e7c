package config

import (
	"os/exec"
	"strings"
	"time"
)

// MetadataCollector stamps a config with when and from which commit it was written
type MetadataCollector struct {
	timestamp time.Time
	gitCommit string
}

// NewMetadataCollector captures the current time. The commit is left empty outside a git checkout.
func NewMetadataCollector() *MetadataCollector {
	commit, _ := getCurrentGitCommit()
	return &MetadataCollector{
		timestamp: time.Now().UTC(),
		gitCommit: commit,
	}
}

func getCurrentGitCommit() (string, error) {
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// PopulateMetadata fills in the metadata fields of the config
func (mc *MetadataCollector) PopulateMetadata(config *VenueConfig) {
	config.Metadata.Timestamp = mc.timestamp.Format("2006-01-02 15:04:05")
	config.Metadata.GitCommit = mc.gitCommit
}
