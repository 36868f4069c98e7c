package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver locates the side files a venue config names: the speaker list JSON
// (speakers.from_file) and the broadcast audio (playback.audio). Relative names are taken from
// the directory holding the config.
type PathResolver struct {
	baseDir string
}

func NewPathResolver(configPath string) *PathResolver {
	return &PathResolver{baseDir: filepath.Dir(configPath)}
}

// ResolvePath leaves an empty name empty, since an unset side file stays unset.
func (pr *PathResolver) ResolvePath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(pr.baseDir, name)
}

// FileExists reports whether name resolves to a regular file.
func (pr *PathResolver) FileExists(name string) bool {
	info, err := os.Stat(pr.ResolvePath(name))
	return err == nil && info.Mode().IsRegular()
}

// CheckSideFiles reports each side file the config names that is missing, and broadcast audio the
// player cannot decode.
func (pr *PathResolver) CheckSideFiles(c *VenueConfig) []ValidationError {
	var errs []ValidationError
	files := []struct{ field, name string }{
		{"speakers.from_file", c.Speakers.FromFile},
		{"playback.audio", c.Playback.Audio},
	}
	for _, f := range files {
		if f.name != "" && !pr.FileExists(f.name) {
			errs = append(errs, ValidationError{
				Field:   f.field,
				Message: fmt.Sprintf("no such file %s", pr.ResolvePath(f.name)),
			})
		}
	}
	if c.Playback.Audio != "" {
		switch strings.ToLower(filepath.Ext(c.Playback.Audio)) {
		case ".wav", ".mp3":
		default:
			errs = append(errs, ValidationError{
				Field:   "playback.audio",
				Message: "must be a .wav or .mp3 file",
			})
		}
	}
	return errs
}
