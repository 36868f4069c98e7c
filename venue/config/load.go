package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of config loading
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
	MergeFiles          bool
}

// LoadFromFile loads a VenueConfig from a YAML file.
// Sections missing from the file keep the values of Default.
func LoadFromFile(path string, opts LoadOptions) (*VenueConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if opts.ResolvePaths {
		config.ResolvePaths(NewPathResolver(path))
	}

	if opts.MergeFiles {
		if err := config.LoadAndMerge(); err != nil {
			return nil, fmt.Errorf("merging external files: %w", err)
		}
	}

	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("validation errors: %v", errs)
		}
	}

	return config, nil
}

// SaveToFile saves a VenueConfig to a YAML file
func SaveToFile(config *VenueConfig, path string) error {
	NewMetadataCollector().PopulateMetadata(config)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ResolvePaths rewrites the side file names relative to the config's directory.
func (c *VenueConfig) ResolvePaths(resolver *PathResolver) {
	c.Speakers.FromFile = resolver.ResolvePath(c.Speakers.FromFile)
	c.Playback.Audio = resolver.ResolvePath(c.Playback.Audio)
}
