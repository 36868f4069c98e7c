package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// MergeSpeakers appends the speakers listed in FromFile. Inline speakers win over file speakers with the same id.
func (s *Speakers) MergeSpeakers() error {
	if s.FromFile == "" {
		return nil
	}

	data, err := os.ReadFile(s.FromFile)
	if err != nil {
		return fmt.Errorf("reading speakers file: %w", err)
	}

	var fileSpeakers []Speaker
	if err := json.Unmarshal(data, &fileSpeakers); err != nil {
		return fmt.Errorf("parsing speakers file: %w", err)
	}

	for _, speaker := range fileSpeakers {
		if speaker.ID != "" && s.HasSpeaker(speaker.ID) {
			continue
		}
		s.Inline = append(s.Inline, speaker)
	}
	s.FromFile = ""

	return nil
}

// HasSpeaker reports whether an inline speaker uses id.
func (s *Speakers) HasSpeaker(id string) bool {
	for _, speaker := range s.Inline {
		if speaker.ID == id {
			return true
		}
	}
	return false
}

// LoadAndMerge loads all external files and merges their contents
func (c *VenueConfig) LoadAndMerge() error {
	if err := c.Speakers.MergeSpeakers(); err != nil {
		return fmt.Errorf("merging speakers: %w", err)
	}
	return nil
}
