package experiment

import (
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"velvet", "gilded", "hushed", "dim", "crimson", "golden", "empty", "crowded",
		"quiet", "opening", "closing", "late", "matinee", "midnight", "encore", "grand",
		"tiered", "curved", "distant", "front", "balcony", "smoky", "bright", "faded",
		"restless", "patient", "whispering", "roaring", "silent", "ornate", "plush", "worn",
	}

	nouns = []string{
		"curtain", "stage", "aisle", "balcony", "chorus", "overture", "encore", "spotlight",
		"usher", "ticket", "lobby", "foyer", "gallery", "orchestra", "proscenium", "wing",
		"footlight", "prompter", "mezzanine", "box", "dress", "interval", "premiere", "marquee",
		"echo", "applause", "murmur", "hum", "seat", "row", "screen", "reel",
	}
)

// GenerateRunName creates a memorable identifier in the format "adjective-noun"
func GenerateRunName() string {
	return adjectives[rand.Intn(len(adjectives))] + "-" + nouns[rand.Intn(len(nouns))]
}

// GenerateRunID appends the UTC timestamp of t to a memorable name
func GenerateRunID(t time.Time) string {
	return GenerateRunName() + "-" + t.UTC().Format("20060102-150405")
}
