package venue

import (
	"errors"
	"fmt"
)

// ConfigurationError reports venue geometry that cannot produce a seat catalog.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid venue configuration: %s: %s", e.Field, e.Message)
}

var (
	ErrUnknownSeat      = errors.New("unknown seat")
	ErrDuplicateSpeaker = errors.New("speaker already joined")
)
