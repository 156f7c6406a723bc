package providers

import (
	"errors"
	"fmt"
)

// Official levels
const (
	LevelFederal = "federal"
	LevelState   = "state"
)

// Official represents a single elected official returned by a lookup
type Official struct {
	Level    string                 `json:"level"`
	Office   string                 `json:"office"`
	Name     string                 `json:"name"`
	Party    string                 `json:"party,omitempty"`
	State    string                 `json:"state,omitempty"`
	District string                 `json:"district,omitempty"`
	Phones   []string               `json:"phones,omitempty"`
	URLs     []string               `json:"urls,omitempty"`
	PhotoURL string                 `json:"photo_url,omitempty"`
	IDs      map[string]interface{} `json:"ids,omitempty"`
}

// LookupError represents a user-correctable lookup failure (bad ZIP, no
// geocoding match, no officials for the district). Handlers translate these
// into 400 responses; anything else is treated as an upstream failure.
type LookupError struct {
	Message string
}

func (e *LookupError) Error() string {
	return e.Message
}

// NewLookupError creates a LookupError with a formatted user-facing message
func NewLookupError(format string, args ...interface{}) *LookupError {
	return &LookupError{Message: fmt.Sprintf(format, args...)}
}

// IsLookupError checks if an error is a user-correctable lookup error
func IsLookupError(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}
