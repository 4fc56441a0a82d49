// Package tracking generates shipment tracker identifiers.
package tracking

import (
	"regexp"

	"github.com/google/uuid"
)

// Prefix starts every tracker id.
const Prefix = "TRACK-"

var idPattern = regexp.MustCompile(`^TRACK-[0-9a-fA-F-]{36}$`)

// Generator produces a new tracker id on each call.
type Generator func() string

// NewID returns TRACK- followed by a random UUID in canonical form.
func NewID() string {
	return Prefix + uuid.NewString()
}

// Valid reports whether id has the shape produced by NewID.
func Valid(id string) bool {
	return idPattern.MatchString(id)
}
