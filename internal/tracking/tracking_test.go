package tracking

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_Shape(t *testing.T) {
	id := NewID()

	assert.True(t, strings.HasPrefix(id, Prefix))
	assert.True(t, Valid(id), id)

	parsed, err := uuid.Parse(strings.TrimPrefix(id, Prefix))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestNewID_Distinct(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	assert.False(t, Valid("TRACK-123"))
	assert.False(t, Valid("track-0b3f0c1e-5d5b-4a4e-9c55-3c2b8d8f4a11"))
	assert.True(t, Valid("TRACK-0B3F0C1E-5D5B-4A4E-9C55-3C2B8D8F4A11"))
}
