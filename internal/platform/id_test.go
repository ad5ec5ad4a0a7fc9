package platform

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_IsUUID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
}

func TestNewTokenKey_Length(t *testing.T) {
	key, err := NewTokenKey()
	require.NoError(t, err)
	assert.Len(t, key, 40)
}

func TestNewTokenKey_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		key, err := NewTokenKey()
		require.NoError(t, err)
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestNewTokenKey_HexOnly(t *testing.T) {
	key, err := NewTokenKey()
	require.NoError(t, err)
	for _, c := range key {
		assert.Contains(t, "0123456789abcdef", string(c))
	}
}
