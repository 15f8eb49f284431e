package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256Hasher(t *testing.T) {
	h := NewSHA256Hasher("salt")

	digest, err := h.Hash("admin-secret")
	require.NoError(t, err)
	assert.Len(t, digest, 64)

	assert.True(t, h.Equal("admin-secret", digest))
	assert.False(t, h.Equal("admin-secreT", digest))
	assert.False(t, h.Equal("", digest))

	other, err := NewSHA256Hasher("pepper").Hash("admin-secret")
	require.NoError(t, err)
	assert.NotEqual(t, digest, other)
}
