package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenKey(t *testing.T) {
	hexKey := regexp.MustCompile(`^[0-9a-f]{40}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		key, err := GenerateTokenKey()
		require.NoError(t, err)
		assert.Regexp(t, hexKey, key)

		_, dup := seen[key]
		assert.False(t, dup, "token keys must not repeat")
		seen[key] = struct{}{}
	}
}
