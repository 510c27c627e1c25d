package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		pw, err := TempPassword()
		require.NoError(t, err)

		assert.Len(t, pw, passwordLen)
		assert.True(t, strings.ContainsAny(pw, lower), "missing lowercase: %s", pw)
		assert.True(t, strings.ContainsAny(pw, upper), "missing uppercase: %s", pw)
		assert.True(t, strings.ContainsAny(pw, digits), "missing digit: %s", pw)
		assert.True(t, strings.ContainsAny(pw, symbols), "missing symbol: %s", pw)

		assert.False(t, seen[pw], "duplicate password generated")
		seen[pw] = true
	}
}
