package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderCodeFormat(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code, err := generateOrderCode()
		require.NoError(t, err)

		assert.Len(t, code, codeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r),
				"code %q contains %q outside the alphabet", code, r)
		}
		seen[code] = true
	}

	// 100 draws from a 31^6 space colliding would point at a broken generator
	assert.Greater(t, len(seen), 90)
}

func TestCodeAlphabetOmitsAmbiguousGlyphs(t *testing.T) {
	for _, r := range "0O1IL" {
		assert.False(t, strings.ContainsRune(codeAlphabet, r),
			"alphabet must not contain %q", r)
	}
}
