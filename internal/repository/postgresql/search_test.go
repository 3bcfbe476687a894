package postgresql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"alice":    "%alice%",
		"a_b":      `%a\_b%`,
		"100%":     `%100\%%`,
		`dom\user`: `%dom\\user%`,
		"":         "%%",
	}
	for in, want := range tests {
		assert.Equal(t, want, containsPattern(in), in)
	}
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("0192a3b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b"))
	assert.False(t, isUUID("not-a-uuid"))
	assert.False(t, isUUID("42"))
	assert.False(t, isUUID(""))
}
