package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	u := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Golang", "golang"},
		{"spaces to dashes", "Web Development", "web-development"},
		{"underscores to dashes", "unit_testing", "unit-testing"},
		{"slashes to dashes", "tips/tricks", "tips-tricks"},
		{"trim whitespace", "  DevOps  ", "devops"},
		{"collapse separators", "a   b", "a-b"},
		{"strip punctuation", "C++", "c"},
		{"strip emoji", "go 🚀 fast", "go-fast"},
		{"collapse dashes", "a--b", "a-b"},
		{"trim dashes", "-edge-", "edge"},
		{"numbers kept", "Top 10", "top-10"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, u.Slugify(tt.input))
		})
	}
}

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	first, err := u.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	assert.Len(t, first, 26)

	second, err := u.NewULIDFromTimestamp(time.Now().Add(time.Second))
	require.NoError(t, err)

	// IDs sort by creation time.
	assert.Less(t, first, second)
}
