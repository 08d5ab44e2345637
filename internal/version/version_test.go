package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoContainsVersion(t *testing.T) {
	info := Info()
	assert.Contains(t, info, "cellbridge")
	assert.Contains(t, info, Version)
}

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"long_commit", "abcdef1234567890", "abcdef1"},
		{"exact_seven", "abcdef1", "abcdef1"},
		{"shorter", "abc", "abc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, short(tt.in))
		})
	}
}
