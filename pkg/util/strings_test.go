package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"shorter than limit", "abc", 10, "abc"},
		{"exact limit", "abcde", 5, "abcde"},
		{"cut", "abcdefgh", 3, "abc"},
		{"zero", "abc", 0, ""},
		{"does not split runes", "héllo", 2, "h"},
		{"multibyte boundary", "héllo", 3, "hé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.n))
		})
	}
}

func TestStringValue(t *testing.T) {
	s := "x"
	assert.Equal(t, "x", StringValue(&s))
	assert.Equal(t, "", StringValue(nil))
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	p := StringPtr("ref")
	if assert.NotNil(t, p) {
		assert.Equal(t, "ref", *p)
	}
}
