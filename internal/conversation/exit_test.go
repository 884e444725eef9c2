package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExit(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"bye", true},
		{"Bye.", true},
		{" BYE ", true},
		{"bye.", true},
		{"  BYE.  ", true},
		{"b.y.e", true},
		{"goodbye", false},
		{"bye bye", false},
		{"bye!", false},
		{"", false},
		{"hello", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExit(tt.input))
		})
	}
}

func TestNormalizeUtterance(t *testing.T) {
	assert.Equal(t, "see you", NormalizeUtterance("  See you.  "))
	// periods are stripped after trimming, so inner spacing survives
	assert.Equal(t, "bye ", NormalizeUtterance("bye ."))
}
