package color

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		isDarkMode bool
		expected   bool
	}{
		{"set dark mode", true, true},
		{"set light mode", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Initialize(tt.isDarkMode)
			assert.Equal(t, tt.expected, lipgloss.HasDarkBackground())
		})
	}
}

func TestMark(t *testing.T) {
	assert.True(t, strings.Contains(Mark(true), "✓"))
	assert.True(t, strings.Contains(Mark(false), "✗"))
}
