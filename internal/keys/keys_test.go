package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{
			name:     "Down uses j and down",
			binding:  keys.Down,
			expected: []string{"j", "down"},
		},
		{
			name:     "Up uses k and up",
			binding:  keys.Up,
			expected: []string{"k", "up"},
		},
		{
			name:     "Left uses h and left arrow",
			binding:  keys.Left,
			expected: []string{"h", "left"},
		},
		{
			name:     "Right uses l and right arrow",
			binding:  keys.Right,
			expected: []string{"l", "right"},
		},
		{
			name:     "HalfUp uses ctrl+u",
			binding:  keys.HalfUp,
			expected: []string{"ctrl+u"},
		},
		{
			name:     "HalfDown uses ctrl+d",
			binding:  keys.HalfDown,
			expected: []string{"ctrl+d"},
		},
		{
			name:     "Top uses g and home",
			binding:  keys.Top,
			expected: []string{"g", "home"},
		},
		{
			name:     "Bottom uses G and end",
			binding:  keys.Bottom,
			expected: []string{"G", "end"},
		},
		{
			name:     "FirstCol uses 0 and caret",
			binding:  keys.FirstCol,
			expected: []string{"0", "^"},
		},
		{
			name:     "LastCol uses dollar",
			binding:  keys.LastCol,
			expected: []string{"$"},
		},
		{
			name:     "Quit uses q and ctrl+c",
			binding:  keys.Quit,
			expected: []string{"q", "ctrl+c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_HelpText(t *testing.T) {
	keys := DefaultKeyMap()

	for name, b := range map[string]key.Binding{
		"Up":       keys.Up,
		"Down":     keys.Down,
		"Left":     keys.Left,
		"Right":    keys.Right,
		"PageUp":   keys.PageUp,
		"PageDown": keys.PageDown,
		"HalfUp":   keys.HalfUp,
		"HalfDown": keys.HalfDown,
		"Top":      keys.Top,
		"Bottom":   keys.Bottom,
		"FirstCol": keys.FirstCol,
		"LastCol":  keys.LastCol,
		"Reload":   keys.Reload,
		"Info":     keys.Info,
		"Help":     keys.Help,
		"Escape":   keys.Escape,
		"Quit":     keys.Quit,
	} {
		help := b.Help()
		require.NotEmpty(t, help.Key, "%s key help should not be empty", name)
		require.NotEmpty(t, help.Desc, "%s description should not be empty", name)
	}
}
