package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "esc")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_NavigationBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Up.Keys(), "up")
	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "down")
	assert.Contains(t, km.Down.Keys(), "j")
	assert.Contains(t, km.Search.Keys(), "enter")
	assert.Contains(t, km.Detail.Keys(), "tab")
	assert.Contains(t, km.Edit.Keys(), "/")
}

func TestDefaultKeyMap_TogglesHaveAltChord(t *testing.T) {
	km := DefaultKeyMap()

	for _, b := range km.OptionsHelp() {
		assert.Contains(t, b.Help().Key, "alt+")
		found := false
		for _, k := range b.Keys() {
			if len(k) > 4 && k[:4] == "alt+" {
				found = true
			}
		}
		assert.True(t, found, "binding %q has no alt chord", b.Help().Desc)
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	require.Len(t, bindings, 4)
	assert.Equal(t, km.Search, bindings[0])
	assert.Equal(t, km.Quit, bindings[3])
}

func TestResultsHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ResultsHelp()

	require.Len(t, bindings, 5)
	assert.Equal(t, km.Detail, bindings[1])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 4)
	assert.Len(t, bindings[0], 3)
	assert.Len(t, bindings[1], 3)
	assert.Len(t, bindings[2], 6)
	assert.Len(t, bindings[3], 2)
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("esc", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("?", km.Help))
	assert.True(t, Matches("alt+r", km.ToggleRegex))
	assert.True(t, Matches("r", km.ToggleRegex))
	assert.True(t, Matches("+", km.RangeUp))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("a", km.Help))
	assert.False(t, Matches("down", km.Up))
	assert.False(t, Matches("alt+c", km.ToggleRegex))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Search", km.Search},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Detail", km.Detail},
		{"Edit", km.Edit},
		{"ToggleRegex", km.ToggleRegex},
		{"ToggleCase", km.ToggleCase},
		{"ToggleWholeWord", km.ToggleWholeWord},
		{"ToggleMode", km.ToggleMode},
		{"RangeUp", km.RangeUp},
		{"RangeDown", km.RangeDown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := tc.binding.Help()
			assert.NotEmpty(t, h.Key)
			assert.NotEmpty(t, h.Desc)
		})
	}
}
