package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/adapters/driving/tui"
)

// stubTUIRunner replaces the program runner and records the app it got.
func stubTUIRunner(t *testing.T, err error) **tui.App {
	t.Helper()
	var got *tui.App
	orig := tuiRunner
	tuiRunner = func(app *tui.App) error {
		got = app
		return err
	}
	t.Cleanup(func() { tuiRunner = orig })
	return &got
}

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui <file>", tuiCmd.Use)
	assert.Contains(t, tuiCmd.Long, "Alt+R")
}

func TestTUICmd_RequiresFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "tui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestTUICmd_LoadsDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	got := stubTUIRunner(t, nil)
	path := writeSample(t, "notes.txt", sampleText)

	_, err := execute(t, "tui", path)
	require.NoError(t, err)
	require.NotNil(t, *got)
	assert.Empty(t, (*got).Query())
	assert.Nil(t, (*got).Err())
}

func TestTUICmd_RunnerError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	stubTUIRunner(t, errors.New("no tty"))
	path := writeSample(t, "notes.txt", sampleText)

	_, err := execute(t, "tui", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TUI error: no tty")
}

func TestTUICmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	got := stubTUIRunner(t, nil)

	_, err := execute(t, "tui", "/does/not/exist.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")
	assert.Nil(t, *got)
}

func TestTUICmd_Unconfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	SetServices(nil)

	_, err := execute(t, "tui", "notes.txt")
	assert.ErrorIs(t, err, errSearchUnavailable)
}
