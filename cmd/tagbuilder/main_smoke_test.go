package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gravitrone/tagbuilder/internal/cmd"
	"github.com/gravitrone/tagbuilder/internal/loader"
	"github.com/gravitrone/tagbuilder/internal/ui"
)

func TestRunTUIMissingCatalogReturnsError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	flags := cmd.Flags{Catalog: filepath.Join(t.TempDir(), "missing", "tags.json")}
	err := runTUI(context.Background(), flags, false, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}

func TestMainHelpFlagDoesNotExit(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"tagbuilder", "--help"}
	defer func() { os.Args = oldArgs }()

	// main() should return normally for help (no os.Exit).
	main()
}

func TestStartWatcherRejectsRemoteCatalog(t *testing.T) {
	s := &cmd.Session{
		Log:    zap.NewNop(),
		Loader: loader.New(),
		Loaded: &loader.Loaded{Source: "https://example.com/tags.json"},
	}
	_, err := startWatcher(context.Background(), s, func(tea.Msg) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local catalog")
}

func TestStartWatcherSendsReloadedIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categories":[{"name":"A","tags":[{"name":"x"}]}]}`), 0o600))

	s := &cmd.Session{
		Log:    zap.NewNop(),
		Loader: loader.New(),
		Loaded: &loader.Loaded{Source: path},
	}
	msgs := make(chan tea.Msg, 4)
	w, err := startWatcher(context.Background(), s, func(m tea.Msg) { msgs <- m })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`{"categories":[{"name":"A","tags":[{"name":"x"},{"name":"y"}]},{"name":"B","tags":[{"name":"z"}]}]}`), 0o600))

	select {
	case m := <-msgs:
		reloaded, ok := m.(ui.CatalogReloadedMsg)
		require.True(t, ok)
		require.NoError(t, reloaded.Err)
		assert.Len(t, reloaded.Index.Categories(), 2)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after catalog edit")
	}
}
