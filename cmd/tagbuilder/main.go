package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitrone/tagbuilder/internal/cmd"
	"github.com/gravitrone/tagbuilder/internal/loader"
	"github.com/gravitrone/tagbuilder/internal/logging"
	"github.com/gravitrone/tagbuilder/internal/ui"
	"github.com/gravitrone/tagbuilder/internal/watch"
)

func main() {
	var flags cmd.Flags
	var watchFile bool
	var text string

	root := &cobra.Command{
		Use:   "tagbuilder",
		Short: "tagbuilder - build tag strings by clicking or typing",
		Long:  "tagbuilder: pick tags from a catalog in a TUI where clicks and free text stay in sync, or resolve text from scripts with the subcommands.",
		RunE: func(c *cobra.Command, _ []string) error {
			return runTUI(c.Context(), flags, watchFile, text)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.Register(root)
	root.Flags().BoolVarP(&watchFile, "watch", "w", false, "reload the catalog when its file changes")
	root.Flags().StringVarP(&text, "text", "t", "", "start from this text when nothing is autosaved")

	root.AddCommand(cmd.ParseCmd())
	root.AddCommand(cmd.ClickCmd())
	root.AddCommand(cmd.ValidateCmd())
	root.AddCommand(cmd.TagsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(ctx context.Context, flags cmd.Flags, watchFile bool, text string) error {
	logFile, err := logging.DefaultFile()
	if err != nil {
		return err
	}
	s, err := cmd.OpenSession(ctx, flags, cmd.OpenOptions{LogFile: logFile})
	if err != nil {
		return err
	}
	defer s.Close()

	opts := ui.Options{
		Config:      s.Config,
		CatalogKey:  s.Loaded.Source,
		Logger:      s.Log,
		InitialText: text,
		Dedup:       s.Dedup,
	}
	if s.Store != nil {
		opts.Autosave = s.Store
	}

	p := tea.NewProgram(ui.NewApp(s.Engine, opts), tea.WithAltScreen())

	if watchFile {
		w, err := startWatcher(ctx, s, p.Send)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// startWatcher reloads the session's catalog file on change and sends the
// result to the program.
func startWatcher(ctx context.Context, s *cmd.Session, send func(tea.Msg)) (*watch.Watcher, error) {
	source := s.Loaded.Source
	if loader.IsRemote(source) {
		return nil, fmt.Errorf("--watch needs a local catalog, got %s", source)
	}

	reload := func(string) {
		loaded, err := s.Loader.Load(ctx, source)
		switch {
		case err != nil:
			send(ui.CatalogReloadedMsg{Err: err})
		case loaded.FellBack:
			send(ui.CatalogReloadedMsg{Err: fmt.Errorf("%s no longer loads", source)})
		default:
			send(ui.CatalogReloadedMsg{Index: loaded.Index})
		}
	}
	return watch.New(source, reload,
		watch.WithLogger(s.Log),
		watch.WithErrorHandler(func(err error) {
			s.Log.Warn("catalog watch", zap.Error(err))
		}))
}
