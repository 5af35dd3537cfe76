package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/tagbuilder/internal/catalog"
	"github.com/gravitrone/tagbuilder/internal/config"
	"github.com/gravitrone/tagbuilder/internal/engine"
	"github.com/gravitrone/tagbuilder/internal/store"
	"github.com/gravitrone/tagbuilder/internal/ui/components"
)

const testCatalog = `{
  "characterLimit": 20,
  "reference": "# Guide\n\nPick lighting first.",
  "categories": [
    {"name": "Mood", "tags": [
      {"name": ["Bright", "Luminous"], "alternative": "well-lit"},
      {"name": "Dark", "alternative": "dim", "subgroup": "Shade"}
    ]},
    {"name": "Style", "type": "single", "requirement": "atLeastOne", "tags": [
      {"name": "Noir", "main": true},
      {"name": "Watercolor Painting"}
    ]}
  ]
}`

type fakeSaver struct {
	texts map[string]string
	err   error
}

func newFakeSaver() *fakeSaver {
	return &fakeSaver{texts: map[string]string{}}
}

func (f *fakeSaver) SaveText(_ context.Context, key, text string) error {
	if f.err != nil {
		return f.err
	}
	f.texts[key] = text
	return nil
}

func (f *fakeSaver) LoadText(_ context.Context, key string) (string, error) {
	text, ok := f.texts[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return text, nil
}

func buildIndex(t *testing.T, payload string) *catalog.Index {
	t.Helper()
	cat, err := catalog.Decode([]byte(payload), catalog.FormatJSON)
	require.NoError(t, err)
	ix, err := catalog.Build(cat)
	require.NoError(t, err)
	return ix
}

func testApp(t *testing.T, saver Autosaver, initial string) App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { ApplyTheme("auto") })

	cfg := config.Defaults()
	cfg.Theme = "dark"
	e := engine.New(buildIndex(t, testCatalog), engine.WithLimitEnabled(cfg.LimitEnabled))
	return NewApp(e, Options{
		Config:      &cfg,
		Autosave:    saver,
		CatalogKey:  "tags.json",
		InitialText: initial,
	})
}

func press(t *testing.T, app App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := app.Update(msg)
	return model.(App), cmd
}

func typeText(t *testing.T, app App, text string) App {
	t.Helper()
	for _, r := range text {
		app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return app
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestAppRowsFollowGroups(t *testing.T) {
	app := testApp(t, nil, "")

	names := make([]string, 0, len(app.rows))
	for _, r := range app.rows {
		names = append(names, r.name)
	}
	assert.Equal(t, []string{"Bright", "Luminous", "Dark"}, names)
	assert.True(t, app.rows[1].variant)
	assert.Equal(t, "Shade", app.rows[2].title)
	assert.Equal(t, 3, app.list.Len)
}

func TestAppClickFillsTextAndAutosaves(t *testing.T) {
	saver := newFakeSaver()
	app := testApp(t, saver, "")

	app, cmd := press(t, app, keySpace)
	assert.Equal(t, "Bright", app.input.Value())
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, autosavedMsg{}, msg)
	assert.Equal(t, "Bright", saver.texts["tags.json"])

	// The variant replaces the main name.
	app, _ = press(t, app, keyDown)
	app, _ = press(t, app, keySpace)
	assert.Equal(t, "Luminous", app.input.Value())

	// Clicking the selected variant deselects.
	app, _ = press(t, app, keySpace)
	assert.Equal(t, "", app.input.Value())
}

func TestAppAutosaveErrorIsLoggedNotFatal(t *testing.T) {
	saver := newFakeSaver()
	saver.err = errors.New("disk full")
	app := testApp(t, saver, "")

	app, cmd := press(t, app, keySpace)
	require.NotNil(t, cmd)
	app, _ = press(t, app, cmd())
	assert.Equal(t, "Bright", app.input.Value())
	assert.Nil(t, app.toast)
}

func TestAppLimitRejectionFlashesAndRestores(t *testing.T) {
	app := testApp(t, nil, "")

	app, _ = press(t, app, keySpace)
	app, _ = press(t, app, keyRight)
	app, _ = press(t, app, keyDown)
	app, cmd := press(t, app, keySpace)

	require.NotNil(t, cmd)
	assert.True(t, app.flashing)
	assert.Equal(t, "Bright", app.input.Value())
	assert.Equal(t, "Bright", app.engine.Canonical())
	assert.Contains(t, components.SanitizeText(app.View()), "LIMIT!")

	// A stale flash timer does not clear a newer flash.
	app, _ = press(t, app, clearFlashMsg{seq: app.flashSeq - 1})
	assert.True(t, app.flashing)

	app, _ = press(t, app, clearFlashMsg{seq: app.flashSeq})
	assert.False(t, app.flashing)
}

func TestAppToggleLimitPersistsAndAllowsLongerText(t *testing.T) {
	app := testApp(t, nil, "")

	app, cmd := press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'L'}})
	require.NotNil(t, cmd)
	assert.False(t, app.engine.LimitEnabled())

	saved, err := config.Load()
	require.NoError(t, err)
	assert.False(t, saved.LimitEnabled)

	app, _ = press(t, app, keySpace)
	app, _ = press(t, app, keyRight)
	app, _ = press(t, app, keyDown)
	app, _ = press(t, app, keySpace)
	assert.False(t, app.flashing)
	assert.Equal(t, "Bright, Watercolor Painting", app.input.Value())
	assert.Contains(t, components.SanitizeText(app.View()), "(limit off)")
}

func TestAppTypingReparses(t *testing.T) {
	saver := newFakeSaver()
	app := testApp(t, saver, "")

	app, _ = press(t, app, keyTab)
	assert.Equal(t, focusInput, app.focus)

	app = typeText(t, app, "dark, zz, q")
	assert.Equal(t, "dark, zz, q", app.input.Value())
	assert.Equal(t, []string{"zz", "q"}, app.unrecognized)

	mood, err := app.engine.Selected("Mood")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dark"}, mood)
	assert.Contains(t, components.SanitizeText(app.View()), "unrecognized: zz, q")

	app, _ = press(t, app, keyEsc)
	assert.Equal(t, focusTags, app.focus)
}

func TestAppCategoryNavigation(t *testing.T) {
	app := testApp(t, nil, "")

	app, _ = press(t, app, keyRight)
	assert.Equal(t, 1, app.catIdx)
	assert.Equal(t, "Noir", app.rows[0].name)

	app, _ = press(t, app, keyRight)
	assert.Equal(t, 0, app.catIdx)

	app, _ = press(t, app, keyLeft)
	assert.Equal(t, 1, app.catIdx)

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	assert.Equal(t, 0, app.catIdx)

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
	assert.Equal(t, 0, app.catIdx)
}

func TestAppClearConfirm(t *testing.T) {
	app := testApp(t, nil, "")
	app, _ = press(t, app, keySpace)

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.True(t, app.clearConfirm)
	assert.Contains(t, components.SanitizeText(app.View()), "Deselect every tag")

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.False(t, app.clearConfirm)
	assert.Equal(t, "Bright", app.input.Value())

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.False(t, app.clearConfirm)
	assert.Equal(t, "", app.input.Value())
	assert.Equal(t, "", app.engine.Canonical())
}

func TestAppCopyUsesClipboard(t *testing.T) {
	var copied []string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = orig })

	app := testApp(t, nil, "")

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.NotNil(t, app.toast)
	assert.Equal(t, "warning", app.toast.level)
	assert.Empty(t, copied)

	app, _ = press(t, app, keySpace)
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'C'}})
	assert.Equal(t, []string{"Bright", "well-lit"}, copied)
	assert.Equal(t, "success", app.toast.level)
}

func TestAppCopyFailureShowsError(t *testing.T) {
	orig := clipboardWriteAll
	clipboardWriteAll = func(string) error { return errors.New("no display") }
	t.Cleanup(func() { clipboardWriteAll = orig })

	app := testApp(t, nil, "Dark")
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.NotNil(t, app.toast)
	assert.Equal(t, "error", app.toast.level)
	assert.Contains(t, app.toast.text, "no display")
}

func TestAppReloadRederivesFromText(t *testing.T) {
	app := testApp(t, nil, "Bright, Noir")
	app, _ = press(t, app, keyRight)

	next := buildIndex(t, `{"categories": [{"name": "Mood", "tags": [{"name": "Bright"}, {"name": "Dark"}]}]}`)
	app, _ = press(t, app, CatalogReloadedMsg{Index: next})

	assert.Equal(t, 0, app.catIdx)
	assert.Equal(t, []string{"Noir"}, app.unrecognized)
	assert.Equal(t, "Bright", app.engine.Canonical())
	assert.Len(t, app.rows, 2)
	require.NotNil(t, app.toast)
	assert.Equal(t, "success", app.toast.level)

	app, _ = press(t, app, CatalogReloadedMsg{Err: errors.New("bad json")})
	assert.Equal(t, "error", app.toast.level)
	assert.Equal(t, "Bright", app.engine.Canonical())
}

func TestAppHydratesFromAutosaveBeforeInitialText(t *testing.T) {
	saver := newFakeSaver()
	saver.texts["tags.json"] = "Noir"

	app := testApp(t, saver, "Bright")
	assert.Equal(t, "Noir", app.input.Value())
	style, err := app.engine.Selected("Style")
	require.NoError(t, err)
	assert.Equal(t, []string{"Noir"}, style)

	app = testApp(t, newFakeSaver(), "Bright")
	assert.Equal(t, "Bright", app.input.Value())
	assert.Equal(t, "Bright", app.engine.Canonical())
}

func TestAppViewShowsMeterTabsAndAlternative(t *testing.T) {
	app := testApp(t, nil, "")
	app, _ = press(t, app, tea.WindowSizeMsg{Width: 100, Height: 40})
	app, _ = press(t, app, keySpace)

	view := components.SanitizeText(app.View())
	assert.Contains(t, view, "6/20")
	assert.Contains(t, view, "Mood (1)")
	assert.Contains(t, view, "Style !")
	assert.Contains(t, view, "Alternative")
	assert.Contains(t, view, "well-lit")
	assert.Contains(t, view, "Shade")

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.NotContains(t, components.SanitizeText(app.View()), "well-lit")
}

func TestAppRequirementWarningShowsInTagBox(t *testing.T) {
	app := testApp(t, nil, "")
	app, _ = press(t, app, keyRight)
	assert.Contains(t, components.SanitizeText(app.View()), "! Select at least one tag")

	app, _ = press(t, app, keySpace)
	assert.NotContains(t, components.SanitizeText(app.View()), "Select at least one tag")
}

func TestAppHelpAndReference(t *testing.T) {
	app := testApp(t, nil, "")

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.True(t, app.helpOpen)
	assert.Contains(t, components.SanitizeText(app.View()), "toggle character limit")
	app, _ = press(t, app, keyEsc)
	assert.False(t, app.helpOpen)

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.True(t, app.referenceOpen)
	assert.Contains(t, components.SanitizeText(app.View()), "Guide")

	// Keys other than close are swallowed while the panel is open.
	app, _ = press(t, app, keySpace)
	assert.Equal(t, "", app.input.Value())

	app, _ = press(t, app, keyEsc)
	assert.False(t, app.referenceOpen)
}

func TestAppReferenceMissingShowsToast(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	e := engine.New(buildIndex(t, `{"categories": [{"name": "A", "tags": [{"name": "x"}]}]}`))
	app := NewApp(e, Options{})

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.False(t, app.referenceOpen)
	require.NotNil(t, app.toast)
	assert.Contains(t, app.toast.text, "no reference")
}

func TestAppThemeCyclesAndPersists(t *testing.T) {
	app := testApp(t, nil, "")

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.Equal(t, "light", app.config.Theme)
	assert.Equal(t, "light", ActiveTheme())

	saved, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "light", saved.Theme)
}

func TestAppDedupToggle(t *testing.T) {
	app := testApp(t, nil, "")
	assert.False(t, app.dedup)

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	assert.True(t, app.dedup)
	assert.Contains(t, app.toast.text, "on")
}

func TestAppQuitKeys(t *testing.T) {
	app := testApp(t, nil, "")

	_, cmd := press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	// In the text field q is just a letter; ctrl+c still quits.
	app, _ = press(t, app, keyTab)
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, "q", app.input.Value())

	_, cmd = press(t, app, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestAppClampsCursorOnResize(t *testing.T) {
	app := testApp(t, nil, "")
	app, _ = press(t, app, tea.WindowSizeMsg{Width: 80, Height: 10})
	assert.Equal(t, 3, app.list.PageSize)

	app, _ = press(t, app, tea.WindowSizeMsg{Width: 80, Height: 0})
	assert.Equal(t, defaultPageSize, app.list.PageSize)
}
