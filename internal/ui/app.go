package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/gravitrone/tagbuilder/internal/catalog"
	"github.com/gravitrone/tagbuilder/internal/config"
	"github.com/gravitrone/tagbuilder/internal/engine"
	"github.com/gravitrone/tagbuilder/internal/store"
	"github.com/gravitrone/tagbuilder/internal/ui/components"
)

type focusArea int

const (
	focusTags focusArea = iota
	focusInput
)

const (
	toastDuration      = 2500 * time.Millisecond
	limitFlashDuration = 800 * time.Millisecond
	autosaveTimeout    = 2 * time.Second
	defaultPageSize    = 12
)

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// --- Messages ---

type clearToastMsg struct{}
type clearFlashMsg struct{ seq int }
type autosavedMsg struct{ err error }

// CatalogReloadedMsg carries a rebuilt index after the catalog source changed.
type CatalogReloadedMsg struct {
	Index *catalog.Index
	Err   error
}

type appToast struct {
	level string
	text  string
}

// Autosaver persists the free text for a catalog between runs.
type Autosaver interface {
	SaveText(ctx context.Context, catalogKey, text string) error
	LoadText(ctx context.Context, catalogKey string) (string, error)
}

// tagRow is one selectable name in the current category's list.
type tagRow struct {
	name    string
	desc    string
	group   int
	title   string
	variant bool
}

// Options configure NewApp.
type Options struct {
	Config     *config.Config
	Autosave   Autosaver
	CatalogKey string
	Logger     *zap.Logger
	// InitialText is parsed on start when there is no autosaved text.
	InitialText string
	Dedup       bool
}

// --- App Model ---

// App is the tag builder TUI: a free-text field kept in sync with a tag
// list per category.
type App struct {
	engine     *engine.Engine
	config     *config.Config
	autosave   Autosaver
	catalogKey string
	log        *zap.Logger

	width  int
	height int

	focus  focusArea
	catIdx int
	rows   []tagRow
	list   *components.List
	input  textinput.Model

	unrecognized []string
	flashing     bool
	flashSeq     int
	toast        *appToast

	helpOpen      bool
	referenceOpen bool
	reference     string
	clearConfirm  bool

	dedup   bool
	showAlt bool
}

// NewApp creates the root model around an engine and hydrates it from the
// autosave or the initial text.
func NewApp(e *engine.Engine, opts Options) App {
	cfg := opts.Config
	if cfg == nil {
		d := config.Defaults()
		cfg = &d
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ApplyTheme(cfg.Theme)

	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("Type tags separated by %q", e.Index().Separator())
	ti.Prompt = "│ "
	ti.CharLimit = 4096
	ti.Width = 80

	a := App{
		engine:     e,
		config:     cfg,
		autosave:   opts.Autosave,
		catalogKey: opts.CatalogKey,
		log:        log,
		list:       components.NewList(defaultPageSize),
		input:      ti,
		dedup:      opts.Dedup || cfg.DedupAlternatives,
		showAlt:    cfg.ShowAlternative,
	}
	a.rebuildRows()
	a.hydrate(opts.InitialText)
	return a
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if w := components.BoxContentWidth(a.width) - 4; w > 20 {
			a.input.Width = w
		}
		a.list.SetPageSize(a.pageSize())
		return a, nil
	case clearToastMsg:
		a.toast = nil
		return a, nil
	case clearFlashMsg:
		if msg.seq == a.flashSeq {
			a.flashing = false
		}
		return a, nil
	case autosavedMsg:
		if msg.err != nil {
			a.log.Warn("autosave failed", zap.Error(msg.err))
		}
		return a, nil
	case CatalogReloadedMsg:
		return a.applyReload(msg)
	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.focus == focusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	if a.clearConfirm {
		switch {
		case isKey(msg, "y", "Y"):
			a.clearConfirm = false
			cmd := a.clearAll()
			return a, cmd
		case isKey(msg, "n", "N") || isBack(msg):
			a.clearConfirm = false
		}
		return a, nil
	}
	if a.helpOpen {
		if isBack(msg) || isKey(msg, "?", "q") {
			a.helpOpen = false
		}
		return a, nil
	}
	if a.referenceOpen {
		if isBack(msg) || isKey(msg, "r", "q") {
			a.referenceOpen = false
		}
		return a, nil
	}

	if isFocusSwitch(msg) {
		if a.focus == focusInput {
			return a.focusTagList()
		}
		return a.focusTextInput()
	}
	if a.focus == focusInput {
		return a.handleInputKey(msg)
	}
	return a.handleTagsKey(msg)
}

func (a App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isBack(msg) || isEnter(msg) {
		return a.focusTagList()
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() == before {
		return a, cmd
	}
	save := a.reparse()
	return a, tea.Batch(cmd, save)
}

func (a App) handleTagsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case isQuit(msg):
		return a, tea.Quit
	case isUp(msg):
		a.list.Up()
	case isDown(msg):
		a.list.Down()
	case isLeft(msg):
		a.switchCategory(a.catIdx - 1)
	case isRight(msg):
		a.switchCategory(a.catIdx + 1)
	case isSpace(msg) || isEnter(msg):
		cmd = a.clickCurrent()
	case isKey(msg, "/", "i"):
		return a.focusTextInput()
	case isKey(msg, "L"):
		cmd = a.toggleLimit()
	case isKey(msg, "d"):
		a.dedup = !a.dedup
		cmd = a.setToast("info", "Deduplicate alternatives: "+onOff(a.dedup))
	case isKey(msg, "a"):
		a.showAlt = !a.showAlt
	case isKey(msg, "t"):
		cmd = a.cycleTheme()
	case isKey(msg, "c"):
		cmd = a.copy("tags", a.input.Value())
	case isKey(msg, "C"):
		cmd = a.copy("alternative", a.engine.Alternative(a.dedup))
	case isKey(msg, "x"):
		a.clearConfirm = true
	case isKey(msg, "?"):
		a.helpOpen = true
	case isKey(msg, "r"):
		cmd = a.openReference()
	default:
		if idx, ok := categoryIndexForKey(msg); ok && idx < len(a.engine.Index().Categories()) {
			a.switchCategory(idx)
		}
	}
	return a, cmd
}

func (a App) focusTextInput() (tea.Model, tea.Cmd) {
	a.focus = focusInput
	cmd := a.input.Focus()
	return a, cmd
}

func (a App) focusTagList() (tea.Model, tea.Cmd) {
	a.focus = focusTags
	a.input.Blur()
	return a, nil
}

// --- Engine Actions ---

func (a *App) hydrate(fallback string) {
	text := fallback
	if a.config.Autosave && a.autosave != nil {
		ctx, cancel := context.WithTimeout(context.Background(), autosaveTimeout)
		defer cancel()
		saved, err := a.autosave.LoadText(ctx, a.catalogKey)
		switch {
		case err == nil:
			text = saved
		case errors.Is(err, store.ErrNotFound):
		default:
			a.log.Warn("load autosave", zap.Error(err))
		}
	}
	if text == "" {
		return
	}
	res := a.engine.Parse(text)
	a.unrecognized = res.Unrecognized
	a.input.SetValue(text)
	a.input.CursorEnd()
}

func (a *App) reparse() tea.Cmd {
	res := a.engine.Parse(a.input.Value())
	a.unrecognized = res.Unrecognized
	return a.autosaveCmd()
}

func (a *App) clickCurrent() tea.Cmd {
	cat := a.category()
	if cat == nil || len(a.rows) == 0 {
		return nil
	}
	row := a.rows[a.list.Selected()]
	res, err := a.engine.Click(cat.Name(), row.name)
	if err != nil {
		a.log.Warn("click failed", zap.String("category", cat.Name()), zap.String("tag", row.name), zap.Error(err))
		return a.setToast("error", err.Error())
	}
	if res.Rejected {
		a.flashSeq++
		a.flashing = true
		seq := a.flashSeq
		return tea.Tick(limitFlashDuration, func(time.Time) tea.Msg {
			return clearFlashMsg{seq: seq}
		})
	}
	a.input.SetValue(res.Canonical)
	a.input.CursorEnd()
	a.unrecognized = nil
	return a.autosaveCmd()
}

func (a *App) clearAll() tea.Cmd {
	a.engine.Parse("")
	a.input.SetValue("")
	a.unrecognized = nil
	return tea.Batch(a.autosaveCmd(), a.setToast("info", "Selection cleared"))
}

func (a App) autosaveCmd() tea.Cmd {
	if a.autosave == nil || !a.config.Autosave {
		return nil
	}
	saver, key, text := a.autosave, a.catalogKey, a.input.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), autosaveTimeout)
		defer cancel()
		return autosavedMsg{err: saver.SaveText(ctx, key, text)}
	}
}

func (a App) applyReload(msg CatalogReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.log.Warn("catalog reload failed", zap.Error(msg.Err))
		cmd := a.setToast("error", "Reload failed: "+msg.Err.Error())
		return a, cmd
	}
	res := a.engine.Reload(msg.Index, a.input.Value())
	a.unrecognized = res.Unrecognized
	if n := len(msg.Index.Categories()); a.catIdx >= n {
		a.catIdx = 0
	}
	a.referenceOpen = false
	a.rebuildRows()
	cmd := a.setToast("success", "Catalog reloaded")
	return a, cmd
}

func (a *App) toggleLimit() tea.Cmd {
	enabled := !a.engine.LimitEnabled()
	a.engine.SetLimitEnabled(enabled)
	a.config.LimitEnabled = enabled
	if err := a.config.Save(); err != nil {
		return a.setToast("error", fmt.Sprintf("save config: %v", err))
	}
	return a.setToast("info", "Character limit: "+onOff(enabled))
}

func (a *App) cycleTheme() tea.Cmd {
	name := a.config.CycleTheme()
	ApplyTheme(name)
	a.reference = ""
	if err := a.config.Save(); err != nil {
		return a.setToast("error", fmt.Sprintf("save config: %v", err))
	}
	return a.setToast("info", "Theme: "+name)
}

func (a *App) copy(what, text string) tea.Cmd {
	if text == "" {
		return a.setToast("warning", "Nothing to copy")
	}
	if err := clipboardWriteAll(text); err != nil {
		a.log.Warn("clipboard write failed", zap.Error(err))
		return a.setToast("error", fmt.Sprintf("copy %s: %v", what, err))
	}
	return a.setToast("success", "Copied "+what)
}

func (a *App) openReference() tea.Cmd {
	md := a.engine.Index().Reference()
	if strings.TrimSpace(md) == "" {
		return a.setToast("info", "This catalog has no reference")
	}
	out, err := renderReference(md, a.config.Theme, a.width)
	if err != nil {
		return a.setToast("error", err.Error())
	}
	a.reference = out
	a.referenceOpen = true
	return nil
}

// --- Category List ---

func (a App) category() *catalog.CategoryIndex {
	cats := a.engine.Index().Categories()
	if a.catIdx < 0 || a.catIdx >= len(cats) {
		return nil
	}
	return cats[a.catIdx]
}

func (a *App) switchCategory(idx int) {
	n := len(a.engine.Index().Categories())
	if n == 0 {
		return
	}
	a.catIdx = ((idx % n) + n) % n
	a.list.Reset()
	a.rebuildRows()
}

func (a *App) rebuildRows() {
	a.rows = nil
	if cat := a.category(); cat != nil {
		for gi, sg := range cat.Groups() {
			title := sg.Title
			if sg.TitleHidden() {
				title = ""
			}
			for _, item := range sg.Items {
				for i, name := range item.Names {
					row := tagRow{name: name, group: gi, title: title, variant: i > 0}
					if i == 0 {
						row.desc = item.Description
					}
					a.rows = append(a.rows, row)
				}
			}
		}
	}
	a.list.SetLen(len(a.rows))
}

func (a App) pageSize() int {
	if a.height <= 0 {
		return defaultPageSize
	}
	// Banner, tabs, input, meter, output and status bar take the rest.
	if n := a.height - 24; n > 3 {
		return n
	}
	return 3
}

// --- View ---

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)

	var content string
	switch {
	case a.clearConfirm:
		content = components.Indent(components.ConfirmDialog("Clear", "Deselect every tag and empty the text?"), 1)
	case a.helpOpen:
		content = a.renderHelp()
	case a.referenceOpen:
		content = components.Indent(components.TitledBox("Reference", a.reference, a.width), 1)
	default:
		content = a.renderMain()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s%s", banner, tabs, content, hints, feedback)
}

func (a App) renderTabs() string {
	cats := a.engine.Index().Categories()
	segments := make([]string, 0, len(cats))
	for i, cat := range cats {
		label := cat.Name()
		if names, err := a.engine.Selected(cat.Name()); err == nil && len(names) > 0 {
			label += fmt.Sprintf(" (%d)", len(names))
		}
		st, _ := a.engine.Requirement(cat.Name())
		if st.Unmet {
			label += " !"
		}
		switch {
		case i == a.catIdx:
			segments = append(segments, TabActiveStyle.Render(label))
		case st.Unmet:
			segments = append(segments, TabWarnStyle.Render(label))
		default:
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return joinWrapped(segments, a.width)
}

func (a App) renderMain() string {
	width := components.BoxContentWidth(a.width)

	var inputBox string
	if a.focus == focusInput {
		inputBox = components.ActiveTitledBox("Tags", a.input.View(), a.width)
	} else {
		inputBox = components.TitledBox("Tags", a.input.View(), a.width)
	}

	left := ""
	if len(a.unrecognized) > 0 {
		left = WarningStyle.Render("unrecognized: " + strings.Join(a.unrecognized, ", "))
	}
	status := components.StatusLine(left, a.renderMeter(), width)

	sections := []string{inputBox, " " + status, a.renderTagBox()}
	if a.showAlt {
		alt := a.engine.Alternative(a.dedup)
		if alt == "" {
			alt = MutedStyle.Render("(empty)")
		}
		sections = append(sections, components.TitledBox("Alternative", alt, a.width))
	}
	return components.Indent(strings.Join(sections, "\n"), 1)
}

func (a App) renderMeter() string {
	if a.flashing {
		return components.LimitMeter(0, 0, true)
	}
	st := a.engine.LimitStatus(a.input.Value())
	limit := st.Limit
	if !a.engine.LimitActive() {
		limit = 0
	}
	meter := components.LimitMeter(st.Length, limit, false)
	if !a.engine.LimitEnabled() && st.Limit > 0 {
		meter += MutedStyle.Render(" (limit off)")
	}
	return meter
}

func (a App) renderTagBox() string {
	cat := a.category()
	if cat == nil {
		return components.TitledBox("Tags", MutedStyle.Render("This catalog has no categories."), a.width)
	}

	width := components.BoxContentWidth(a.width)
	var lines []string
	if d := cat.Description(); d != "" {
		lines = append(lines, MutedStyle.Render(components.ClampTextWidth(d, width)), "")
	}

	start, end := a.list.Window()
	if start > 0 {
		lines = append(lines, MutedStyle.Render("  ↑ more"))
	}
	for i := start; i < end; i++ {
		row := a.rows[i]
		if row.title != "" && (i == start || a.rows[i-1].group != row.group) {
			lines = append(lines, components.RenderTagRow(components.TagRow{Label: row.title, Heading: true}, false, width))
		}
		state, _ := a.engine.TagState(cat.Name(), row.name)
		tag, _ := cat.Tag(row.name)
		label := row.name
		if row.variant {
			label = "~ " + label
		}
		lines = append(lines, components.RenderTagRow(components.TagRow{
			Label:       label,
			Description: row.desc,
			Selected:    state.Selected,
			Main:        tag.IsMainTag(),
			Order:       state.Order,
		}, a.focus == focusTags && a.list.IsSelected(i), width))
	}
	if end < len(a.rows) {
		lines = append(lines, MutedStyle.Render("  ↓ more"))
	}
	if len(a.rows) == 0 {
		lines = append(lines, MutedStyle.Render("No tags."))
	}

	if st, err := a.engine.Requirement(cat.Name()); err == nil && st.Unmet {
		lines = append(lines, "", WarningStyle.Render("! "+st.Message))
	}

	title := fmt.Sprintf("%s · %s", cat.Name(), cat.Type())
	body := strings.Join(lines, "\n")
	if a.focus == focusTags {
		return components.ActiveTitledBox(title, body, a.width)
	}
	return components.TitledBox(title, body, a.width)
}

type helpEntry struct {
	key  string
	desc string
}

var helpEntries = []helpEntry{
	{"tab", "switch between text and tag list"},
	{"↑/↓ j/k", "move in the tag list"},
	{"←/→ h/l 1-9", "change category"},
	{"space/enter", "toggle tag"},
	{"/ i", "edit text"},
	{"c / C", "copy tags / alternative"},
	{"L", "toggle character limit"},
	{"d", "toggle alternative dedup"},
	{"a", "show or hide alternative"},
	{"t", "cycle theme"},
	{"r", "catalog reference"},
	{"x", "clear selection"},
	{"q", "quit"},
}

func (a App) renderHelp() string {
	lines := make([]string, 0, len(helpEntries)+2)
	lines = append(lines, MutedStyle.Render("esc to close"), "")
	for _, h := range helpEntries {
		lines = append(lines, fmt.Sprintf("  %s  %s", SelectedStyle.Render(fmt.Sprintf("%-12s", h.key)), h.desc))
	}
	return components.Indent(components.TitledBox("Help", strings.Join(lines, "\n"), a.width), 1)
}

func (a App) statusHints() []string {
	switch {
	case a.clearConfirm:
		return []string{components.Hint("y", "Clear"), components.Hint("n", "Cancel")}
	case a.helpOpen || a.referenceOpen:
		return []string{components.Hint("esc", "Close")}
	case a.focus == focusInput:
		return []string{
			components.Hint("tab", "Tag List"),
			components.Hint("esc", "Done"),
			components.Hint("ctrl+c", "Quit"),
		}
	}
	return []string{
		components.Hint("↑/↓", "Move"),
		components.Hint("←/→", "Category"),
		components.Hint("space", "Toggle"),
		components.Hint("tab", "Edit Text"),
		components.Hint("c", "Copy"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	}
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// joinWrapped joins segments horizontally, starting a new row when the
// next segment would pass width.
func joinWrapped(segments []string, width int) string {
	if width <= 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
	}
	var rows []string
	var cur []string
	curWidth := 0
	for _, seg := range segments {
		w := lipgloss.Width(seg)
		if curWidth > 0 && curWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cur...))
			cur, curWidth = nil, 0
		}
		cur = append(cur, seg)
		curWidth += w
	}
	if len(cur) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cur...))
	}
	return strings.Join(rows, "\n")
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
