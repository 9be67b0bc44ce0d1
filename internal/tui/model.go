// Package tui provides the BubbleTea-based theme browser.
package tui

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/skinsel/internal/app"
	"github.com/jmylchreest/skinsel/internal/catalog"
	"github.com/jmylchreest/skinsel/internal/config"
	"github.com/jmylchreest/skinsel/internal/render"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeConfirmDelete
	ModeHelp
)

// chromeRows is the number of terminal rows not used by the preview:
// the header and the status bar.
const chromeRows = 2

// Model is the main TUI model.
type Model struct {
	ctrl   *app.Controller
	logger *slog.Logger

	// Current mode
	mode Mode

	// Components
	searchInput textinput.Model
	help        help.Model

	width  int
	height int
	ready  bool

	// Key bindings
	keys KeyMap

	// Preview
	frame     string
	image     image.Image
	imagePath string
	load      func(path string) (image.Image, error)

	// Pending deletion
	pendingName string
	pendingSize int64

	// Status message
	statusMsg string
	statusErr bool

	// Catalog change subscription
	changes <-chan struct{}
}

// New creates a new TUI model. changes may be nil when the themes root is not
// watched.
func New(ctrl *app.Controller, changes <-chan struct{}) Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "theme name..."
	searchInput.CharLimit = 100

	h := help.New()
	h.ShowAll = true

	return Model{
		ctrl:        ctrl,
		logger:      slog.Default(),
		mode:        ModeBrowse,
		searchInput: searchInput,
		help:        h,
		keys:        DefaultKeyMap(),
		load:        render.Load,
		changes:     changes,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return m.watchForChanges
}

// watchForChanges waits for the next catalog change.
func (m Model) watchForChanges() tea.Msg {
	if m.changes == nil {
		return nil
	}
	if _, ok := <-m.changes; !ok {
		return nil
	}
	return refreshMsg{}
}

type refreshMsg struct{}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// frameMsg carries a rendered preview back into the update loop.
type frameMsg struct {
	path  string
	cols  int
	rows  int
	image image.Image
	frame string
	err   error
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.searchInput.Width = max(msg.Width-10, 10)
		return m, m.renderPreview()

	case frameMsg:
		return m.handleFrame(msg)

	case refreshMsg:
		if err := m.ctrl.Rescan(); err != nil {
			m.logger.Warn("rescan failed", "error", err)
			return m, tea.Batch(setStatus("Rescan failed: "+err.Error(), true), m.watchForChanges)
		}
		return m, tea.Batch(m.renderPreview(), m.watchForChanges)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	if m.mode == ModeSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// frameSize returns the preview area in cells.
func (m Model) frameSize() (int, int) {
	return m.width, m.height - chromeRows
}

// renderPreview decodes and letterboxes the current preview off the update
// loop. The decoded image is reused while the path is unchanged.
func (m Model) renderPreview() tea.Cmd {
	if !m.ready {
		return nil
	}
	res := m.ctrl.Preview()
	cols, rows := m.frameSize()
	if res.Path == "" || cols <= 0 || rows <= 0 {
		return func() tea.Msg {
			return frameMsg{path: res.Path, cols: cols, rows: rows}
		}
	}

	var cached image.Image
	if res.Path == m.imagePath {
		cached = m.image
	}
	load := m.load
	return func() tea.Msg {
		img := cached
		if img == nil {
			var err error
			img, err = load(res.Path)
			if err != nil {
				return frameMsg{path: res.Path, cols: cols, rows: rows, err: err}
			}
		}
		return frameMsg{
			path:  res.Path,
			cols:  cols,
			rows:  rows,
			image: img,
			frame: render.TerminalFrame(img, cols, rows),
		}
	}
}

func (m Model) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	cols, rows := m.frameSize()
	if msg.path != m.ctrl.Preview().Path || msg.cols != cols || msg.rows != rows {
		// Stale: the selection or the terminal changed while rendering.
		return m, nil
	}
	if msg.err != nil {
		m.logger.Warn("failed to load preview", "path", msg.path, "error", msg.err)
		return m, nil
	}
	m.frame = msg.frame
	m.image = msg.image
	m.imagePath = msg.path
	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The search prompt takes every printable key, so only ctrl+c quits there.
	if m.mode == ModeSearch {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleSearchKey(msg)
	}
	if m.mode == ModeConfirmDelete {
		return m.handleConfirmKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeBrowse
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	if m.mode == ModeHelp {
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeBrowse
		}
		return m, nil
	}
	return m.handleBrowseKey(msg)
}

// handleBrowseKey handles keys while browsing themes.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch {
	case key.Matches(msg, m.keys.NextTheme):
		return m.navigate(app.NextTheme)
	case key.Matches(msg, m.keys.PrevTheme):
		return m.navigate(app.PrevTheme)
	case key.Matches(msg, m.keys.NextBackground):
		return m.navigate(app.NextBackground)
	case key.Matches(msg, m.keys.PrevBackground):
		return m.navigate(app.PrevBackground)

	case key.Matches(msg, m.keys.First):
		return m.selectIndex(0)
	case key.Matches(msg, m.keys.Last):
		return m.selectIndex(m.ctrl.State().Len() - 1)

	case key.Matches(msg, m.keys.Apply):
		if m.ctrl.State().Empty() {
			return m, nil
		}
		if err := m.ctrl.Apply(ctx); err != nil {
			return m, setStatus("Apply failed: "+err.Error(), true)
		}
		return m, setStatus("Applied "+m.ctrl.Label(), false)

	case key.Matches(msg, m.keys.Delete):
		t, ok := m.ctrl.State().Theme()
		if !ok {
			return m, nil
		}
		size, err := catalog.DirSize(t.Dir)
		if err != nil {
			m.logger.Debug("failed to size theme", "theme", t.Name, "error", err)
		}
		m.pendingName = t.Name
		m.pendingSize = size
		m.mode = ModeConfirmDelete
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if m.ctrl.State().Empty() {
			return m, nil
		}
		m.mode = ModeSearch
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Refresh):
		if err := m.ctrl.Rescan(); err != nil {
			return m, setStatus("Rescan failed: "+err.Error(), true)
		}
		return m, tea.Batch(
			m.renderPreview(),
			setStatus(fmt.Sprintf("%d themes", m.ctrl.State().Len()), false),
		)
	}

	return m, nil
}

func (m Model) navigate(a app.Action) (tea.Model, tea.Cmd) {
	changed, err := m.ctrl.Navigate(context.Background(), a)
	if err != nil {
		return m, setStatus(err.Error(), true)
	}
	if !changed {
		return m, nil
	}
	return m, m.renderPreview()
}

func (m Model) selectIndex(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i == m.ctrl.State().ThemeIndex() {
		return m, nil
	}
	if err := m.ctrl.Select(context.Background(), i); err != nil {
		return m, setStatus(err.Error(), true)
	}
	return m, m.renderPreview()
}

// handleConfirmKey handles the y/n delete prompt.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		name := m.pendingName
		m.mode = ModeBrowse
		m.pendingName = ""
		if err := m.ctrl.Delete(context.Background()); err != nil {
			if catalog.IsDeletionError(err) {
				return m, setStatus(err.Error(), true)
			}
			// Deleted, but applying the next theme failed.
			return m, tea.Batch(m.renderPreview(), setStatus(err.Error(), true))
		}
		return m, tea.Batch(m.renderPreview(), setStatus("Deleted "+name, false))

	case key.Matches(msg, m.keys.No), msg.Type == tea.KeyCtrlC:
		m.mode = ModeBrowse
		m.pendingName = ""
		return m, nil
	}
	return m, nil
}

// handleSearchKey handles keys in search mode.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeBrowse
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, nil

	case tea.KeyEnter:
		term := strings.TrimSpace(m.searchInput.Value())
		m.mode = ModeBrowse
		m.searchInput.Blur()
		if term == "" {
			return m, nil
		}

		// Start after the active theme so repeated searches cycle through matches.
		st := m.ctrl.State()
		i := catalog.Search(st.Themes(), term, st.ThemeIndex()+1)
		if i < 0 {
			return m, setStatus(fmt.Sprintf("No theme matches %q", term), true)
		}
		return m.selectIndex(i)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.mode == ModeHelp {
		return m.viewHelp()
	}
	return m.viewHeader() + "\n" + m.viewPreview() + "\n" + m.viewFooter()
}

func (m Model) viewHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	st := m.ctrl.State()
	if st.Empty() {
		return titleStyle.Render("skinsel")
	}

	s := titleStyle.Render(m.ctrl.Label()) +
		dimStyle.Render(fmt.Sprintf("  [%d/%d]", st.ThemeIndex()+1, st.Len()))
	if n := len(st.Backgrounds()); n > 1 {
		s += dimStyle.Render(fmt.Sprintf("  bg %d/%d", st.BackgroundIndex()+1, n))
	}
	if m.ctrl.Dirty() {
		s += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("(not applied)")
	}
	return s
}

func (m Model) viewPreview() string {
	cols, rows := m.frameSize()
	if rows <= 0 {
		return ""
	}
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	if m.ctrl.State().Empty() {
		msg := "No themes found in " + m.ctrl.Config().Paths.ThemesRoot
		return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, dimStyle.Render(msg))
	}
	if m.frame == "" {
		return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, dimStyle.Render("Loading preview..."))
	}
	return m.frame
}

func (m Model) viewFooter() string {
	switch m.mode {
	case ModeSearch:
		return "Search: " + m.searchInput.View()
	case ModeConfirmDelete:
		prompt := fmt.Sprintf("Delete theme %s (%s)? ", m.pendingName, humanize.Bytes(uint64(max(m.pendingSize, 0))))
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(prompt) +
			m.buildKeybindBar(m.width-len(prompt), "confirm")
	}

	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		return statusStyle.Render(m.statusMsg)
	}

	if m.ctrl.State().Empty() {
		return m.buildKeybindBar(m.width, "empty")
	}
	return m.buildKeybindBar(m.width, "browse")
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"
	s += m.help.View(m.keys) + "\n"

	if m.ctrl.ConfirmMode() {
		s += "\nNavigation previews only; press enter to write the selection.\n"
	} else {
		s += "\nEvery move is written to " + m.ctrl.Config().Refind.ConfigFile + " at once.\n"
	}

	s += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Press ? or esc to return")

	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// mode determines which keybinds are shown: "browse", "confirm", "empty".
func (m Model) buildKeybindBar(width int, mode string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	var binds []keybind

	switch mode {
	case "browse":
		binds = []keybind{
			{"q", "quit", 1},
			{"←/→", "theme", 2},
			{"↑/↓", "background", 3},
			{"?", "help", 4},
			{"/", "search", 5},
			{"x", "delete", 6},
			{"r", "rescan", 7},
		}
		if m.ctrl.ConfirmMode() {
			binds = append(binds, keybind{"enter", "apply", 2})
		}
	case "confirm":
		binds = []keybind{
			{"y", "delete", 1},
			{"n", "cancel", 2},
		}
	case "empty":
		binds = []keybind{
			{"q", "quit", 1},
			{"r", "rescan", 2},
		}
	}
	slices.SortStableFunc(binds, func(a, b keybind) int {
		return a.priority - b.priority
	})

	// Build the bar, adding keybinds until we run out of space
	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		plainItem := b.key + " " + b.desc
		testLen := lipgloss.Width(plainItem)
		if result != "" {
			testLen += lipgloss.Width(stripANSI(result)) + len(separator)
		}

		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return style.Render(result)
}

// stripANSI removes ANSI escape codes for length calculation.
func stripANSI(s string) string {
	result := make([]byte, 0, len(s))
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if s[i] == 'm' {
				inEscape = false
			}
			continue
		}
		result = append(result, s[i])
	}
	return string(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Controller *app.Controller
	Watch      bool // Rescan when the themes root changes
}

// Run starts the TUI with the given options. Callers own the terminal and
// should route logs away from it first, see RedirectLogs.
func Run(opts RunOptions) error {
	var changes <-chan struct{}
	if opts.Watch {
		watcher, err := opts.Controller.Watch()
		if err != nil {
			slog.Warn("failed to watch themes root", "error", err)
		} else {
			defer watcher.Stop()
			changes = watcher.Changes()
		}
	}

	m := New(opts.Controller, changes)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}

// RedirectLogs points the default logger at config.LogPath() and returns a
// function restoring the previous logger. Failures leave logging untouched.
func RedirectLogs(level slog.Leveler) func() {
	prev := slog.Default()
	if err := config.EnsureCacheDir(); err != nil {
		return func() {}
	}
	f, err := os.OpenFile(config.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return func() {}
	}
	if level == nil {
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return func() {
		slog.SetDefault(prev)
		f.Close()
	}
}
