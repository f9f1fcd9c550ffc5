package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/dex/internal/pokeapi"
	"github.com/five82/dex/internal/prefs"
	"github.com/five82/dex/internal/state"
)

// Options configure the TUI.
type Options struct {
	Context   context.Context
	Catalog   pokeapi.Catalog
	Logger    *zap.SugaredLogger
	PageSize  int
	ThemeName string
	PrefsPath string // empty uses ~/.config/dex/prefs.toml
	LogPath   string // empty disables the diagnostics view
}

type screen int

const (
	screenList screen = iota
	screenDetail
	screenDiagnostics
)

func (s screen) title() string {
	switch s {
	case screenDetail:
		return "Details"
	case screenDiagnostics:
		return "Diagnostics"
	default:
		return "Catalog"
	}
}

// loadMsg carries a finished controller task back into Update. id is the
// controller instance the task belonged to.
type loadMsg[T any] struct {
	id    string
	state state.LoadState[T]
	ok    bool
}

// runTask wraps a started controller fetch as a tea.Cmd.
func runTask[T any](id string, task state.Task[T]) tea.Cmd {
	return func() tea.Msg {
		st, ok := task()
		return loadMsg[T]{id: id, state: st, ok: ok}
	}
}

type themeSavedMsg struct {
	name string
	err  error
}

func saveThemeCmd(path, name string) tea.Cmd {
	return func() tea.Msg {
		return themeSavedMsg{name: name, err: prefs.Save(path, prefs.Prefs{Theme: name})}
	}
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx       context.Context
	catalog   pokeapi.Catalog
	log       *zap.SugaredLogger
	prefsPath string
	logPath   string

	theme   Theme
	styles  Styles
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int
	screen screen
	prev   screen // screen to return to from diagnostics
	status string

	list   *listScreen
	detail *detailScreen
	diag   *diagnosticsScreen
}

// New builds the root model. The list controller is created here; its first
// fetch starts from Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	theme := GetTheme(opts.ThemeName)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		catalog:   opts.Catalog,
		log:       log,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		theme:     theme,
		styles:    theme.Styles(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		width:     80,
		height:    24,
		list:      newListScreen(opts.Catalog, opts.PageSize, log),
		diag:      newDiagnosticsScreen(),
	}
	m.applyTheme()
	m.resize()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.list.activate(m.ctx))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadMsg[pokeapi.ListPage]:
		if msg.ok && msg.id == m.list.ctrl.ID() {
			m.list.refreshVisible()
		}
		return m, nil

	case loadMsg[pokeapi.ItemDetail]:
		if msg.ok && m.detail != nil && msg.id == m.detail.ctrl.ID() {
			m.detail.sync(m.styles)
		}
		return m, nil

	case diagnosticsMsg:
		m.diag.set(msg, m.styles)
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.log.Warnw("saving theme preference failed", "theme", msg.name, "error", msg.err)
			m.status = fmt.Sprintf("Could not save theme: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if msg.String() == "ctrl+c" {
		m.Close()
		return m, tea.Quit
	}
	if m.screen == screenList && m.list.filtering {
		return m, m.list.updateFilter(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		return m, saveThemeCmd(m.prefsPath, m.theme.Name)
	case key.Matches(msg, m.keys.Diagnostics) && m.screen != screenDiagnostics:
		m.prev = m.screen
		m.screen = screenDiagnostics
		return m, loadDiagnosticsCmd(m.logPath)
	}

	switch m.screen {
	case screenDetail:
		return m.updateDetail(msg)
	case screenDiagnostics:
		return m.updateDiagnostics(msg)
	default:
		return m.updateList(msg)
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.list
	switch {
	case key.Matches(msg, m.keys.Up):
		l.move(-1)
	case key.Matches(msg, m.keys.Down):
		l.move(1)
	case key.Matches(msg, m.keys.Top):
		l.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		l.cursor = max(0, len(l.visible)-1)
	case key.Matches(msg, m.keys.PageUp):
		l.move(-max(1, m.bodyHeight()/2))
	case key.Matches(msg, m.keys.PageDown):
		l.move(max(1, m.bodyHeight()/2))
	case key.Matches(msg, m.keys.Open):
		item, ok := l.selected()
		if !ok {
			return m, nil
		}
		id, err := item.ID()
		if err != nil {
			m.log.Warnw("cannot open item", "name", item.Name, "error", err)
			m.status = fmt.Sprintf("Cannot open %s: %v", item.Name, err)
			return m, nil
		}
		return m, m.openDetail(id, item.Name)
	case key.Matches(msg, m.keys.Retry):
		return m, l.retry(m.ctx)
	case key.Matches(msg, m.keys.NextPage):
		return m, l.page(m.ctx, true)
	case key.Matches(msg, m.keys.PrevPage):
		return m, l.page(m.ctx, false)
	case key.Matches(msg, m.keys.Filter):
		return m, l.startFilter()
	case key.Matches(msg, m.keys.Back):
		l.clearFilter()
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.detail
	if d == nil {
		m.screen = screenList
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeDetail()
		m.screen = screenList
		return m, nil
	case key.Matches(msg, m.keys.Retry):
		return m, d.retry(m.ctx)
	case key.Matches(msg, m.keys.Top):
		d.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		d.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateDiagnostics(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = m.prev
		return m, nil
	case key.Matches(msg, m.keys.Retry):
		return m, loadDiagnosticsCmd(m.logPath)
	case key.Matches(msg, m.keys.Top):
		m.diag.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.diag.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.diag.viewport, cmd = m.diag.viewport.Update(msg)
	return m, cmd
}

// openDetail replaces any previous detail screen with one for id and starts
// its fetch.
func (m *Model) openDetail(id int, name string) tea.Cmd {
	m.closeDetail()
	m.detail = newDetailScreen(m.catalog, id, name, m.log)
	m.detail.resize(m.width, m.bodyHeight())
	m.screen = screenDetail
	return m.detail.activate(m.ctx)
}

func (m *Model) closeDetail() {
	if m.detail == nil {
		return
	}
	m.detail.ctrl.Close()
	m.detail = nil
}

// Close disposes every controller. Fetches still in flight are cancelled and
// their results dropped.
func (m *Model) Close() {
	m.closeDetail()
	m.list.ctrl.Close()
}

func (m *Model) applyTheme() {
	m.styles = m.theme.Styles()
	m.spinner.Style = m.styles.AccentText
	m.help.Styles.ShortKey = m.styles.AccentText
	m.help.Styles.FullKey = m.styles.AccentText
	m.help.Styles.ShortDesc = m.styles.MutedText
	m.help.Styles.FullDesc = m.styles.MutedText
	m.help.Styles.ShortSeparator = m.styles.FaintText
	m.help.Styles.FullSeparator = m.styles.FaintText
	if m.detail != nil {
		m.detail.sync(m.styles)
	}
	m.diag.restyle(m.styles)
}

func (m *Model) resize() {
	h := m.bodyHeight()
	if m.detail != nil {
		m.detail.resize(m.width, h)
		m.detail.sync(m.styles)
	}
	m.diag.resize(m.width, h)
	m.list.filter.Width = max(10, m.width-12)
}

func (m Model) bodyHeight() int {
	helpRows := lipgloss.Height(m.help.View(m.keys)) - footerHeight
	return contentHeight(m.height, max(0, helpRows))
}

// View implements tea.Model.
func (m Model) View() string {
	h := m.bodyHeight()

	var body string
	switch m.screen {
	case screenDetail:
		body = m.detailView()
	case screenDiagnostics:
		body = m.diag.view(m.styles, m.logPath)
	default:
		body = m.list.view(m.styles, m.spinner.View(), m.width, h)
	}
	body = lipgloss.NewStyle().Width(m.width).Height(h).MaxHeight(h).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatus(),
		m.styles.Footer.Width(m.width).Render(m.help.View(m.keys)),
	)
}

func (m Model) detailView() string {
	if m.detail == nil {
		return ""
	}
	return m.detail.view(m.styles, m.spinner.View())
}

func (m Model) renderHeader() string {
	left := m.styles.Logo.Render("dex") + "  " + m.styles.Text.Render(m.screen.title())
	right := m.styles.MutedText.Render(m.theme.Name)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return m.styles.Header.Width(m.width).Render(left)
	}
	return m.styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderStatus() string {
	if m.status != "" {
		return m.styles.WarningText.Render(truncateMiddle(m.status, m.width))
	}
	var line string
	switch m.screen {
	case screenDetail:
		if m.detail != nil {
			line = m.detail.statusLine()
		}
	case screenDiagnostics:
		line = m.diag.statusLine(m.logPath)
	default:
		line = m.list.statusLine()
	}
	return m.styles.FaintText.Render(truncateMiddle(line, m.width))
}

// Run starts the TUI and blocks until the user quits or the context ends.
func Run(opts Options) error {
	if opts.Catalog == nil {
		return errors.New("ui: catalog is required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	m := New(opts)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if fm, ok := final.(Model); ok {
		fm.Close()
	}
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
