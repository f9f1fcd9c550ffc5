package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/dex/internal/pokeapi"
	"github.com/five82/dex/internal/state"
)

const defaultPageSize = 100

// listScreen pages through the catalog. The controller keeps its identity
// across pages; paging resets it with a fetch bound to the new offset.
type listScreen struct {
	ctrl     *state.Controller[pokeapi.ListPage]
	catalog  pokeapi.Catalog
	pageSize int
	offset   int
	cursor   int

	filter    textinput.Model
	filtering bool
	visible   []int // indexes into the loaded page's results
}

func newListScreen(catalog pokeapi.Catalog, pageSize int, log *zap.SugaredLogger) *listScreen {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by name"
	ti.CharLimit = 64

	l := &listScreen{
		catalog:  catalog,
		pageSize: pageSize,
		filter:   ti,
	}
	l.ctrl = state.New(l.fetchAt(0), state.Options{
		Name:   "list",
		Prefix: "Error loading catalog",
		Logger: log,
	})
	return l
}

func (l *listScreen) fetchAt(offset int) state.FetchFunc[pokeapi.ListPage] {
	catalog, limit := l.catalog, l.pageSize
	return func(ctx context.Context) (pokeapi.ListPage, error) {
		if catalog == nil {
			return pokeapi.ListPage{}, fmt.Errorf("no catalog configured")
		}
		return catalog.ListItems(ctx, limit, offset)
	}
}

func (l *listScreen) activate(ctx context.Context) tea.Cmd {
	task, ok := l.ctrl.Activate(ctx)
	if !ok {
		return nil
	}
	return runTask(l.ctrl.ID(), task)
}

// retry restarts a failed fetch, or refreshes a loaded page.
func (l *listScreen) retry(ctx context.Context) tea.Cmd {
	var (
		task state.Task[pokeapi.ListPage]
		ok   bool
	)
	switch l.ctrl.State().Kind {
	case state.Failed:
		task, ok = l.ctrl.Retry(ctx)
	case state.Loaded:
		task, ok = l.ctrl.Refresh(ctx)
	case state.Idle:
		task, ok = l.ctrl.Activate(ctx)
	}
	if !ok {
		return nil
	}
	return runTask(l.ctrl.ID(), task)
}

// page moves to the next or previous page using the offsets carried in the
// loaded page's links. It does nothing until a page is loaded.
func (l *listScreen) page(ctx context.Context, forward bool) tea.Cmd {
	st := l.ctrl.State()
	if st.Kind != state.Loaded {
		return nil
	}
	var (
		offset int
		ok     bool
	)
	if forward {
		offset, ok = st.Value.NextOffset()
	} else {
		offset, ok = st.Value.PreviousOffset()
	}
	if !ok {
		return nil
	}
	l.offset = offset
	l.cursor = 0
	l.visible = nil
	l.ctrl.Reset(l.fetchAt(offset))
	return l.activate(ctx)
}

func (l *listScreen) items() []pokeapi.ItemSummary {
	st := l.ctrl.State()
	if st.Kind != state.Loaded {
		return nil
	}
	return st.Value.Results
}

// refreshVisible recomputes the filtered rows after a load or a query change.
func (l *listScreen) refreshVisible() {
	items := l.items()
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	l.visible = rankByName(names, l.filter.Value())
	l.cursor = min(l.cursor, max(0, len(l.visible)-1))
}

func (l *listScreen) move(delta int) {
	if len(l.visible) == 0 {
		l.cursor = 0
		return
	}
	l.cursor = min(max(l.cursor+delta, 0), len(l.visible)-1)
}

func (l *listScreen) selected() (pokeapi.ItemSummary, bool) {
	items := l.items()
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return pokeapi.ItemSummary{}, false
	}
	idx := l.visible[l.cursor]
	if idx >= len(items) {
		return pokeapi.ItemSummary{}, false
	}
	return items[idx], true
}

func (l *listScreen) startFilter() tea.Cmd {
	l.filtering = true
	return l.filter.Focus()
}

func (l *listScreen) clearFilter() {
	l.filter.SetValue("")
	l.filter.Blur()
	l.filtering = false
	l.refreshVisible()
}

// updateFilter routes a key to the filter input. enter keeps the query and
// esc drops it.
func (l *listScreen) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		l.filtering = false
		l.filter.Blur()
		return nil
	case tea.KeyEsc:
		l.clearFilter()
		return nil
	}
	var cmd tea.Cmd
	l.filter, cmd = l.filter.Update(msg)
	l.cursor = 0
	l.refreshVisible()
	return cmd
}

func (l *listScreen) view(st Styles, spin string, width, height int) string {
	s := l.ctrl.State()
	switch s.Kind {
	case state.Idle:
		return st.MutedText.Render("Waiting to load the catalog…")
	case state.Loading:
		return spin + " " + st.MutedText.Render("Loading catalog…")
	case state.Failed:
		return st.DangerText.Render(s.Message) + "\n\n" + st.MutedText.Render("Press r to retry.")
	}

	var b strings.Builder
	rows := height
	if l.filtering || l.filter.Value() != "" {
		b.WriteString(l.filter.View())
		b.WriteByte('\n')
		rows--
	}
	if len(l.visible) == 0 {
		b.WriteString(st.MutedText.Render(ternary(l.filter.Value() != "", "No matches.", "No entries on this page.")))
		return b.String()
	}

	rows = max(1, rows)
	start := 0
	if l.cursor >= rows {
		start = l.cursor - rows + 1
	}
	end := min(len(l.visible), start+rows)

	items := s.Value.Results
	for i := start; i < end; i++ {
		line := l.renderRow(items[l.visible[i]], st, width)
		if i == l.cursor {
			line = st.Selected.Render(padRight(line, width))
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (l *listScreen) renderRow(item pokeapi.ItemSummary, st Styles, width int) string {
	idText := "#?"
	if id, err := item.ID(); err == nil {
		idText = fmt.Sprintf("#%03d", id)
	}
	row := fmt.Sprintf("%-6s %s", idText, titleCase(item.Name))
	if width < LayoutCompactWidth {
		return row
	}
	row = padRight(row, 32)
	image, err := item.ImageURL()
	if err != nil {
		return row + st.FaintText.Render(spritePlaceholder)
	}
	return row + st.FaintText.Render(truncateMiddle(image, width-34))
}

func (l *listScreen) statusLine() string {
	s := l.ctrl.State()
	switch s.Kind {
	case state.Loaded:
		page := s.Value
		first := l.offset + 1
		last := l.offset + len(page.Results)
		if len(page.Results) == 0 {
			first = l.offset
		}
		line := fmt.Sprintf("%d–%d of %d", first, last, page.Count)
		if q := l.filter.Value(); q != "" {
			line += fmt.Sprintf(" · %d matching %q", len(l.visible), q)
		}
		return line + " · updated " + humanizeDuration(time.Since(s.UpdatedAt))
	case state.Failed:
		return fmt.Sprintf("offset %d · %d failed attempt%s", l.offset, s.Failures, ternary(s.Failures == 1, "", "s"))
	case state.Loading:
		return fmt.Sprintf("offset %d · loading", l.offset)
	default:
		return ""
	}
}
