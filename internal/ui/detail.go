package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/dex/internal/pokeapi"
	"github.com/five82/dex/internal/state"
)

const spritePlaceholder = "(none)"

// detailScreen shows one item. Each opened item gets its own controller,
// which is closed when the screen is left.
type detailScreen struct {
	id       int
	name     string
	ctrl     *state.Controller[pokeapi.ItemDetail]
	viewport viewport.Model
	width    int
}

func newDetailScreen(catalog pokeapi.Catalog, id int, name string, log *zap.SugaredLogger) *detailScreen {
	fetch := func(ctx context.Context) (pokeapi.ItemDetail, error) {
		if catalog == nil {
			return pokeapi.ItemDetail{}, fmt.Errorf("no catalog configured")
		}
		return catalog.GetItemDetail(ctx, id)
	}
	return &detailScreen{
		id:   id,
		name: name,
		ctrl: state.New(fetch, state.Options{
			Name:   "detail",
			Prefix: "Error loading details",
			Logger: log,
		}),
		viewport: viewport.New(0, 0),
	}
}

func (d *detailScreen) activate(ctx context.Context) tea.Cmd {
	task, ok := d.ctrl.Activate(ctx)
	if !ok {
		return nil
	}
	return runTask(d.ctrl.ID(), task)
}

func (d *detailScreen) retry(ctx context.Context) tea.Cmd {
	var (
		task state.Task[pokeapi.ItemDetail]
		ok   bool
	)
	switch d.ctrl.State().Kind {
	case state.Failed:
		task, ok = d.ctrl.Retry(ctx)
	case state.Loaded:
		task, ok = d.ctrl.Refresh(ctx)
	}
	if !ok {
		return nil
	}
	return runTask(d.ctrl.ID(), task)
}

func (d *detailScreen) resize(width, height int) {
	d.width = width
	d.viewport.Width = width
	d.viewport.Height = height
}

// sync rebuilds the viewport content from the loaded value.
func (d *detailScreen) sync(st Styles) {
	s := d.ctrl.State()
	if s.Kind != state.Loaded {
		return
	}
	d.viewport.SetContent(renderDetail(s.Value, st, d.width))
}

func (d *detailScreen) view(st Styles, spin string) string {
	s := d.ctrl.State()
	switch s.Kind {
	case state.Loaded:
		return d.viewport.View()
	case state.Failed:
		return st.DangerText.Render(s.Message) + "\n\n" + st.MutedText.Render("Press r to retry, esc to go back.")
	default:
		return spin + " " + st.MutedText.Render(fmt.Sprintf("Loading %s…", titleCase(d.name)))
	}
}

func (d *detailScreen) statusLine() string {
	s := d.ctrl.State()
	switch s.Kind {
	case state.Loaded:
		return fmt.Sprintf("#%d · updated %s", d.id, humanizeDuration(time.Since(s.UpdatedAt)))
	case state.Failed:
		return fmt.Sprintf("#%d · %d failed attempt%s", d.id, s.Failures, ternary(s.Failures == 1, "", "s"))
	default:
		return fmt.Sprintf("#%d · loading", d.id)
	}
}

// renderDetail lays out an item's fields. Height and weight are converted to
// metres and kilograms; absent sprites show a placeholder.
func renderDetail(item pokeapi.ItemDetail, st Styles, width int) string {
	label := func(s string) string { return st.MutedText.Render(padRight(s, 10)) }

	var b strings.Builder
	b.WriteString(st.AccentText.Render(fmt.Sprintf("#%03d", item.ID)))
	b.WriteString("  ")
	b.WriteString(st.Text.Bold(true).Render(titleCase(item.Name)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s%s\n", label("Height"), st.Text.Render(fmt.Sprintf("%.1f m", item.HeightMeters())))
	fmt.Fprintf(&b, "%s%s\n", label("Weight"), st.Text.Render(fmt.Sprintf("%.1f kg", item.WeightKilograms())))

	names := item.TypeNames()
	badges := make([]string, 0, len(names))
	for _, name := range names {
		badges = append(badges, st.TypeBadge(name).Render(name))
	}
	types := st.FaintText.Render(spritePlaceholder)
	if len(badges) > 0 {
		types = strings.Join(badges, " ")
	}
	fmt.Fprintf(&b, "%s%s\n", label("Types"), types)

	urlWidth := width - 16
	if width >= LayoutWideWidth {
		urlWidth = 0
	}
	fmt.Fprintf(&b, "%s%s\n\n", label("Artwork"), st.Text.Render(truncateMiddle(item.ImageURL(), urlWidth)))

	b.WriteString(st.MutedText.Render("Sprites"))
	b.WriteByte('\n')
	for _, sprite := range item.Sprites.Variants() {
		value := st.FaintText.Render(spritePlaceholder)
		if sprite.URL != "" {
			value = st.Text.Render(truncateMiddle(sprite.URL, urlWidth))
		}
		fmt.Fprintf(&b, "  %s%s\n", st.MutedText.Render(padRight(sprite.Label, 14)), value)
	}
	return strings.TrimRight(b.String(), "\n")
}
