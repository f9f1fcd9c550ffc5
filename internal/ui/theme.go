package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string
	Surface    string
	SurfaceAlt string

	// Selected row
	SelectionBg   string
	SelectionText string

	// Borders
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// Elemental type badges, keyed by catalog type name
	TypeColors map[string]string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	typeColors map[string]string
	background string
	muted      string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		typeColors: t.TypeColors,
		background: t.Background,
		muted:      t.Muted,
	}
}

// TypeColor returns the badge color for a catalog type name.
func (t Theme) TypeColor(name string) string {
	if c := t.TypeColors[strings.ToLower(strings.TrimSpace(name))]; c != "" {
		return c
	}
	return t.Muted
}

// TypeBadge returns a style for the given type name.
func (s Styles) TypeBadge(name string) lipgloss.Style {
	color := s.typeColors[strings.ToLower(strings.TrimSpace(name))]
	if color == "" {
		color = s.muted // Fallback to theme's muted color
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// Theme definitions

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

// typeColors maps the eighteen catalog types onto a palette. Types that share
// a hue in the palette share a color.
func typeColors(p palette) map[string]string {
	return map[string]string{
		"normal":   p.gray,
		"fire":     p.orange,
		"water":    p.blue,
		"electric": p.yellow,
		"grass":    p.green,
		"ice":      p.cyan,
		"fighting": p.red,
		"poison":   p.magenta,
		"ground":   p.brown,
		"flying":   p.sky,
		"psychic":  p.pink,
		"bug":      p.lime,
		"rock":     p.brown,
		"ghost":    p.violet,
		"dragon":   p.indigo,
		"dark":     p.dark,
		"steel":    p.steel,
		"fairy":    p.pink,
	}
}

type palette struct {
	gray, orange, blue, yellow, green, cyan, red, magenta, brown string
	sky, pink, lime, violet, indigo, dark, steel                 string
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red

		TypeColors: typeColors(palette{
			gray: "#738091", orange: "#f4a261", blue: "#719cd6", yellow: "#dbc074",
			green: "#81b29a", cyan: "#63cdcf", red: "#c94f6d", magenta: "#9d79d6",
			brown: "#d67ad2", sky: "#86abdc", pink: "#d085cc", lime: "#8ebaa4",
			violet: "#baa1e2", indigo: "#5a93aa", dark: "#39506d", steel: "#aeafb0",
		}),
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		SurfaceAlt: "#2A2A37", // sumiInk4

		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite

		Border:      "#54546D", // sumiInk6
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#7E9CD8", // crystalBlue
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed

		TypeColors: typeColors(palette{
			gray: "#727169", orange: "#FFA066", blue: "#7E9CD8", yellow: "#E6C384",
			green: "#98BB6C", cyan: "#7AA89F", red: "#E46876", magenta: "#957FB8",
			brown: "#C0A36E", sky: "#7FB4CA", pink: "#D27E99", lime: "#A3D4D5",
			violet: "#938AA9", indigo: "#658594", dark: "#54546D", steel: "#C8C093",
		}),
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500

		TypeColors: typeColors(palette{
			gray: "#94a3b8", orange: "#f97316", blue: "#3b82f6", yellow: "#eab308",
			green: "#22c55e", cyan: "#06b6d4", red: "#dc2626", magenta: "#a855f7",
			brown: "#a16207", sky: "#7dd3fc", pink: "#ec4899", lime: "#84cc16",
			violet: "#8b5cf6", indigo: "#6366f1", dark: "#334155", steel: "#cbd5e1",
		}),
	}
}
