package ui

import "testing"

func TestThemeNamesAndCycle(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames len = %d, want 3", len(names))
	}
	for i, name := range names {
		want := names[(i+1)%len(names)]
		if got := NextTheme(name); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", name, got, want)
		}
	}
	if got := NextTheme("unknown"); got != names[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, names[0])
	}
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("does-not-exist").Name; got != "Nightfox" {
		t.Fatalf("GetTheme fallback = %q, want Nightfox", got)
	}
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate) = %q", got)
	}
}

func TestTypeColor(t *testing.T) {
	catalogTypes := []string{
		"normal", "fire", "water", "electric", "grass", "ice", "fighting", "poison", "ground",
		"flying", "psychic", "bug", "rock", "ghost", "dragon", "dark", "steel", "fairy",
	}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, typ := range catalogTypes {
			if th.TypeColors[typ] == "" {
				t.Fatalf("theme %s has no color for %s", name, typ)
			}
		}
		if got := th.TypeColor("  Fire "); got != th.TypeColors["fire"] {
			t.Fatalf("TypeColor normalizes input: got %q want %q", got, th.TypeColors["fire"])
		}
		if got := th.TypeColor("shadow"); got != th.Muted {
			t.Fatalf("TypeColor unknown = %q, want muted %q", got, th.Muted)
		}
	}
}
