package pokeapi

import (
	"errors"
	"testing"
)

func TestIDFromDetailURL(t *testing.T) {
	cases := []struct {
		url  string
		want int
	}{
		{"https://pokeapi.co/api/v2/pokemon/1/", 1},
		{"https://pokeapi.co/api/v2/pokemon/25/", 25},
		{"https://pokeapi.co/api/v2/pokemon/10277/", 10277},
		{"/pokemon/7/", 7},
		{"https://pokeapi.co/api/v2/pokemon/151", 151},
	}
	for _, tc := range cases {
		got, err := IDFromDetailURL(tc.url)
		if err != nil {
			t.Fatalf("IDFromDetailURL(%q) returned error: %v", tc.url, err)
		}
		if got != tc.want {
			t.Fatalf("IDFromDetailURL(%q) = %d, want %d", tc.url, got, tc.want)
		}
	}
}

func TestIDFromDetailURL_Malformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"/",
		"https://pokeapi.co/api/v2/pokemon/",
		"https://pokeapi.co/api/v2/pokemon/pikachu/",
		"https://pokeapi.co/api/v2/pokemon/0/",
		"https://pokeapi.co/api/v2/pokemon/-4/",
		"https://pokeapi.co/api/v2/pokemon/25//",
	} {
		_, err := IDFromDetailURL(raw)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("IDFromDetailURL(%q) error = %v, want *ParseError", raw, err)
		}
		if pe.Input != raw {
			t.Fatalf("ParseError.Input = %q, want %q", pe.Input, raw)
		}
	}
}

func TestSpriteImageURL(t *testing.T) {
	want := "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/25.png"
	if got := SpriteImageURL(25); got != want {
		t.Fatalf("SpriteImageURL(25) = %q, want %q", got, want)
	}
	if got := (ItemDetail{ID: 25}).ImageURL(); got != want {
		t.Fatalf("ItemDetail.ImageURL = %q, want %q", got, want)
	}
}

func TestItemSummaryHelpers(t *testing.T) {
	s := ItemSummary{Name: "charmander", URL: "https://pokeapi.co/api/v2/pokemon/4/"}
	id, err := s.ID()
	if err != nil || id != 4 {
		t.Fatalf("ID = %d,%v want 4,nil", id, err)
	}
	img, err := s.ImageURL()
	if err != nil || img != SpriteImageURL(4) {
		t.Fatalf("ImageURL = %q,%v want %q", img, err, SpriteImageURL(4))
	}

	bad := ItemSummary{Name: "missingno", URL: "https://pokeapi.co/api/v2/pokemon/x/"}
	if _, err := bad.ImageURL(); err == nil {
		t.Fatalf("ImageURL on malformed URL returned nil error")
	}
}

func TestListPageOffsets(t *testing.T) {
	next := "https://pokeapi.co/api/v2/pokemon?offset=40&limit=20"
	prev := "https://pokeapi.co/api/v2/pokemon?limit=20"
	page := ListPage{Next: &next, Previous: &prev}

	if off, ok := page.NextOffset(); !ok || off != 40 {
		t.Fatalf("NextOffset = %d,%v want 40,true", off, ok)
	}
	if off, ok := page.PreviousOffset(); !ok || off != 0 {
		t.Fatalf("PreviousOffset = %d,%v want 0,true", off, ok)
	}

	empty := ListPage{}
	if _, ok := empty.NextOffset(); ok {
		t.Fatalf("NextOffset on nil next should be false")
	}

	garbage := "https://pokeapi.co/api/v2/pokemon?offset=abc"
	if _, ok := (ListPage{Next: &garbage}).NextOffset(); ok {
		t.Fatalf("NextOffset with non-numeric offset should be false")
	}
}

func TestItemDetailConversions(t *testing.T) {
	d := ItemDetail{Height: 17, Weight: 905}
	if d.HeightMeters() != 1.7 {
		t.Fatalf("HeightMeters = %v, want 1.7", d.HeightMeters())
	}
	if d.WeightKilograms() != 90.5 {
		t.Fatalf("WeightKilograms = %v, want 90.5", d.WeightKilograms())
	}
}

func TestSpriteVariantsKeepAbsentAsEmpty(t *testing.T) {
	front := "https://example.test/1.png"
	variants := SpriteURLs{FrontDefault: &front}.Variants()
	if len(variants) != 4 {
		t.Fatalf("Variants len = %d, want 4", len(variants))
	}
	if variants[0].URL != front {
		t.Fatalf("front URL = %q, want %q", variants[0].URL, front)
	}
	for _, v := range variants[1:] {
		if v.URL != "" {
			t.Fatalf("variant %q URL = %q, want empty", v.Label, v.URL)
		}
	}
}
