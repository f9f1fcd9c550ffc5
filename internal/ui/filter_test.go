package ui

import (
	"slices"
	"testing"
)

func TestRankByName(t *testing.T) {
	names := []string{"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon", "pikachu"}

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "empty query keeps order", query: "  ", want: []int{0, 1, 2, 3, 4, 5}},
		{name: "substring by position", query: "saur", want: []int{1, 2, 0}},
		{name: "case insensitive prefix", query: "CHAR", want: []int{3, 4}},
		{name: "typo tolerated", query: "pikachi", want: []int{5}},
		{name: "prefix typo tolerated", query: "venos", want: []int{2}},
		{name: "long typo", query: "charmandr", want: []int{3}},
		{name: "too far", query: "zzzz", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rankByName(names, tt.query)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("rankByName(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestRankByName_SubstringBeatsFuzzy(t *testing.T) {
	names := []string{"mew", "mewtwo", "meow"}
	got := rankByName(names, "mew")
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("rankByName = %v, want [0 1 2]", got)
	}
}
