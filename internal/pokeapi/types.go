package pokeapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const spriteURLTemplate = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png"

// ListPage mirrors the payload returned by /pokemon?limit=&offset=.
type ListPage struct {
	Count    int           `json:"count" validate:"gte=0"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []ItemSummary `json:"results" validate:"required,dive"`
}

// NextOffset returns the offset encoded in the next page URL.
func (p ListPage) NextOffset() (int, bool) {
	return offsetFromPageURL(p.Next)
}

// PreviousOffset returns the offset encoded in the previous page URL.
func (p ListPage) PreviousOffset() (int, bool) {
	return offsetFromPageURL(p.Previous)
}

// ItemSummary is a catalog entry: a name and the URL of its detail record.
type ItemSummary struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required"`
}

// ID derives the numeric identifier from the detail URL.
func (s ItemSummary) ID() (int, error) {
	return IDFromDetailURL(s.URL)
}

// ImageURL returns the sprite URL for the summary's identifier.
func (s ItemSummary) ImageURL() (string, error) {
	id, err := s.ID()
	if err != nil {
		return "", err
	}
	return SpriteImageURL(id), nil
}

// ItemDetail mirrors the payload returned by /pokemon/{id}.
type ItemDetail struct {
	ID      int        `json:"id" validate:"gt=0"`
	Name    string     `json:"name" validate:"required"`
	Height  int        `json:"height" validate:"gte=0"`
	Weight  int        `json:"weight" validate:"gte=0"`
	Sprites SpriteURLs `json:"sprites"`
	Types   []TypeSlot `json:"types" validate:"dive"`
}

// TypeNames returns the type names in payload order.
func (d ItemDetail) TypeNames() []string {
	names := make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		names = append(names, t.TypeName())
	}
	return names
}

// ImageURL returns the templated sprite URL for the item.
func (d ItemDetail) ImageURL() string {
	return SpriteImageURL(d.ID)
}

// HeightMeters converts the decimetre height into metres.
func (d ItemDetail) HeightMeters() float64 {
	return float64(d.Height) / 10
}

// WeightKilograms converts the hectogram weight into kilograms.
func (d ItemDetail) WeightKilograms() float64 {
	return float64(d.Weight) / 10
}

// SpriteURLs holds the optional sprite variants. A nil field means the
// catalog has no image for that variant.
type SpriteURLs struct {
	FrontDefault *string `json:"front_default"`
	BackDefault  *string `json:"back_default"`
	FrontShiny   *string `json:"front_shiny"`
	BackShiny    *string `json:"back_shiny"`
}

// Sprite is a labelled sprite variant.
type Sprite struct {
	Label string
	URL   string // empty when absent
}

// Variants lists the sprite variants in display order.
func (s SpriteURLs) Variants() []Sprite {
	return []Sprite{
		{Label: "front", URL: deref(s.FrontDefault)},
		{Label: "back", URL: deref(s.BackDefault)},
		{Label: "front shiny", URL: deref(s.FrontShiny)},
		{Label: "back shiny", URL: deref(s.BackShiny)},
	}
}

// TypeSlot is one elemental type of an item.
type TypeSlot struct {
	Slot int           `json:"slot" validate:"gt=0"`
	Type NamedResource `json:"type"`
}

// TypeName returns the slot's type name.
func (t TypeSlot) TypeName() string {
	return t.Type.Name
}

// NamedResource is the {name, url} pair used throughout the catalog.
type NamedResource struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url"`
}

// IDFromDetailURL parses the trailing numeric path segment of a detail URL
// such as https://pokeapi.co/api/v2/pokemon/25/.
func IDFromDetailURL(raw string) (int, error) {
	segments := strings.Split(raw, "/")
	if n := len(segments); n > 0 && segments[n-1] == "" {
		segments = segments[:n-1]
	}
	if len(segments) == 0 || segments[len(segments)-1] == "" {
		return 0, &ParseError{Input: raw, Err: errEmptySegment}
	}
	id, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil {
		return 0, &ParseError{Input: raw, Err: err}
	}
	if id <= 0 {
		return 0, &ParseError{Input: raw, Err: errNotPositive}
	}
	return id, nil
}

// SpriteImageURL returns the deterministic sprite repository URL for id.
func SpriteImageURL(id int) string {
	return fmt.Sprintf(spriteURLTemplate, id)
}

func offsetFromPageURL(raw *string) (int, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return 0, false
	}
	u, err := url.Parse(*raw)
	if err != nil {
		return 0, false
	}
	value := u.Query().Get("offset")
	if value == "" {
		return 0, true
	}
	offset, err := strconv.Atoi(value)
	if err != nil || offset < 0 {
		return 0, false
	}
	return offset, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
