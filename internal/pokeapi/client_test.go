package pokeapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

const listBody = `{
	"count": 1302,
	"next": "https://pokeapi.co/api/v2/pokemon?offset=2&limit=2",
	"previous": null,
	"results": [
		{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"},
		{"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon/2/"}
	]
}`

const detailBody = `{
	"id": 25,
	"name": "pikachu",
	"height": 4,
	"weight": 60,
	"base_experience": 112,
	"sprites": {
		"front_default": "https://example.test/25.png",
		"back_default": null,
		"front_shiny": "https://example.test/shiny/25.png",
		"back_shiny": null
	},
	"types": [
		{"slot": 1, "type": {"name": "electric", "url": "https://pokeapi.co/api/v2/type/13/"}}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("http://example.com:1234/api/v2?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api/v2/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("example.com/api/v2/")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error for missing host")
	}
}

func TestClient_ListItemsEncodesQueryAndDecodes(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	var gotUserAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listBody))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.ListItems(ctx, 2, 0)
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	if gotPath != "/pokemon" {
		t.Fatalf("path = %q, want /pokemon", gotPath)
	}
	if gotQuery.Get("limit") != "2" || gotQuery.Get("offset") != "0" {
		t.Fatalf("query = %v, want limit=2 offset=0", gotQuery)
	}
	if !strings.HasPrefix(gotUserAgent, "dex/") {
		t.Fatalf("User-Agent = %q, want dex/*", gotUserAgent)
	}
	if page.Count != 1302 || len(page.Results) != 2 {
		t.Fatalf("page = %#v, want count=1302 with 2 results", page)
	}
	if page.Results[0].Name != "bulbasaur" || page.Results[1].Name != "ivysaur" {
		t.Fatalf("results out of order: %#v", page.Results)
	}
	if page.Previous != nil {
		t.Fatalf("Previous = %v, want nil", *page.Previous)
	}
	if off, ok := page.NextOffset(); !ok || off != 2 {
		t.Fatalf("NextOffset = %d,%v want 2,true", off, ok)
	}
}

func TestClient_GetItemDetail(t *testing.T) {
	t.Parallel()

	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(detailBody))
	})

	detail, err := c.GetItemDetail(context.Background(), 25)
	if err != nil {
		t.Fatalf("GetItemDetail returned error: %v", err)
	}
	if gotPath != "/pokemon/25" {
		t.Fatalf("path = %q, want /pokemon/25", gotPath)
	}
	if detail.ID != 25 || detail.Name != "pikachu" || detail.Height != 4 || detail.Weight != 60 {
		t.Fatalf("detail = %#v", detail)
	}
	if detail.Sprites.FrontDefault == nil || detail.Sprites.BackDefault != nil {
		t.Fatalf("sprites = %#v, want front set and back nil", detail.Sprites)
	}
	if names := detail.TypeNames(); len(names) != 1 || names[0] != "electric" {
		t.Fatalf("TypeNames = %v, want [electric]", names)
	}
}

func TestClient_NotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.GetItemDetail(context.Background(), 99999)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("GetItemDetail error = %v, want *NotFoundError", err)
	}
	if nf.Resource != "pokemon/99999" {
		t.Fatalf("Resource = %q, want pokemon/99999", nf.Resource)
	}
}

func TestClient_ServerErrorIsStatusError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	_, err := c.ListItems(context.Background(), 10, 0)
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusInternalServerError {
		t.Fatalf("ListItems error = %v, want *StatusError 500", err)
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("error text = %q, want status mention", err.Error())
	}
}

func TestClient_DecodeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{not-json`},
		{"wrong type", `{"count": "many", "results": []}`},
		{"array instead of object", `[]`},
		{"missing results", `{"count": 3}`},
		{"result missing url", `{"count": 1, "results": [{"name": "bulbasaur"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.ListItems(context.Background(), 10, 0)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("ListItems error = %v, want *DecodeError", err)
			}
		})
	}
}

func TestClient_DetailValidation(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 0, "name": "", "types": [{"slot": 1, "type": {"name": ""}}]}`))
	})
	_, err := c.GetItemDetail(context.Background(), 1)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("GetItemDetail error = %v, want *DecodeError", err)
	}
}

func TestClient_ConnectionRefusedIsNetworkError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	c, err := NewClient("http://"+addr, WithHTTPClient(NewHTTPClient(time.Second)))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.ListItems(context.Background(), 10, 0)
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("ListItems error = %v, want *NetworkError", err)
	}
}

func TestClient_ReadTimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(server.URL, WithHTTPClient(NewHTTPClient(50*time.Millisecond)))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.ListItems(context.Background(), 10, 0)
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("ListItems error = %v, want *NetworkError", err)
	}
	if !ne.Timeout() {
		t.Fatalf("NetworkError.Timeout() = false for %v", ne)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listBody))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListItems(ctx, 10, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ListItems error = %v, want context.Canceled", err)
	}
}

func TestClient_RejectsBadArguments(t *testing.T) {
	c, err := NewClient("")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.ListItems(context.Background(), 0, 0); err == nil {
		t.Fatalf("ListItems(limit=0) returned nil error")
	}
	if _, err := c.GetItemDetail(context.Background(), -1); err == nil {
		t.Fatalf("GetItemDetail(-1) returned nil error")
	}
	var nilClient *Client
	if _, err := nilClient.ListItems(context.Background(), 1, 0); err == nil {
		t.Fatalf("nil client returned nil error")
	}
}

func TestSharedHTTPClient_IsSingleton(t *testing.T) {
	if SharedHTTPClient() != SharedHTTPClient() {
		t.Fatalf("SharedHTTPClient returned distinct instances")
	}
	a, _ := NewClient("")
	b, _ := NewClient("")
	if a.http != b.http {
		t.Fatalf("clients without WithHTTPClient should share the HTTP client")
	}
}
