// Package pokeapi provides an HTTP client for the PokeAPI REST catalog.
//
// # Overview
//
// This package defines the read-only client dex uses to list catalog items
// and fetch per-item detail records. It handles HTTP communication, JSON
// decoding, response shape validation, and a small error taxonomy the UI
// turns into display messages.
//
// # Architecture
//
//   - client.go: HTTP client, shared transport, request/response handling
//   - types.go: Data structures mirroring the catalog schema plus pure helpers
//   - errors.go: Typed errors returned by the client and helpers
//
// # Client Usage
//
//	client, err := pokeapi.NewClient(pokeapi.DefaultBaseURL, pokeapi.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	page, err := client.ListItems(ctx, 100, 0)
//	detail, err := client.GetItemDetail(ctx, 25)
//
// # API Endpoints
//
//   - GET {base}/pokemon?limit={n}&offset={m}: one page of {name, url} summaries
//   - GET {base}/pokemon/{id}: full item record
//
// Query parameters are encoded with gorilla/schema from a tagged struct.
//
// # Identifiers
//
// The list endpoint does not return identifiers. IDFromDetailURL derives
// them from the trailing path segment of each summary URL:
//
//	https://pokeapi.co/api/v2/pokemon/25/ → 25
//
// SpriteImageURL builds the sprite repository URL for an identifier. Neither
// helper performs I/O.
//
// # Transport
//
// All clients built without WithHTTPClient share one *http.Client, created
// lazily on first use and kept for the life of the process. Its dialer,
// TLS handshake, response header wait, and every read and write on the
// connection each time out after 30 seconds.
//
// # Error Handling
//
//   - *NetworkError: transport failure (timeout, DNS, refused, reset, body read)
//   - *NotFoundError: the catalog answered 404
//   - *StatusError: any other 4xx/5xx
//   - *DecodeError: malformed JSON, or JSON that fails struct validation
//   - *ParseError: IDFromDetailURL could not find a positive integer
//
// Match them with errors.As. NetworkError, DecodeError and ParseError wrap
// their cause, so errors.Is(err, context.Canceled) works through them.
//
// # Design Rationale
//
// The client is intentionally minimal:
//   - No caching (every screen activation refetches)
//   - No retries (retry is a user action in the UI)
//   - No image download (sprites are addressed by URL only)
package pokeapi
