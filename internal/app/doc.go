// Package app wires configuration, logging, the catalog client and the UI
// into the dex TUI. It is the composition root; behavior lives in the
// packages it connects.
//
// # Startup
//
//  1. Load ~/.config/dex/config.toml (or the -config path); a missing file
//     means defaults
//  2. Apply the -limit override to the page size
//  3. Open the JSON log at {log_dir}/dex.log
//  4. Build one pokeapi.Client; both screens receive it explicitly
//  5. Load the saved theme from prefs.toml
//  6. Run the TUI until the user quits or the context is cancelled
//
// # HTTP Client
//
// With the default 30 second timeout the process-wide client from
// pokeapi.SharedHTTPClient is used. A timeout_seconds override builds a
// dedicated client with the same transport settings.
//
// # Error Handling
//
// Startup failures (config syntax, log directory, base URL) are returned to
// the caller wrapped with the step that failed. Fetch failures never reach
// this package: the screens' controllers turn them into Failed states.
package app
