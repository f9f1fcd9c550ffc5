// Package config loads dex's TOML configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/dex/config.toml
//  3. If the file doesn't exist, use Default()
//  4. Blank or invalid fields fall back to their defaults individually
//
// # TOML Format
//
//	base_url = "https://pokeapi.co/api/v2/"
//	page_size = 100
//	timeout_seconds = 30
//	log_dir = "~/.local/state/dex"
//	log_level = "info"
//
// Every field is optional. Tilde expansion is performed on log_dir.
// page_size is capped at 1000 and log_level must be one of debug, info,
// warn or error.
//
// # Error Handling
//
// Load returns errors only for path expansion failures, unreadable files and
// TOML syntax errors ("parse config: ..."). A missing file is not an error.
package config
