// Package ui provides the terminal user interface for dex.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model (Model) that switches between three
// screens. Each data screen owns a state.Controller; the model never fetches
// directly. Starting a fetch moves the controller to Loading synchronously and
// returns a task, which the model wraps as a tea.Cmd. When the task finishes
// its loadMsg comes back through Update and the screen re-renders from the
// controller's current state.
//
// # Package Structure
//
//   - ui.go: Model, message routing, header and status line, Run
//   - list.go: Catalog page list with paging and filtering
//   - filter.go: Substring and edit-distance ranking for the list filter
//   - detail.go: Single item view inside a viewport
//   - diagnostics.go: Tail of the JSON application log
//   - keys.go: Key bindings and help.KeyMap implementation
//   - theme.go: Color palettes and per-type badge colors
//
// # Screens
//
//   - Catalog: one page of entries. n/p page through the catalog, "/" filters
//     the loaded page, enter opens the highlighted entry.
//   - Details: id, name, height in metres, weight in kilograms, type badges,
//     artwork URL and sprite URLs. Absent sprites render as "(none)".
//   - Diagnostics: the last log entries, colored by level.
//
// # Failure Handling
//
// A failed fetch shows the controller's message and a retry hint. r retries
// from Failed and refreshes from Loaded; it is ignored while Loading. There
// are no automatic retries.
//
// Leaving the detail screen closes its controller. A fetch still in flight is
// cancelled and its loadMsg arrives with ok=false, which Update ignores. Each
// opened item gets a fresh controller, so messages from a previous item never
// touch the current one.
//
// # Themes
//
// T cycles Nightfox, Kanagawa and Slate. The choice is written to the prefs
// file in the background; a failed write is logged and shown on the status
// line.
package ui
