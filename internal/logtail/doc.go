// Package logtail reads the most recent entries from dex's diagnostics log.
//
// # Overview
//
// dex logs to a JSON file through zap. This package reads the tail of that
// file and parses each line into an Entry for the diagnostics view.
//
// # Reading Log Files
//
// Read keeps a ring buffer of the last maxEntries lines, so memory stays
// O(maxEntries) however large the file grows:
//
//	entries, err := logtail.Read(cfg.LogPath(), 200)
//
// A missing file yields nil, nil. Blank lines are skipped.
//
// # Parsing
//
// ParseLine understands zap's production JSON layout (ts, level, msg,
// caller). Remaining keys become Fields. Anything that is not a JSON object,
// such as a panic trace, is kept verbatim in Raw.
//
// Entry.String renders "15:04:05 LEVEL message key=value ..." with fields
// sorted by key.
package logtail
