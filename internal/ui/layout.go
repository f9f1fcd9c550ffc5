package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the list drops the sprite column.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the minimum width for showing sprite URLs untruncated.
	LayoutWideWidth = 140
)

// Chrome heights shared by every screen.
const (
	headerHeight = 1
	footerHeight = 1
	statusHeight = 1
)

// DiagnosticsLimit is the number of log entries the diagnostics view reads.
const DiagnosticsLimit = 200

// contentHeight returns the rows left for a screen body after the chrome.
func contentHeight(total int, helpRows int) int {
	h := total - headerHeight - footerHeight - statusHeight - helpRows
	if h < 1 {
		return 1
	}
	return h
}
