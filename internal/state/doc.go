// Package state turns a screen's asynchronous fetch into a three-state load
// lifecycle.
//
// # Overview
//
// Each screen owns one Controller. The controller holds a LoadState, a tagged
// value that is Loading, Failed(message) or Loaded(value) once the screen has
// been activated (Idle before that). The UI renders from LoadState and nothing
// else.
//
// # Transitions
//
//	Idle    ── Activate ──> Loading
//	Loading ── success ───> Loaded(value)
//	Loading ── failure ───> Failed(prefix + ": " + err)
//	Failed  ── Retry ─────> Loading
//	Loaded  ── Refresh ───> Loading
//
// Every start request made while Loading is a no-op and returns ok=false.
// Requests are neither queued nor used to cancel the fetch in flight, so at
// most one fetch is outstanding per controller and it always wins.
//
// # Tasks
//
// Activate, Retry and Refresh switch to Loading synchronously and hand back a
// Task. The task performs the fetch and commits the outcome; it can run on any
// goroutine. The UI wraps it in a tea.Cmd:
//
//	if task, ok := ctrl.Activate(ctx); ok {
//		return func() tea.Msg { st, ok := task(); return loadedMsg{st, ok} }
//	}
//
// Callers without an event loop can use Go, which runs the task on a new
// goroutine, and Subscribe to hear about transitions.
//
// # Teardown
//
// Close marks the controller disposed and cancels the fetch context. A task
// that finishes afterwards returns ok=false, leaves State untouched and calls
// no observers. Reset does the same for a single fetch and returns the
// controller to Idle with a new fetch function.
//
// # Concurrency Model
//
// A sync.Mutex guards the state cell because fetches complete on a different
// goroutine from the one that renders. The lock is never held during the
// fetch or while observers run.
//
// Transitions are queued under the lock and delivered by one goroutine at a
// time, so observers see them in order and the last one they see matches
// State. A transition made while another goroutine is delivering is left for
// that goroutine; the caller does not wait for slow observers.
//
// Loaded values are shared with the renderer and must be treated as
// read-only once committed.
//
// # Error Reporting
//
// The failure message is the controller's fixed prefix joined to the error
// text. The raw error is also logged at warn level with the screen name and
// the controller's instance id.
package state
