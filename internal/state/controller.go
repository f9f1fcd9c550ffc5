package state

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind tags which variant of LoadState holds.
type Kind int

const (
	Idle Kind = iota
	Loading
	Failed
	Loaded
)

func (k Kind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Failed:
		return "failed"
	case Loaded:
		return "loaded"
	default:
		return "idle"
	}
}

// LoadState is the value a screen renders from. Message is set only when
// Kind is Failed and Value only when Kind is Loaded.
type LoadState[T any] struct {
	Kind      Kind
	Message   string
	Value     T
	UpdatedAt time.Time
	Failures  int // consecutive failed fetches
}

// FetchFunc performs one fetch for a screen.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Task runs a started fetch and commits its outcome. ok is false when the
// result was discarded because the controller was closed or reset meanwhile.
type Task[T any] func() (st LoadState[T], ok bool)

const defaultPrefix = "Error loading data"

// Options configure a Controller.
type Options struct {
	Name   string // screen name used in logs
	Prefix string // fixed start of every failure message
	Logger *zap.SugaredLogger
}

// Controller owns one screen's LoadState and allows at most one fetch in flight.
type Controller[T any] struct {
	mu        sync.Mutex
	fetch     FetchFunc[T]
	name      string
	prefix    string
	id        string
	log       *zap.SugaredLogger
	current   LoadState[T]
	closed    bool
	cancel    context.CancelFunc
	seq       uint64
	nextSub   int
	observers map[int]func(LoadState[T])

	// Transitions waiting to be delivered, in the order they happened.
	// One goroutine at a time drains the queue.
	pending  []LoadState[T]
	draining bool
}

// New builds an idle controller around fetch.
func New[T any](fetch FetchFunc[T], opts Options) *Controller[T] {
	prefix := strings.TrimSpace(opts.Prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Controller[T]{
		fetch:     fetch,
		name:      opts.Name,
		prefix:    prefix,
		id:        uuid.NewString(),
		log:       log,
		observers: make(map[int]func(LoadState[T])),
	}
}

// ID returns the controller's instance id, used to correlate log lines.
func (c *Controller[T]) ID() string {
	return c.id
}

// State returns the current LoadState.
func (c *Controller[T]) State() LoadState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe registers fn to be called after every transition. Observers see
// transitions in the order they happened and never concurrently. A transition
// made while another goroutine is delivering is handed to that goroutine, so
// a slow observer never blocks the caller of Activate, Retry or Refresh.
func (c *Controller[T]) Subscribe(fn func(LoadState[T])) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || fn == nil {
		return func() {}
	}
	key := c.nextSub
	c.nextSub++
	c.observers[key] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, key)
	}
}

// Activate starts a fetch when the screen becomes visible. It is a no-op while
// a fetch is already in flight.
func (c *Controller[T]) Activate(ctx context.Context) (Task[T], bool) {
	return c.start(ctx, Idle, Failed, Loaded)
}

// Retry restarts the fetch from scratch after a failure.
func (c *Controller[T]) Retry(ctx context.Context) (Task[T], bool) {
	return c.start(ctx, Failed)
}

// Refresh refetches after a successful load.
func (c *Controller[T]) Refresh(ctx context.Context) (Task[T], bool) {
	return c.start(ctx, Loaded)
}

// Go starts Activate's task on a new goroutine.
func (c *Controller[T]) Go(ctx context.Context) bool {
	task, ok := c.Activate(ctx)
	if !ok {
		return false
	}
	go task()
	return true
}

// Reset swaps the fetch function, abandons any in-flight fetch and returns
// the controller to Idle. The detail screen uses it when its id changes.
func (c *Controller[T]) Reset(fetch FetchFunc[T]) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	if fetch != nil {
		c.fetch = fetch
	}
	c.current = LoadState[T]{Kind: Idle, UpdatedAt: time.Now()}
	deliver := c.enqueue(c.current)
	c.mu.Unlock()

	if deliver {
		c.drain()
	}
}

// Close disposes the controller. A fetch still in flight is cancelled and its
// result discarded; no further transitions or notifications happen.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	clear(c.observers)
	c.pending = nil
}

// Closed reports whether Close has been called.
func (c *Controller[T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller[T]) start(ctx context.Context, from ...Kind) (Task[T], bool) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.closed || c.fetch == nil || c.current.Kind == Loading || !slices.Contains(from, c.current.Kind) {
		c.mu.Unlock()
		return nil, false
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.seq++
	seq := c.seq
	fetch := c.fetch
	c.current = LoadState[T]{Kind: Loading, UpdatedAt: time.Now(), Failures: c.current.Failures}
	deliver := c.enqueue(c.current)
	c.mu.Unlock()

	if deliver {
		c.drain()
	}

	return func() (LoadState[T], bool) {
		value, err := fetch(fetchCtx)
		cancel()
		return c.commit(seq, value, err)
	}, true
}

func (c *Controller[T]) commit(seq uint64, value T, err error) (LoadState[T], bool) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		c.log.Debugw("discarding stale fetch result", "screen", c.name, "instance", c.id)
		return LoadState[T]{}, false
	}
	c.cancel = nil

	next := LoadState[T]{UpdatedAt: time.Now()}
	if err != nil {
		next.Kind = Failed
		next.Message = fmt.Sprintf("%s: %v", c.prefix, err)
		next.Failures = c.current.Failures + 1
	} else {
		next.Kind = Loaded
		next.Value = value
	}
	c.current = next
	deliver := c.enqueue(next)
	c.mu.Unlock()

	if err != nil {
		c.log.Warnw("fetch failed", "screen", c.name, "instance", c.id, "failures", next.Failures, "error", err)
	}
	if deliver {
		c.drain()
	}
	return next, true
}

// observerList must be called with mu held.
func (c *Controller[T]) observerList() []func(LoadState[T]) {
	if len(c.observers) == 0 {
		return nil
	}
	out := make([]func(LoadState[T]), 0, len(c.observers))
	for _, fn := range c.observers {
		out = append(out, fn)
	}
	return out
}

// enqueue must be called with mu held. It reports whether the caller has to
// drain the queue itself.
func (c *Controller[T]) enqueue(st LoadState[T]) bool {
	c.pending = append(c.pending, st)
	if c.draining {
		return false
	}
	c.draining = true
	return true
}

// drain delivers queued transitions until none are left or the controller is
// closed. Observers run outside mu.
func (c *Controller[T]) drain() {
	for {
		c.mu.Lock()
		if c.closed || len(c.pending) == 0 {
			c.pending = nil
			c.draining = false
			c.mu.Unlock()
			return
		}
		st := c.pending[0]
		c.pending = c.pending[1:]
		observers := c.observerList()
		c.mu.Unlock()

		for _, fn := range observers {
			fn(st)
		}
	}
}
