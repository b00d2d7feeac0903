package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dom/zodiac-catalog/internal/domain"
)

// CharacterSource fetches the full collection for a Cache.
type CharacterSource interface {
	ListCharacters(ctx context.Context, filter domain.CharacterFilter) ([]domain.Character, error)
}

type State int

const (
	StateLoading State = iota
	StateReady
	StateError
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StateError:
		return "Error"
	case StateRefreshing:
		return "Refreshing"
	default:
		return "Unknown"
	}
}

// Snapshot is an immutable view of the cache. Callers must not modify
// Records or View.
type Snapshot struct {
	State   State
	Records []domain.Character
	View    []domain.Character
	Query   string
	Err     string
	// Seq is the fetch whose result Records holds; zero before any success.
	Seq uint64
}

type CacheOption func(*Cache)

func WithDebounceDelay(delay time.Duration) CacheOption {
	return func(c *Cache) {
		c.debouncer = NewDebouncer(delay)
	}
}

func WithFetchTimeout(timeout time.Duration) CacheOption {
	return func(c *Cache) {
		c.fetchTimeout = timeout
	}
}

// Cache holds the last fetched collection and a view narrowed by a local
// search query. Fetches run in the background; only the result of the most
// recently issued fetch is ever applied.
type Cache struct {
	source       CharacterSource
	debouncer    *Debouncer
	fetchTimeout time.Duration

	mu      sync.Mutex
	state   State
	records []domain.Character
	view    []domain.Character
	query   string
	errMsg  string
	latest  uint64
	applied uint64
	closed  bool

	subscribers map[int]func(Snapshot)
	nextSubID   int
	notifyMu    sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCache(source CharacterSource, opts ...CacheOption) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		source:      source,
		state:       StateLoading,
		records:     []domain.Character{},
		view:        []domain.Character{},
		subscribers: make(map[int]func(Snapshot)),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.debouncer == nil {
		c.debouncer = NewDebouncer(DefaultDebounceDelay)
	}
	return c
}

// Start enters Loading and fetches the collection. It returns the fetch's
// sequence number.
func (c *Cache) Start() uint64 {
	return c.fetch(StateLoading)
}

// Retry re-enters Loading after a failed fetch. From any other state it
// behaves like Refresh.
func (c *Cache) Retry() uint64 {
	c.mu.Lock()
	failed := c.state == StateError
	c.mu.Unlock()

	if failed {
		return c.fetch(StateLoading)
	}
	return c.Refresh()
}

// Refresh re-fetches while the current view stays visible. Without a good
// view to keep it falls back to Loading.
func (c *Cache) Refresh() uint64 {
	c.mu.Lock()
	next := StateLoading
	if c.state == StateReady || c.state == StateRefreshing {
		next = StateRefreshing
	}
	c.mu.Unlock()

	return c.fetch(next)
}

func (c *Cache) fetch(next State) uint64 {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	c.latest++
	seq := c.latest
	c.state = next
	c.wg.Add(1)
	c.publishLocked()

	go c.run(seq)
	return seq
}

func (c *Cache) run(seq uint64) {
	defer c.wg.Done()

	ctx := c.ctx
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	records, err := c.source.ListCharacters(ctx, domain.CharacterFilter{})
	c.resolve(seq, records, err)
}

// resolve applies a fetch result if seq is still the latest issued fetch.
func (c *Cache) resolve(seq uint64, records []domain.Character, err error) {
	c.mu.Lock()
	if c.closed || seq != c.latest {
		c.mu.Unlock()
		return
	}

	if err != nil {
		c.state = StateError
		c.errMsg = err.Error()
		c.publishLocked()
		return
	}

	if records == nil {
		records = []domain.Character{}
	}
	c.state = StateReady
	c.errMsg = ""
	c.records = records
	c.view = FilterCharacters(records, c.query)
	c.applied = seq
	c.publishLocked()
}

// SetQuery updates the search text. A blank query restores the full
// collection immediately; anything else is applied after the debounce delay.
func (c *Cache) SetQuery(query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.query = query

	if strings.TrimSpace(query) == "" {
		c.debouncer.Cancel()
		c.view = FilterCharacters(c.records, "")
		c.publishLocked()
		return
	}

	// Scheduled under c.mu so the last query set is the last task armed.
	c.debouncer.Schedule(func() {
		c.applyQuery(query)
	})
	c.mu.Unlock()
}

func (c *Cache) applyQuery(query string) {
	c.mu.Lock()
	if c.closed || c.query != query {
		c.mu.Unlock()
		return
	}
	c.view = FilterCharacters(c.records, query)
	c.publishLocked()
}

func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cache) snapshotLocked() Snapshot {
	return Snapshot{
		State:   c.state,
		Records: c.records,
		View:    c.view,
		Query:   c.query,
		Err:     c.errMsg,
		Seq:     c.applied,
	}
}

// Subscribe registers fn for every state change, delivered in order.
// fn must not call back into the Cache synchronously.
func (c *Cache) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// publishLocked releases c.mu and delivers the current snapshot. Holding
// notifyMu across the handoff keeps deliveries in mutation order.
func (c *Cache) publishLocked() {
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}

	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// Close cancels in-flight fetches and pending filters and waits for
// background work to finish.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.debouncer.Stop()
	c.cancel()
	c.wg.Wait()
}
