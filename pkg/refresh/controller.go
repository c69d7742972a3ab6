package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/gurinder1988/footyfeed/pkg/fetch"
	"github.com/gurinder1988/footyfeed/pkg/model"
	"github.com/gurinder1988/footyfeed/pkg/stats"
)

type State string

const (
	StateIdle    = State("idle")
	StateLoading = State("loading")
	StateReady   = State("ready")
	// StatePartial means items were loaded but some sources failed
	StatePartial = State("partial")
	StateFailed  = State("failed")
)

const noItemsMessage = "no source returned any items"

var ErrUnknownEntity = errors.New("unknown entity")

// Status is a point in time copy of the controller state.
type Status struct {
	State      State              `json:"state"`
	Items      []model.FeedRecord `json:"items"`
	Preference string             `json:"preference,omitempty"`
	// Error is the most recent failure message
	Error     string    `json:"error,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
	FromCache bool      `json:"from_cache"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Deps struct {
	Fetcher     batchFetcher
	Cache       snapshotStore
	Preferences preferenceStore
	Sources     sourceRegistry
}

// Controller owns the displayed item list and runs at most one refresh session at a time.
type Controller struct {
	ctx    context.Context
	cancel context.CancelFunc
	deps   Deps
	now    func() time.Time
	wg     sync.WaitGroup

	saveMu sync.Mutex

	mu         sync.Mutex
	session    *Session
	state      State
	items      []model.FeedRecord
	preference string
	lastError  string
	errors     []string
	fromCache  bool
	updatedAt  time.Time
}

// New creates a controller, restoring the saved preference and seeding the list from the cache.
func New(ctx context.Context, deps Deps) *Controller {
	ctx, cancel := context.WithCancel(ctx)

	c := &Controller{
		ctx:    ctx,
		cancel: cancel,
		deps:   deps,
		now:    time.Now,
		state:  StateIdle,
	}

	preference, err := deps.Preferences.Preference(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to read preference")
	} else if preference != "" && !deps.Sources.Has(preference) {
		log.Warnf("ignoring preference %q, no such entity configured", preference)
	} else {
		c.preference = preference
	}

	if items, ok := deps.Cache.Load(ctx); ok && len(items) > 0 {
		log.Infof("restored %d item(s) from cache", len(items))
		c.items = items
		c.fromCache = true
	}

	return c
}

// Refresh cancels the running session, if any, and starts a new one.
func (c *Controller) Refresh() *Session {
	c.mu.Lock()
	s := c.startLocked()
	c.mu.Unlock()

	go c.run(s)
	return s
}

// SetPreference persists entity and restarts the refresh with its sources.
// An empty entity clears the preference.
func (c *Controller) SetPreference(ctx context.Context, entity string) (*Session, error) {
	if entity != "" && !c.deps.Sources.Has(entity) {
		return nil, errors.Wrapf(ErrUnknownEntity, "%q", entity)
	}

	if err := c.deps.Preferences.SetPreference(ctx, entity); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.preference = entity
	s := c.startLocked()
	c.mu.Unlock()

	log.Infof("preference changed to %q", entity)

	go c.run(s)
	return s, nil
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Status{
		State:      c.state,
		Items:      append([]model.FeedRecord{}, c.items...),
		Preference: c.preference,
		Error:      c.lastError,
		Errors:     append([]string(nil), c.errors...),
		FromCache:  c.fromCache,
		UpdatedAt:  c.updatedAt,
	}
}

// Close cancels the running session and waits for every started session to stop.
func (c *Controller) Close() {
	c.cancel()
	c.wg.Wait()
}

func (c *Controller) startLocked() *Session {
	if c.session != nil {
		c.session.Cancel()
	}

	s := newSession(c.ctx, c.preference)
	c.session = s
	c.wg.Add(1)
	c.state = StateLoading
	c.lastError = ""
	c.errors = nil

	return s
}

// current reports whether s may still mutate controller state. Must be called with mu held.
func (c *Controller) current(s *Session) bool {
	return c.session == s && s.ctx.Err() == nil
}

func (c *Controller) run(s *Session) {
	defer c.wg.Done()
	defer close(s.done)

	logger := log.WithField("preference", s.preference)
	logger.Debug("refresh started")

	c.seed(s)

	var preferred []fetch.Source
	if s.preference != "" {
		preferred, _ = c.deps.Sources.Preferred(s.preference)
	}

	var (
		preferredDone = make(chan struct{})
		wg            sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()

		result := c.deps.Fetcher.FetchAll(s.ctx, c.deps.Sources.General())

		// General content is never published ahead of preferred content
		select {
		case <-preferredDone:
		case <-s.ctx.Done():
			return
		}

		c.merge(s, "general", result)
	}()

	if len(preferred) > 0 {
		result := c.deps.Fetcher.FetchAll(s.ctx, preferred)
		c.merge(s, "preferred", result)
	}

	close(preferredDone)
	wg.Wait()

	c.finish(s)
	logger.Debug("refresh finished")
}

func (c *Controller) seed(s *Session) {
	c.mu.Lock()
	empty := len(c.items) == 0
	c.mu.Unlock()

	if !empty {
		return
	}

	items, ok := c.deps.Cache.Load(s.ctx)
	if !ok || len(items) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current(s) && len(c.items) == 0 {
		c.items = items
		c.fromCache = true
	}
}

func (c *Controller) merge(s *Session, batch string, result fetch.BatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(s) {
		return
	}

	if len(result.Errors) > 0 {
		s.errors = append(s.errors, result.Errors...)
		c.errors = append([]string(nil), s.errors...)
		c.lastError = result.Errors[len(result.Errors)-1]
	}

	if len(result.Items) == 0 {
		log.WithField("batch", batch).Warnf("batch produced no items (%d error(s))", len(result.Errors))
		return
	}

	if s.produced {
		c.items = mergeItems(c.items, result.Items)
	} else {
		c.items = mergeItems(nil, result.Items)
		s.produced = true
	}

	c.fromCache = false
	c.updatedAt = c.now()

	log.WithFields(log.Fields{
		"batch":  batch,
		"items":  len(result.Items),
		"total":  len(c.items),
		"errors": len(result.Errors),
	}).Info("published batch")
}

// finish publishes the final state of s. Cache I/O runs without mu held so
// Status never waits on the storage backend.
func (c *Controller) finish(s *Session) {
	c.mu.Lock()
	if !c.current(s) {
		c.mu.Unlock()
		return
	}
	produced := s.produced
	items := append([]model.FeedRecord(nil), c.items...)
	c.mu.Unlock()

	var (
		cached   []model.FeedRecord
		cachedOK bool
	)

	if produced {
		c.save(s, items)
	} else {
		cached, cachedOK = c.deps.Cache.Load(c.ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(s) {
		return
	}

	switch {
	case produced && len(s.errors) == 0:
		c.state = StateReady
	case produced:
		c.state = StatePartial
	default:
		c.fallback(cached, cachedOK && len(cached) > 0)
	}

	c.updatedAt = c.now()
	c.session = nil
	s.cancel()

	stats.ObserveRefresh(string(c.state), len(c.items))
}

// save writes the snapshot of s unless s has been superseded. saveMu keeps a
// newer session's snapshot from being overwritten by an older one.
func (c *Controller) save(s *Session, items []model.FeedRecord) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	current := c.current(s)
	c.mu.Unlock()

	if !current {
		return
	}

	if err := c.deps.Cache.Save(c.ctx, items); err != nil {
		log.WithError(err).Error("failed to save snapshot")
	}
}

// fallback handles a session in which no batch produced items. Must be called with mu held.
func (c *Controller) fallback(cached []model.FeedRecord, ok bool) {
	if ok {
		log.Warnf("all sources failed, showing %d cached item(s)", len(cached))
		c.items = cached
		c.fromCache = true
		c.lastError = ""
		c.state = StateReady
		return
	}

	if c.lastError == "" {
		c.lastError = noItemsMessage
	}

	log.Errorf("refresh failed: %s", c.lastError)
	c.state = StateFailed
}

// mergeItems appends incoming to existing, drops duplicate ids keeping the first
// occurrence and sorts the result newest first.
func mergeItems(existing, incoming []model.FeedRecord) []model.FeedRecord {
	combined := make([]model.FeedRecord, 0, len(existing)+len(incoming))
	combined = append(combined, existing...)
	combined = append(combined, incoming...)

	merged := lo.UniqBy(combined, func(item model.FeedRecord) string {
		return item.ID
	})

	model.SortNewestFirst(merged)
	return merged
}
