// Package dashboard coordinates the journal store, the debounced search and
// the query pipeline, and owns the list currently on display.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/debounce"
	"tableflip.dev/journey/pkg/journal"
	"tableflip.dev/journey/pkg/query"
	"tableflip.dev/journey/pkg/store"
)

// ErrImportUnsupported is returned by Import when the store cannot keep
// foreign ids and timestamps.
var ErrImportUnsupported = errors.New("dashboard: store does not support import")

// View is a point-in-time copy of what the dashboard shows.
type View struct {
	Journals []*journal.Journal
	Search   string
	Sort     query.SortOption
	Selected *journal.Journal
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithDelay sets the search debounce delay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// WithSort sets the initial sort option.
func WithSort(opt query.SortOption) Option {
	return func(c *Controller) {
		c.sort = opt
	}
}

// WithPipeline replaces the default query pipeline, e.g. for another locale.
func WithPipeline(p query.Pipeline) Option {
	return func(c *Controller) {
		c.pipeline = p
	}
}

// WithListener registers fn to receive every new view. fn runs after the
// controller's lock is released and may call View.
func WithListener(fn func(View)) Option {
	return func(c *Controller) {
		c.listener = fn
	}
}

// Controller reacts to dashboard events. Searches go through the debouncer;
// sort changes and store mutations re-query immediately.
type Controller struct {
	store    store.Store
	logger   *zap.Logger
	clock    clockwork.Clock
	delay    time.Duration
	pipeline query.Pipeline
	listener func(View)

	debouncer *debounce.Debouncer

	mu       sync.Mutex
	search   string
	sort     query.SortOption
	journals []*journal.Journal
	selected *journal.Journal

	// notifyMu keeps listener calls in the order views were produced.
	notifyMu sync.Mutex
}

// New returns a controller over s. Call Refresh to load the first view.
func New(s store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:    s,
		logger:   zap.NewNop(),
		journals: []*journal.Journal{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.debouncer = debounce.New(c.delay, c.clock, c.searchSettled)
	return c
}

// SearchChanged records the raw search text and schedules a query once the
// text stops changing.
func (c *Controller) SearchChanged(text string) {
	c.mu.Lock()
	c.search = text
	c.mu.Unlock()
	c.debouncer.Push(text)
}

// Submit applies text right away, dropping any pending debounced search.
func (c *Controller) Submit(ctx context.Context, text string) error {
	c.debouncer.Cancel()
	c.mu.Lock()
	c.search = text
	return c.requeryAndUnlock(ctx)
}

// FlushSearch runs a pending debounced search now. It reports whether one
// was pending.
func (c *Controller) FlushSearch() bool {
	return c.debouncer.Flush()
}

func (c *Controller) searchSettled(text string) {
	c.mu.Lock()
	if text != c.search {
		c.mu.Unlock()
		c.logger.Debug("dropping superseded search", zap.String("search", text))
		return
	}
	if err := c.requeryAndUnlock(context.Background()); err != nil {
		c.logger.Error("debounced search failed", zap.String("search", text), zap.Error(err))
	}
}

// SetSort changes the order and re-queries immediately.
func (c *Controller) SetSort(ctx context.Context, opt query.SortOption) error {
	if !opt.Valid() {
		return fmt.Errorf("dashboard: invalid sort option %v", opt)
	}
	c.mu.Lock()
	c.sort = opt
	return c.requeryAndUnlock(ctx)
}

// Refresh reloads the display list from the store.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	return c.requeryAndUnlock(ctx)
}

// Create stores a new journal and re-queries.
func (c *Controller) Create(ctx context.Context, f journal.Fields) (*journal.Journal, error) {
	c.mu.Lock()
	j, err := c.store.Create(ctx, f)
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("create journal", zap.Error(err))
		return nil, err
	}
	c.logger.Info("created journal", zap.String("id", j.ID))
	return j, c.requeryAndUnlock(ctx)
}

// Update changes a journal and re-queries. A selected journal is replaced by
// its updated copy.
func (c *Controller) Update(ctx context.Context, id string, f journal.Fields) (*journal.Journal, error) {
	c.mu.Lock()
	j, err := c.store.Update(ctx, id, f)
	if err != nil {
		c.mu.Unlock()
		c.logFailure("update journal", id, err)
		return nil, err
	}
	if c.selected != nil && c.selected.ID == id {
		c.selected = j.Clone()
	}
	c.logger.Info("updated journal", zap.String("id", id))
	return j, c.requeryAndUnlock(ctx)
}

// Delete removes a journal and re-queries. The selection is cleared first
// when it points at the deleted journal.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	if err := c.store.Delete(ctx, id); err != nil {
		c.mu.Unlock()
		c.logFailure("delete journal", id, err)
		return err
	}
	if c.selected != nil && c.selected.ID == id {
		c.selected = nil
	}
	c.logger.Info("deleted journal", zap.String("id", id))
	return c.requeryAndUnlock(ctx)
}

// Import adds externally produced journals, keeping their ids and
// timestamps, and re-queries.
func (c *Controller) Import(ctx context.Context, journals ...*journal.Journal) error {
	imp, ok := c.store.(store.Importer)
	if !ok {
		return ErrImportUnsupported
	}
	c.mu.Lock()
	if err := imp.Import(ctx, journals...); err != nil {
		c.mu.Unlock()
		c.logger.Error("import journals", zap.Int("count", len(journals)), zap.Error(err))
		return err
	}
	return c.requeryAndUnlock(ctx)
}

// Select points the detail view at a journal.
func (c *Controller) Select(ctx context.Context, id string) (*journal.Journal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	j, ok, err := c.store.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("select %q: %w", id, store.ErrNotFound)
	}
	c.selected = j
	return j.Clone(), nil
}

// ClearSelection dismisses the detail view.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.selected = nil
	c.mu.Unlock()
}

// Selected returns the journal in the detail view, if any.
func (c *Controller) Selected() *journal.Journal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected.Clone()
}

// View returns a copy of the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Follow re-queries on every store change event until events closes or ctx
// is done.
func (c *Controller) Follow(ctx context.Context, events <-chan store.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.logger.Debug("store changed", zap.Int("type", int(ev.Type)), zap.String("id", ev.ID))
			if err := c.Refresh(ctx); err != nil {
				c.logger.Warn("refresh after store change", zap.Error(err))
			}
		}
	}
}

// Close stops the debouncer; pending searches are dropped.
func (c *Controller) Close() {
	c.debouncer.Stop()
}

// requeryAndUnlock rebuilds the display list from a fresh snapshot, releases
// c.mu and notifies the listener. On error the display list is unchanged.
func (c *Controller) requeryAndUnlock(ctx context.Context) error {
	all, err := c.store.ListAll(ctx)
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("list journals", zap.Error(err))
		return err
	}
	c.journals = c.pipeline.Apply(all, c.search, c.sort)
	if c.selected != nil && !contains(all, c.selected.ID) {
		c.selected = nil
	}
	v := c.viewLocked()

	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()
	c.logger.Debug("display list updated",
		zap.String("search", v.Search),
		zap.Stringer("sort", v.Sort),
		zap.Int("count", len(v.Journals)))
	if c.listener != nil {
		c.listener(v)
	}
	return nil
}

func (c *Controller) viewLocked() View {
	list := make([]*journal.Journal, len(c.journals))
	for i, j := range c.journals {
		list[i] = j.Clone()
	}
	return View{
		Journals: list,
		Search:   c.search,
		Sort:     c.sort,
		Selected: c.selected.Clone(),
	}
}

func (c *Controller) logFailure(msg, id string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.logger.Warn(msg, zap.String("id", id), zap.Error(err))
		return
	}
	c.logger.Error(msg, zap.String("id", id), zap.Error(err))
}

func contains(all []*journal.Journal, id string) bool {
	for _, j := range all {
		if j.ID == id {
			return true
		}
	}
	return false
}
