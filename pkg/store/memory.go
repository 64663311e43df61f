package store

import (
	"context"
	"fmt"
	"sync"

	"tableflip.dev/journey/pkg/journal"
)

// Memory is an in-process Store. ListAll returns journals in insertion order.
type Memory struct {
	opts options

	mu         sync.RWMutex
	records    map[string]*journal.Journal
	order      []string
	tombstones map[string]struct{}
}

var (
	_ Store    = (*Memory)(nil)
	_ Importer = (*Memory)(nil)
)

// NewMemory returns an empty in-memory store.
func NewMemory(opts ...Option) *Memory {
	return &Memory{
		opts:       newOptions(opts),
		records:    make(map[string]*journal.Journal),
		tombstones: make(map[string]struct{}),
	}
}

func (m *Memory) Create(_ context.Context, f journal.Fields) (*journal.Journal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j := &journal.Journal{ID: m.allocateLocked()}
	f.Apply(j)
	m.opts.stamp(j)
	m.insertLocked(j)
	return j.Clone(), nil
}

func (m *Memory) Read(_ context.Context, id string) (*journal.Journal, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.records[id]
	if !ok {
		return nil, false, nil
	}
	return j.Clone(), true, nil
}

func (m *Memory) Update(_ context.Context, id string, f journal.Fields) (*journal.Journal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	j := current.Clone()
	f.Apply(j)
	m.opts.touch(j)
	m.records[id] = j
	return j.Clone(), nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	delete(m.records, id)
	m.tombstones[id] = struct{}{}
	for i, key := range m.order {
		if key == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) ListAll(_ context.Context) ([]*journal.Journal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*journal.Journal, 0, len(m.order))
	for _, id := range m.order {
		all = append(all, m.records[id].Clone())
	}
	return all, nil
}

// Import inserts journals as given. A journal without an id gets a temporary
// one; one without timestamps keeps none. Every id is checked before
// anything is inserted, so a conflict leaves the store unchanged.
func (m *Memory) Import(_ context.Context, journals ...*journal.Journal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	batch := make([]*journal.Journal, 0, len(journals))
	seen := make(map[string]struct{}, len(journals))
	for _, j := range journals {
		if j == nil {
			continue
		}
		c := j.Clone()
		if c.ID == "" {
			c.ID = journal.NewTemporaryID()
		}
		if _, dup := seen[c.ID]; dup || m.usedLocked(c.ID) {
			return fmt.Errorf("import %q: %w", c.ID, ErrConflict)
		}
		seen[c.ID] = struct{}{}
		batch = append(batch, c)
	}
	for _, c := range batch {
		m.insertLocked(c)
	}
	return nil
}

// allocateLocked draws ids until one has never been used, so a deleted id
// is never handed out again even with a custom generator.
func (m *Memory) allocateLocked() string {
	for {
		id := m.opts.newID()
		if id != "" && !m.usedLocked(id) {
			return id
		}
	}
}

func (m *Memory) usedLocked(id string) bool {
	if _, ok := m.records[id]; ok {
		return true
	}
	_, ok := m.tombstones[id]
	return ok
}

func (m *Memory) insertLocked(j *journal.Journal) {
	m.records[j.ID] = j
	m.order = append(m.order, j.ID)
}
