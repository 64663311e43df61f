package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/journal"
)

const (
	journalPrefix = "journal-"
	tombstonesKey = "meta-tombstones"
	tempDirName   = ".tmp"
)

// Disk persists one JSON document per journal under a base directory.
type Disk struct {
	opts     options
	d        *diskv.Diskv
	basePath string

	mu sync.Mutex
}

var (
	_ Store    = (*Disk)(nil)
	_ Importer = (*Disk)(nil)
)

// Load creates a Disk store using the provided config. A nil config is read
// with LoadConfig.
func Load(cfg Config, opts ...Option) (*Disk, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	tempDir := filepath.Join(basePath, tempDirName)
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Disk{
		opts: newOptions(opts),
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			TempDir:           tempDir,
		}),
		basePath: basePath,
	}, nil
}

func (p *Disk) tempDir() string {
	return filepath.Join(p.basePath, tempDirName)
}

// BasePath is the directory holding the journals.
func (p *Disk) BasePath() string {
	return p.basePath
}

func (p *Disk) Create(_ context.Context, f journal.Fields) (*journal.Journal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, err := p.allocateLocked()
	if err != nil {
		return nil, err
	}
	j := &journal.Journal{ID: id}
	f.Apply(j)
	p.opts.stamp(j)
	if err := p.write(j); err != nil {
		return nil, err
	}
	return j, nil
}

func (p *Disk) Read(_ context.Context, id string) (*journal.Journal, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readLocked(id)
}

func (p *Disk) Update(_ context.Context, id string, f journal.Fields) (*journal.Journal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	j, ok, err := p.readLocked(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	f.Apply(j)
	p.opts.touch(j)
	if err := p.write(j); err != nil {
		return nil, err
	}
	return j, nil
}

func (p *Disk) Delete(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := toKey(id)
	if !validID(id) || !p.d.Has(key) {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	tombstones, err := p.loadTombstonesLocked()
	if err != nil {
		return err
	}
	if _, dead := tombstones[id]; dead {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	// Record the tombstone first: a crash between the two writes leaves a
	// dead id that is still never reissued and never read.
	tombstones[id] = struct{}{}
	if err := p.saveTombstonesLocked(tombstones); err != nil {
		return err
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %q: %w", id, err)
	}
	return nil
}

func (p *Disk) ListAll(ctx context.Context) ([]*journal.Journal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	tombstones, err := p.loadTombstonesLocked()
	if err != nil {
		return nil, err
	}
	all := make([]*journal.Journal, 0)
	for key := range p.d.KeysPrefix(journalPrefix, ctx.Done()) {
		j, err := p.decode(key)
		if err != nil {
			p.opts.logger.Warn("skipping unreadable journal", zap.String("key", key), zap.Error(err))
			continue
		}
		if _, dead := tombstones[j.ID]; dead {
			continue
		}
		all = append(all, j)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})
	return all, nil
}

// Import writes journals as given. Every id is checked before anything is
// written, so a conflict leaves the store unchanged.
func (p *Disk) Import(_ context.Context, journals ...*journal.Journal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	tombstones, err := p.loadTombstonesLocked()
	if err != nil {
		return err
	}
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
		if !validID(c.ID) {
			return fmt.Errorf("store: import: invalid id %q", c.ID)
		}
		_, dup := seen[c.ID]
		_, dead := tombstones[c.ID]
		if dup || dead || p.d.Has(toKey(c.ID)) {
			return fmt.Errorf("import %q: %w", c.ID, ErrConflict)
		}
		seen[c.ID] = struct{}{}
		batch = append(batch, c)
	}
	for _, c := range batch {
		if err := p.write(c); err != nil {
			return err
		}
	}
	return nil
}

// readLocked resolves live journals only; a tombstoned id never comes back
// even if its file reappears.
func (p *Disk) readLocked(id string) (*journal.Journal, bool, error) {
	key := toKey(id)
	if !validID(id) || !p.d.Has(key) {
		return nil, false, nil
	}
	tombstones, err := p.loadTombstonesLocked()
	if err != nil {
		return nil, false, err
	}
	if _, dead := tombstones[id]; dead {
		return nil, false, nil
	}
	j, err := p.decode(key)
	if err != nil {
		return nil, false, err
	}
	return j, true, nil
}

// decode reads past any cache; other processes write the same files.
func (p *Disk) decode(key string) (*journal.Journal, error) {
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	j := &journal.Journal{}
	if err := json.Unmarshal(val, j); err != nil {
		return nil, err
	}
	j.ID = strings.TrimPrefix(key, journalPrefix)
	return j, nil
}

func (p *Disk) write(j *journal.Journal) error {
	data, err := json.Marshal(j)
	if err != nil {
		return err
	}
	if err := p.d.Write(toKey(j.ID), data); err != nil {
		return fmt.Errorf("store: write %q: %w", j.ID, err)
	}
	return nil
}

func (p *Disk) allocateLocked() (string, error) {
	for {
		id := p.opts.newID()
		if !validID(id) {
			continue
		}
		used, err := p.usedLocked(id)
		if err != nil {
			return "", err
		}
		if !used {
			return id, nil
		}
	}
}

func (p *Disk) usedLocked(id string) (bool, error) {
	if p.d.Has(toKey(id)) {
		return true, nil
	}
	tombstones, err := p.loadTombstonesLocked()
	if err != nil {
		return false, err
	}
	_, ok := tombstones[id]
	return ok, nil
}

// loadTombstonesLocked reads the tombstone set from disk on every call, so
// deletes made by other processes are always seen.
func (p *Disk) loadTombstonesLocked() (map[string]struct{}, error) {
	tombstones := make(map[string]struct{})
	if !p.d.Has(tombstonesKey) {
		return tombstones, nil
	}
	data, err := p.d.Read(tombstonesKey)
	if err != nil {
		return nil, fmt.Errorf("store: load tombstones: %w", err)
	}
	var ids []string
	if len(data) > 0 {
		if err := json.Unmarshal(data, &ids); err != nil {
			return nil, fmt.Errorf("store: load tombstones: %w", err)
		}
	}
	for _, id := range ids {
		tombstones[id] = struct{}{}
	}
	return tombstones, nil
}

func (p *Disk) saveTombstonesLocked(tombstones map[string]struct{}) error {
	ids := make([]string, 0, len(tombstones))
	for id := range tombstones {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := p.d.WriteStream(tombstonesKey, bytes.NewReader(data), true); err != nil {
		return fmt.Errorf("store: save tombstones: %w", err)
	}
	return nil
}

// keyToPathTransform maps `kind-rest` to the directory kind/ and file rest.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) < 2 {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     parts[:1],
		FileName: parts[1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// validID rejects ids that cannot be a single file name.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

// toKey makes `journal-id`.
func toKey(id string) string {
	return journalPrefix + id
}
