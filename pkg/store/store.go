// Package store holds the authoritative collection of journals.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/journal"
)

var (
	// ErrNotFound is returned when an id does not resolve to a live journal.
	ErrNotFound = errors.New("store: journal not found")

	// ErrConflict is returned when importing an id that is live or was deleted.
	ErrConflict = errors.New("store: journal id already used")
)

// Store is the CRUD contract over journals. Implementations hand out copies;
// mutating a returned journal never changes the store.
type Store interface {
	Create(ctx context.Context, f journal.Fields) (*journal.Journal, error)
	Read(ctx context.Context, id string) (*journal.Journal, bool, error)
	Update(ctx context.Context, id string, f journal.Fields) (*journal.Journal, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*journal.Journal, error)
}

// Importer accepts journals produced elsewhere, keeping their ids and
// timestamps.
type Importer interface {
	Import(ctx context.Context, journals ...*journal.Journal) error
}

// Option configures a store.
type Option func(*options)

type options struct {
	clock  clockwork.Clock
	newID  func() string
	logger *zap.Logger
}

// WithClock sets the clock used for CreatedAt and UpdatedAt.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets where the store reports problems it recovers from, such
// as unreadable journal files.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithIDGenerator replaces the uuid id generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

func newOptions(opts []Option) options {
	o := options{
		clock:  clockwork.NewRealClock(),
		newID:  uuid.NewString,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// stamp sets both timestamps of a new journal.
func (o options) stamp(j *journal.Journal) {
	now := o.clock.Now()
	j.CreatedAt = journal.At(now)
	j.UpdatedAt = journal.At(now)
}

// touch bumps UpdatedAt, never moving it before CreatedAt.
func (o options) touch(j *journal.Journal) {
	now := o.clock.Now()
	if j.CreatedAt.Valid() && now.Before(j.CreatedAt.Time) {
		now = j.CreatedAt.Time
	}
	j.UpdatedAt = journal.At(now)
}
