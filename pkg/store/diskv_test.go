package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/journey/pkg/journal"
)

func TestDiskLayout(t *testing.T) {
	base := t.TempDir()
	d, err := Load(&Settings{Path: base}, WithIDGenerator(sequentialIDs("abc")))
	require.NoError(t, err)

	_, err = d.Create(context.Background(), journal.Fields{Title: journal.Text("on disk")})
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(base, "journal", "abc"))

	require.NoError(t, d.Delete(context.Background(), "abc"))
	require.NoFileExists(t, filepath.Join(base, "journal", "abc"))
	require.FileExists(t, filepath.Join(base, "meta", "tombstones"))
}

func TestDiskTombstonesSurviveReload(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()
	d, err := Load(&Settings{Path: base}, WithIDGenerator(sequentialIDs("a", "b")))
	require.NoError(t, err)
	_, err = d.Create(ctx, journal.Fields{})
	require.NoError(t, err)
	require.NoError(t, d.Delete(ctx, "a"))

	reloaded, err := Load(&Settings{Path: base}, WithIDGenerator(sequentialIDs("a", "b")))
	require.NoError(t, err)
	j, err := reloaded.Create(ctx, journal.Fields{})
	require.NoError(t, err)
	require.Equal(t, "b", j.ID)
}

func TestDiskSkipsUnreadableJournals(t *testing.T) {
	base := t.TempDir()
	core, logs := observer.New(zap.WarnLevel)
	d, err := Load(&Settings{Path: base}, WithLogger(zap.New(core)))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = d.Create(ctx, journal.Fields{Title: journal.Text("fine")})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(base, "journal", "broken"), []byte("{not json"), 0o644))

	all, err := d.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "fine", *all[0].Title)
	require.Equal(t, 1, logs.FilterMessage("skipping unreadable journal").Len())
}

func TestDiskSeesWritesFromAnotherStore(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()
	reader, err := Load(&Settings{Path: base})
	require.NoError(t, err)
	writer, err := Load(&Settings{Path: base})
	require.NoError(t, err)

	j, err := writer.Create(ctx, journal.Fields{Title: journal.Text("first draft")})
	require.NoError(t, err)
	got, ok, err := reader.Read(ctx, j.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "first draft", *got.Title)

	_, err = writer.Update(ctx, j.ID, journal.Fields{Title: journal.Text("final")})
	require.NoError(t, err)
	got, ok, err = reader.Read(ctx, j.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "final", *got.Title)

	require.NoError(t, writer.Delete(ctx, j.ID))
	all, err := reader.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestDiskDeletedIDNeverResolves(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()
	a, err := Load(&Settings{Path: base}, WithIDGenerator(sequentialIDs("x")))
	require.NoError(t, err)
	b, err := Load(&Settings{Path: base})
	require.NoError(t, err)

	// b has looked at the store before a deletes.
	_, err = b.ListAll(ctx)
	require.NoError(t, err)

	_, err = a.Create(ctx, journal.Fields{Title: journal.Text("gone soon")})
	require.NoError(t, err)
	require.NoError(t, a.Delete(ctx, "x"))

	err = b.Import(ctx, &journal.Journal{ID: "x", Title: journal.Text("back")})
	require.True(t, errors.Is(err, ErrConflict))

	// A stray file for the dead id must not bring it back either.
	require.NoError(t, os.WriteFile(filepath.Join(base, "journal", "x"), []byte(`{"title":"back"}`), 0o644))

	c, err := Load(&Settings{Path: base})
	require.NoError(t, err)
	all, err := c.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	_, ok, err := c.Read(ctx, "x")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = c.Update(ctx, "x", journal.Fields{Title: journal.Text("again")})
	require.True(t, errors.Is(err, ErrNotFound))

	err = c.Delete(ctx, "x")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadRequiresPath(t *testing.T) {
	_, err := Load(&Settings{})
	require.Error(t, err)
}
