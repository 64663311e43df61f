package seed

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"tableflip.dev/journey/pkg/dashboard"
	"tableflip.dev/journey/pkg/store"
)

func init() {
	color.NoColor = true
}

func TestSeedOnce(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	c := dashboard.New(s)
	defer c.Close()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 11, 12, 9, 0, 0, 0, time.UTC))

	count := func() int {
		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		return len(all)
	}

	var out bytes.Buffer
	n := &Seed{Dashboard: c, Clock: clock, Out: &out}
	require.NoError(t, n.Do(ctx))
	require.Equal(t, 4, count())
	require.Contains(t, out.String(), "seeded 4 journals")

	out.Reset()
	require.NoError(t, n.Do(ctx))
	require.Equal(t, 4, count())
	require.Contains(t, out.String(), "--force")

	n.Force = true
	require.NoError(t, n.Do(ctx))
	require.Equal(t, 8, count())
}
