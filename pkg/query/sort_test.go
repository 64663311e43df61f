package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSortOption(t *testing.T) {
	for _, opt := range SortOptions() {
		got, err := ParseSortOption(opt.String())
		require.NoError(t, err)
		require.Equal(t, opt, got)
	}

	got, err := ParseSortOption(" Title-AZ ")
	require.NoError(t, err)
	require.Equal(t, TitleAZ, got)

	got, err = ParseSortOption("")
	require.NoError(t, err)
	require.Equal(t, DateDescending, got)

	_, err = ParseSortOption("size")
	require.Error(t, err)
}

func TestSortOptionLabels(t *testing.T) {
	require.Equal(t, "Date: Newest first", DateDescending.Label())
	require.Equal(t, "Title A–Z", TitleAZ.ShortLabel())
	require.Equal(t, "SortOption(9)", SortOption(9).String())
	require.False(t, SortOption(9).Valid())
}

func TestSortOptionNextCycles(t *testing.T) {
	opt := DateDescending
	seen := map[SortOption]bool{}
	for range SortOptions() {
		seen[opt] = true
		opt = opt.Next()
	}
	require.Equal(t, DateDescending, opt)
	require.Len(t, seen, 4)
}
