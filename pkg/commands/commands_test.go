package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"tableflip.dev/journey/pkg/journal"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func useTempStore(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("JOURNEY_CONFIG_PATH", dir)
	t.Setenv("JOURNEY_PATH", filepath.Join(dir, "db"))
	t.Setenv("JOURNEY_LOG_FILE", filepath.Join(dir, "journey.log"))
}

func listJSON(t *testing.T, args ...string) []*journal.Journal {
	t.Helper()
	out, err := run(t, "", append([]string{"list", "--json"}, args...)...)
	require.NoError(t, err)
	var got []*journal.Journal
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	return got
}

func TestSeedListSearch(t *testing.T) {
	useTempStore(t)

	out, err := run(t, "", "seed")
	require.NoError(t, err)
	require.Contains(t, out, "seeded 4 journals")

	all := listJSON(t)
	require.Len(t, all, 4)
	require.Equal(t, "My Trip to Paris", all[0].DisplayTitle())

	beach := listJSON(t, "--search", "beach")
	require.Len(t, beach, 1)
	require.Equal(t, "Beach Day Adventures", beach[0].DisplayTitle())

	oldest := listJSON(t, "--sort", "oldest")
	require.Equal(t, "Coffee Shop Musings", oldest[0].DisplayTitle())

	_, err = run(t, "", "list", "--sort", "sideways")
	require.Error(t, err)
}

func TestAddEditShowDelete(t *testing.T) {
	useTempStore(t)

	out, err := run(t, "", "add", "--json", "--title", "Harbor", "--location", "", "rowed", "out", "early")
	require.NoError(t, err)
	var created journal.Journal
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.Equal(t, "Harbor", *created.Title)
	require.NotNil(t, created.Location)
	require.Equal(t, "", *created.Location)
	require.Equal(t, "rowed out early", *created.Content)
	require.Nil(t, created.Images)

	_, err = run(t, "", "edit", created.ID, "--clear-location", "--image", "a.png")
	require.NoError(t, err)

	out, err = run(t, "", "show", created.ID, "--json")
	require.NoError(t, err)
	var shown journal.Journal
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	require.Nil(t, shown.Location)
	require.Equal(t, []string{"a.png"}, shown.Images)

	_, err = run(t, "", "delete", created.ID)
	require.NoError(t, err)
	require.Empty(t, listJSON(t))

	out, err = run(t, "", "delete", created.ID, "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"notFound":true`)

	_, err = run(t, "", "delete", created.ID)
	require.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	useTempStore(t)
	_, err := run(t, "", "seed")
	require.NoError(t, err)

	out, err := run(t, "c\nco\ncoffee\n", "search")
	require.NoError(t, err)
	require.Contains(t, out, `"coffee", Newest - 1 journal`)
	require.Contains(t, out, "Coffee Shop Musings")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version", "--short")
	require.NoError(t, err)
	require.Contains(t, out, "dev")
}
