package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"tableflip.dev/journey/pkg/journal"
	"tableflip.dev/journey/pkg/sample"
)

func init() {
	color.NoColor = true
}

var now = time.Date(2025, 11, 12, 9, 0, 0, 0, time.Local)

func TestJournalsTable(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	journals := sample.Journals(now)
	pp.Journals(journals...)

	out := buf.String()
	require.Contains(t, out, "Morning Reflections")
	require.Contains(t, out, "Malibu, CA")
	require.Contains(t, out, "Nov 12, 2025")
	require.Contains(t, out, journals[0].ID)
	require.NotContains(t, out, "laborum et dolorum fuga", "long content is shown as a snippet")
}

func TestJournalsEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Journals()
	require.Contains(t, buf.String(), "none")
}

func TestJournalsUntitled(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Journals(&journal.Journal{ID: "x"})
	require.Contains(t, buf.String(), journal.Untitled)
	require.Contains(t, buf.String(), "-")
}

func TestTitleWithCount(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.TitleWithCount("Journals", 1)
	pp.TitleWithCount("Journals", 4)
	require.Equal(t, "Journals - 1 journal\nJournals - 4 journals\n", buf.String())
}

func TestDetailWrapsContent(t *testing.T) {
	var buf bytes.Buffer
	paris := sample.Journals(now)[3]
	(&PrettyPrint{Out: &buf}).Detail(paris)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "My Trip to Paris\n"))
	require.Contains(t, out, "Paris, France")
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, len(line), DetailWidth, line)
	}
	require.NotContains(t, out, "Images")
}

func TestDetailListsImages(t *testing.T) {
	var buf bytes.Buffer
	beach := sample.Journals(now)[1]
	(&PrettyPrint{Out: &buf}).Detail(beach)
	require.Contains(t, buf.String(), "Images\n  https://i.imgur.com/f45Vtup.png\n")
}

func TestDetailMarksUnsavedJournals(t *testing.T) {
	draft := journal.New(journal.Fields{Title: journal.Text("draft")})
	saved := draft.Clone()
	saved.ID = "abc"

	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Detail(draft)
	require.Contains(t, buf.String(), "not saved yet")

	buf.Reset()
	(&PrettyPrint{Out: &buf}).Detail(saved)
	require.NotContains(t, buf.String(), "not saved yet")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	err := (&PrettyPrint{Out: &buf}).JSON(&journal.Journal{ID: "abc", Title: journal.Text("")})
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"title": ""`)
	require.NotContains(t, buf.String(), "location")
}
