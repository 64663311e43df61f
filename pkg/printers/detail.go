package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/journey/pkg/journal"
)

// DetailWidth is the column content is wrapped at.
const DetailWidth = 80

// Detail prints a single journal with its full content.
func (pp *PrettyPrint) Detail(j *journal.Journal) {
	faint := color.New(color.Faint)
	label := color.New(color.Bold)

	pp.Title(j.DisplayTitle())
	if pp.ShowID {
		_, _ = color.New(color.FgHiYellow, color.Italic, color.Faint).Fprintln(pp.out(), j.ID)
	}
	if loc := text(j.Location); loc != "" {
		_, _ = faint.Fprintln(pp.out(), loc)
	}
	_, _ = faint.Fprintf(pp.out(), "created %s", date(j.CreatedAt))
	if j.UpdatedAt.Valid() && (!j.CreatedAt.Valid() || !j.UpdatedAt.Equal(j.CreatedAt.Time)) {
		_, _ = faint.Fprintf(pp.out(), ", updated %s", date(j.UpdatedAt))
	}
	if j.Temporary() {
		_, _ = faint.Fprint(pp.out(), ", not saved yet")
	}
	pp.NewLine()
	pp.NewLine()

	if j.Content != nil {
		_, _ = fmt.Fprintln(pp.out(), wordwrap.String(*j.Content, DetailWidth))
		pp.NewLine()
	}

	if len(j.Images) > 0 {
		_, _ = label.Fprintln(pp.out(), "Images")
		for _, img := range j.Images {
			_, _ = fmt.Fprintln(pp.out(), indent.String(img, 2))
		}
		pp.NewLine()
	}
}
