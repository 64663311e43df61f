// Package list prints the dashboard's display list.
package list

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journey/pkg/dashboard"
	"tableflip.dev/journey/pkg/printers"
)

type List struct {
	Dashboard *dashboard.Controller
	Search    string
	ShowID    bool
	JSON      bool
	Out       io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Dashboard == nil {
		return errors.New("can not list, no dashboard")
	}
	if err := n.Dashboard.Submit(ctx, n.Search); err != nil {
		return err
	}
	v := n.Dashboard.View()

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(v.Journals)
	}
	pp.NewLine()
	pp.TitleWithCount(v.Sort.Label(), len(v.Journals))
	pp.Journals(v.Journals...)
	return nil
}
