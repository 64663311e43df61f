// Package show prints one journal in full.
package show

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journey/pkg/dashboard"
	"tableflip.dev/journey/pkg/printers"
)

type Show struct {
	Dashboard *dashboard.Controller
	ID        string
	ShowID    bool
	JSON      bool
	Out       io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Dashboard == nil {
		return errors.New("can not show, no dashboard")
	}
	j, err := n.Dashboard.Select(ctx, n.ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(j)
	}
	pp.NewLine()
	pp.Detail(j)
	return nil
}
