// Package add creates a journal.
package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journey/pkg/dashboard"
	"tableflip.dev/journey/pkg/journal"
	"tableflip.dev/journey/pkg/printers"
)

type Add struct {
	Dashboard *dashboard.Controller
	Fields    journal.Fields
	ShowID    bool
	JSON      bool
	Out       io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Dashboard == nil {
		return errors.New("can not add, no dashboard")
	}
	j, err := n.Dashboard.Create(ctx, n.Fields)
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
