// Package edit changes fields of an existing journal.
package edit

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journey/pkg/dashboard"
	"tableflip.dev/journey/pkg/journal"
	"tableflip.dev/journey/pkg/printers"
)

// ErrNothingToChange is returned when no field flag was given.
var ErrNothingToChange = errors.New("edit: nothing to change")

type Edit struct {
	Dashboard *dashboard.Controller
	ID        string
	Fields    journal.Fields
	ShowID    bool
	JSON      bool
	Out       io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Dashboard == nil {
		return errors.New("can not edit, no dashboard")
	}
	if n.Fields.Empty() {
		return ErrNothingToChange
	}
	j, err := n.Dashboard.Update(ctx, n.ID, n.Fields)
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
