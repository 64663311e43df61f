// Package remove deletes a journal.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/journey/pkg/dashboard"
)

type Remove struct {
	Dashboard *dashboard.Controller
	ID        string
	JSON      bool
	Out       io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Dashboard == nil {
		return errors.New("can not delete, no dashboard")
	}
	if err := n.Dashboard.Delete(ctx, n.ID); err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.JSON {
		_, err := fmt.Fprintf(out, "{\"deleted\":%q}\n", n.ID)
		return err
	}
	_, _ = color.New(color.Faint).Fprintf(out, "deleted %s (%d left)\n", n.ID, len(n.Dashboard.View().Journals))
	return nil
}
