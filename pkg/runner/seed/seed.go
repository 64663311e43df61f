// Package seed fills a store with the sample journals.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"

	"tableflip.dev/journey/pkg/dashboard"
	"tableflip.dev/journey/pkg/sample"
)

type Seed struct {
	Dashboard *dashboard.Controller
	// Clock anchors the sample dates; defaults to the real clock.
	Clock clockwork.Clock
	// Force seeds even when journals already exist.
	Force bool
	Out   io.Writer
}

func (n *Seed) Do(ctx context.Context) error {
	if n.Dashboard == nil {
		return errors.New("can not seed, no dashboard")
	}
	clock := n.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if err := n.Dashboard.Refresh(ctx); err != nil {
		return err
	}
	if existing := len(n.Dashboard.View().Journals); existing > 0 && !n.Force {
		_, _ = color.New(color.Faint).Fprintf(out, "store already has %d journals, use --force to seed anyway\n", existing)
		return nil
	}

	journals := sample.Journals(clock.Now())
	if err := n.Dashboard.Import(ctx, journals...); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "seeded %d journals\n", len(journals))
	return err
}
