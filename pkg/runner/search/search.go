// Package search drives the debounced dashboard search from line input.
// Every line replaces the search text, the way each keystroke replaces the
// contents of a search field.
package search

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/dashboard"
	"tableflip.dev/journey/pkg/printers"
	"tableflip.dev/journey/pkg/query"
	"tableflip.dev/journey/pkg/store"
)

type Search struct {
	Store    store.Store
	Logger   *zap.Logger
	Clock    clockwork.Clock
	Delay    time.Duration
	Sort     query.SortOption
	Pipeline query.Pipeline

	In     io.Reader
	Out    io.Writer
	Prompt bool
	ShowID bool
}

func (n *Search) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not search, no store")
	}
	if n.In == nil {
		return errors.New("can not search, no input")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	// Views arrive from the debounce timer as well as from this goroutine.
	var mu sync.Mutex
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	show := func(v dashboard.View) {
		mu.Lock()
		defer mu.Unlock()
		title := v.Sort.Label()
		if v.Search != "" {
			title = fmt.Sprintf("%q, %s", v.Search, v.Sort.ShortLabel())
		}
		pp.NewLine()
		pp.TitleWithCount(title, len(v.Journals))
		pp.Journals(v.Journals...)
	}
	prompt := func() {
		if !n.Prompt {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		_, _ = color.New(color.Bold).Fprint(out, "search> ")
	}

	c := dashboard.New(n.Store,
		dashboard.WithLogger(n.Logger),
		dashboard.WithClock(n.Clock),
		dashboard.WithDelay(n.Delay),
		dashboard.WithSort(n.Sort),
		dashboard.WithPipeline(n.Pipeline),
		dashboard.WithListener(show),
	)
	defer c.Close()

	if err := c.Refresh(ctx); err != nil {
		return err
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(n.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	prompt()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				c.FlushSearch()
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			c.SearchChanged(line)
			prompt()
		}
	}
}
