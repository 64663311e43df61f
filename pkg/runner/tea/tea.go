// Package teaui is the Bubble Tea front end of the journal dashboard.
package teaui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/dashboard"
	"tableflip.dev/journey/pkg/query"
	"tableflip.dev/journey/pkg/store"
)

// UI runs the dashboard until the user quits.
type UI struct {
	Store  store.Store
	Logger *zap.Logger
	Delay  time.Duration
	Sort   query.SortOption

	// Pipeline carries the collation locale for title sorting.
	Pipeline query.Pipeline

	// Events, when set, keeps the dashboard in sync with changes made by
	// other processes.
	Events <-chan store.Event
}

func (u *UI) Do(ctx context.Context) error {
	if u.Store == nil {
		return errors.New("can not open ui, no store")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes := make(chan struct{}, 1)
	ctrl := dashboard.New(u.Store,
		dashboard.WithLogger(u.Logger),
		dashboard.WithDelay(u.Delay),
		dashboard.WithSort(u.Sort),
		dashboard.WithPipeline(u.Pipeline),
		dashboard.WithListener(func(dashboard.View) {
			// The model reads the latest view itself, so one queued
			// notification is enough.
			select {
			case changes <- struct{}{}:
			default:
			}
		}),
	)
	defer ctrl.Close()

	if u.Events != nil {
		go ctrl.Follow(ctx, u.Events)
	}

	p := tea.NewProgram(New(ctx, ctrl, changes), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
