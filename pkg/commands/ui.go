package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/commands/options"
	teaui "tableflip.dev/journey/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	qo := &options.QueryOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the journal dashboard",
		Example: `
journey ui
journey ui --sort title-az
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			defer sess.close()

			sort, err := qo.SortOption(sess.settings.Sort)
			if err != nil {
				return err
			}

			pipeline, err := sess.pipeline()
			if err != nil {
				return err
			}

			// Stderr is behind the alt screen; only log when a file is configured.
			logger := sess.logger
			if sess.settings.LogFile == "" {
				logger = zap.NewNop()
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			events, err := sess.store.Watch(ctx)
			if err != nil {
				logger.Warn("watching store failed, changes from other processes will not show", zap.Error(err))
				events = nil
			}

			i := teaui.UI{
				Store:    sess.store,
				Logger:   logger,
				Delay:    sess.settings.Debounce,
				Sort:     sort,
				Pipeline: pipeline,
				Events:   events,
			}
			return i.Do(ctx)
		},
	}

	options.AddSortArg(cmd, qo)

	topLevel.AddCommand(cmd)
}
