package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/commands/options"
	"tableflip.dev/journey/pkg/query"
	"tableflip.dev/journey/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:               "delete <id>",
		Aliases:           []string{"rm"},
		Short:             "Delete a journal",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeJournalID,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			defer sess.close()

			d, err := sess.dashboard(query.DateDescending)
			if err != nil {
				return oo.HandleError(err)
			}
			defer d.Close()

			r := remove.Remove{
				Dashboard: d,
				ID:        args[0],
				JSON:      oo.JSON,
				Out:       cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
