package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/commands/options"
	"tableflip.dev/journey/pkg/query"
	"tableflip.dev/journey/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Print a journal in full",
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

			s := show.Show{
				Dashboard: d,
				ID:        args[0],
				ShowID:    io.ShowID,
				JSON:      oo.JSON,
				Out:       cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
