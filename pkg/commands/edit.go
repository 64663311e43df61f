package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/commands/options"
	"tableflip.dev/journey/pkg/query"
	"tableflip.dev/journey/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	jo := &options.JournalOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a journal",
		Example: `
journey edit 6f1c --title "Morning Reflections"
journey edit 6f1c --clear-location --image https://i.imgur.com/IdorGF4.png
`,
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

			e := edit.Edit{
				Dashboard: d,
				ID:        args[0],
				Fields:    jo.Fields(cmd, false),
				ShowID:    io.ShowID,
				JSON:      oo.JSON,
				Out:       cmd.OutOrStdout(),
			}
			return oo.HandleError(e.Do(cmd.Context()))
		},
	}

	options.AddJournalArgs(cmd, jo)
	options.AddContentArg(cmd, jo)
	options.AddClearArgs(cmd, jo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
