package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/commands/options"
	"tableflip.dev/journey/pkg/query"
	"tableflip.dev/journey/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	jo := &options.JournalOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Write a new journal",
		Example: `
journey add --title "Beach Day" --location "Malibu, CA" spent the afternoon by the water
journey add --title "Photos only" --image https://i.imgur.com/f45Vtup.png
`,
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

			hasContent := len(args) > 0
			if hasContent {
				jo.SetContent(args)
			}
			a := add.Add{
				Dashboard: d,
				Fields:    jo.Fields(cmd, hasContent),
				ShowID:    io.ShowID,
				JSON:      oo.JSON,
				Out:       cmd.OutOrStdout(),
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddJournalArgs(cmd, jo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
