package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/commands/options"
	"tableflip.dev/journey/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	qo := &options.QueryOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List journals, newest first",
		Example: `
journey list
journey list --search paris
journey list --sort title-az --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			defer sess.close()

			sort, err := qo.SortOption(sess.settings.Sort)
			if err != nil {
				return oo.HandleError(err)
			}
			d, err := sess.dashboard(sort)
			if err != nil {
				return oo.HandleError(err)
			}
			defer d.Close()

			l := list.List{
				Dashboard: d,
				Search:    qo.Search,
				ShowID:    io.ShowID,
				JSON:      oo.JSON,
				Out:       cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddSearchArg(cmd, qo)
	options.AddSortArg(cmd, qo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
