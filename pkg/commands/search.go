package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/commands/options"
	"tableflip.dev/journey/pkg/runner/search"
)

func addSearch(topLevel *cobra.Command) {
	qo := &options.QueryOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search as you type, one line per edit",
		Long: `Reads search text from stdin, one line at a time. Each line replaces the
search text; the list is printed once the text stops changing for the
configured debounce delay, and once more at end of input.`,
		Example: `
journey search
printf 'b\nbe\nbeach\n' | journey search --sort oldest
`,
		Args: cobra.NoArgs,
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
			s := search.Search{
				Store:    sess.store,
				Logger:   sess.logger,
				Delay:    sess.settings.Debounce,
				Sort:     sort,
				Pipeline: pipeline,
				In:       cmd.InOrStdin(),
				Out:      cmd.OutOrStdout(),
				Prompt:   isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
				ShowID:   io.ShowID,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddSortArg(cmd, qo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
