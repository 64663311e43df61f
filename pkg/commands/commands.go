package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "journey",
		Short: base.Wrap80("Keep a travel journal on the command line: write entries, search them as you type, and browse them in a terminal dashboard."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addList(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addShow(topLevel)
	addDelete(topLevel)
	addSearch(topLevel)
	addSeed(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
