package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/query"
	"tableflip.dev/journey/pkg/runner/seed"
)

func addSeed(topLevel *cobra.Command) {
	force := false

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty store with sample journals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			defer sess.close()

			d, err := sess.dashboard(query.DateDescending)
			if err != nil {
				return err
			}
			defer d.Close()

			s := seed.Seed{
				Dashboard: d,
				Force:     force,
				Out:       cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Seed even when the store already has journals.")

	topLevel.AddCommand(cmd)
}
