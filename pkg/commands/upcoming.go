package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/remind/pkg/runner/upcoming"
)

func addUpcoming(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "upcoming",
		Aliases: []string{"next"},
		Short:   "Show the next task to fire.",
		Example: `  remind upcoming`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			u := &upcoming.Upcoming{
				Service: svc,
			}
			return u.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
