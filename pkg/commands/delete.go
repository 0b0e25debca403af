package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/remind/pkg/runner/del"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id> [id...]",
		Aliases: []string{"rm"},
		Short:   "Delete tasks by id.",
		Example: `  remind delete 6b1a2f3c`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			d := &del.Delete{
				IDs:     args,
				Service: svc,
			}
			return d.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
