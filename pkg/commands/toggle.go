package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/remind/pkg/runner/toggle"
)

func addToggle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "toggle <id> [id...]",
		Aliases: []string{"done"},
		Short:   "Toggle completion on tasks.",
		Example: `  remind toggle 6b1a2f3c
  remind done 6b1a2f3c 9c4d5e6f`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			t := &toggle.Toggle{
				IDs:     args,
				Service: svc,
			}
			return t.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
