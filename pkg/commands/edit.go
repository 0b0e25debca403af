package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/remind/pkg/commands/options"
	"tableflip.dev/remind/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "edit <id> [id...]",
		Short: "Rewrite tasks as text for re-adding.",
		Long: options.Wrap80("Edit serializes the selected tasks back into the phrase " +
			"form the parser accepts, removes the originals, and prints the text so " +
			"it can be corrected and passed to remind add."),
		Example: `  remind edit 6b1a2f3c`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			e := &edit.Edit{
				IDs:     args,
				Service: svc,
			}
			return e.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
