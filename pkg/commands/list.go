package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/remind/pkg/commands/options"
	"tableflip.dev/remind/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	wide := false

	cmd := &cobra.Command{
		Use:     "list [countdown|dated|recurring|today]",
		Aliases: []string{"ls"},
		Short:   "List tasks by section.",
		Long: options.Wrap80("List prints the stored tasks. With no argument every " +
			"section is shown; pass a section name to narrow the view, or today for " +
			"everything due before the next midnight."),
		Example: `  remind list
  remind list countdown
  remind list today --wide`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := list.All
			if len(args) == 1 {
				switch list.Section(args[0]) {
				case list.Countdown, list.Dated, list.Recurring, list.Today:
					section = list.Section(args[0])
				default:
					return fmt.Errorf("unknown section %q", args[0])
				}
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			l := &list.List{
				Section: section,
				ShowID:  io.ShowID,
				Wide:    wide,
				Service: svc,
			}
			return l.Do(cmd.Context())
		},
	}
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVarP(&wide, "wide", "w", false, "Print a table with one row per task.")

	topLevel.AddCommand(cmd)
}
