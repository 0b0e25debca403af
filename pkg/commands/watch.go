package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/remind/pkg/commands/options"
	"tableflip.dev/remind/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live view with countdowns and sweeps.",
		Long: options.Wrap80("Watch opens a full screen view that ticks the upcoming " +
			"task's countdown every second, expires overdue countdown tasks, resets " +
			"recurring tasks at midnight, and reloads when the store changes on disk."),
		Example: `  remind watch`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			w := &watch.Watch{
				Service: svc,
			}
			return w.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
