package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/remind/pkg/commands/options"
	"tableflip.dev/remind/pkg/notify"
	"tableflip.dev/remind/pkg/store"
)

func addNotify(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "notify-test",
		Short: "Send a test notification.",
		Long: options.Wrap80("Sends a test message to the configured ntfy topic so " +
			"the notification path can be checked before a countdown actually " +
			"expires."),
		Example: `  remind notify-test`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			n := notify.NewService(cfg.NtfyTopic())
			return n.TestNotification(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
