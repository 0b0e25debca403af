package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/remind/pkg/commands/options"
	"tableflip.dev/remind/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add <phrase> [phrase...]",
		Short: "Add tasks from natural language.",
		Long: options.Wrap80("Add parses each phrase for a date, time, duration or " +
			"recurrence cue and files the resulting task in the matching section. " +
			"Multiple phrases may be separated by commas, semicolons or newlines; " +
			"the batch is all or nothing."),
		Example: `  remind add 明天下午3点开会
  remind add 每周一上午9点晨会
  remind add "30分钟后休息, 每天22:00写日记"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			a := &add.Add{
				Raw:     strings.Join(args, " "),
				ShowID:  io.ShowID,
				Service: svc,
			}
			return a.Do(cmd.Context())
		},
	}
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
