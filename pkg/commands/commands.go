package commands

import (
	"github.com/spf13/cobra"
)

// New returns the root remind command with all subcommands attached.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Natural language tasks and reminders.",
		Long: `Remind keeps countdowns, dated tasks and recurring tasks, parsed from
natural language phrases like "明天下午3点开会" or "每周一上午9点晨会".`,
	}

	AddCommands(cmd)
	return cmd
}

// AddCommands attaches the remind subcommands to the given command.
func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addList(topLevel)
	addToggle(topLevel)
	addDelete(topLevel)
	addEdit(topLevel)
	addUpcoming(topLevel)
	addWatch(topLevel)
	addNotify(topLevel)
	addVersion(topLevel)
}
