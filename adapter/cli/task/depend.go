package task

import (
	"fmt"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var dependOn string

var dependCmd = &cobra.Command{
	Use:   "depend [task-id]",
	Short: "Block a task on another task",
	Long: `Record that a task depends on another. A task with an unfinished
dependency is held back from the Now list.

Examples:
  focusos task depend <id> --on <other-id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		taskID, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		dependsOn, err := cli.ParseID(dependOn)
		if err != nil {
			return fmt.Errorf("--on: %w", err)
		}

		err = app.AddDependencyHandler.Handle(cmd.Context(), commands.AddDependencyCommand{
			TaskID:          taskID,
			DependsOnTaskID: dependsOn,
			UserID:          app.CurrentUserID,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s now depends on %s\n", taskID, dependsOn)
		return nil
	},
}

func init() {
	dependCmd.Flags().StringVar(&dependOn, "on", "", "task it depends on (required)")
}
