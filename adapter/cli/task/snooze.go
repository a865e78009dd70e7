package task

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var snoozeUntil string

var snoozeCmd = &cobra.Command{
	Use:   "snooze [task-id]",
	Short: "Hide a task until later",
	Long: `Snooze a task. It leaves the ranking until the given time.

Examples:
  focusos task snooze <id> --until 3d
  focusos task snooze <id> --until 2025-04-01T09:00`,
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
		if snoozeUntil == "" {
			return errors.New("--until is required")
		}
		until, err := app.When(snoozeUntil)
		if err != nil {
			return err
		}

		err = app.SnoozeTaskHandler.Handle(cmd.Context(), commands.SnoozeTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
			Until:  until,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task snoozed until %s\n", until.Format(timeLayout))
		return nil
	},
}

func init() {
	snoozeCmd.Flags().StringVarP(&snoozeUntil, "until", "u", "", "when the task comes back")
}
