package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/spf13/cobra"
)

var splitSubtasks []string

var splitCmd = &cobra.Command{
	Use:   "split [task-id]",
	Short: "Split a task into subtasks",
	Long: `Split a task into smaller subtasks. Each --subtask takes a title with an
optional ":minutes" suffix.

Examples:
  focusos task split <id> --subtask "Outline" --subtask "First draft:90"`,
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
		if len(splitSubtasks) == 0 {
			return errors.New("at least one --subtask is required")
		}

		subtasks := make([]task.Subtask, 0, len(splitSubtasks))
		for _, raw := range splitSubtasks {
			subtasks = append(subtasks, parseSubtask(raw))
		}

		result, err := app.SplitTaskHandler.Handle(cmd.Context(), commands.SplitTaskCommand{
			TaskID:   taskID,
			UserID:   app.CurrentUserID,
			Subtasks: subtasks,
		})
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			return cli.WriteJSON(cmd.OutOrStdout(), map[string]any{"subtask_ids": result.SubtaskIDs})
		}
		for _, id := range result.SubtaskIDs {
			fmt.Fprintf(cmd.OutOrStdout(), "Subtask created: %s\n", id)
		}
		return nil
	},
}

// parseSubtask reads "title" or "title:minutes".
func parseSubtask(raw string) task.Subtask {
	if i := strings.LastIndex(raw, ":"); i > 0 {
		if minutes, err := strconv.Atoi(strings.TrimSpace(raw[i+1:])); err == nil {
			return task.Subtask{Title: strings.TrimSpace(raw[:i]), EffortMinutes: &minutes}
		}
	}
	return task.Subtask{Title: strings.TrimSpace(raw)}
}

func init() {
	splitCmd.Flags().StringArrayVar(&splitSubtasks, "subtask", nil, "subtask title[:minutes], repeatable")
}
