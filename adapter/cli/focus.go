package cli

import (
	"fmt"

	focusCommands "github.com/felixgeelhaar/focusos/internal/focus/application/commands"
	"github.com/spf13/cobra"
)

var (
	focusTask    string
	focusMode    string
	focusOutcome string
)

var focusCmd = &cobra.Command{
	Use:     "focus",
	Short:   "Track focus sessions",
	Aliases: []string{"pomodoro"},
}

var focusStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a focus session",
	Long: `Start a focus session, optionally on a task.

Examples:
  focusos focus start
  focusos focus start --task 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		taskID, err := ParseOptionalID(focusTask)
		if err != nil {
			return err
		}
		result, err := app.StartFocusHandler.Handle(cmd.Context(), focusCommands.StartSessionCommand{
			UserID: app.CurrentUserID,
			TaskID: taskID,
			Mode:   focusMode,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return WriteJSON(cmd.OutOrStdout(), result)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Focus session started: %s (%s)\n", result.SessionID, result.Mode)
		return nil
	},
}

var focusStopCmd = &cobra.Command{
	Use:   "stop [session-id]",
	Short: "Stop a focus session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		sessionID, err := ParseID(args[0])
		if err != nil {
			return err
		}
		result, err := app.StopFocusHandler.Handle(cmd.Context(), focusCommands.StopSessionCommand{
			UserID:    app.CurrentUserID,
			SessionID: sessionID,
			Outcome:   focusOutcome,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return WriteJSON(cmd.OutOrStdout(), result)
		}
		seconds := 0
		if result.DurationSeconds != nil {
			seconds = *result.DurationSeconds
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Focus session stopped after %dm%02ds\n", seconds/60, seconds%60)
		return nil
	},
}

func init() {
	focusStartCmd.Flags().StringVarP(&focusTask, "task", "t", "", "task to focus on")
	focusStartCmd.Flags().StringVar(&focusMode, "mode", "", "session mode (default SINGLE_THREAD)")
	focusStopCmd.Flags().StringVarP(&focusOutcome, "outcome", "o", "", "what you got done")

	focusCmd.AddCommand(focusStartCmd)
	focusCmd.AddCommand(focusStopCmd)
	rootCmd.AddCommand(focusCmd)
}
