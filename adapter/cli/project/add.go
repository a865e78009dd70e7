package project

import (
	"fmt"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/projects/application/commands"
	"github.com/spf13/cobra"
)

var (
	addArea        string
	addDescription string
	addDeadline    string
	addStatus      string
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a project",
	Long: `Create a project in an area.

Examples:
  focusos project add "Website relaunch" --area 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  focusos project add "Tax return" --area <id> --deadline 2025-05-31`,
	Aliases: []string{"create"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		areaID, err := cli.ParseID(addArea)
		if err != nil {
			return fmt.Errorf("--area: %w", err)
		}

		command := commands.CreateProjectCommand{
			UserID:      app.CurrentUserID,
			AreaID:      areaID,
			Name:        args[0],
			Description: addDescription,
			Status:      addStatus,
		}
		if addDeadline != "" {
			deadline, err := app.When(addDeadline)
			if err != nil {
				return err
			}
			command.DeadlineAt = &deadline
		}

		result, err := app.CreateProjectHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			return cli.WriteJSON(cmd.OutOrStdout(), map[string]any{"id": result.ProjectID, "name": args[0]})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Project created: %s\n", result.ProjectID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addArea, "area", "a", "", "area id (required)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "project description")
	addCmd.Flags().StringVarP(&addDeadline, "deadline", "d", "", "deadline (YYYY-MM-DD or 30d)")
	addCmd.Flags().StringVar(&addStatus, "status", "", "ACTIVE, ON_HOLD, DONE or ARCHIVED")
}
