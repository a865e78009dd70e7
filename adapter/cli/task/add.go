package task

import (
	"fmt"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var (
	addArea        string
	addProject     string
	addDescription string
	addStatus      string
	addEffort      int
	addEnergy      string
	addDeadline    string
	addImpact      int
	addUrgency     int
	addStrategic   int
	addRisk        int
	addBlocker     bool
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a new task",
	Long: `Create a new task in an area.

Ratings run from 0 to 5. Impact and urgency default to 3, strategic value
and risk of delay to 0.

Examples:
  focusos task add "Write report" --area 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  focusos task add "Fix prod bug" --area <id> --impact 5 --urgency 5 --blocker
  focusos task add "Renew passport" --area <id> --deadline 2025-04-01 --effort 45`,
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
		projectID, err := cli.ParseOptionalID(addProject)
		if err != nil {
			return err
		}

		command := commands.CreateTaskCommand{
			UserID:      app.CurrentUserID,
			AreaID:      areaID,
			ProjectID:   projectID,
			Title:       args[0],
			Description: addDescription,
			Status:      addStatus,
			Energy:      addEnergy,
			IsBlocker:   addBlocker,
		}
		flags := cmd.Flags()
		if flags.Changed("effort") {
			command.EffortMinutes = &addEffort
		}
		if flags.Changed("impact") {
			command.Impact = &addImpact
		}
		if flags.Changed("urgency") {
			command.Urgency = &addUrgency
		}
		if flags.Changed("strategic") {
			command.StrategicValue = &addStrategic
		}
		if flags.Changed("risk") {
			command.RiskOfDelay = &addRisk
		}
		if addDeadline != "" {
			deadline, err := app.When(addDeadline)
			if err != nil {
				return err
			}
			command.DeadlineAt = &deadline
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			return cli.WriteJSON(cmd.OutOrStdout(), map[string]any{"id": result.TaskID, "title": args[0]})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task created: %s\n", result.TaskID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addArea, "area", "a", "", "area id (required)")
	addCmd.Flags().StringVarP(&addProject, "project", "p", "", "project id")
	addCmd.Flags().StringVar(&addDescription, "description", "", "task description")
	addCmd.Flags().StringVar(&addStatus, "status", "", "NEXT, IN_PROGRESS, WAITING or SOMEDAY")
	addCmd.Flags().IntVarP(&addEffort, "effort", "e", 0, "estimated effort in minutes")
	addCmd.Flags().StringVar(&addEnergy, "energy", "", "LOW, MED or HIGH")
	addCmd.Flags().StringVarP(&addDeadline, "deadline", "d", "", "deadline (YYYY-MM-DD, YYYY-MM-DDTHH:MM or 3d)")
	addCmd.Flags().IntVar(&addImpact, "impact", 3, "impact 0-5")
	addCmd.Flags().IntVar(&addUrgency, "urgency", 3, "urgency 0-5")
	addCmd.Flags().IntVar(&addStrategic, "strategic", 0, "strategic value 0-5")
	addCmd.Flags().IntVar(&addRisk, "risk", 0, "risk of delay 0-5")
	addCmd.Flags().BoolVar(&addBlocker, "blocker", false, "task blocks other work")
}
