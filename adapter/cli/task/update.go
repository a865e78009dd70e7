package task

import (
	"fmt"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var (
	updateTitle       string
	updateDescription string
	updateStatus      string
	updateArea        string
	updateProject     string
	updateEffort      int
	updateEnergy      string
	updateDeadline    string
	updateImpact      int
	updateUrgency     int
	updateStrategic   int
	updateRisk        int
	updateBlocker     bool
)

var updateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update a task",
	Long: `Update the fields of a task. Only the flags you pass are changed.
Pass an empty --project or --deadline to clear them.

Examples:
  focusos task update <id> --title "Write Q1 report"
  focusos task update <id> --urgency 5 --deadline 2d
  focusos task update <id> --deadline ""`,
	Aliases: []string{"edit"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		taskID, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}

		command := commands.UpdateTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		}
		flags := cmd.Flags()
		if flags.Changed("title") {
			command.Title = &updateTitle
		}
		if flags.Changed("description") {
			command.Description = &updateDescription
		}
		if flags.Changed("status") {
			command.Status = &updateStatus
		}
		if flags.Changed("area") {
			areaID, err := cli.ParseID(updateArea)
			if err != nil {
				return fmt.Errorf("--area: %w", err)
			}
			command.AreaID = &areaID
		}
		if flags.Changed("project") {
			projectID, err := cli.ParseOptionalID(updateProject)
			if err != nil {
				return err
			}
			command.ProjectID = projectID
			command.ClearProject = projectID == nil
		}
		if flags.Changed("effort") {
			command.EffortMinutes = &updateEffort
		}
		if flags.Changed("energy") {
			command.Energy = &updateEnergy
		}
		if flags.Changed("deadline") {
			if updateDeadline == "" {
				command.ClearDeadline = true
			} else {
				deadline, err := app.When(updateDeadline)
				if err != nil {
					return err
				}
				command.DeadlineAt = &deadline
			}
		}
		if flags.Changed("impact") {
			command.Impact = &updateImpact
		}
		if flags.Changed("urgency") {
			command.Urgency = &updateUrgency
		}
		if flags.Changed("strategic") {
			command.StrategicValue = &updateStrategic
		}
		if flags.Changed("risk") {
			command.RiskOfDelay = &updateRisk
		}
		if flags.Changed("blocker") {
			command.IsBlocker = &updateBlocker
		}

		if err := app.UpdateTaskHandler.Handle(cmd.Context(), command); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task updated: %s\n", taskID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "new status")
	updateCmd.Flags().StringVar(&updateArea, "area", "", "move to area")
	updateCmd.Flags().StringVarP(&updateProject, "project", "p", "", "move to project, empty clears")
	updateCmd.Flags().IntVarP(&updateEffort, "effort", "e", 0, "effort in minutes")
	updateCmd.Flags().StringVar(&updateEnergy, "energy", "", "LOW, MED or HIGH")
	updateCmd.Flags().StringVarP(&updateDeadline, "deadline", "d", "", "new deadline, empty clears")
	updateCmd.Flags().IntVar(&updateImpact, "impact", 0, "impact 0-5")
	updateCmd.Flags().IntVar(&updateUrgency, "urgency", 0, "urgency 0-5")
	updateCmd.Flags().IntVar(&updateStrategic, "strategic", 0, "strategic value 0-5")
	updateCmd.Flags().IntVar(&updateRisk, "risk", 0, "risk of delay 0-5")
	updateCmd.Flags().BoolVar(&updateBlocker, "blocker", false, "task blocks other work")
}
