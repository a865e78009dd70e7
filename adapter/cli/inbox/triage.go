package inbox

import (
	"fmt"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/inbox/application/commands"
	"github.com/spf13/cobra"
)

var (
	triageType     string
	triageTitle    string
	triageArea     string
	triageProject  string
	triageEffort   int
	triageDeadline string
	triageImpact   int
	triageUrgency  int
)

var triageCmd = &cobra.Command{
	Use:   "triage [item-id]",
	Short: "Turn an inbox item into a task, project, note or someday task",
	Long: `Triage an inbox item. TASK and SOMEDAY create a task and PROJECT creates a
project, all of which need --area. NOTE just files the item.

Examples:
  focusos inbox triage <id> --type TASK --area <area-id> --effort 15
  focusos inbox triage <id> --type PROJECT --area <area-id> --title "Kitchen remodel"
  focusos inbox triage <id> --type NOTE`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		itemID, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		areaID, err := cli.ParseOptionalID(triageArea)
		if err != nil {
			return err
		}
		projectID, err := cli.ParseOptionalID(triageProject)
		if err != nil {
			return err
		}

		command := commands.TriageCommand{
			UserID:    app.CurrentUserID,
			ItemID:    itemID,
			Type:      triageType,
			Title:     triageTitle,
			AreaID:    areaID,
			ProjectID: projectID,
		}
		flags := cmd.Flags()
		if flags.Changed("effort") {
			command.EffortMinutes = &triageEffort
		}
		if flags.Changed("impact") {
			command.Impact = &triageImpact
		}
		if flags.Changed("urgency") {
			command.Urgency = &triageUrgency
		}
		if triageDeadline != "" {
			deadline, err := app.When(triageDeadline)
			if err != nil {
				return err
			}
			command.DeadlineAt = &deadline
		}

		result, err := app.TriageHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			return cli.WriteJSON(cmd.OutOrStdout(), result)
		}

		out := cmd.OutOrStdout()
		switch {
		case result.TaskID != nil:
			fmt.Fprintf(out, "Triaged as %s: task %s\n", result.Type, *result.TaskID)
		case result.ProjectID != nil:
			fmt.Fprintf(out, "Triaged as %s: project %s\n", result.Type, *result.ProjectID)
		default:
			fmt.Fprintf(out, "Triaged as %s\n", result.Type)
		}
		return nil
	},
}

func init() {
	triageCmd.Flags().StringVarP(&triageType, "type", "t", "TASK", "TASK, PROJECT, NOTE or SOMEDAY")
	triageCmd.Flags().StringVar(&triageTitle, "title", "", "title (defaults to the captured text)")
	triageCmd.Flags().StringVarP(&triageArea, "area", "a", "", "area id")
	triageCmd.Flags().StringVarP(&triageProject, "project", "p", "", "project id for a TASK")
	triageCmd.Flags().IntVarP(&triageEffort, "effort", "e", 0, "effort in minutes")
	triageCmd.Flags().StringVarP(&triageDeadline, "deadline", "d", "", "deadline")
	triageCmd.Flags().IntVar(&triageImpact, "impact", 0, "impact 0-5")
	triageCmd.Flags().IntVar(&triageUrgency, "urgency", 0, "urgency 0-5")
}
