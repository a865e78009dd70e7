package inbox

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/inbox/application/commands"
	"github.com/felixgeelhaar/focusos/internal/inbox/domain"
	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture [text...]",
	Short: "Capture a thought into the inbox",
	Long: `Capture free text into the inbox. The text is classified and a triage
type is suggested.

Examples:
  focusos inbox capture "call the bank about the mortgage"
  focusos inbox capture someday learn the cello`,
	Aliases: []string{"add"},
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.CaptureHandler.Handle(cmd.Context(), commands.CaptureCommand{
			UserID:  app.CurrentUserID,
			RawText: strings.Join(args, " "),
			Source:  domain.SourceCLI,
		})
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			return cli.WriteJSON(cmd.OutOrStdout(), result)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Captured %s (looks like %s)\n", result.ItemID, result.Suggested)
		return nil
	},
}
