package inbox

import "github.com/spf13/cobra"

// Cmd groups all inbox commands.
var Cmd = &cobra.Command{
	Use:   "inbox",
	Short: "Capture now, triage later",
}

func init() {
	Cmd.AddCommand(captureCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(triageCmd)
}
