package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	mcpinternal "github.com/felixgeelhaar/focusos/internal/mcp"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the MCP tools over HTTP. Set MCP_AUTH_TOKEN to require a bearer
token from clients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if app.Container == nil {
			return cli.ErrNotInitialized
		}

		cfg := *app.Container.Config
		if serveAddr != "" {
			cfg.MCPAddr = serveAddr
		}

		err = mcpinternal.Serve(cmd.Context(), &cfg, app, app.Container.Logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default MCP_ADDR)")
}
