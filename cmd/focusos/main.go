package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	cliInbox "github.com/felixgeelhaar/focusos/adapter/cli/inbox"
	"github.com/felixgeelhaar/focusos/adapter/cli/mcp"
	"github.com/felixgeelhaar/focusos/adapter/cli/project"
	cliSettings "github.com/felixgeelhaar/focusos/adapter/cli/settings"
	"github.com/felixgeelhaar/focusos/adapter/cli/task"
	"github.com/felixgeelhaar/focusos/internal/app"
	"github.com/felixgeelhaar/focusos/pkg/config"
	"github.com/felixgeelhaar/focusos/pkg/observability"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.SetLogger(newLogger(&config.Config{LogLevel: "warn"}, false))
	cli.SetBootstrap(bootstrap)

	cli.AddCommand(task.Cmd)
	cli.AddCommand(project.Cmd)
	cli.AddCommand(cliInbox.Cmd)
	cli.AddCommand(cliSettings.Cmd)
	cli.AddCommand(mcp.Cmd)

	cli.Execute(ctx)
}

// bootstrap loads configuration and wires the container once flags are known.
func bootstrap(ctx context.Context, configPath string, verbose bool) (*cli.App, func(), error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg, verbose)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize container: %w", err)
	}
	return cli.NewApp(container), container.Close, nil
}

func newLogger(cfg *config.Config, verbose bool) *slog.Logger {
	logCfg := observability.DefaultLogConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.ServiceVersion = version
	logCfg.Output = os.Stderr
	if cfg.LogFormat != "" {
		logCfg.Format = observability.LogFormat(cfg.LogFormat)
	}
	if verbose {
		logCfg.Level = "debug"
	}
	return observability.NewLogger(logCfg)
}
