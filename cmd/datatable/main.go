package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/bjaus/datatable"
	"github.com/bjaus/datatable/internal/config"
	"github.com/bjaus/datatable/internal/state"
)

const appName = "datatable"

// initializeAppContext loads configuration and logging after the command line
// has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.Level = config.LevelDebug
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}

	env.Log.Debug("Program started", zap.Strings("args", os.Args))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	// stderr cannot always be synced, nothing to do about it
	_ = env.Log.Sync()
	return nil
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Cfg != nil && env.Cfg.Logging.Level != config.LevelNone {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func newApp() *cli.Command {
	formats := make([]string, 0, len(datatable.Formats()))
	for _, f := range datatable.Formats() {
		formats = append(formats, f.String())
	}
	toUsage := "output `FORMAT` (" + strings.Join(formats, ", ") + "), overrides configuration"

	return &cli.Command{
		Name:            appName,
		Usage:           "resolves table documents and aggregation matrices into rendered grids",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log debug messages"},
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "Resolves a table document (YAML or JSON) and renders it",
				Action:    runRender,
				ArgsUsage: "SOURCE [DESTINATION]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Usage: toUsage},
				},
			},
			{
				Name:      "flatten",
				Usage:     "Flattens an aggregation matrix (JSON) into a table and renders it",
				Action:    runFlatten,
				ArgsUsage: "SOURCE [DESTINATION]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Usage: toUsage + `; "document" writes the table document instead`},
				},
			},
			{
				Name:      "dumpconfig",
				Usage:     "Dumps either default or actual configuration (YAML)",
				Action:    outputConfiguration,
				ArgsUsage: "[DESTINATION]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	err := newApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		if !errWasHandled {
			fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		}
		os.Exit(1)
	}
}
