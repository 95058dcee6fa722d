package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/pencil/internal/commands"
	"github.com/colonyops/pencil/internal/core/logging"
	"github.com/colonyops/pencil/internal/printer"
	"github.com/colonyops/pencil/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := printer.NewContext(context.Background(), printer.New(os.Stdout))

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "pencil",
		Usage:     "Click-to-edit fields in the terminal",
		UsageText: "pencil [global options] command [command options]",
		Description: `Pencil shows a column of values that turn into editors when clicked.

Fields are described in a YAML config file. Run 'pencil init' to create one,
then run 'pencil' with no arguments to start editing. Committed values are
printed as YAML on exit.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("PENCIL_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("PENCIL_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("PENCIL_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			log.Debug().Str("version", version).Str("config", flags.ConfigPath).Msg("starting")
			return ctx, nil
		},
	}

	runCmd := commands.NewRunCmd(flags)

	app = runCmd.Register(app)
	app = commands.NewInitCmd(flags).Register(app)
	app = commands.NewValidateCmd(flags).Register(app)
	app = commands.NewTypesCmd(flags).Register(app)

	// Register run flags on root command
	app.Flags = append(app.Flags, runCmd.Flags()...)

	// Set run as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'pencil --help' for usage", c.Args().First())
		}
		return runCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Println()
		fmt.Println(err.Error())
		exitCode = 1
	}

	if logCloser != nil {
		logCloser()
	}

	os.Exit(exitCode)
}
