package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"hermannm.dev/devlog/log"
	"hermannm.dev/querybuilder/config"
	"hermannm.dev/querybuilder/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ansi := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	app := newApp(os.Stdout, ansi)

	if err := app.RunContext(ctx, os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			if message := exitErr.Error(); message != "" {
				fmt.Fprintln(os.Stderr, message)
			}
			os.Exit(exitErr.ExitCode())
		}

		log.ErrorCause(err, "command failed")
		os.Exit(1)
	}
}

// State shared by all commands. Config is only read by commands that talk to the query API, so
// that listing prompt suggestions works without any environment.
type application struct {
	output io.Writer
	ansi   bool

	apiURL  string
	timeout time.Duration

	config config.Config
}

func newApp(output io.Writer, ansi bool) *cli.App {
	application := &application{output: output, ansi: ansi}

	return &cli.App{
		Name:  "querybuilder",
		Usage: "Build analytics queries, or ask for them in plain language, and chart the results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "Base URL of the query API, overriding QUERY_API_BASE_URL",
				Destination: &application.apiURL,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "Timeout for query API requests, overriding QUERY_API_TIMEOUT",
				Destination: &application.timeout,
			},
		},
		Commands: []*cli.Command{
			newDefinitionsCommand(application),
			newQueryCommand(application),
			newAskCommand(application),
		},
		Writer: output,
		// Exit codes are handled in main, so that tests can run the app without exiting
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// Reads config, with flags taking precedence over the environment (and over .env, which never
// overrides variables that are already set), then sets up logging.
func (application *application) setup(*cli.Context) error {
	if application.apiURL != "" {
		if err := os.Setenv("QUERY_API_BASE_URL", application.apiURL); err != nil {
			return err
		}
	}
	if application.timeout > 0 {
		if err := os.Setenv("QUERY_API_TIMEOUT", application.timeout.String()); err != nil {
			return err
		}
	}

	conf, err := config.ReadFromEnv()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to read config from env: %v", err), 2)
	}
	application.config = conf

	logging.SetDefault(os.Stderr, conf.IsProduction, conf.LogLevel)
	return nil
}
