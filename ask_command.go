package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/query"
)

type askCommand struct {
	application *application
	Suggestions bool
}

var askCommandName = "ask"

func newAskCommand(application *application) *cli.Command {
	command := &askCommand{application: application}
	return &cli.Command{
		Name:      askCommandName,
		Usage:     "Ask for data in plain language, and chart the query the AI builds for it",
		ArgsUsage: "PROMPT",
		Action:    command.execute,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "suggestions", Usage: "List example prompts instead of asking", Destination: &command.Suggestions},
		},
	}
}

func (cmd *askCommand) execute(context *cli.Context) error {
	if cmd.Suggestions {
		for _, suggestion := range query.Suggestions {
			if _, err := fmt.Fprintln(cmd.application.output, suggestion); err != nil {
				return err
			}
		}
		return nil
	}

	prompt := strings.Join(context.Args().Slice(), " ")
	if strings.TrimSpace(prompt) == "" {
		return cli.Exit(api.ErrorMessage(api.ErrEmptyPrompt), 2)
	}

	if err := cmd.application.setup(context); err != nil {
		return err
	}

	queryStore, err := cmd.application.newStore()
	if err != nil {
		return err
	}

	queryStore.FetchDefinitions(context.Context)
	queryStore.FetchAIQuery(context.Context, prompt)

	return cmd.application.renderVisualization(queryStore.State())
}
