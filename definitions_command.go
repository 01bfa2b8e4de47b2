package main

import (
	"github.com/urfave/cli/v2"
	"hermannm.dev/querybuilder/render"
)

type definitionsCommand struct {
	application *application
}

var definitionsCommandName = "definitions"

func newDefinitionsCommand(application *application) *cli.Command {
	command := &definitionsCommand{application: application}
	return &cli.Command{
		Name:   definitionsCommandName,
		Usage:  "List the metrics and dimensions available for queries",
		Action: command.execute,
	}
}

func (cmd *definitionsCommand) execute(context *cli.Context) error {
	if err := cmd.application.setup(context); err != nil {
		return err
	}

	queryStore, err := cmd.application.newStore()
	if err != nil {
		return err
	}

	queryStore.FetchDefinitions(context.Context)

	state := queryStore.State()
	if state.DefinitionsError != "" {
		return cli.Exit(state.DefinitionsError, queryFailedExitCode)
	}

	return render.Definitions(
		cmd.application.output,
		state.Definitions,
		cmd.application.renderOptions(),
	)
}
