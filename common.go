package main

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"
	"hermannm.dev/devlog/log"
	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/config"
	"hermannm.dev/querybuilder/render"
	"hermannm.dev/querybuilder/snapshot"
	"hermannm.dev/querybuilder/snapshot/clickhouse"
	"hermannm.dev/querybuilder/snapshot/elasticsearch"
	"hermannm.dev/querybuilder/store"
	"hermannm.dev/wrap"
)

// Exit code for commands that ran, but whose query ended in an error state.
const queryFailedExitCode = 1

func (application *application) newStore() (*store.Store, error) {
	client, err := api.NewClient(api.Config{
		BaseURL: application.config.QueryAPI.BaseURL,
		Timeout: application.config.QueryAPI.Timeout,
	})
	if err != nil {
		return nil, wrap.Error(err, "failed to create query API client")
	}

	queryStore := store.New(client)
	queryStore.Subscribe(func(state store.State) {
		log.Debug(
			"state updated",
			slog.Bool("loading", state.Loading),
			slog.Bool("definitionsLoading", state.DefinitionsLoading),
			slog.String("chart", state.ActiveChart.String()),
		)
	})
	return queryStore, nil
}

func (application *application) renderOptions() render.Options {
	return render.Options{ANSI: application.ansi}
}

// Renders the visualization, then fails if the query or the definitions fetch ended in an error.
// Both errors are part of the rendered output.
func (application *application) renderVisualization(state store.State) error {
	if err := render.Visualization(application.output, state, application.renderOptions()); err != nil {
		return err
	}
	if state.Error != "" || state.DefinitionsError != "" {
		return cli.Exit("", queryFailedExitCode)
	}
	return nil
}

// Saves the current response to the configured snapshot store.
func (application *application) saveSnapshot(
	ctx *cli.Context,
	table string,
	state store.State,
) error {
	snap, err := snapshot.FromResponse(state.Response, state.Definitions, time.Now())
	if err != nil {
		return wrap.Error(err, "failed to create snapshot of query result")
	}

	sink, err := openSnapshotSink(application.config)
	if err != nil {
		return err
	}
	if closer, ok := sink.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.ErrorCause(err, "failed to close snapshot store connection")
			}
		}()
	}

	if err := sink.SaveSnapshot(ctx.Context, table, snap); err != nil {
		return wrap.Errorf(err, "failed to save snapshot to '%s'", table)
	}
	return nil
}

func openSnapshotSink(conf config.Config) (snapshot.Sink, error) {
	switch conf.SnapshotStore {
	case config.SnapshotStoreClickHouse:
		sink, err := clickhouse.New(conf.ClickHouse)
		if err != nil {
			return nil, wrap.Error(err, "failed to initialize ClickHouse snapshot store")
		}
		return sink, nil
	case config.SnapshotStoreElasticsearch:
		sink, err := elasticsearch.New(conf.Elasticsearch)
		if err != nil {
			return nil, wrap.Error(err, "failed to initialize Elasticsearch snapshot store")
		}
		return sink, nil
	default:
		return nil, errors.New("SNAPSHOT_STORE must be set to save query results")
	}
}
