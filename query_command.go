package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"hermannm.dev/querybuilder/chart"
	"hermannm.dev/querybuilder/query"
	"hermannm.dev/querybuilder/render"
	"hermannm.dev/querybuilder/store"
	"hermannm.dev/wrap"
)

type queryCommand struct {
	application *application

	Period    string
	From      string
	To        string
	OrderBy   string
	Order     string
	Limit     int
	Chart     string
	SaveTable string
}

var queryCommandName = "query"

// Names accepted by --chart, matching the chart toggles.
var chartFlagValues = map[string]chart.Kind{
	"line": chart.KindLineChart,
	"bar":  chart.KindBarChart,
	"pie":  chart.KindPieChart,
}

func newQueryCommand(application *application) *cli.Command {
	command := &queryCommand{application: application}
	return &cli.Command{
		Name:   queryCommandName,
		Usage:  "Run a structured query and chart the result",
		Action: command.execute,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "metric", Aliases: []string{"m"}, Usage: "Metric to aggregate (repeatable). Defaults to total_vendas"},
			&cli.StringSliceFlag{Name: "dimension", Aliases: []string{"d"}, Usage: "Dimension to group by (repeatable)"},
			&cli.StringSliceFlag{Name: "filter", Aliases: []string{"f"}, Usage: "Filter in the form field:operator[:value], e.g. canal:eq:ifood or loja:is_null (repeatable)"},
			&cli.StringFlag{Name: "period", Usage: "One of: " + periodNames(), Destination: &command.Period},
			&cli.StringFlag{Name: "from", Usage: "Start date (YYYY-MM-DD) of a custom period", Destination: &command.From},
			&cli.StringFlag{Name: "to", Usage: "End date (YYYY-MM-DD) of a custom period", Destination: &command.To},
			&cli.StringFlag{Name: "order-by", Usage: "Field to order the result by", Destination: &command.OrderBy},
			&cli.StringFlag{Name: "order", Usage: "Sort direction: asc or desc", Destination: &command.Order},
			&cli.IntFlag{Name: "limit", Usage: fmt.Sprintf("Maximum number of rows (%d to %d)", query.MinLimit, query.MaxLimit), Destination: &command.Limit},
			&cli.StringFlag{Name: "chart", Usage: "Chart to show instead of the suggested one: line, bar or pie", Destination: &command.Chart},
			&cli.StringFlag{Name: "save-table", Usage: "Save the result as a snapshot in this table of the configured SNAPSHOT_STORE", Destination: &command.SaveTable},
		},
	}
}

func (cmd *queryCommand) execute(context *cli.Context) error {
	if err := cmd.application.setup(context); err != nil {
		return err
	}

	queryStore, err := cmd.application.newStore()
	if err != nil {
		return err
	}

	if err := cmd.applyFlags(context, queryStore); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if err := queryStore.State().Query.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	var selectedChart chart.Kind
	if cmd.Chart != "" {
		kind, ok := chartFlagValues[strings.ToLower(cmd.Chart)]
		if !ok {
			return cli.Exit(fmt.Sprintf("unrecognized chart '%s', expected line, bar or pie", cmd.Chart), 2)
		}
		selectedChart = kind
	}

	queryStore.FetchDefinitions(context.Context)

	// Without definitions, fields cannot be checked, and the query is sent as given
	state := queryStore.State()
	if state.DefinitionsError == "" {
		for _, filter := range state.Query.Filters {
			if err := filter.ValidateFields(state.Definitions); err != nil {
				return cli.Exit(err.Error(), 2)
			}
		}
	}

	queryStore.FetchVisualization(context.Context)

	if selectedChart != 0 {
		queryStore.Dispatch(store.SelectChart{Kind: selectedChart})
	}

	state = queryStore.State()
	if err := render.Query(
		cmd.application.output,
		state.Query,
		state.Definitions,
		cmd.application.renderOptions(),
	); err != nil {
		return err
	}
	if err := cmd.application.renderVisualization(state); err != nil {
		return err
	}

	if cmd.SaveTable != "" {
		return cmd.application.saveSnapshot(context, cmd.SaveTable, state)
	}
	return nil
}

// Dispatches the actions for the given flags, in the order the query builder's controls apply
// them. Later actions see the effects of earlier ones, e.g. --order alone keeps the order field
// picked by the metric selection.
func (cmd *queryCommand) applyFlags(context *cli.Context, queryStore *store.Store) error {
	if metrics := context.StringSlice("metric"); len(metrics) != 0 {
		queryStore.Dispatch(store.SetMetrics{Metrics: metrics})
	}
	if dimensions := context.StringSlice("dimension"); len(dimensions) != 0 {
		queryStore.Dispatch(store.SetDimensions{Dimensions: dimensions})
	}

	if cmd.Period != "" {
		period, ok := query.ParsePeriod(cmd.Period)
		if !ok {
			return fmt.Errorf("unrecognized period '%s', expected one of: %s", cmd.Period, periodNames())
		}
		queryStore.Dispatch(store.SetPeriod{Period: period})
	} else if cmd.From != "" || cmd.To != "" {
		queryStore.Dispatch(store.SetPeriod{Period: query.PeriodCustom})
	}
	if cmd.From != "" || cmd.To != "" {
		queryStore.Dispatch(store.SetCustomDateRange{StartDate: cmd.From, EndDate: cmd.To})
	}

	for _, input := range context.StringSlice("filter") {
		filter, err := query.ParseFilter(input)
		if err != nil {
			return wrap.Errorf(err, "invalid filter '%s'", input)
		}
		queryStore.Dispatch(store.AddFilter{Filter: filter})
	}

	if cmd.OrderBy != "" || cmd.Order != "" {
		orderBy := queryStore.State().Query.OrderBy
		if cmd.OrderBy != "" {
			orderBy.Field = cmd.OrderBy
		}
		if cmd.Order != "" {
			direction, ok := query.ParseSortDirection(strings.ToLower(cmd.Order))
			if !ok {
				return fmt.Errorf("unrecognized sort direction '%s', expected asc or desc", cmd.Order)
			}
			orderBy.Direction = direction
		}
		queryStore.Dispatch(store.SetOrderBy{OrderBy: orderBy})
	}

	if context.IsSet("limit") {
		queryStore.Dispatch(store.SetLimit{Limit: cmd.Limit})
	}

	return nil
}

func periodNames() string {
	names := make([]string, 0, len(query.Periods)+1)
	for _, period := range query.Periods {
		names = append(names, period.String())
	}
	names = append(names, query.PeriodCustom.String())
	return strings.Join(names, ", ")
}
