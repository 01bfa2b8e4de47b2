// Package render draws the query builder's visualization as text for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/chart"
	"hermannm.dev/querybuilder/format"
	"hermannm.dev/querybuilder/store"
	"hermannm.dev/wrap"
)

// Prefixes the error of a failed definitions fetch.
const DefinitionsErrorMessage = "Erro ao carregar definições:"

const (
	NoDataMessage   = "Nenhum dado para exibir."
	LoadingMessage  = "Carregando..."
	defaultBarWidth = 40
)

type Options struct {
	// Enables bold text and colored series through ANSI escape codes.
	ANSI bool
	// Width of the longest bar, in characters. Defaults to 40.
	BarWidth int
}

var toggleLabels = map[chart.Kind]string{
	chart.KindLineChart: "Linha",
	chart.KindBarChart:  "Barras",
	chart.KindPieChart:  "Pizza",
}

// Writes the visualization area for the state: header, chart (or a loading, error or no-data
// message), insights and query details. A failed definitions fetch is reported above the header,
// since labels and formats fall back to guesses without definitions.
func Visualization(output io.Writer, state store.State, options Options) error {
	if options.BarWidth <= 0 {
		options.BarWidth = defaultBarWidth
	}
	w := &writer{output: output, options: options}

	if state.DefinitionsError != "" {
		w.line(w.colored(DefinitionsErrorMessage+" "+state.DefinitionsError, errorColor))
		w.line("")
	}

	title, subtitle := chart.Title(state.Response, state.Loading, state.Error)
	w.line(w.bold(title))
	w.line(subtitle)
	w.line(toggles(state.ActiveChart))
	w.line("")

	switch {
	case state.Loading:
		w.line(LoadingMessage)
	case state.Error != "":
		w.line(w.colored(state.Error, errorColor))
	default:
		dispatched, ok := chart.Dispatch(state.ActiveChart, state.Response, state.Definitions)
		if !ok {
			w.line(NoDataMessage)
			break
		}
		if err := dispatched.Accept(w); err != nil {
			return wrap.Errorf(err, "failed to render %s", dispatched.Kind())
		}
	}

	if state.Response != nil && !state.Loading {
		w.insights(state.Response.Insights)
		w.queryDetails(state.Response)
	}

	if w.err != nil {
		return wrap.Error(w.err, "failed to write visualization")
	}
	return nil
}

func toggles(active chart.Kind) string {
	var builder strings.Builder
	for i, toggle := range chart.Toggles {
		if i > 0 {
			builder.WriteString("  ")
		}
		if active.ActivatesToggle(toggle) {
			builder.WriteString("[x] ")
		} else {
			builder.WriteString("[ ] ")
		}
		builder.WriteString(toggleLabels[toggle])
	}
	return builder.String()
}

func (w *writer) insights(insights []string) {
	if len(insights) == 0 {
		return
	}

	w.line("")
	w.line(w.bold("Insights"))
	for _, insight := range insights {
		w.line("  • " + Insight(insight, w.options.ANSI))
	}
}

func (w *writer) queryDetails(response *api.Response) {
	if response.QuerySQL == "" {
		return
	}

	w.line("")
	w.line(fmt.Sprintf(
		"SQL (%s ms): %s",
		format.GenericNumber(response.ExecutionTimeMs),
		response.QuerySQL,
	))
}
