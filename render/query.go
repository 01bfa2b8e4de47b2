package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hermannm.dev/querybuilder/definitions"
	"hermannm.dev/querybuilder/format"
	"hermannm.dev/querybuilder/query"
	"hermannm.dev/wrap"
)

const NoFiltersMessage = "Nenhum filtro aplicado"

// Writes the query panel: selected fields by label, period, ordering, limit and filters.
func Query(output io.Writer, q query.Query, defs definitions.Definitions, options Options) error {
	w := &writer{output: output, options: options}

	rows := [][]string{
		{"  Métricas", fieldLabels(q.Metrics, defs)},
		{"  Dimensões", fieldLabels(q.Dimensions, defs)},
		{"  Período", periodText(q)},
		{"  Ordenar", orderText(q.OrderBy, defs)},
		{"  Limite", strconv.Itoa(q.Limit)},
	}

	if len(q.Filters) == 0 {
		rows = append(rows, []string{"  Filtros", NoFiltersMessage})
	}
	for i, filter := range q.Filters {
		title := ""
		if i == 0 {
			title = "  Filtros"
		}
		rows = append(rows, []string{title, filter.Describe(defs.Label(filter.Field))})
	}

	w.line(w.bold("Consulta"))
	w.table(rows)
	w.line("")

	if w.err != nil {
		return wrap.Error(w.err, "failed to write query")
	}
	return nil
}

func fieldLabels(keys []string, defs definitions.Definitions) string {
	if len(keys) == 0 {
		return "-"
	}

	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		labels = append(labels, defs.Label(key))
	}
	return strings.Join(labels, ", ")
}

func periodText(q query.Query) string {
	if q.Period != query.PeriodCustom {
		return q.Period.Label()
	}
	return fmt.Sprintf(
		"%s (%s a %s)",
		q.Period.Label(),
		format.Date(q.CustomStartDate),
		format.Date(q.CustomEndDate),
	)
}

func orderText(orderBy query.OrderBy, defs definitions.Definitions) string {
	if orderBy.Field == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", defs.Label(orderBy.Field), orderBy.Direction.Label())
}
