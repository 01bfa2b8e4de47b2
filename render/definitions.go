package render

import (
	"io"

	"hermannm.dev/querybuilder/definitions"
	"hermannm.dev/wrap"
)

// Lists the metrics and dimensions a query can use, with their labels and declared types.
func Definitions(output io.Writer, defs definitions.Definitions, options Options) error {
	w := &writer{output: output, options: options}

	w.definitionSection("Métricas", defs.Metrics)
	w.line("")
	w.definitionSection("Dimensões", defs.Dimensions)

	if w.err != nil {
		return wrap.Error(w.err, "failed to write definitions")
	}
	return nil
}

func (w *writer) definitionSection(title string, fields map[string]definitions.FieldDefinition) {
	w.line(w.bold(title))
	if len(fields) == 0 {
		w.line("  (nenhuma)")
		return
	}

	rows := make([][]string, 0, len(fields))
	for _, option := range definitions.Options(fields) {
		typeName := "-"
		if declared := fields[option.Value].Type; declared != nil {
			typeName = *declared
		}
		rows = append(rows, []string{"  " + option.Value, option.Label, typeName})
	}
	w.table(rows)
}
