package render

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"hermannm.dev/querybuilder/chart"
	"hermannm.dev/querybuilder/format"
	"hermannm.dev/wrap"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

func (w *writer) VisitGroupedBars(bars chart.GroupedBars) error {
	w.legend(bars.Series)

	maxValue := 0.0
	for _, series := range bars.Series {
		_, seriesMax, _ := valueRange(series.Points)
		maxValue = math.Max(maxValue, seriesMax)
	}

	categories := bars.Frame.Categories()
	rows := make([][]string, 0, len(categories)*len(bars.Series))
	for i, category := range categories {
		for j, series := range bars.Series {
			point := series.Points[i]

			label := ""
			if j == 0 {
				label = category
			}
			row := []string{label}
			if len(bars.Series) > 1 {
				row = append(row, series.Name)
			}
			row = append(row, bar(point, maxValue, w.options.BarWidth)+" "+point.Label)
			rows = append(rows, row)
		}
	}

	w.table(rows)
	w.line(fmt.Sprintf("Escala: 0 a %s", bars.Frame.Formatters.YAxis(maxValue)))
	return w.err
}

func (w *writer) VisitLine(line chart.Line) error {
	w.legend([]chart.Series{line.Series})
	w.line(sparkline(line.Series.Points))
	w.axisRange("Eixo", line.Frame, line.Series)

	rows := [][]string{{dimensionHeader(line.Frame), line.Series.Name}}
	for _, point := range line.Series.Points {
		rows = append(rows, []string{point.Category, point.Label})
	}
	w.table(rows)
	return w.err
}

func (w *writer) VisitMultiLine(multiLine chart.MultiLine) error {
	w.legend(multiLine.Series)
	sparklines := make([][]string, 0, len(multiLine.Series))
	for _, series := range multiLine.Series {
		sparklines = append(sparklines, []string{series.Name, sparkline(series.Points)})
	}
	w.table(sparklines)
	w.line("")

	w.seriesTable(multiLine.Frame, multiLine.Series, nil)
	return w.err
}

func (w *writer) VisitBiaxialLine(biaxial chart.BiaxialLine) error {
	series := []chart.Series{biaxial.Left, biaxial.Right}
	w.legend(series)
	w.table([][]string{
		{biaxial.Left.Name, sparkline(biaxial.Left.Points)},
		{biaxial.Right.Name, sparkline(biaxial.Right.Points)},
	})
	w.axisRange("Eixo esquerdo", biaxial.Frame, biaxial.Left)
	w.axisRange("Eixo direito", biaxial.Frame, biaxial.Right)
	w.line("")

	w.seriesTable(biaxial.Frame, series, []string{" (esq.)", " (dir.)"})
	return w.err
}

func (w *writer) VisitPie(pie chart.Pie) error {
	total := 0.0
	for _, slice := range pie.Slices {
		if slice.Valid && slice.Value > 0 {
			total += slice.Value
		}
	}

	rows := make([][]string, 0, len(pie.Slices))
	for _, slice := range pie.Slices {
		share := ""
		if slice.Valid && slice.Value > 0 && total > 0 {
			share = format.GenericNumber(slice.Value/total*100) + "%"
		}
		rows = append(rows, []string{"■ " + slice.Name, slice.Label, share})
	}

	w.line(format.Humanize(pie.Series))
	w.table(rows)
	return w.err
}

func (w *writer) VisitTable(table chart.TableView) error {
	rows := make([][]string, 0, len(table.Cells)+1)
	rows = append(rows, table.Headers)
	rows = append(rows, table.Cells...)
	w.table(rows)
	return w.err
}

// Writes rows aligned in columns.
func (w *writer) table(rows [][]string) {
	if w.err != nil {
		return
	}

	var buffer strings.Builder
	tableWriter := tabwriter.NewWriter(&buffer, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		if _, err := fmt.Fprintln(tableWriter, strings.Join(row, "\t")); err != nil {
			w.err = wrap.Error(err, "failed to write table row")
			return
		}
	}
	if err := tableWriter.Flush(); err != nil {
		w.err = wrap.Error(err, "failed to flush table")
		return
	}

	w.line(strings.TrimSuffix(buffer.String(), "\n"))
}

func (w *writer) legend(series []chart.Series) {
	entries := make([]string, 0, len(series))
	for _, s := range series {
		entries = append(entries, w.colored("■", s.Color)+" "+s.Name)
	}
	w.line(strings.Join(entries, "  "))
}

func (w *writer) axisRange(name string, frame chart.Frame, series chart.Series) {
	minValue, maxValue, ok := valueRange(series.Points)
	if !ok {
		return
	}
	w.line(fmt.Sprintf(
		"%s: %s a %s",
		name,
		frame.Formatters.YAxis(minValue),
		frame.Formatters.YAxis(maxValue),
	))
}

// One row per category, one column per series.
func (w *writer) seriesTable(frame chart.Frame, series []chart.Series, headerSuffixes []string) {
	header := []string{dimensionHeader(frame)}
	for i, s := range series {
		name := s.Name
		if i < len(headerSuffixes) {
			name += headerSuffixes[i]
		}
		header = append(header, name)
	}

	rows := [][]string{header}
	for i, category := range frame.Categories() {
		row := []string{category}
		for _, s := range series {
			row = append(row, s.Points[i].Label)
		}
		rows = append(rows, row)
	}
	w.table(rows)
}

func dimensionHeader(frame chart.Frame) string {
	if dimension := frame.Formatters.PrimaryDimension(); dimension != "" {
		return format.Humanize(dimension)
	}
	return "dimensão"
}

func bar(point chart.Point, maxValue float64, width int) string {
	if !point.Valid || point.Value <= 0 || maxValue <= 0 {
		return ""
	}

	length := int(math.Round(point.Value / maxValue * float64(width)))
	return strings.Repeat("█", max(length, 1))
}

func sparkline(points []chart.Point) string {
	minValue, maxValue, ok := valueRange(points)
	if !ok {
		return ""
	}

	var builder strings.Builder
	for _, point := range points {
		if !point.Valid {
			builder.WriteRune(' ')
			continue
		}

		builder.WriteRune(sparkLevels[sparkLevel(point.Value, minValue, maxValue)])
	}
	return builder.String()
}

// Index into sparkLevels for the value's position between min and max. Halves the operands so that
// the range of two finite values never overflows.
func sparkLevel(value float64, minValue float64, maxValue float64) int {
	top := len(sparkLevels) - 1
	if !(maxValue > minValue) {
		return top
	}

	position := (value/2 - minValue/2) / (maxValue/2 - minValue/2)
	if math.IsNaN(position) || math.IsInf(position, 0) {
		return top
	}

	level := int(math.Round(position * float64(top)))
	return min(max(level, 0), top)
}

// Smallest and largest valid values. False if no point is valid.
func valueRange(points []chart.Point) (minValue float64, maxValue float64, ok bool) {
	for _, point := range points {
		if !point.Valid {
			continue
		}
		if !ok {
			minValue, maxValue, ok = point.Value, point.Value, true
			continue
		}
		minValue = math.Min(minValue, point.Value)
		maxValue = math.Max(maxValue, point.Value)
	}
	return minValue, maxValue, ok
}
