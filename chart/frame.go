package chart

import (
	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/definitions"
	"hermannm.dev/querybuilder/format"
)

// A response's rows flattened to one mapping each, with the keys and formatters of the result set.
type Frame struct {
	// Dimensions first, then metrics. A metric shadows a dimension with the same key.
	Rows          []api.Fields
	DimensionKeys []string
	MetricKeys    []string
	Formatters    format.ChartFormatters
}

// Flattens the response rows. Keys are taken from the first row. Returns false for a nil or empty
// response.
func Flatten(response *api.Response, defs definitions.Definitions) (Frame, bool) {
	if response.IsEmpty() {
		return Frame{}, false
	}

	dimensionKeys, metricKeys := response.Keys()

	rows := make([]api.Fields, 0, len(response.Data))
	for _, dataRow := range response.Data {
		row := dataRow.Dimensions.Clone()
		for _, entry := range dataRow.Metrics.Entries() {
			row.Set(entry.Key, entry.Value)
		}
		rows = append(rows, row)
	}

	return Frame{
		Rows:          rows,
		DimensionKeys: dimensionKeys,
		MetricKeys:    metricKeys,
		Formatters:    format.NewChartFormatters(defs, dimensionKeys, metricKeys),
	}, true
}

func (frame Frame) value(rowIndex int, key string) any {
	value, _ := frame.Rows[rowIndex].Get(key)
	return value
}

// X-axis labels, one per row.
func (frame Frame) Categories() []string {
	dimension := frame.Formatters.PrimaryDimension()

	categories := make([]string, 0, len(frame.Rows))
	for i := range frame.Rows {
		categories = append(categories, frame.Formatters.XAxis(frame.value(i, dimension)))
	}
	return categories
}

// The series for one metric, colored by its index among the chart's series.
func (frame Frame) Series(metricKey string, colorIndex int) Series {
	categories := frame.Categories()

	points := make([]Point, 0, len(frame.Rows))
	for i := range frame.Rows {
		raw := frame.value(i, metricKey)
		number, valid := format.ParseNumber(raw)
		label, _ := frame.Formatters.Tooltip(raw, metricKey)

		points = append(points, Point{
			Category: categories[i],
			Value:    number,
			Valid:    valid,
			Label:    label,
		})
	}

	return Series{
		Key:    metricKey,
		Name:   format.Humanize(metricKey),
		Color:  Color(colorIndex),
		Points: points,
	}
}

func (frame Frame) allSeries() []Series {
	series := make([]Series, 0, len(frame.MetricKeys))
	for i, key := range frame.MetricKeys {
		series = append(series, frame.Series(key, i))
	}
	return series
}

func (frame Frame) primaryMetric() string {
	return frame.Formatters.PrimaryMetric()
}
