package format

import (
	"slices"

	"hermannm.dev/querybuilder/definitions"
)

// Formatting functions bound to one result set's keys and one definitions snapshot. Build a new
// value whenever either changes.
type ChartFormatters struct {
	definitions definitions.Definitions
	rowKeys     definitions.RowKeys
}

func NewChartFormatters(
	defs definitions.Definitions,
	dimensionKeys []string,
	metricKeys []string,
) ChartFormatters {
	return ChartFormatters{
		definitions: defs,
		rowKeys: definitions.RowKeys{
			Metrics:    slices.Clone(metricKeys),
			Dimensions: slices.Clone(dimensionKeys),
		},
	}
}

// The dimension that drives the categorical axis, or "" if the result has no dimensions.
func (formatters ChartFormatters) PrimaryDimension() string {
	if len(formatters.rowKeys.Dimensions) == 0 {
		return ""
	}
	return formatters.rowKeys.Dimensions[0]
}

// The metric that drives the value axis, or "" if the result has no metrics.
func (formatters ChartFormatters) PrimaryMetric() string {
	if len(formatters.rowKeys.Metrics) == 0 {
		return ""
	}
	return formatters.rowKeys.Metrics[0]
}

func (formatters ChartFormatters) Field(key string) definitions.Field {
	return definitions.Classify(key, formatters.definitions, formatters.rowKeys)
}

// Formats a category axis label using the first dimension.
func (formatters ChartFormatters) XAxis(value any) string {
	return Value(formatters.Field(formatters.PrimaryDimension()), value)
}

// Formats a value axis tick using the first metric, abbreviating large numbers.
func (formatters ChartFormatters) YAxis(value any) string {
	if metric := formatters.PrimaryMetric(); metric != "" && IsDuration(formatters.Field(metric)) {
		return AxisMinutes(value)
	}
	return AxisNumber(value)
}

// Returns the formatted value and the humanized series name.
func (formatters ChartFormatters) Tooltip(value any, series string) (string, string) {
	return Value(formatters.Field(series), value), Humanize(series)
}

func (formatters ChartFormatters) Table(value any, key string) string {
	return Value(formatters.Field(key), value)
}
