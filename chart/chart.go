// Package chart picks the visualization for a query response and prepares its data.
package chart

import (
	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/definitions"
	"hermannm.dev/querybuilder/format"
)

// One of GroupedBars, Line, MultiLine, BiaxialLine, Pie or TableView.
type Chart interface {
	Accept(visitor Visitor) error
	// The kind this chart is drawn as, which may differ from the requested kind.
	Kind() Kind
}

// Handles every chart variant. Adding a variant adds a method here, so that every renderer must
// handle it.
type Visitor interface {
	VisitGroupedBars(chart GroupedBars) error
	VisitLine(chart Line) error
	VisitMultiLine(chart MultiLine) error
	VisitBiaxialLine(chart BiaxialLine) error
	VisitPie(chart Pie) error
	VisitTable(chart TableView) error
}

type Series struct {
	Key string
	// Key with underscores replaced by spaces.
	Name   string
	Color  string
	Points []Point
}

type Point struct {
	// Formatted x-axis label.
	Category string
	Value    float64
	// False if the row had no numeric value for the series.
	Valid bool
	// Formatted value, as shown in tooltips.
	Label string
}

// One bar series per metric, sharing the categorical axis of the first dimension.
type GroupedBars struct {
	Frame  Frame
	Series []Series
}

type Line struct {
	Frame  Frame
	Series Series
}

type MultiLine struct {
	Frame  Frame
	Series []Series
}

// Two metrics on separate left and right value axes.
type BiaxialLine struct {
	Frame Frame
	Left  Series
	Right Series
}

type Pie struct {
	Frame  Frame
	Series string
	Slices []Slice
}

type Slice struct {
	// The first dimension's value, formatted as an x-axis label.
	Name  string
	Value float64
	Valid bool
	// The value formatted as in tooltips.
	Label string
	Color string
}

type TableView struct {
	Frame Frame
	// Dimension keys, then metric keys.
	Keys    []string
	Headers []string
	Cells   [][]string
}

func (chart GroupedBars) Accept(visitor Visitor) error { return visitor.VisitGroupedBars(chart) }
func (chart Line) Accept(visitor Visitor) error        { return visitor.VisitLine(chart) }
func (chart MultiLine) Accept(visitor Visitor) error   { return visitor.VisitMultiLine(chart) }
func (chart BiaxialLine) Accept(visitor Visitor) error { return visitor.VisitBiaxialLine(chart) }
func (chart Pie) Accept(visitor Visitor) error         { return visitor.VisitPie(chart) }
func (chart TableView) Accept(visitor Visitor) error   { return visitor.VisitTable(chart) }

func (GroupedBars) Kind() Kind { return KindGroupedBarChart }
func (Line) Kind() Kind        { return KindLineChart }
func (MultiLine) Kind() Kind   { return KindMultiLineChart }
func (BiaxialLine) Kind() Kind { return KindBiaxialLineChart }
func (Pie) Kind() Kind         { return KindPieChart }
func (TableView) Kind() Kind   { return KindTable }

// Selects and prepares the chart for the response. Returns false if there is no data to show.
func Dispatch(kind Kind, response *api.Response, defs definitions.Definitions) (Chart, bool) {
	frame, ok := Flatten(response, defs)
	if !ok {
		return nil, false
	}

	switch kind {
	case KindLineChart:
		if len(frame.MetricKeys) > 1 {
			return newMultiLine(frame), true
		}
		return newLine(frame), true
	case KindMultiLineChart:
		return newMultiLine(frame), true
	case KindBiaxialLineChart:
		if len(frame.MetricKeys) < 2 {
			return newLine(frame), true
		}
		return BiaxialLine{
			Frame: frame,
			Left:  frame.Series(frame.MetricKeys[0], 0),
			Right: frame.Series(frame.MetricKeys[1], 1),
		}, true
	case KindPieChart:
		return newPie(frame), true
	case KindTable:
		return newTable(frame), true
	default: // KindBarChart, KindGroupedBarChart and invalid kinds
		return GroupedBars{Frame: frame, Series: frame.allSeries()}, true
	}
}

func newLine(frame Frame) Line {
	return Line{Frame: frame, Series: frame.Series(frame.primaryMetric(), 0)}
}

func newMultiLine(frame Frame) MultiLine {
	return MultiLine{Frame: frame, Series: frame.allSeries()}
}

func newPie(frame Frame) Pie {
	series := frame.Series(frame.primaryMetric(), 0)

	slices := make([]Slice, 0, len(series.Points))
	for i, point := range series.Points {
		slices = append(slices, Slice{
			Name:  point.Category,
			Value: point.Value,
			Valid: point.Valid,
			Label: point.Label,
			Color: Color(i),
		})
	}

	return Pie{Frame: frame, Series: series.Key, Slices: slices}
}

func newTable(frame Frame) TableView {
	keys := make([]string, 0, len(frame.DimensionKeys)+len(frame.MetricKeys))
	keys = append(keys, frame.DimensionKeys...)
	keys = append(keys, frame.MetricKeys...)

	headers := make([]string, 0, len(keys))
	for _, key := range keys {
		headers = append(headers, format.Humanize(key))
	}

	cells := make([][]string, 0, len(frame.Rows))
	for i := range frame.Rows {
		row := make([]string, 0, len(keys))
		for _, key := range keys {
			row = append(row, frame.Formatters.Table(frame.value(i, key), key))
		}
		cells = append(cells, row)
	}

	return TableView{Frame: frame, Keys: keys, Headers: headers, Cells: cells}
}
