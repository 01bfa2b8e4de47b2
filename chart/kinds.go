package chart

import "hermannm.dev/enumnames"

type Kind uint8

const (
	KindBarChart Kind = iota + 1
	KindGroupedBarChart
	KindLineChart
	KindMultiLineChart
	KindBiaxialLineChart
	KindPieChart
	KindTable
)

var kindNames = enumnames.NewMap(map[Kind]string{
	KindBarChart:         "BarChart",
	KindGroupedBarChart:  "GroupedBarChart",
	KindLineChart:        "LineChart",
	KindMultiLineChart:   "MultiLineChart",
	KindBiaxialLineChart: "BiaxialLineChart",
	KindPieChart:         "PieChart",
	KindTable:            "Table",
})

// The kinds a user can switch between directly. The others are only reachable through a server
// suggestion.
var Toggles = []Kind{KindLineChart, KindBarChart, KindPieChart}

// Parses a chart name as suggested by the server. Unrecognized names give KindBarChart and false.
func ParseKind(name string) (Kind, bool) {
	kind, ok := kindNames.EnumValueFromName(name)
	if !ok {
		return KindBarChart, false
	}
	return kind, true
}

func (kind Kind) UserSelectable() bool {
	switch kind {
	case KindLineChart, KindBarChart, KindPieChart:
		return true
	default:
		return false
	}
}

// Whether the given toggle should show as active while this kind is displayed. The line toggle
// covers every line variant, and the bar toggle every bar variant.
func (kind Kind) ActivatesToggle(toggle Kind) bool {
	switch toggle {
	case KindLineChart:
		return kind == KindLineChart || kind == KindMultiLineChart || kind == KindBiaxialLineChart
	case KindBarChart:
		return kind == KindBarChart || kind == KindGroupedBarChart
	default:
		return kind == toggle
	}
}

func (kind Kind) IsValid() bool {
	_, ok := kindNames.GetName(kind)
	return ok
}

func (kind Kind) String() string {
	return kindNames.GetNameOrFallback(kind, "INVALID_CHART_KIND")
}

func (kind Kind) MarshalJSON() ([]byte, error) {
	return kindNames.MarshalToNameJSON(kind)
}

func (kind *Kind) UnmarshalJSON(bytes []byte) error {
	return kindNames.UnmarshalFromNameJSON(bytes, kind)
}
