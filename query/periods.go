package query

import "hermannm.dev/enumnames"

type Period uint8

const (
	PeriodLast7Days Period = iota + 1
	PeriodLast30Days
	PeriodLast6Months
	PeriodLast12Months
	PeriodThisYear
	// Uses Query.CustomStartDate and Query.CustomEndDate.
	PeriodCustom
)

var periodNames = enumnames.NewMap(map[Period]string{
	PeriodLast7Days:    "last_7_days",
	PeriodLast30Days:   "last_30_days",
	PeriodLast6Months:  "last_6_months",
	PeriodLast12Months: "last_12_months",
	PeriodThisYear:     "this_year",
	PeriodCustom:       "custom",
})

var periodLabels = map[Period]string{
	PeriodLast7Days:    "Últimos 7 dias",
	PeriodLast30Days:   "Últimos 30 dias",
	PeriodLast6Months:  "Últimos 6 meses",
	PeriodLast12Months: "Últimos 12 meses",
	PeriodThisYear:     "Este ano",
	PeriodCustom:       "Personalizado",
}

// Preset periods in display order.
var Periods = []Period{
	PeriodLast7Days,
	PeriodLast30Days,
	PeriodLast6Months,
	PeriodLast12Months,
	PeriodThisYear,
}

func ParsePeriod(name string) (Period, bool) {
	return periodNames.EnumValueFromName(name)
}

func (period Period) IsValid() bool {
	_, ok := periodNames.GetName(period)
	return ok
}

func (period Period) String() string {
	return periodNames.GetNameOrFallback(period, "INVALID_PERIOD")
}

func (period Period) Label() string {
	if label, ok := periodLabels[period]; ok {
		return label
	}
	return period.String()
}

func (period Period) MarshalJSON() ([]byte, error) {
	return periodNames.MarshalToNameJSON(period)
}

func (period *Period) UnmarshalJSON(bytes []byte) error {
	return periodNames.UnmarshalFromNameJSON(bytes, period)
}
