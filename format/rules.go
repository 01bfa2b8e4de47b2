package format

import (
	"strings"

	"hermannm.dev/querybuilder/definitions"
)

const (
	WeekdayKey = "dia_da_semana"
	HourKey    = "hora_venda"
)

// Metric keys containing any of these are formatted as currency.
var currencyKeyHints = []string{"vendas", "receita", "bruto", "ticket"}

// Metric keys containing any of these are formatted as durations in minutes.
var durationKeyHints = []string{"tempo", "duration"}

// A named entry in the ordered formatting table used by Value.
type Rule struct {
	Name    string
	Matches func(field definitions.Field, value any) bool
	Format  func(value any) string
}

// First match wins. The last rule matches everything.
var rules = []Rule{
	{
		Name: "timestamp-string",
		Matches: func(_ definitions.Field, value any) bool {
			text, ok := value.(string)
			if !ok {
				return false
			}
			_, ok = parseTimestamp(text)
			return ok
		},
		Format: func(value any) string {
			timestamp, _ := parseTimestamp(value.(string))
			if isMidnight(timestamp) {
				return timestamp.Format(dateLayout)
			}
			return timestamp.Format(dateTimeLayout)
		},
	},
	{
		Name: "weekday",
		Matches: func(field definitions.Field, _ any) bool {
			return field.IsDimension() && field.Key == WeekdayKey
		},
		Format: Weekday,
	},
	{
		Name: "dimension-datetime",
		Matches: func(field definitions.Field, _ any) bool {
			return field.IsDimension() &&
				(field.SemanticType == definitions.SemanticTypeDateTime ||
					field.SemanticType == definitions.SemanticTypeTimestamp)
		},
		Format: DateTime,
	},
	{
		Name: "dimension-date",
		Matches: func(field definitions.Field, _ any) bool {
			return field.IsDimension() && field.SemanticType == definitions.SemanticTypeDate
		},
		Format: Date,
	},
	{
		Name: "dimension-time",
		Matches: func(field definitions.Field, _ any) bool {
			return field.IsDimension() &&
				(field.SemanticType == definitions.SemanticTypeTime || field.Key == HourKey)
		},
		Format: Time,
	},
	{
		Name: "metric-currency",
		Matches: func(field definitions.Field, _ any) bool {
			return field.IsMetric() &&
				(field.SemanticType == definitions.SemanticTypeCurrency ||
					containsAny(field.Key, currencyKeyHints))
		},
		Format: Currency,
	},
	{
		Name: "metric-duration",
		Matches: func(field definitions.Field, _ any) bool {
			return field.IsMetric() && IsDuration(field)
		},
		Format: TimeMinutes,
	},
	{
		Name: "generic-number",
		Matches: func(definitions.Field, any) bool {
			return true
		},
		Format: GenericNumber,
	},
}

// Formats a value for display according to the first matching rule.
func Value(field definitions.Field, value any) string {
	return MatchRule(field, value).Format(value)
}

// Returns the rule that Value would apply.
func MatchRule(field definitions.Field, value any) Rule {
	for _, rule := range rules {
		if rule.Matches(field, value) {
			return rule
		}
	}
	return rules[len(rules)-1]
}

// The formatting rules in priority order.
func Rules() []Rule {
	rulesCopy := make([]Rule, len(rules))
	copy(rulesCopy, rules)
	return rulesCopy
}

// Whether values of the field are durations in minutes, either by declared type or by key.
func IsDuration(field definitions.Field) bool {
	return field.SemanticType == definitions.SemanticTypeTime ||
		containsAny(field.Key, durationKeyHints)
}

func containsAny(key string, substrings []string) bool {
	for _, substring := range substrings {
		if strings.Contains(key, substring) {
			return true
		}
	}
	return false
}
