package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"hermannm.dev/querybuilder/definitions"
)

type Filter struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	// Nil for null checks (OperatorIsNull, OperatorIsNotNull), and encoded as JSON null. Otherwise
	// the operand as typed by the user, always a string regardless of the field's type.
	Value *string `json:"value"`
}

// Builds a filter, dropping the value for operators that take none so that a null check is sent
// as a real null rather than the string "null".
func NewFilter(field string, operator Operator, value string) Filter {
	filter := Filter{Field: field, Operator: operator}
	if operator.TakesValue() {
		filter.Value = &value
	}
	return filter
}

// Parses "field:operator[:value]". The value may itself contain colons.
func ParseFilter(input string) (Filter, error) {
	parts := strings.SplitN(input, ":", 3)
	if len(parts) < 2 {
		return Filter{}, fmt.Errorf("expected 'field:operator[:value]', got '%s'", input)
	}

	field := strings.TrimSpace(parts[0])
	operator, ok := ParseOperator(strings.TrimSpace(parts[1]))
	if !ok {
		return Filter{}, fmt.Errorf("unrecognized filter operator '%s'", parts[1])
	}

	var value string
	if len(parts) == 3 {
		value = parts[2]
	} else if operator.TakesValue() {
		return Filter{}, fmt.Errorf("filter operator '%s' requires a value", operator)
	}

	filter := NewFilter(field, operator, value)
	if err := filter.Validate(); err != nil {
		return Filter{}, err
	}
	return filter, nil
}

func (filter Filter) Validate() error {
	if filter.Field == "" {
		return errors.New("missing filter field")
	}
	if !filter.Operator.IsValid() {
		return fmt.Errorf("invalid operator for filter on '%s'", filter.Field)
	}
	if filter.Operator.TakesValue() && filter.Value == nil {
		return fmt.Errorf("operator '%s' on '%s' requires a value", filter.Operator, filter.Field)
	}
	if !filter.Operator.TakesValue() && filter.Value != nil {
		return fmt.Errorf("operator '%s' on '%s' takes no value", filter.Operator, filter.Field)
	}
	return nil
}

// Checks the filter against loaded field definitions: the field must be declared, and the operator
// must be one of those offered for the field's kind.
func (filter Filter) ValidateFields(defs definitions.Definitions) error {
	_, isMetric := defs.Metric(filter.Field)
	_, isDimension := defs.Dimension(filter.Field)
	if !isMetric && !isDimension {
		return fmt.Errorf("unknown filter field '%s'", filter.Field)
	}

	if !slices.Contains(OperatorsFor(defs.FilterKind(filter.Field)), filter.Operator) {
		return fmt.Errorf(
			"operator '%s' is not available for field '%s'",
			filter.Operator,
			filter.Field,
		)
	}
	return nil
}

// Human-readable summary of a filter, e.g. "Canal Igual a ifood".
func (filter Filter) Describe(label string) string {
	var builder strings.Builder
	builder.WriteString(label)
	builder.WriteRune(' ')
	builder.WriteString(filter.Operator.Label())
	if filter.Value != nil {
		builder.WriteRune(' ')
		builder.WriteString(*filter.Value)
	}
	return builder.String()
}
