package query

import (
	"hermannm.dev/enumnames"
	"hermannm.dev/querybuilder/definitions"
)

type Operator uint8

const (
	OperatorEquals Operator = iota + 1
	OperatorNotEquals
	OperatorContains
	OperatorIsNull
	OperatorIsNotNull
	OperatorGreaterThan
	OperatorGreaterThanOrEqual
	OperatorLessThan
	OperatorLessThanOrEqual
)

var operatorNames = enumnames.NewMap(map[Operator]string{
	OperatorEquals:             "eq",
	OperatorNotEquals:          "neq",
	OperatorContains:           "contains",
	OperatorIsNull:             "is_null",
	OperatorIsNotNull:          "is_not_null",
	OperatorGreaterThan:        "gt",
	OperatorGreaterThanOrEqual: "gte",
	OperatorLessThan:           "lt",
	OperatorLessThanOrEqual:    "lte",
})

var operatorLabels = map[Operator]string{
	OperatorEquals:             "Igual a",
	OperatorNotEquals:          "Diferente de",
	OperatorContains:           "Contém",
	OperatorIsNull:             "É nulo",
	OperatorIsNotNull:          "Não é nulo",
	OperatorGreaterThan:        "Maior que",
	OperatorGreaterThanOrEqual: "Maior ou igual a",
	OperatorLessThan:           "Menor que",
	OperatorLessThanOrEqual:    "Menor ou igual a",
}

func ParseOperator(name string) (Operator, bool) {
	return operatorNames.EnumValueFromName(name)
}

func (operator Operator) IsValid() bool {
	_, ok := operatorNames.GetName(operator)
	return ok
}

func (operator Operator) String() string {
	return operatorNames.GetNameOrFallback(operator, "INVALID_OPERATOR")
}

func (operator Operator) Label() string {
	if label, ok := operatorLabels[operator]; ok {
		return label
	}
	return operator.String()
}

// Null checks take no operand.
func (operator Operator) TakesValue() bool {
	return operator != OperatorIsNull && operator != OperatorIsNotNull
}

func (operator Operator) MarshalJSON() ([]byte, error) {
	return operatorNames.MarshalToNameJSON(operator)
}

func (operator *Operator) UnmarshalJSON(bytes []byte) error {
	return operatorNames.UnmarshalFromNameJSON(bytes, operator)
}

var (
	stringOperators = []Operator{
		OperatorEquals,
		OperatorNotEquals,
		OperatorContains,
		OperatorIsNull,
		OperatorIsNotNull,
	}
	numericOperators = []Operator{
		OperatorEquals,
		OperatorNotEquals,
		OperatorGreaterThan,
		OperatorGreaterThanOrEqual,
		OperatorLessThan,
		OperatorLessThanOrEqual,
	}
)

// The operators offered for a field of the given filter kind. Date fields are compared as strings.
func OperatorsFor(kind definitions.FilterKind) []Operator {
	if kind == definitions.FilterKindNumber {
		return append([]Operator(nil), numericOperators...)
	}
	return append([]Operator(nil), stringOperators...)
}
