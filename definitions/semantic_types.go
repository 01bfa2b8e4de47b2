package definitions

import (
	"strings"

	"hermannm.dev/enumnames"
)

// The declared or inferred value domain of a field, which drives display formatting.
type SemanticType uint8

const (
	SemanticTypeUnknown SemanticType = iota
	SemanticTypeNumber
	SemanticTypeCurrency
	SemanticTypeDate
	SemanticTypeDateTime
	SemanticTypeTimestamp
	SemanticTypeTime
	SemanticTypeString
	SemanticTypePercentage
)

var semanticTypeNames = enumnames.NewMap(map[SemanticType]string{
	SemanticTypeNumber:     "number",
	SemanticTypeCurrency:   "currency",
	SemanticTypeDate:       "date",
	SemanticTypeDateTime:   "datetime",
	SemanticTypeTimestamp:  "timestamp",
	SemanticTypeTime:       "time",
	SemanticTypeString:     "string",
	SemanticTypePercentage: "percentage",
})

// Parses a type name as declared by the server. Unrecognized names give SemanticTypeUnknown, since
// the server may declare types we have no special formatting for.
func ParseSemanticType(name string) SemanticType {
	name = strings.ToLower(strings.TrimSpace(name))
	semanticType, ok := semanticTypeNames.EnumValueFromName(name)
	if !ok {
		return SemanticTypeUnknown
	}
	return semanticType
}

func (semanticType SemanticType) IsValid() bool {
	_, ok := semanticTypeNames.GetName(semanticType)
	return ok
}

func (semanticType SemanticType) String() string {
	return semanticTypeNames.GetNameOrFallback(semanticType, "unknown")
}

func (semanticType SemanticType) MarshalJSON() ([]byte, error) {
	return semanticTypeNames.MarshalToNameJSON(semanticType)
}

func (semanticType *SemanticType) UnmarshalJSON(bytes []byte) error {
	return semanticTypeNames.UnmarshalFromNameJSON(bytes, semanticType)
}

// Whether a field is a metric (aggregated value) or a dimension (grouping key).
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryMetric
	CategoryDimension
)

var categoryNames = enumnames.NewMap(map[Category]string{
	CategoryMetric:    "metric",
	CategoryDimension: "dimension",
})

func (category Category) IsValid() bool {
	_, ok := categoryNames.GetName(category)
	return ok
}

func (category Category) String() string {
	return categoryNames.GetNameOrFallback(category, "unknown")
}

func (category Category) MarshalJSON() ([]byte, error) {
	return categoryNames.MarshalToNameJSON(category)
}

func (category *Category) UnmarshalJSON(bytes []byte) error {
	return categoryNames.UnmarshalFromNameJSON(bytes, category)
}
