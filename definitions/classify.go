package definitions

import (
	"slices"
)

// The metric and dimension keys of the result set currently being displayed. Used to classify
// fields the server has not declared (or before definitions have loaded).
type RowKeys struct {
	Metrics    []string
	Dimensions []string
}

// A field key together with what we know about it.
type Field struct {
	Key          string
	Category     Category
	SemanticType SemanticType
	// Nil if the field was classified by row membership rather than by its definition.
	Definition *FieldDefinition
}

// Infers the category and semantic type of a field. Declared definitions take precedence over
// membership in the current result set. Fields found nowhere are returned with CategoryUnknown.
func Classify(key string, definitions Definitions, rowKeys RowKeys) Field {
	if definition, ok := definitions.Metrics[key]; ok {
		semanticType := definition.SemanticType()
		if semanticType == SemanticTypeUnknown {
			semanticType = SemanticTypeNumber
		}
		return Field{
			Key:          key,
			Category:     CategoryMetric,
			SemanticType: semanticType,
			Definition:   &definition,
		}
	}

	if definition, ok := definitions.Dimensions[key]; ok {
		semanticType := definition.SemanticType()
		if semanticType == SemanticTypeUnknown {
			semanticType = SemanticTypeString
		}
		return Field{
			Key:          key,
			Category:     CategoryDimension,
			SemanticType: semanticType,
			Definition:   &definition,
		}
	}

	if slices.Contains(rowKeys.Metrics, key) {
		return Field{Key: key, Category: CategoryMetric, SemanticType: SemanticTypeUnknown}
	}
	if slices.Contains(rowKeys.Dimensions, key) {
		return Field{Key: key, Category: CategoryDimension, SemanticType: SemanticTypeUnknown}
	}

	return Field{Key: key, Category: CategoryUnknown, SemanticType: SemanticTypeUnknown}
}

func (field Field) IsMetric() bool {
	return field.Category == CategoryMetric
}

func (field Field) IsDimension() bool {
	return field.Category == CategoryDimension
}
