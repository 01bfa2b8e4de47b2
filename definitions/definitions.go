package definitions

import (
	"sort"
)

// Server-declared metadata for a single metric or dimension.
type FieldDefinition struct {
	SQL         string   `json:"sql"`
	Label       string   `json:"label"`
	Type        *string  `json:"type"`
	JoinsNeeded []string `json:"joins_needed"`
}

// The declared semantic type, or SemanticTypeUnknown if the server declared none (or one we do
// not recognize).
func (definition FieldDefinition) SemanticType() SemanticType {
	if definition.Type == nil {
		return SemanticTypeUnknown
	}
	return ParseSemanticType(*definition.Type)
}

// The fields a user can pick from, as returned by GET /definitions.
type Definitions struct {
	Metrics    map[string]FieldDefinition `json:"metrics"`
	Dimensions map[string]FieldDefinition `json:"dimensions"`
}

func Empty() Definitions {
	return Definitions{
		Metrics:    make(map[string]FieldDefinition),
		Dimensions: make(map[string]FieldDefinition),
	}
}

func (definitions Definitions) IsEmpty() bool {
	return len(definitions.Metrics) == 0 && len(definitions.Dimensions) == 0
}

func (definitions Definitions) Metric(key string) (FieldDefinition, bool) {
	definition, ok := definitions.Metrics[key]
	return definition, ok
}

func (definitions Definitions) Dimension(key string) (FieldDefinition, bool) {
	definition, ok := definitions.Dimensions[key]
	return definition, ok
}

// Returns the label of the metric or dimension with the given key, falling back to the key itself
// for fields the server has not declared.
func (definitions Definitions) Label(key string) string {
	if definition, ok := definitions.Metrics[key]; ok && definition.Label != "" {
		return definition.Label
	}
	if definition, ok := definitions.Dimensions[key]; ok && definition.Label != "" {
		return definition.Label
	}
	return key
}

type Option struct {
	Value string
	Label string
}

// Maps field definitions to selectable options, sorted by key so listings are stable.
func Options(fields map[string]FieldDefinition) []Option {
	options := make([]Option, 0, len(fields))
	for key, definition := range fields {
		options = append(options, Option{Value: key, Label: definition.Label})
	}

	sort.Slice(options, func(i, j int) bool {
		return options[i].Value < options[j].Value
	})

	return options
}

// Which family of filter operators applies to a field.
type FilterKind uint8

const (
	FilterKindString FilterKind = iota + 1
	FilterKindNumber
	FilterKindDate
)

func (definitions Definitions) FilterKind(key string) FilterKind {
	var semanticType SemanticType
	if definition, ok := definitions.Metrics[key]; ok {
		semanticType = definition.SemanticType()
		if semanticType == SemanticTypeUnknown {
			semanticType = SemanticTypeNumber
		}
	} else if definition, ok := definitions.Dimensions[key]; ok {
		semanticType = definition.SemanticType()
	}

	switch semanticType {
	case SemanticTypeCurrency, SemanticTypeNumber:
		return FilterKindNumber
	case SemanticTypeDate, SemanticTypeDateTime:
		return FilterKindDate
	default:
		return FilterKindString
	}
}
