package definitions_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/querybuilder/definitions"
)

func typeOf(name string) *string {
	return &name
}

var testDefinitions = definitions.Definitions{
	Metrics: map[string]definitions.FieldDefinition{
		"total_vendas":  {SQL: "SUM(valor)", Label: "Total de vendas", Type: typeOf("currency")},
		"total_pedidos": {SQL: "COUNT(*)", Label: "Total de pedidos"},
		"tempo_medio":   {SQL: "AVG(tempo)", Label: "Tempo médio", Type: typeOf("time")},
	},
	Dimensions: map[string]definitions.FieldDefinition{
		"data_venda":    {SQL: "data", Label: "Data da venda", Type: typeOf("date")},
		"canal":         {SQL: "canal", Label: "Canal"},
		"dia_da_semana": {SQL: "dow", Label: "Dia da semana", Type: typeOf("number")},
	},
}

func TestClassifyDeclaredMetric(t *testing.T) {
	field := definitions.Classify("total_vendas", testDefinitions, definitions.RowKeys{})

	assert.Equal(t, definitions.CategoryMetric, field.Category)
	assert.Equal(t, definitions.SemanticTypeCurrency, field.SemanticType)
	require.NotNil(t, field.Definition)
	assert.Equal(t, "Total de vendas", field.Definition.Label)
}

func TestClassifyDefaultsUndeclaredTypes(t *testing.T) {
	metric := definitions.Classify("total_pedidos", testDefinitions, definitions.RowKeys{})
	assert.Equal(t, definitions.CategoryMetric, metric.Category)
	assert.Equal(t, definitions.SemanticTypeNumber, metric.SemanticType)

	dimension := definitions.Classify("canal", testDefinitions, definitions.RowKeys{})
	assert.Equal(t, definitions.CategoryDimension, dimension.Category)
	assert.Equal(t, definitions.SemanticTypeString, dimension.SemanticType)
}

func TestClassifyFallsBackToRowKeys(t *testing.T) {
	rowKeys := definitions.RowKeys{Metrics: []string{"receita"}, Dimensions: []string{"regiao"}}

	metric := definitions.Classify("receita", definitions.Empty(), rowKeys)
	assert.Equal(t, definitions.CategoryMetric, metric.Category)
	assert.Equal(t, definitions.SemanticTypeUnknown, metric.SemanticType)
	assert.Nil(t, metric.Definition)

	dimension := definitions.Classify("regiao", definitions.Empty(), rowKeys)
	assert.Equal(t, definitions.CategoryDimension, dimension.Category)

	unknown := definitions.Classify("missing", definitions.Empty(), rowKeys)
	assert.Equal(t, definitions.CategoryUnknown, unknown.Category)
	assert.Equal(t, definitions.SemanticTypeUnknown, unknown.SemanticType)
}

func TestParseSemanticType(t *testing.T) {
	assert.Equal(t, definitions.SemanticTypeDateTime, definitions.ParseSemanticType("datetime"))
	assert.Equal(t, definitions.SemanticTypeCurrency, definitions.ParseSemanticType(" Currency "))
	assert.Equal(t, definitions.SemanticTypeUnknown, definitions.ParseSemanticType("geo_point"))
	assert.Equal(t, definitions.SemanticTypeUnknown, definitions.ParseSemanticType(""))
}

func TestDecodeDefinitions(t *testing.T) {
	const body = `{
		"metrics": {"total_vendas": {"sql": "SUM(v)", "label": "Vendas", "type": "currency", "joins_needed": []}},
		"dimensions": {"canal": {"sql": "canal", "label": "Canal", "type": null, "joins_needed": ["canais"]}}
	}`

	var decoded definitions.Definitions
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))

	metric, ok := decoded.Metric("total_vendas")
	require.True(t, ok)
	assert.Equal(t, definitions.SemanticTypeCurrency, metric.SemanticType())

	dimension, ok := decoded.Dimension("canal")
	require.True(t, ok)
	assert.Nil(t, dimension.Type)
	assert.Equal(t, []string{"canais"}, dimension.JoinsNeeded)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Total de vendas", testDefinitions.Label("total_vendas"))
	assert.Equal(t, "Canal", testDefinitions.Label("canal"))
	assert.Equal(t, "unknown_field", testDefinitions.Label("unknown_field"))
}

func TestOptionsAreSortedByKey(t *testing.T) {
	options := definitions.Options(testDefinitions.Metrics)

	assert.Equal(t, []definitions.Option{
		{Value: "tempo_medio", Label: "Tempo médio"},
		{Value: "total_pedidos", Label: "Total de pedidos"},
		{Value: "total_vendas", Label: "Total de vendas"},
	}, options)
}

func TestFilterKind(t *testing.T) {
	assert.Equal(t, definitions.FilterKindNumber, testDefinitions.FilterKind("total_vendas"))
	assert.Equal(t, definitions.FilterKindNumber, testDefinitions.FilterKind("total_pedidos"))
	assert.Equal(t, definitions.FilterKindDate, testDefinitions.FilterKind("data_venda"))
	assert.Equal(t, definitions.FilterKindString, testDefinitions.FilterKind("canal"))
	assert.Equal(t, definitions.FilterKindNumber, testDefinitions.FilterKind("dia_da_semana"))
	assert.Equal(t, definitions.FilterKindString, testDefinitions.FilterKind("nonexistent"))
}
