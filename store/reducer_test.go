package store_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/chart"
	"hermannm.dev/querybuilder/query"
	"hermannm.dev/querybuilder/store"
)

func reduceAll(state store.State, actions ...store.Action) store.State {
	for _, action := range actions {
		state = store.Reduce(state, action)
	}
	return state
}

func TestReduceQueryActions(t *testing.T) {
	state := reduceAll(
		store.Initial(),
		store.SetMetrics{Metrics: []string{"a", "b"}},
		store.SetOrderBy{OrderBy: query.OrderBy{Field: "a", Direction: query.SortAscending}},
		store.SetMetrics{Metrics: []string{"b", "c"}},
		store.SetDimensions{Dimensions: []string{"canal"}},
		store.SetPeriod{Period: query.PeriodCustom},
		store.SetCustomDateRange{StartDate: "2024-01-01", EndDate: "2024-02-01"},
		store.SetLimit{Limit: -5},
		store.AddFilter{Filter: query.NewFilter("canal", query.OperatorEquals, "ifood")},
		store.AddFilter{Filter: query.NewFilter("loja", query.OperatorIsNull, "")},
		store.RemoveFilter{Index: 0},
	)

	assert.Equal(t, query.OrderBy{Field: "b", Direction: query.SortAscending}, state.Query.OrderBy)
	assert.Equal(t, []string{"canal"}, state.Query.Dimensions)
	assert.Equal(t, query.PeriodCustom, state.Query.Period)
	assert.Equal(t, "2024-02-01", state.Query.CustomEndDate)
	assert.Equal(t, 1, state.Query.Limit)
	assert.Len(t, state.Query.Filters, 1)
	assert.Equal(t, "loja", state.Query.Filters[0].Field)
	assert.Nil(t, state.Query.Filters[0].Value)

	assert.Equal(t, 100_000, store.Reduce(state, store.SetLimit{Limit: 999_999}).Query.Limit)
}

func TestReduceLeavesPreviousStateUntouched(t *testing.T) {
	before := reduceAll(
		store.Initial(),
		store.AddFilter{Filter: query.NewFilter("canal", query.OperatorEquals, "ifood")},
	)

	after := reduceAll(
		before,
		store.RemoveFilter{Index: 0},
		store.SetMetrics{Metrics: []string{"outra"}},
		store.OpenFilterModal{},
	)

	assert.Len(t, before.Query.Filters, 1)
	assert.Equal(t, []string{"total_vendas"}, before.Query.Metrics)
	assert.False(t, before.FilterModalOpen)
	assert.Empty(t, after.Query.Filters)
	assert.True(t, after.FilterModalOpen)
	assert.False(t, store.Reduce(after, store.CloseFilterModal{}).FilterModalOpen)
}

func TestReduceSelectChart(t *testing.T) {
	state := store.Reduce(store.Initial(), store.SelectChart{Kind: chart.KindPieChart})
	assert.Equal(t, chart.KindPieChart, state.ActiveChart)

	state = store.Reduce(state, store.SelectChart{Kind: chart.KindTable})
	assert.Equal(t, chart.KindPieChart, state.ActiveChart)
}

func TestReduceQueryLifecycle(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	response := &api.Response{ChartSuggestion: "PieChart"}

	state := reduceAll(
		store.Initial(),
		store.SelectChart{Kind: chart.KindLineChart},
		store.QueryRequested{RequestID: first},
	)
	assert.True(t, state.Loading)
	assert.Equal(t, chart.KindBarChart, state.ActiveChart)
	assert.Equal(t, first, state.PendingRequest)

	state = reduceAll(
		state,
		store.QueryRequested{RequestID: second},
		store.QuerySucceeded{RequestID: first, Response: &api.Response{ChartSuggestion: "Table"}},
		store.QueryFailed{RequestID: first, Message: "cancelado"},
	)
	assert.True(t, state.Loading)
	assert.Nil(t, state.Response)
	assert.Empty(t, state.Error)

	state = store.Reduce(state, store.QuerySucceeded{RequestID: second, Response: response})
	assert.False(t, state.Loading)
	assert.Same(t, response, state.Response)
	assert.Equal(t, chart.KindPieChart, state.ActiveChart)
	assert.Equal(t, uuid.Nil, state.PendingRequest)
}

func TestReduceQueryRequestedClearsPreviousResult(t *testing.T) {
	id := uuid.New()
	state := reduceAll(
		store.Initial(),
		store.QueryRequested{RequestID: id},
		store.QueryFailed{RequestID: id, Message: "falhou"},
	)
	assert.Equal(t, "falhou", state.Error)

	state = store.Reduce(state, store.QueryRequested{RequestID: uuid.New()})
	assert.Empty(t, state.Error)
	assert.Nil(t, state.Response)
}

func TestReduceUnknownSuggestionFallsBackToBars(t *testing.T) {
	id := uuid.New()
	state := reduceAll(
		store.Initial(),
		store.QueryRequested{RequestID: id},
		store.QuerySucceeded{RequestID: id, Response: &api.Response{ChartSuggestion: "Radar"}},
	)
	assert.Equal(t, chart.KindBarChart, state.ActiveChart)
}

func TestReduceDefinitions(t *testing.T) {
	state := reduceAll(
		store.Initial(),
		store.DefinitionsRequested{},
		store.DefinitionsFailed{Message: "indisponível"},
	)
	assert.False(t, state.DefinitionsLoading)
	assert.Equal(t, "indisponível", state.DefinitionsError)
	assert.NotNil(t, state.Definitions.Metrics)

	state = store.Reduce(state, store.DefinitionsRequested{})
	assert.True(t, state.DefinitionsLoading)
	assert.Empty(t, state.DefinitionsError)
}
