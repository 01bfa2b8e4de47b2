package store

import (
	"github.com/google/uuid"
	"hermannm.dev/querybuilder/chart"
)

// Returns the state after applying the action. Pure: the given state is not modified.
func Reduce(state State, action Action) State {
	switch action := action.(type) {
	case SetMetrics:
		state.Query = state.Query.WithMetrics(action.Metrics)
	case SetDimensions:
		state.Query = state.Query.WithDimensions(action.Dimensions)
	case SetPeriod:
		state.Query = state.Query.WithPeriod(action.Period)
	case SetCustomDateRange:
		state.Query = state.Query.WithCustomDateRange(action.StartDate, action.EndDate)
	case SetOrderBy:
		state.Query = state.Query.WithOrderBy(action.OrderBy)
	case SetLimit:
		state.Query = state.Query.WithLimit(action.Limit)
	case AddFilter:
		state.Query = state.Query.WithFilter(action.Filter)
	case RemoveFilter:
		state.Query = state.Query.WithoutFilter(action.Index)
	case OpenFilterModal:
		state.FilterModalOpen = true
	case CloseFilterModal:
		state.FilterModalOpen = false
	case SetAIPrompt:
		state.AIPrompt = action.Prompt
	case SelectChart:
		if action.Kind.UserSelectable() {
			state.ActiveChart = action.Kind
		}

	case DefinitionsRequested:
		state.DefinitionsLoading = true
		state.DefinitionsError = ""
	case DefinitionsLoaded:
		state.DefinitionsLoading = false
		state.Definitions = action.Definitions
	case DefinitionsFailed:
		// Previous definitions are kept
		state.DefinitionsLoading = false
		state.DefinitionsError = action.Message

	case QueryRequested:
		state.PendingRequest = action.RequestID
		state.Loading = true
		state.Error = ""
		state.Response = nil
		state.ActiveChart = chart.KindBarChart
	case QuerySucceeded:
		if action.RequestID != state.PendingRequest {
			return state
		}
		state.PendingRequest = uuid.Nil
		state.Loading = false
		state.Response = action.Response
		if action.Response != nil && action.Response.ChartSuggestion != "" {
			state.ActiveChart, _ = chart.ParseKind(action.Response.ChartSuggestion)
		}
	case QueryFailed:
		if action.RequestID != state.PendingRequest {
			return state
		}
		state.PendingRequest = uuid.Nil
		state.Loading = false
		state.Error = action.Message
	}

	return state
}
