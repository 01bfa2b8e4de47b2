// Package store holds the query builder's state: the query being composed, the field definitions,
// and the result of the last fetch.
package store

import (
	"github.com/google/uuid"
	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/chart"
	"hermannm.dev/querybuilder/definitions"
	"hermannm.dev/querybuilder/query"
)

// A snapshot of the store. States are values: a new one is produced for every action, and the
// slices and maps inside are never modified after the fact.
type State struct {
	Query           query.Query
	FilterModalOpen bool
	AIPrompt        string

	Definitions        definitions.Definitions
	DefinitionsLoading bool
	// Empty when the last definitions fetch succeeded.
	DefinitionsError string

	// Nil until a fetch succeeds, and cleared when a new fetch starts.
	Response *api.Response
	Loading  bool
	// Empty when the last query fetch succeeded.
	Error       string
	ActiveChart chart.Kind
	// Identifies the query fetch whose result is awaited. Completions of any other fetch are
	// ignored. uuid.Nil when no fetch is in flight.
	PendingRequest uuid.UUID
}

func Initial() State {
	return State{
		Query:       query.Default(),
		Definitions: definitions.Empty(),
		ActiveChart: chart.KindBarChart,
	}
}

// Keys of the current response, for classifying fields the definitions do not declare.
func (state State) RowKeys() definitions.RowKeys {
	dimensionKeys, metricKeys := state.Response.Keys()
	return definitions.RowKeys{Metrics: metricKeys, Dimensions: dimensionKeys}
}
