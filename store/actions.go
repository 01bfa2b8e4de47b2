package store

import (
	"github.com/google/uuid"
	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/chart"
	"hermannm.dev/querybuilder/definitions"
	"hermannm.dev/querybuilder/query"
)

// A state transition, applied by Reduce. Only the types in this package implement it.
type Action interface {
	isAction()
}

type SetMetrics struct{ Metrics []string }

type SetDimensions struct{ Dimensions []string }

type SetPeriod struct{ Period query.Period }

type SetCustomDateRange struct {
	StartDate string
	EndDate   string
}

type SetOrderBy struct{ OrderBy query.OrderBy }

type SetLimit struct{ Limit int }

type AddFilter struct{ Filter query.Filter }

type RemoveFilter struct{ Index int }

type OpenFilterModal struct{}

type CloseFilterModal struct{}

type SetAIPrompt struct{ Prompt string }

// Switches the displayed chart. Ignored for kinds that are not user-selectable.
type SelectChart struct{ Kind chart.Kind }

type DefinitionsRequested struct{}

type DefinitionsLoaded struct{ Definitions definitions.Definitions }

type DefinitionsFailed struct{ Message string }

type QueryRequested struct{ RequestID uuid.UUID }

type QuerySucceeded struct {
	RequestID uuid.UUID
	Response  *api.Response
}

type QueryFailed struct {
	RequestID uuid.UUID
	Message   string
}

func (SetMetrics) isAction()           {}
func (SetDimensions) isAction()        {}
func (SetPeriod) isAction()            {}
func (SetCustomDateRange) isAction()   {}
func (SetOrderBy) isAction()           {}
func (SetLimit) isAction()             {}
func (AddFilter) isAction()            {}
func (RemoveFilter) isAction()         {}
func (OpenFilterModal) isAction()      {}
func (CloseFilterModal) isAction()     {}
func (SetAIPrompt) isAction()          {}
func (SelectChart) isAction()          {}
func (DefinitionsRequested) isAction() {}
func (DefinitionsLoaded) isAction()    {}
func (DefinitionsFailed) isAction()    {}
func (QueryRequested) isAction()       {}
func (QuerySucceeded) isAction()       {}
func (QueryFailed) isAction()          {}
