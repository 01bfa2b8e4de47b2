package query

import (
	"errors"
	"fmt"
	"slices"

	"hermannm.dev/wrap"
)

const (
	MinLimit = 1
	MaxLimit = 100_000
)

// The in-progress query configuration. Values are treated as immutable: every With* method
// returns a new Query and leaves the receiver (and its slices) untouched.
type Query struct {
	Metrics    []string `json:"metrics"`
	Dimensions []string `json:"dimensions"`
	Period     Period   `json:"period"`
	// Only meaningful when Period is PeriodCustom. ISO dates (YYYY-MM-DD).
	CustomStartDate string   `json:"customStartDate,omitempty"`
	CustomEndDate   string   `json:"customEndDate,omitempty"`
	Filters         []Filter `json:"filters"`
	OrderBy         OrderBy  `json:"order_by"`
	Limit           int      `json:"limit"`
}

type OrderBy struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

func Default() Query {
	return Query{
		Metrics:    []string{"total_vendas"},
		Dimensions: []string{},
		Period:     PeriodLast6Months,
		Filters:    []Filter{},
		OrderBy:    OrderBy{Field: "total_vendas", Direction: SortDescending},
		Limit:      10,
	}
}

// Replaces the selected metrics. If the current order-by field is no longer selected, ordering
// falls back to the first of the new metrics (or no field if there are none).
func (query Query) WithMetrics(metrics []string) Query {
	query.Metrics = slices.Clone(metrics)
	if !slices.Contains(query.Metrics, query.OrderBy.Field) {
		if len(query.Metrics) > 0 {
			query.OrderBy.Field = query.Metrics[0]
		} else {
			query.OrderBy.Field = ""
		}
	}
	return query
}

func (query Query) WithDimensions(dimensions []string) Query {
	query.Dimensions = slices.Clone(dimensions)
	return query
}

func (query Query) WithPeriod(period Period) Query {
	query.Period = period
	return query
}

func (query Query) WithCustomDateRange(startDate string, endDate string) Query {
	query.CustomStartDate = startDate
	query.CustomEndDate = endDate
	return query
}

func (query Query) WithOrderBy(orderBy OrderBy) Query {
	query.OrderBy = orderBy
	return query
}

// Sets the row limit, clamped to [MinLimit, MaxLimit].
func (query Query) WithLimit(limit int) Query {
	query.Limit = min(max(limit, MinLimit), MaxLimit)
	return query
}

func (query Query) WithFilter(filter Filter) Query {
	filters := make([]Filter, 0, len(query.Filters)+1)
	filters = append(filters, query.Filters...)
	query.Filters = append(filters, filter)
	return query
}

// Removes the filter at the given index. Out-of-range indices leave the filters unchanged.
func (query Query) WithoutFilter(index int) Query {
	if index < 0 || index >= len(query.Filters) {
		return query
	}

	filters := make([]Filter, 0, len(query.Filters)-1)
	filters = append(filters, query.Filters[:index]...)
	query.Filters = append(filters, query.Filters[index+1:]...)
	return query
}

// A query can only be sent once at least one metric is selected.
func (query Query) CanRun() bool {
	return len(query.Metrics) > 0
}

func (query Query) Validate() error {
	var errs []error

	if len(query.Metrics) == 0 {
		errs = append(errs, errors.New("at least one metric must be selected"))
	}
	if query.Limit < MinLimit || query.Limit > MaxLimit {
		errs = append(errs, fmt.Errorf("limit %d outside of [%d, %d]", query.Limit, MinLimit, MaxLimit))
	}
	if query.OrderBy.Field != "" && !query.OrderBy.Direction.IsValid() {
		errs = append(errs, fmt.Errorf("invalid sort direction for field '%s'", query.OrderBy.Field))
	}
	if query.Period == PeriodCustom && (query.CustomStartDate == "" || query.CustomEndDate == "") {
		errs = append(errs, errors.New("custom period requires both a start and an end date"))
	}
	for i, filter := range query.Filters {
		if err := filter.Validate(); err != nil {
			errs = append(errs, wrap.Errorf(err, "invalid filter %d", i+1))
		}
	}

	if len(errs) != 0 {
		return wrap.Errors("invalid query", errs...)
	}
	return nil
}

// The body sent to POST /query.
type Request struct {
	Metrics    []string  `json:"metrics"`
	Dimensions []string  `json:"dimensions"`
	Filters    []Filter  `json:"filters"`
	OrderBy    []OrderBy `json:"order_by"`
	Limit      int       `json:"limit"`
}

func (query Query) Request() Request {
	request := Request{
		Metrics:    nonNil(query.Metrics),
		Dimensions: nonNil(query.Dimensions),
		Filters:    nonNil(query.Filters),
		OrderBy:    []OrderBy{query.OrderBy},
		Limit:      query.Limit,
	}
	return request
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

// Canned prompts offered for the natural-language search.
var Suggestions = []string{
	"Mostre a receita por mês",
	"Quantos usuários ativos temos?",
	"Taxa de conversão por categoria",
	"Pedidos da última semana",
}
