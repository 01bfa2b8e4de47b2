package api

// The result of POST /query or POST /query-from-text.
type Response struct {
	QuerySQL        string    `json:"query_sql"`
	Data            []DataRow `json:"data"`
	ExecutionTimeMs float64   `json:"execution_time_ms"`
	// Name of the server's preferred chart kind. May be empty.
	ChartSuggestion string `json:"chart_suggestion"`
	// Nil when the server produced no insights.
	Insights []string `json:"insights"`
}

type DataRow struct {
	Metrics    Fields `json:"metrics"`
	Dimensions Fields `json:"dimensions"`
}

func (response *Response) IsEmpty() bool {
	return response == nil || len(response.Data) == 0
}

// The metric and dimension keys of the first row, in server order. Later rows are assumed to
// share them.
func (response *Response) Keys() (dimensionKeys []string, metricKeys []string) {
	if response.IsEmpty() {
		return nil, nil
	}
	first := response.Data[0]
	return first.Dimensions.Keys(), first.Metrics.Keys()
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}
