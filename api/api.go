package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"hermannm.dev/querybuilder/definitions"
	"hermannm.dev/querybuilder/query"
	"hermannm.dev/wrap"
)

// Client for the query API, serving field definitions, structured queries and prompt queries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Config struct {
	BaseURL string
	// Zero means no timeout.
	Timeout time.Duration
}

func NewClient(config Config) (Client, error) {
	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return Client{}, wrap.Errorf(err, "invalid query API base URL '%s'", config.BaseURL)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return Client{}, fmt.Errorf(
			"query API base URL '%s' must be absolute (e.g. 'http://localhost:8000')",
			config.BaseURL,
		)
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = config.Timeout

	return Client{baseURL: strings.TrimRight(config.BaseURL, "/"), httpClient: httpClient}, nil
}

// GET /definitions
func (client Client) FetchDefinitions(ctx context.Context) (definitions.Definitions, error) {
	var defs definitions.Definitions
	if err := client.sendRequest(ctx, http.MethodGet, "/definitions", nil, &defs); err != nil {
		return definitions.Definitions{}, wrap.Error(err, "failed to fetch field definitions")
	}

	// The server may omit either mapping
	if defs.Metrics == nil {
		defs.Metrics = make(map[string]definitions.FieldDefinition)
	}
	if defs.Dimensions == nil {
		defs.Dimensions = make(map[string]definitions.FieldDefinition)
	}
	return defs, nil
}

// POST /query
func (client Client) RunQuery(ctx context.Context, q query.Query) (Response, error) {
	var response Response
	if err := client.sendRequest(ctx, http.MethodPost, "/query", q.Request(), &response); err != nil {
		return Response{}, wrap.Error(err, "failed to run query")
	}
	return response, nil
}

// POST /query-from-text. Fails with ErrEmptyPrompt, without sending anything, if the prompt is
// blank.
func (client Client) RunPromptQuery(ctx context.Context, prompt string) (Response, error) {
	if strings.TrimSpace(prompt) == "" {
		return Response{}, ErrEmptyPrompt
	}

	var response Response
	if err := client.sendRequest(
		ctx,
		http.MethodPost,
		"/query-from-text",
		promptRequest{Prompt: prompt},
		&response,
	); err != nil {
		return Response{}, wrap.Error(err, "failed to run prompt query")
	}
	return response, nil
}

// Whether the error came from the request's context being canceled, rather than from the API.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
