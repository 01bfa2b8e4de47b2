package main

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v2"
	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/query"
)

const testDefinitionsJSON = `{
	"metrics": {
		"total_vendas": {"sql": "SUM(valor)", "label": "Total de vendas", "type": "currency", "joins_needed": []}
	},
	"dimensions": {
		"canal": {"sql": "canal", "label": "Canal", "type": null, "joins_needed": []},
		"loja": {"sql": "loja_id", "label": "Loja", "type": "string", "joins_needed": ["lojas"]}
	}
}`

const testResponseJSON = `{
	"query_sql": "SELECT canal, SUM(valor) AS total_vendas FROM vendas GROUP BY canal",
	"data": [
		{"dimensions": {"canal": "ifood"}, "metrics": {"total_vendas": 2000}},
		{"dimensions": {"canal": "balcao"}, "metrics": {"total_vendas": 1000}}
	],
	"execution_time_ms": 8,
	"chart_suggestion": "BarChart",
	"insights": ["O canal **ifood** lidera as vendas"]
}`

type testAPI struct {
	*httptest.Server

	lock     sync.Mutex
	requests map[string][]string
	// Status and body for /definitions. Defaults to 200 with testDefinitionsJSON.
	definitionsStatus int
	definitionsBody   string
	// Status and body for query endpoints. Defaults to 200 with testResponseJSON.
	queryStatus int
	queryBody   string
}

func newTestAPI(t *testing.T) *testAPI {
	testAPI := &testAPI{
		requests:          make(map[string][]string),
		definitionsStatus: http.StatusOK,
		definitionsBody:   testDefinitionsJSON,
		queryStatus:       http.StatusOK,
		queryBody:         testResponseJSON,
	}

	testAPI.Server = httptest.NewServer(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)

		testAPI.lock.Lock()
		testAPI.requests[req.URL.Path] = append(testAPI.requests[req.URL.Path], string(body))
		definitionsStatus, definitionsBody := testAPI.definitionsStatus, testAPI.definitionsBody
		queryStatus, queryBody := testAPI.queryStatus, testAPI.queryBody
		testAPI.lock.Unlock()

		res.Header().Set("Content-Type", "application/json")
		switch req.URL.Path {
		case "/definitions":
			res.WriteHeader(definitionsStatus)
			_, _ = io.WriteString(res, definitionsBody)
		case "/query", "/query-from-text":
			res.WriteHeader(queryStatus)
			_, _ = io.WriteString(res, queryBody)
		default:
			res.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(testAPI.Close)

	return testAPI
}

func (testAPI *testAPI) requestBodies(path string) []string {
	testAPI.lock.Lock()
	defer testAPI.lock.Unlock()
	return testAPI.requests[path]
}

func runApp(t *testing.T, args ...string) (output string, err error) {
	t.Helper()

	// Registers cleanup of the variables that flags override
	t.Setenv("QUERY_API_BASE_URL", "")
	t.Setenv("QUERY_API_TIMEOUT", "")
	t.Setenv("SNAPSHOT_STORE", "")
	t.Setenv("LOG_LEVEL", "ERROR")

	var builder strings.Builder
	app := newApp(&builder, false)
	err = app.Run(append([]string{"querybuilder"}, args...))
	return builder.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	var exitErr cli.ExitCoder
	require.True(t, errors.As(err, &exitErr), "expected exit error, got %v", err)
	return exitErr.ExitCode()
}

func TestQueryCommand(t *testing.T) {
	testAPI := newTestAPI(t)

	output, err := runApp(
		t,
		"--api-url", testAPI.URL,
		"query",
		"--metric", "total_vendas",
		"--dimension", "canal",
		"--filter", "canal:neq:balcao",
		"--filter", "loja:is_null",
		"--order", "asc",
		"--limit", "5",
	)
	require.NoError(t, err)

	bodies := testAPI.requestBodies("/query")
	require.Len(t, bodies, 1)
	request := gjson.Parse(bodies[0])
	assert.Equal(t, `["total_vendas"]`, request.Get("metrics").Raw)
	assert.Equal(t, `["canal"]`, request.Get("dimensions").Raw)
	assert.Equal(t, "balcao", request.Get("filters.0.value").String())
	assert.Equal(t, gjson.Null, request.Get("filters.1.value").Type)
	assert.True(t, request.Get("filters.1.value").Exists())
	assert.Equal(t, `[{"field":"total_vendas","direction":"asc"}]`, request.Get("order_by").Raw)
	assert.Equal(t, int64(5), request.Get("limit").Int())

	assert.Len(t, testAPI.requestBodies("/definitions"), 1)
	assert.Contains(t, output, "Métricas   Total de vendas")
	assert.Contains(t, output, "Dimensões  Canal")
	assert.Contains(t, output, "Ordenar    Total de vendas (Ascendente)")
	assert.Contains(t, output, "Filtros    Canal Diferente de balcao")
	assert.Contains(t, output, "Loja É nulo")
	assert.Contains(t, output, "[x] Barras")
	assert.Contains(t, output, "R$\u00a02.000,00")
	assert.Contains(t, output, "O canal ifood lidera as vendas")
	assert.Contains(t, output, "SQL (8 ms): SELECT canal")
}

func TestQueryCommandChartFlag(t *testing.T) {
	testAPI := newTestAPI(t)

	output, err := runApp(t, "--api-url", testAPI.URL, "query", "--dimension", "canal", "--chart", "pie")
	require.NoError(t, err)

	assert.Contains(t, output, "[ ] Barras  [x] Pizza")
	assert.Contains(t, output, "66,67%")
}

func TestQueryCommandFailure(t *testing.T) {
	testAPI := newTestAPI(t)
	testAPI.queryStatus = http.StatusBadRequest
	testAPI.queryBody = `{"detail": "Métrica desconhecida: lucro"}`

	output, err := runApp(t, "--api-url", testAPI.URL, "query", "--metric", "lucro")

	assert.Equal(t, queryFailedExitCode, exitCode(t, err))
	assert.Contains(t, output, "Erro na Consulta")
	assert.Contains(t, output, "Métrica desconhecida: lucro")
}

func TestQueryCommandRejectsInvalidFlags(t *testing.T) {
	testAPI := newTestAPI(t)

	for _, args := range [][]string{
		{"--filter", "canal"},
		{"--period", "ontem"},
		{"--order", "sideways"},
		{"--chart", "radar"},
		{"--period", "custom", "--from", "2024-01-01"},
		{"--filter", "canal:gt:5"},
		{"--filter", "lucro:eq:1"},
	} {
		_, err := runApp(t, append([]string{"--api-url", testAPI.URL, "query"}, args...)...)
		assert.Equal(t, 2, exitCode(t, err), args)
	}

	assert.Empty(t, testAPI.requestBodies("/query"))
}

func TestQueryCommandDefinitionsFailure(t *testing.T) {
	testAPI := newTestAPI(t)
	testAPI.definitionsStatus = http.StatusBadGateway
	testAPI.definitionsBody = `{"detail": "Banco fora do ar"}`

	output, err := runApp(t, "--api-url", testAPI.URL, "query", "--dimension", "canal")

	assert.Equal(t, queryFailedExitCode, exitCode(t, err))
	assert.Contains(t, output, "Erro ao carregar definições: Banco fora do ar")
	assert.Len(t, testAPI.requestBodies("/query"), 1)
	assert.Contains(t, output, "ifood")
}

func TestAskCommandDefinitionsFailure(t *testing.T) {
	testAPI := newTestAPI(t)
	testAPI.definitionsStatus = http.StatusBadGateway
	testAPI.definitionsBody = `{"detail": "Banco fora do ar"}`

	output, err := runApp(t, "--api-url", testAPI.URL, "ask", "Vendas por canal")

	assert.Equal(t, queryFailedExitCode, exitCode(t, err))
	assert.Contains(t, output, "Erro ao carregar definições: Banco fora do ar")
}

func TestQueryCommandRequiresAPIURL(t *testing.T) {
	_, err := runApp(t, "query")
	assert.Equal(t, 2, exitCode(t, err))
}

func TestQueryCommandSaveTableRequiresSnapshotStore(t *testing.T) {
	testAPI := newTestAPI(t)

	_, err := runApp(t, "--api-url", testAPI.URL, "query", "--save-table", "vendas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SNAPSHOT_STORE")
}

func TestAskCommand(t *testing.T) {
	testAPI := newTestAPI(t)

	output, err := runApp(t, "--api-url", testAPI.URL, "ask", "Vendas", "por", "canal")
	require.NoError(t, err)

	bodies := testAPI.requestBodies("/query-from-text")
	require.Len(t, bodies, 1)
	assert.Equal(t, "Vendas por canal", gjson.Get(bodies[0], "prompt").String())
	assert.Contains(t, output, "R$\u00a01.000,00")
}

func TestAskCommandEmptyPrompt(t *testing.T) {
	testAPI := newTestAPI(t)

	_, err := runApp(t, "--api-url", testAPI.URL, "ask", "   ")

	assert.Equal(t, 2, exitCode(t, err))
	assert.Equal(t, api.EmptyPromptMessage, err.Error())
	assert.Empty(t, testAPI.requestBodies("/query-from-text"))
}

func TestAskCommandSuggestions(t *testing.T) {
	output, err := runApp(t, "ask", "--suggestions")
	require.NoError(t, err)

	assert.Equal(t, strings.Join(query.Suggestions, "\n")+"\n", output)
}

func TestDefinitionsCommand(t *testing.T) {
	testAPI := newTestAPI(t)

	output, err := runApp(t, "--api-url", testAPI.URL, "definitions")
	require.NoError(t, err)

	assert.Contains(t, output, "  total_vendas  Total de vendas  currency")
	assert.Contains(t, output, "  canal  Canal  -")
}
