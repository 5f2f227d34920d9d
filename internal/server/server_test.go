package server

import (
	"net"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap/zaptest"

	"github.com/rpgo/estate-calculator/internal/calculation"
	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/rpgo/estate-calculator/internal/store"
)

type testClient struct {
	client *fasthttp.Client
}

func startServer(t *testing.T, history *store.Store) *testClient {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := New(calculation.NewCalculationEngine(), history, zaptest.NewLogger(t))
	httpSrv := &fasthttp.Server{Handler: srv.Handler()}
	go func() { _ = httpSrv.Serve(ln) }()
	t.Cleanup(func() {
		_ = httpSrv.Shutdown()
		_ = ln.Close()
	})
	return &testClient{client: &fasthttp.Client{
		Dial: func(string) (net.Conn, error) { return ln.Dial() },
	}}
}

func (c *testClient) do(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI("http://estate.test" + path)
	req.Header.SetMethod(method)
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}
	require.NoError(t, c.client.Do(req, resp))
	return resp.StatusCode(), append([]byte(nil), resp.Body()...)
}

const projectionBody = `{
  "name": "Baseline",
  "base_estate_value": "20000000",
  "asset_composition": {"taxable": "20000000"},
  "assumptions": {"state": "CA", "current_age": 70, "death_age": 85}
}`

func TestHealthz(t *testing.T) {
	c := startServer(t, nil)
	status, body := c.do(t, fasthttp.MethodGet, "/healthz", "")
	assert.Equal(t, fasthttp.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestProjection(t *testing.T) {
	c := startServer(t, nil)
	status, body := c.do(t, fasthttp.MethodPost, "/v1/estate/projection", projectionBody)
	require.Equal(t, fasthttp.StatusOK, status, string(body))

	var summary domain.ProjectionSummary
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, "Baseline", summary.Name)
	assert.True(t, summary.GrossEstate.IsPositive())
	assert.True(t, summary.TotalTax.Equal(summary.FederalTax.Add(summary.StateTax)))
}

func TestProjectionErrors(t *testing.T) {
	c := startServer(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed json", fasthttp.MethodPost, "/v1/estate/projection", `{"base_estate_value":`, fasthttp.StatusBadRequest},
		{"validation failure", fasthttp.MethodPost, "/v1/estate/projection", `{"base_estate_value":"-5"}`, fasthttp.StatusBadRequest},
		{"wrong method", fasthttp.MethodGet, "/v1/estate/projection", "", fasthttp.StatusMethodNotAllowed},
		{"unknown path", fasthttp.MethodGet, "/v1/nope", "", fasthttp.StatusNotFound},
		{"history disabled", fasthttp.MethodGet, "/v1/runs", "", fasthttp.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := c.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)

			var er ErrorResponse
			require.NoError(t, json.Unmarshal(body, &er))
			assert.Equal(t, tt.status, er.Status)
			assert.NotEmpty(t, er.Message)
		})
	}
}

func TestScenariosAndHistory(t *testing.T) {
	history, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = history.Close() })
	c := startServer(t, history)

	cfg := `{
  "base_estate_value": "20000000",
  "asset_composition": {"taxable": "20000000"},
  "assumptions": {"state": "CA", "current_age": 70, "death_age": 85},
  "scenarios": [
    {"name": "Gifting", "strategies": {"lifetime_gifts": "5000000"}},
    {"name": "Charity", "strategies": {"charitable_bequest": "2000000"}}
  ]
}`
	status, body := c.do(t, fasthttp.MethodPost, "/v1/estate/scenarios", cfg)
	require.Equal(t, fasthttp.StatusOK, status, string(body))

	var comparison domain.ScenarioComparison
	require.NoError(t, json.Unmarshal(body, &comparison))
	require.Len(t, comparison.Scenarios, 2)
	assert.NotEmpty(t, comparison.RecommendedScenario)

	status, body = c.do(t, fasthttp.MethodGet, "/v1/runs?limit=5", "")
	require.Equal(t, fasthttp.StatusOK, status)
	var runs []store.Run
	require.NoError(t, json.Unmarshal(body, &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, store.KindScenarios, runs[0].Kind)

	status, body = c.do(t, fasthttp.MethodGet, "/v1/runs/"+runs[0].ID, "")
	require.Equal(t, fasthttp.StatusOK, status)
	var run store.Run
	require.NoError(t, json.Unmarshal(body, &run))
	assert.NotEmpty(t, run.Payload)

	status, _ = c.do(t, fasthttp.MethodGet, "/v1/runs/does-not-exist", "")
	assert.Equal(t, fasthttp.StatusNotFound, status)

	status, _ = c.do(t, fasthttp.MethodGet, "/v1/runs?limit=abc", "")
	assert.Equal(t, fasthttp.StatusBadRequest, status)
}

func TestMetricsEndpoint(t *testing.T) {
	c := startServer(t, nil)
	c.do(t, fasthttp.MethodGet, "/healthz", "")

	status, body := c.do(t, fasthttp.MethodGet, "/metrics", "")
	require.Equal(t, fasthttp.StatusOK, status)
	assert.True(t, strings.Contains(string(body), "estate_http_requests_total"))
}
