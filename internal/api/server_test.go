package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b3dotfun/sdk-go/internal/checkout"
	"github.com/b3dotfun/sdk-go/internal/database"
	"github.com/b3dotfun/sdk-go/internal/gasoracle"
)

func newTestServer(t *testing.T, cfg ServerConfig) *APIServer {
	t.Helper()
	db, err := database.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	cfg.Database = db
	return NewAPIServer(cfg)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, ServerConfig{})

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestGetChain(t *testing.T) {
	server := newTestServer(t, ServerConfig{})

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/api/chains/8453", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Base", body["name"])

	resp, err = server.app.Test(httptest.NewRequest(http.MethodGet, "/api/chains/999999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = server.app.Test(httptest.NewRequest(http.MethodGet, "/api/chains/not-a-number", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListChains(t *testing.T) {
	server := newTestServer(t, ServerConfig{})

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/api/chains", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	chains := decodeBody(t, resp)["chains"].([]any)
	assert.Len(t, chains, 12)
}

func TestListChainTokens(t *testing.T) {
	server := newTestServer(t, ServerConfig{})

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/api/chains/8453/tokens", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	tokens := decodeBody(t, resp)["tokens"].([]any)
	require.NotEmpty(t, tokens)
	native := tokens[0].(map[string]any)
	assert.Equal(t, "ETH", native["symbol"])
}

func TestGetGasPrice(t *testing.T) {
	oracle := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"chainId": 8453, "gasPriceGwei": 0.012, "level": "normal", "timestamp": 1700000000}`)
	}))
	defer oracle.Close()

	server := newTestServer(t, ServerConfig{
		Gas: gasoracle.NewService(gasoracle.NewClient(oracle.URL)),
	})

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/api/gas/8453", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Base", body["chainName"])

	// Chains outside the oracle's whitelist 404 without an upstream call
	resp, err = server.app.Test(httptest.NewRequest(http.MethodGet, "/api/gas/5", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckoutRoutesWithoutBackend(t *testing.T) {
	server := newTestServer(t, ServerConfig{})

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/api/checkout-sessions/cs_1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetOrderStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/ord_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "ord_1", "status": "executed", "type": "swap"}`)
	}))
	defer backend.Close()

	server := newTestServer(t, ServerConfig{
		Checkout: checkout.NewClient(backend.URL, ""),
	})

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/api/orders/ord_1/status", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	display := body["display"].(map[string]any)
	assert.Equal(t, "success", display["status"])
}

func TestListDeploymentsEmpty(t *testing.T) {
	server := newTestServer(t, ServerConfig{})

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/api/deployments", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
