package gasoracle

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b3dotfun/sdk-go/internal/models"
)

func TestIsSupported(t *testing.T) {
	supported := []int64{1, 10, 56, 137, 8453, 42161, 43114, 59144, 81457, 534352, 7777777, 8333}
	for _, id := range supported {
		assert.True(t, IsSupported(id), "chain %d should be supported", id)
	}

	assert.False(t, IsSupported(5))
	assert.False(t, IsSupported(11155111))
	assert.False(t, IsSupported(0))
}

func newOracleServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestFetchGasPrice(t *testing.T) {
	server := newOracleServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gas/8453", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"chainId": 8453,
			"gasPriceGwei": 0.012,
			"level": "low",
			"recommendation": "Good time to transact",
			"vsMedian": -0.4,
			"source": "blocknative",
			"timestamp": 1700000000
		}`)
	})

	client := NewClient(server.URL)
	resp, err := client.FetchGasPrice(context.Background(), 8453)
	require.NoError(t, err)
	assert.Equal(t, int64(8453), resp.ChainID)
	assert.Equal(t, models.GasLevelLow, resp.Level)
	assert.Equal(t, "blocknative", resp.Source)
}

func TestFetchGasPriceUnsupportedChain(t *testing.T) {
	client := NewClient("http://unused.invalid")
	_, err := client.FetchGasPrice(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support chain 5")
}

func TestFetchGasPriceHTTPError(t *testing.T) {
	server := newOracleServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := NewClient(server.URL)
	_, err := client.FetchGasPrice(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestToGasPriceDataSpikeClassification(t *testing.T) {
	tests := []struct {
		level models.GasLevel
		spike bool
	}{
		{models.GasLevelLow, false},
		{models.GasLevelNormal, false},
		{models.GasLevelElevated, true},
		{models.GasLevelHigh, true},
		{models.GasLevelSpike, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			data := ToGasPriceData(&models.GasOracleResponse{ChainID: 1, Level: tt.level})
			assert.Equal(t, tt.spike, data.IsSpike)
		})
	}
}

func TestServiceFetchEnrichesChainName(t *testing.T) {
	server := newOracleServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"chainId": 8453, "gasPriceGwei": 1.5, "level": "normal", "source": "rpc", "timestamp": 1700000000}`)
	})

	svc := NewService(NewClient(server.URL))
	data, err := svc.Fetch(context.Background(), 8453)
	require.NoError(t, err)
	assert.Equal(t, "Base", data.ChainName)
	assert.False(t, data.IsSpike)
	assert.Equal(t, int64(1700000000), data.Timestamp.Unix())
}
