package gasoracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/b3dotfun/sdk-go/internal/models"
	"github.com/b3dotfun/sdk-go/internal/registry"
)

// DefaultBaseURL is the production gas oracle endpoint.
const DefaultBaseURL = "https://gas.b3.fun"

// supportedChains is the oracle-side whitelist. The oracle only tracks these
// networks; membership here is independent of the wider chain registry.
var supportedChains = map[int64]bool{
	1:       true,
	10:      true,
	56:      true,
	137:     true,
	8453:    true,
	42161:   true,
	43114:   true,
	59144:   true,
	81457:   true,
	534352:  true,
	7777777: true,
	8333:    true,
}

// IsSupported reports whether the gas oracle tracks chainID.
func IsSupported(chainID int64) bool {
	return supportedChains[chainID]
}

// Client fetches gas price snapshots from the oracle service. It applies no
// caching, retry or backoff; callers poll on their own interval and bring
// their own retry policy.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a gas oracle client. An empty baseURL selects the
// production endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchGasPrice retrieves the raw oracle snapshot for chainID.
func (c *Client) FetchGasPrice(ctx context.Context, chainID int64) (*models.GasOracleResponse, error) {
	if !IsSupported(chainID) {
		return nil, fmt.Errorf("gas oracle does not support chain %d", chainID)
	}

	url := fmt.Sprintf("%s/gas/%d", c.baseURL, chainID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gas oracle returned HTTP %d", resp.StatusCode)
	}

	var oracleResp models.GasOracleResponse
	if err := json.NewDecoder(resp.Body).Decode(&oracleResp); err != nil {
		return nil, fmt.Errorf("failed to decode gas oracle response: %w", err)
	}

	return &oracleResp, nil
}

// ToGasPriceData transforms a raw oracle response into the derived snapshot.
// Spike means the oracle classified the price as elevated or worse.
func ToGasPriceData(resp *models.GasOracleResponse) models.GasPriceData {
	isSpike := resp.Level == models.GasLevelElevated ||
		resp.Level == models.GasLevelHigh ||
		resp.Level == models.GasLevelSpike

	return models.GasPriceData{
		ChainID:        resp.ChainID,
		ChainName:      registry.ChainName(resp.ChainID),
		GasPriceGwei:   resp.GasPriceGwei,
		Level:          resp.Level,
		IsSpike:        isSpike,
		Recommendation: resp.Recommendation,
		VsMedian:       resp.VsMedian,
		Source:         resp.Source,
		Timestamp:      time.Unix(resp.Timestamp, 0),
	}
}

// Service composes fetch and transform into the shape consumers poll.
type Service struct {
	client *Client
}

// NewService wraps client into a Service.
func NewService(client *Client) *Service {
	return &Service{client: client}
}

// Fetch retrieves and transforms the gas snapshot for chainID.
func (s *Service) Fetch(ctx context.Context, chainID int64) (models.GasPriceData, error) {
	resp, err := s.client.FetchGasPrice(ctx, chainID)
	if err != nil {
		return models.GasPriceData{}, err
	}
	return ToGasPriceData(resp), nil
}
