package registry

import (
	"strings"

	"github.com/b3dotfun/sdk-go/internal/models"
)

// defaultTokens lists the well-known assets the demo apps offer by default.
// Keyed by chain id; the native asset lives in the chain entry, not here.
var defaultTokens = map[int64][]models.Token{
	1: {
		{ChainID: 1, Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		{ChainID: 1, Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		{ChainID: 1, Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Symbol: "WETH", Name: "Wrapped Ether", Decimals: 18},
	},
	8453: {
		{ChainID: 8453, Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		{ChainID: 8453, Address: "0x4200000000000000000000000000000000000006", Symbol: "WETH", Name: "Wrapped Ether", Decimals: 18},
		{ChainID: 8453, Address: "0xB3B32F9f8827D4634fE7d973Fa1034Ec9fdDB3B3", Symbol: "B3", Name: "B3", Decimals: 18},
	},
	42161: {
		{ChainID: 42161, Address: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		{ChainID: 42161, Address: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", Symbol: "WETH", Name: "Wrapped Ether", Decimals: 18},
	},
}

// DefaultTokens returns the default token list for a chain, native asset
// first. The returned slice is a copy.
func DefaultTokens(chainID int64) []models.Token {
	chain, ok := chains[chainID]
	if !ok {
		return nil
	}
	tokens := make([]models.Token, 0, len(defaultTokens[chainID])+1)
	tokens = append(tokens, chain.NativeToken)
	tokens = append(tokens, defaultTokens[chainID]...)
	return tokens
}

// FindToken looks up a default token by address on a chain. Address
// comparison is case-insensitive.
func FindToken(chainID int64, address string) (models.Token, bool) {
	for _, token := range DefaultTokens(chainID) {
		if strings.EqualFold(token.Address, address) {
			return token, true
		}
	}
	return models.Token{}, false
}

// FindTokenBySymbol looks up a default token by symbol on a chain.
func FindTokenBySymbol(chainID int64, symbol string) (models.Token, bool) {
	for _, token := range DefaultTokens(chainID) {
		if strings.EqualFold(token.Symbol, symbol) {
			return token, true
		}
	}
	return models.Token{}, false
}
