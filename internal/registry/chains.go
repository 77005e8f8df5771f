package registry

import (
	"fmt"

	"github.com/b3dotfun/sdk-go/internal/models"
)

// Chain describes one supported network: identity, default RPC endpoint and
// explorer URL roots. The registry is static; runtime RPC overrides belong to
// the callers that dial clients.
type Chain struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	RPC         string       `json:"rpc"`
	ExplorerURL string       `json:"explorer_url"`
	NativeToken models.Token `json:"native_token"`
}

const zeroAddress = "0x0000000000000000000000000000000000000000"

var chains = map[int64]Chain{
	1: {
		ID:          1,
		Name:        "Ethereum",
		RPC:         "https://eth.llamarpc.com",
		ExplorerURL: "https://etherscan.io",
		NativeToken: models.Token{ChainID: 1, Address: zeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	},
	10: {
		ID:          10,
		Name:        "Optimism",
		RPC:         "https://mainnet.optimism.io",
		ExplorerURL: "https://optimistic.etherscan.io",
		NativeToken: models.Token{ChainID: 10, Address: zeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	},
	56: {
		ID:          56,
		Name:        "BNB Chain",
		RPC:         "https://bsc-dataseed.binance.org",
		ExplorerURL: "https://bscscan.com",
		NativeToken: models.Token{ChainID: 56, Address: zeroAddress, Symbol: "BNB", Name: "BNB", Decimals: 18},
	},
	137: {
		ID:          137,
		Name:        "Polygon",
		RPC:         "https://polygon-rpc.com",
		ExplorerURL: "https://polygonscan.com",
		NativeToken: models.Token{ChainID: 137, Address: zeroAddress, Symbol: "POL", Name: "Polygon Ecosystem Token", Decimals: 18},
	},
	8453: {
		ID:          8453,
		Name:        "Base",
		RPC:         "https://mainnet.base.org",
		ExplorerURL: "https://basescan.org",
		NativeToken: models.Token{ChainID: 8453, Address: zeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	},
	42161: {
		ID:          42161,
		Name:        "Arbitrum One",
		RPC:         "https://arb1.arbitrum.io/rpc",
		ExplorerURL: "https://arbiscan.io",
		NativeToken: models.Token{ChainID: 42161, Address: zeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	},
	43114: {
		ID:          43114,
		Name:        "Avalanche",
		RPC:         "https://api.avax.network/ext/bc/C/rpc",
		ExplorerURL: "https://snowtrace.io",
		NativeToken: models.Token{ChainID: 43114, Address: zeroAddress, Symbol: "AVAX", Name: "Avalanche", Decimals: 18},
	},
	59144: {
		ID:          59144,
		Name:        "Linea",
		RPC:         "https://rpc.linea.build",
		ExplorerURL: "https://lineascan.build",
		NativeToken: models.Token{ChainID: 59144, Address: zeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	},
	81457: {
		ID:          81457,
		Name:        "Blast",
		RPC:         "https://rpc.blast.io",
		ExplorerURL: "https://blastscan.io",
		NativeToken: models.Token{ChainID: 81457, Address: zeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	},
	534352: {
		ID:          534352,
		Name:        "Scroll",
		RPC:         "https://rpc.scroll.io",
		ExplorerURL: "https://scrollscan.com",
		NativeToken: models.Token{ChainID: 534352, Address: zeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	},
	7777777: {
		ID:          7777777,
		Name:        "Zora",
		RPC:         "https://rpc.zora.energy",
		ExplorerURL: "https://explorer.zora.energy",
		NativeToken: models.Token{ChainID: 7777777, Address: zeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	},
	8333: {
		ID:          8333,
		Name:        "B3",
		RPC:         "https://mainnet-rpc.b3.fun",
		ExplorerURL: "https://explorer.b3.fun",
		NativeToken: models.Token{ChainID: 8333, Address: zeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	},
}

// GetChain returns the chain entry for id.
func GetChain(id int64) (Chain, error) {
	chain, ok := chains[id]
	if !ok {
		return Chain{}, fmt.Errorf("unsupported chain id %d", id)
	}
	return chain, nil
}

// IsSupported reports whether the registry knows chain id.
func IsSupported(id int64) bool {
	_, ok := chains[id]
	return ok
}

// ChainName returns the display name for id, or an empty string when unknown.
func ChainName(id int64) string {
	return chains[id].Name
}

// NativeToken returns the chain's native asset descriptor.
func NativeToken(id int64) (models.Token, error) {
	chain, err := GetChain(id)
	if err != nil {
		return models.Token{}, err
	}
	return chain.NativeToken, nil
}

// ChainIDs returns all registered chain ids.
func ChainIDs() []int64 {
	ids := make([]int64, 0, len(chains))
	for id := range chains {
		ids = append(ids, id)
	}
	return ids
}

// ExplorerTxURL builds a block-explorer link for a transaction hash.
func ExplorerTxURL(chainID int64, txHash string) (string, error) {
	chain, err := GetChain(chainID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/tx/%s", chain.ExplorerURL, txHash), nil
}

// ExplorerAddressURL builds a block-explorer link for an address.
func ExplorerAddressURL(chainID int64, address string) (string, error) {
	chain, err := GetChain(chainID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/address/%s", chain.ExplorerURL, address), nil
}
