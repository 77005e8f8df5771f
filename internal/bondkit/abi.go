package bondkit

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const tokenABIJSON = `[
	{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"feeRecipient","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"currentStatus","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"getCurrentPhase","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"tradingToken","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"totalRaisedBonding","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getAmountOfTokensToBuy","stateMutability":"view","inputs":[{"name":"tradingTokenAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getAmountOfTradingTokensToSell","stateMutability":"view","inputs":[{"name":"tokenAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getCurrentBondingCurvePricePerToken","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getBondingProgressPercent","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getPaginatedHolders","stateMutability":"view","inputs":[{"name":"offset","type":"uint256"},{"name":"limit","type":"uint256"}],"outputs":[{"name":"holders","type":"address[]"},{"name":"balances","type":"uint256[]"}]},
	{"type":"function","name":"v4Hook","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"v4PoolFee","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint24"}]},
	{"type":"function","name":"v4TickSpacing","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"int24"}]},
	{"type":"function","name":"buy","stateMutability":"payable","inputs":[{"name":"minTokensOut","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"buy","stateMutability":"nonpayable","inputs":[{"name":"tradingTokenAmount","type":"uint256"},{"name":"minTokensOut","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"sell","stateMutability":"nonpayable","inputs":[{"name":"tokenAmount","type":"uint256"},{"name":"minTradingTokenOut","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"migrateToDex","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

const factoryABIJSON = `[
	{"type":"function","name":"deployBondkitToken","stateMutability":"nonpayable","inputs":[{"name":"config","type":"tuple","components":[
		{"name":"name","type":"string"},
		{"name":"symbol","type":"string"},
		{"name":"feeRecipient","type":"address"},
		{"name":"finalTokenSupply","type":"uint256"},
		{"name":"aggressivenessFactor","type":"uint8"},
		{"name":"lpSplitRatioFeeRecipientBps","type":"uint16"},
		{"name":"targetAmount","type":"uint256"},
		{"name":"tradingToken","type":"address"},
		{"name":"migrationAdminAddress","type":"address"},
		{"name":"v4Hook","type":"address"},
		{"name":"v4PoolFee","type":"uint24"},
		{"name":"v4TickSpacing","type":"int24"}
	]}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getBondkitTokenConfig","stateMutability":"view","inputs":[{"name":"token","type":"address"}],"outputs":[{"name":"","type":"tuple","components":[
		{"name":"name","type":"string"},
		{"name":"symbol","type":"string"},
		{"name":"feeRecipient","type":"address"},
		{"name":"finalTokenSupply","type":"uint256"},
		{"name":"aggressivenessFactor","type":"uint8"},
		{"name":"lpSplitRatioFeeRecipientBps","type":"uint16"},
		{"name":"targetAmount","type":"uint256"},
		{"name":"tradingToken","type":"address"},
		{"name":"migrationAdminAddress","type":"address"},
		{"name":"v4Hook","type":"address"},
		{"name":"v4PoolFee","type":"uint24"},
		{"name":"v4TickSpacing","type":"int24"}
	]}]},
	{"type":"function","name":"getDeployedBondkitTokens","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"bondkitTokenImplementation","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"event","name":"BondkitTokenCreated","inputs":[
		{"name":"tokenAddress","type":"address","indexed":true},
		{"name":"implementationAddress","type":"address","indexed":true},
		{"name":"name","type":"string","indexed":false},
		{"name":"symbol","type":"string","indexed":false},
		{"name":"feeRecipient","type":"address","indexed":false},
		{"name":"migrationAdmin","type":"address","indexed":false}
	]}
]`

const erc20ABIJSON = `[
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`

// GetTokenABI returns the parsed bonding-curve token ABI
func GetTokenABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(tokenABIJSON))
	if err != nil {
		panic("failed to parse bondkit token ABI: " + err.Error())
	}
	return parsed
}

// GetFactoryABI returns the parsed factory ABI
func GetFactoryABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(factoryABIJSON))
	if err != nil {
		panic("failed to parse bondkit factory ABI: " + err.Error())
	}
	return parsed
}

// GetERC20ABI returns the parsed minimal ERC-20 ABI
func GetERC20ABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		panic("failed to parse ERC20 ABI: " + err.Error())
	}
	return parsed
}

// BondkitTokenCreatedTopic is topic0 of the factory's creation event. The
// factory's invariant is that every successful deployment emits it.
var BondkitTokenCreatedTopic = crypto.Keccak256Hash(
	[]byte("BondkitTokenCreated(address,address,string,string,address,address)"),
)

// ZeroAddress is the conventional marker for the native trading asset.
var ZeroAddress = common.Address{}
