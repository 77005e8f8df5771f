package swap

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Addresses are the Uniswap V4 periphery contracts a pool is reachable
// through. Only Base mainnet is wired today; other chains need their own set.
type Addresses struct {
	Permit2         common.Address
	UniversalRouter common.Address
	Quoter          common.Address
	PoolManager     common.Address
}

// BaseAddresses is the canonical V4 deployment on Base mainnet (chain 8453).
var BaseAddresses = Addresses{
	Permit2:         common.HexToAddress("0x000000000022D473030F116dDEE9F6B43aC78BA3"),
	UniversalRouter: common.HexToAddress("0x6fF5693b99212Da76ad316178A184AB56D299b43"),
	Quoter:          common.HexToAddress("0x0d5e0F971ED27FBfF6c2837bf31316121532048D"),
	PoolManager:     common.HexToAddress("0x498581fF718922c3f8e6A244956aF099B2652b2b"),
}

// Pool parameters every stock factory deployment gets when the token contract
// cannot be read.
const (
	DefaultPoolFee     uint32 = 10_000
	DefaultTickSpacing int32  = 200
)

const quoterABIJSON = `[
	{"type":"function","name":"quoteExactInputSingle","stateMutability":"nonpayable","inputs":[{"name":"params","type":"tuple","components":[
		{"name":"poolKey","type":"tuple","components":[
			{"name":"currency0","type":"address"},
			{"name":"currency1","type":"address"},
			{"name":"fee","type":"uint24"},
			{"name":"tickSpacing","type":"int24"},
			{"name":"hooks","type":"address"}
		]},
		{"name":"zeroForOne","type":"bool"},
		{"name":"exactAmount","type":"uint128"},
		{"name":"hookData","type":"bytes"}
	]}],"outputs":[{"name":"amountOut","type":"uint256"},{"name":"gasEstimate","type":"uint256"}]}
]`

const permit2ABIJSON = `[
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"token","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"amount","type":"uint160"},{"name":"expiration","type":"uint48"},{"name":"nonce","type":"uint48"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"},{"name":"spender","type":"address"},{"name":"amount","type":"uint160"},{"name":"expiration","type":"uint48"}],"outputs":[]}
]`

const routerABIJSON = `[
	{"type":"function","name":"execute","stateMutability":"payable","inputs":[{"name":"commands","type":"bytes"},{"name":"inputs","type":"bytes[]"},{"name":"deadline","type":"uint256"}],"outputs":[]}
]`

const erc20ABIJSON = `[
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

// GetQuoterABI returns the parsed V4 quoter ABI
func GetQuoterABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(quoterABIJSON))
	if err != nil {
		panic("failed to parse quoter ABI: " + err.Error())
	}
	return parsed
}

// GetPermit2ABI returns the parsed Permit2 ABI
func GetPermit2ABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(permit2ABIJSON))
	if err != nil {
		panic("failed to parse Permit2 ABI: " + err.Error())
	}
	return parsed
}

// GetRouterABI returns the parsed Universal Router ABI
func GetRouterABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(routerABIJSON))
	if err != nil {
		panic("failed to parse router ABI: " + err.Error())
	}
	return parsed
}

func getERC20ABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		panic("failed to parse ERC20 ABI: " + err.Error())
	}
	return parsed
}
