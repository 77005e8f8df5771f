package swap

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Universal Router command and V4 action bytes.
const (
	commandV4Swap byte = 0x10

	actionSwapExactInSingle byte = 0x06
	actionSettleAll         byte = 0x0c
	actionTakeAll           byte = 0x0f
)

// PoolKey identifies a V4 pool. currency0 must be the numerically lower
// currency address; the pool manager rejects unordered keys.
type PoolKey struct {
	Currency0   common.Address
	Currency1   common.Address
	Fee         *big.Int
	TickSpacing *big.Int
	Hooks       common.Address
}

type exactInputSingleParams struct {
	PoolKey          PoolKey
	ZeroForOne       bool
	AmountIn         *big.Int
	AmountOutMinimum *big.Int
	HookData         []byte
}

var poolKeyComponents = []abi.ArgumentMarshaling{
	{Name: "currency0", Type: "address"},
	{Name: "currency1", Type: "address"},
	{Name: "fee", Type: "uint24"},
	{Name: "tickSpacing", Type: "int24"},
	{Name: "hooks", Type: "address"},
}

func mustType(t string, components []abi.ArgumentMarshaling) abi.Type {
	typ, err := abi.NewType(t, "", components)
	if err != nil {
		panic("failed to build ABI type " + t + ": " + err.Error())
	}
	return typ
}

var (
	addressType    = mustType("address", nil)
	uint256Type    = mustType("uint256", nil)
	bytesType      = mustType("bytes", nil)
	bytesArrayType = mustType("bytes[]", nil)

	exactInSingleType = mustType("tuple", []abi.ArgumentMarshaling{
		{Name: "poolKey", Type: "tuple", Components: poolKeyComponents},
		{Name: "zeroForOne", Type: "bool"},
		{Name: "amountIn", Type: "uint128"},
		{Name: "amountOutMinimum", Type: "uint128"},
		{Name: "hookData", Type: "bytes"},
	})
)

// encodeV4SwapInput builds the single Universal Router input for an
// exact-input single-hop V4 swap: swap, take the full output, settle the
// input currency in full. The router executes the actions sequentially
// against the pool manager's flash accounting.
func encodeV4SwapInput(key PoolKey, zeroForOne bool, amountIn, minAmountOut *big.Int, inputCurrency, outputCurrency common.Address) ([]byte, error) {
	swapParams, err := abi.Arguments{{Type: exactInSingleType}}.Pack(exactInputSingleParams{
		PoolKey:          key,
		ZeroForOne:       zeroForOne,
		AmountIn:         amountIn,
		AmountOutMinimum: minAmountOut,
		HookData:         []byte{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode swap action: %w", err)
	}

	takeParams, err := abi.Arguments{{Type: addressType}, {Type: uint256Type}}.Pack(outputCurrency, minAmountOut)
	if err != nil {
		return nil, fmt.Errorf("failed to encode take action: %w", err)
	}

	settleParams, err := abi.Arguments{{Type: addressType}, {Type: uint256Type}}.Pack(inputCurrency, amountIn)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settle action: %w", err)
	}

	actions := []byte{actionSwapExactInSingle, actionTakeAll, actionSettleAll}
	input, err := abi.Arguments{{Type: bytesType}, {Type: bytesArrayType}}.Pack(
		actions,
		[][]byte{swapParams, takeParams, settleParams},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to encode router input: %w", err)
	}
	return input, nil
}

// orderCurrencies sorts two currencies into pool-key order. The native
// currency is the zero address and therefore always currency0.
func orderCurrencies(a, b common.Address) (currency0, currency1 common.Address) {
	if a.Cmp(b) < 0 {
		return a, b
	}
	return b, a
}
