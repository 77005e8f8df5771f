package bondkit

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ChainBackend is the slice of the Ethereum client surface the bondkit
// clients use. *ethclient.Client satisfies it; tests substitute a mock to
// verify call ordering without a chain.
type ChainBackend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Provider is an EIP-1193-compatible request transport, typically an injected
// browser wallet bridged into the host application.
type Provider interface {
	Request(method string, params ...any) (any, error)
}

// WalletNamer is optionally implemented by providers that can identify the
// wallet behind them. Names are lowercase vendor identifiers ("okx",
// "metamask").
type WalletNamer interface {
	WalletName() string
}
