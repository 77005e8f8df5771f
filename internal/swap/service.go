package swap

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/b3dotfun/sdk-go/internal/constants"
	"github.com/b3dotfun/sdk-go/internal/models"
	"github.com/b3dotfun/sdk-go/internal/utils"
)

const (
	// Permit2 approvals are granted for 30 days at a time.
	permit2ApprovalTTL = 30 * 24 * time.Hour
	// Router executions expire 20 minutes after encoding.
	executionDeadline = 20 * time.Minute
)

// Backend is the read surface the swap service needs from an Ethereum client.
type Backend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// SubmitFunc submits a signed state-changing call and returns its hash.
type SubmitFunc func(ctx context.Context, to common.Address, data []byte, value *big.Int) (common.Hash, error)

// WaitFunc blocks until the transaction's receipt is available.
type WaitFunc func(ctx context.Context, hash common.Hash) (*types.Receipt, error)

// Config wires a Service to one migrated token's V4 pool. Submission and
// receipt waiting are injected so the owning client keeps control of signing
// and wallet quirks.
type Config struct {
	Backend      Backend
	Token        common.Address
	TradingToken common.Address // zero for the native currency

	TokenDecimals        uint8
	TradingTokenDecimals uint8

	Fee         uint32
	TickSpacing int32
	Hooks       common.Address

	Account func() common.Address
	Submit  SubmitFunc
	Wait    WaitFunc

	// Addresses defaults to the Base mainnet deployment when zero.
	Addresses Addresses
}

// Service quotes and executes swaps against a migrated token's V4 pool. The
// pool key is recomputed from the swap direction on every call rather than
// cached, so currency ordering can never go stale or be reused across legs.
type Service struct {
	cfg Config

	quoterABI  abi.ABI
	permit2ABI abi.ABI
	routerABI  abi.ABI
	erc20ABI   abi.ABI

	now func() time.Time
}

// NewService builds a swap service for one pool.
func NewService(cfg Config) (*Service, error) {
	if cfg.Backend == nil {
		return nil, errors.New("swap: backend is required")
	}
	if cfg.Token == (common.Address{}) {
		return nil, errors.New("swap: token address is required")
	}
	if cfg.Addresses == (Addresses{}) {
		cfg.Addresses = BaseAddresses
	}
	if cfg.Fee == 0 {
		cfg.Fee = DefaultPoolFee
	}
	if cfg.TickSpacing == 0 {
		cfg.TickSpacing = DefaultTickSpacing
	}
	if cfg.TokenDecimals == 0 {
		cfg.TokenDecimals = 18
	}
	if cfg.TradingTokenDecimals == 0 {
		cfg.TradingTokenDecimals = 18
	}

	return &Service{
		cfg:        cfg,
		quoterABI:  GetQuoterABI(),
		permit2ABI: GetPermit2ABI(),
		routerABI:  GetRouterABI(),
		erc20ABI:   getERC20ABI(),
		now:        time.Now,
	}, nil
}

// leg resolves a direction into the pool key plus the swap's input and output
// currencies.
func (s *Service) leg(direction models.SwapDirection) (key PoolKey, zeroForOne bool, input, output common.Address) {
	input, output = s.cfg.TradingToken, s.cfg.Token
	if direction == models.SwapDirectionSell {
		input, output = s.cfg.Token, s.cfg.TradingToken
	}

	currency0, currency1 := orderCurrencies(input, output)
	key = PoolKey{
		Currency0:   currency0,
		Currency1:   currency1,
		Fee:         new(big.Int).SetUint64(uint64(s.cfg.Fee)),
		TickSpacing: big.NewInt(int64(s.cfg.TickSpacing)),
		Hooks:       s.cfg.Hooks,
	}
	return key, input == currency0, input, output
}

type quoteParams struct {
	PoolKey     PoolKey
	ZeroForOne  bool
	ExactAmount *big.Int
	HookData    []byte
}

// quoteAmountOut simulates the swap through the V4 quoter.
func (s *Service) quoteAmountOut(ctx context.Context, direction models.SwapDirection, amountIn *big.Int) (*big.Int, error) {
	key, zeroForOne, _, _ := s.leg(direction)

	data, err := s.quoterABI.Pack("quoteExactInputSingle", quoteParams{
		PoolKey:     key,
		ZeroForOne:  zeroForOne,
		ExactAmount: amountIn,
		HookData:    []byte{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to pack quote call: %w", err)
	}

	result, err := s.cfg.Backend.CallContract(ctx, ethereum.CallMsg{To: &s.cfg.Addresses.Quoter, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("quote simulation failed: %w", err)
	}
	out, err := s.quoterABI.Unpack("quoteExactInputSingle", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack quote result: %w", err)
	}
	return out[0].(*big.Int), nil
}

// Quote simulates an exact-input swap and applies the slippage tolerance.
// Quotes are valid only at computation time; Execute re-quotes internally and
// never trusts a previously returned quote.
func (s *Service) Quote(ctx context.Context, direction models.SwapDirection, amountIn *big.Int, slippageTolerance float64) (*models.SwapQuote, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, errors.New("swap: amountIn must be positive")
	}

	amountOut, err := s.quoteAmountOut(ctx, direction, amountIn)
	if err != nil {
		return nil, err
	}
	amountOutMin := utils.ApplySlippage(amountOut, slippageTolerance)

	return &models.SwapQuote{
		AmountOut:      amountOut.String(),
		AmountOutMin:   amountOutMin.String(),
		PriceImpact:    "0.0",
		ExecutionPrice: s.executionPrice(direction, amountIn, amountOut),
		Fee:            s.cfg.Fee,
	}, nil
}

// executionPrice renders output per one unit of input, adjusted for the two
// assets' decimals.
func (s *Service) executionPrice(direction models.SwapDirection, amountIn, amountOut *big.Int) string {
	inDecimals, outDecimals := s.cfg.TradingTokenDecimals, s.cfg.TokenDecimals
	if direction == models.SwapDirectionSell {
		inDecimals, outDecimals = s.cfg.TokenDecimals, s.cfg.TradingTokenDecimals
	}

	if amountIn.Sign() == 0 {
		return "0"
	}

	scale := func(raw *big.Int, decimals uint8) *big.Float {
		divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
		return new(big.Float).SetPrec(256).Quo(
			new(big.Float).SetInt(raw),
			new(big.Float).SetInt(divisor),
		)
	}
	price := new(big.Float).Quo(scale(amountOut, outDecimals), scale(amountIn, inDecimals))
	return price.Text('f', 18)
}

// Execute runs the full swap flow: ensure approvals, re-quote, encode and
// submit the Universal Router execution. The ETH value rides along only when
// the input currency is native.
func (s *Service) Execute(ctx context.Context, direction models.SwapDirection, amountIn *big.Int, slippageTolerance float64) (common.Hash, error) {
	if s.cfg.Submit == nil || s.cfg.Account == nil {
		return common.Hash{}, errors.New("swap: service is not wired for writes")
	}
	if amountIn == nil || amountIn.Sign() <= 0 {
		return common.Hash{}, errors.New("swap: amountIn must be positive")
	}

	key, zeroForOne, input, output := s.leg(direction)

	if input != (common.Address{}) {
		if err := s.ensureApprovals(ctx, input, amountIn); err != nil {
			return common.Hash{}, err
		}
	}

	amountOut, err := s.quoteAmountOut(ctx, direction, amountIn)
	if err != nil {
		return common.Hash{}, err
	}
	minAmountOut := utils.ApplySlippage(amountOut, slippageTolerance)

	v4Input, err := encodeV4SwapInput(key, zeroForOne, amountIn, minAmountOut, input, output)
	if err != nil {
		return common.Hash{}, err
	}

	deadline := big.NewInt(s.now().Add(executionDeadline).Unix())
	calldata, err := s.routerABI.Pack("execute", []byte{commandV4Swap}, [][]byte{v4Input}, deadline)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack router execution: %w", err)
	}

	var value *big.Int
	if input == (common.Address{}) {
		value = amountIn
	}
	return s.cfg.Submit(ctx, s.cfg.Addresses.UniversalRouter, calldata, value)
}

// ensureApprovals walks the two-tier Permit2 approval chain for an ERC-20
// input: first the token's own allowance to Permit2, then Permit2's
// time-bounded allowance to the Universal Router. Each tier confirms on-chain
// before the next is checked because the second approval is processed by
// Permit2 itself.
func (s *Service) ensureApprovals(ctx context.Context, token common.Address, amountIn *big.Int) error {
	owner := s.cfg.Account()

	allowance, err := s.erc20Allowance(ctx, token, owner, s.cfg.Addresses.Permit2)
	if err != nil {
		return fmt.Errorf("failed to check Permit2 token allowance: %w", err)
	}
	if allowance.Cmp(amountIn) < 0 {
		data, err := s.erc20ABI.Pack("approve", s.cfg.Addresses.Permit2, constants.MaxUint256)
		if err != nil {
			return fmt.Errorf("failed to pack token approval: %w", err)
		}
		if err := s.submitAndConfirm(ctx, token, data); err != nil {
			return fmt.Errorf("token approval to Permit2 failed: %w", err)
		}
	}

	permitAmount, expiration, err := s.permit2Allowance(ctx, owner, token, s.cfg.Addresses.UniversalRouter)
	if err != nil {
		return fmt.Errorf("failed to check Permit2 router allowance: %w", err)
	}
	nowUnix := big.NewInt(s.now().Unix())
	if permitAmount.Cmp(amountIn) < 0 || expiration.Cmp(nowUnix) <= 0 {
		newExpiration := big.NewInt(s.now().Add(permit2ApprovalTTL).Unix())
		data, err := s.permit2ABI.Pack("approve", token, s.cfg.Addresses.UniversalRouter, constants.MaxUint160, newExpiration)
		if err != nil {
			return fmt.Errorf("failed to pack Permit2 approval: %w", err)
		}
		if err := s.submitAndConfirm(ctx, s.cfg.Addresses.Permit2, data); err != nil {
			return fmt.Errorf("Permit2 approval to router failed: %w", err)
		}
	}
	return nil
}

func (s *Service) submitAndConfirm(ctx context.Context, to common.Address, data []byte) error {
	hash, err := s.cfg.Submit(ctx, to, data, nil)
	if err != nil {
		return err
	}
	if s.cfg.Wait == nil {
		return nil
	}
	receipt, err := s.cfg.Wait(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed waiting for %s: %w", hash.Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transaction %s reverted", hash.Hex())
	}
	return nil
}

func (s *Service) erc20Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	data, err := s.erc20ABI.Pack("allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	result, err := s.cfg.Backend.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, err
	}
	out, err := s.erc20ABI.Unpack("allowance", result)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

func (s *Service) permit2Allowance(ctx context.Context, owner, token, spender common.Address) (amount, expiration *big.Int, err error) {
	data, err := s.permit2ABI.Pack("allowance", owner, token, spender)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.cfg.Backend.CallContract(ctx, ethereum.CallMsg{To: &s.cfg.Addresses.Permit2, Data: data}, nil)
	if err != nil {
		return nil, nil, err
	}
	out, err := s.permit2ABI.Unpack("allowance", result)
	if err != nil {
		return nil, nil, err
	}
	return out[0].(*big.Int), out[1].(*big.Int), nil
}
