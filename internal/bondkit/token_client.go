package bondkit

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/b3dotfun/sdk-go/internal/models"
	"github.com/b3dotfun/sdk-go/internal/swap"
	"github.com/b3dotfun/sdk-go/internal/utils"
)

const (
	defaultPollInterval    = 5 * time.Second
	defaultMaxPollAttempts = 60
	receiptRetryInterval   = 2 * time.Second
	receiptWaitTimeout     = 2 * time.Minute
	fallbackGasLimit       = 500_000
)

// TokenClient is the per-token handle for a bonding-curve token. Reads work
// immediately after construction; writes require either a private key at
// construction time or a wallet provider attached via ConnectWithProvider.
//
// The client is not safe for concurrent reconnection: Connect swaps the
// underlying RPC client without synchronization, so callers must not reconnect
// while other goroutines are mid-call.
type TokenClient struct {
	tokenAddress common.Address
	rpcURL       string
	backend      ChainBackend

	tokenABI abi.ABI
	erc20ABI abi.ABI

	privateKey *ecdsa.PrivateKey
	provider   Provider
	account    common.Address
	walletName string
	chainID    *big.Int

	swapService *swap.Service

	// injectable for tests
	pollInterval    time.Duration
	maxPollAttempts int
	sleep           func(time.Duration)
	dial            func(string) (ChainBackend, error)
}

// NewTokenClient creates a client bound to one deployed bonding-curve token.
// privateKeyHex may be empty for read-only or provider-driven use.
func NewTokenClient(tokenAddress, rpcURL, privateKeyHex string) (*TokenClient, error) {
	if !common.IsHexAddress(tokenAddress) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, tokenAddress)
	}

	c := &TokenClient{
		tokenAddress:    common.HexToAddress(tokenAddress),
		rpcURL:          rpcURL,
		tokenABI:        GetTokenABI(),
		erc20ABI:        GetERC20ABI(),
		pollInterval:    defaultPollInterval,
		maxPollAttempts: defaultMaxPollAttempts,
		sleep:           time.Sleep,
		dial: func(url string) (ChainBackend, error) {
			return ethclient.Dial(url)
		},
	}

	if privateKeyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		c.privateKey = key
		c.account = crypto.PubkeyToAddress(key.PublicKey)
	}

	if !c.Connect() {
		return nil, fmt.Errorf("failed to connect to RPC endpoint %s", rpcURL)
	}
	return c, nil
}

// Connect rebuilds the RPC client against the configured endpoint. It is
// idempotent and returns false on failure instead of erroring so callers can
// retry on their own schedule.
func (c *TokenClient) Connect() bool {
	backend, err := c.dial(c.rpcURL)
	if err != nil {
		log.Printf("Warning: failed to dial %s: %v", c.rpcURL, err)
		return false
	}
	c.backend = backend
	c.chainID = nil
	c.swapService = nil
	return true
}

// ConnectWithProvider rebuilds the RPC client and attaches a wallet provider
// for signing. The provider's first account becomes the active account.
func (c *TokenClient) ConnectWithProvider(p Provider) bool {
	if !c.Connect() {
		return false
	}

	account, err := requestAccount(p)
	if err != nil {
		log.Printf("Warning: wallet provider returned no usable account: %v", err)
		return false
	}

	c.provider = p
	c.account = account
	c.walletName = ""
	if namer, ok := p.(WalletNamer); ok {
		c.walletName = strings.ToLower(namer.WalletName())
	}
	return true
}

// requestAccount asks the provider for its accounts, preferring the
// permission-prompting method and falling back to the passive one.
func requestAccount(p Provider) (common.Address, error) {
	res, err := p.Request("eth_requestAccounts")
	if err != nil {
		res, err = p.Request("eth_accounts")
		if err != nil {
			return common.Address{}, fmt.Errorf("failed to request accounts: %w", err)
		}
	}
	addr, ok := firstAddress(res)
	if !ok {
		return common.Address{}, errors.New("provider returned an empty account list")
	}
	return addr, nil
}

func firstAddress(res any) (common.Address, bool) {
	switch accounts := res.(type) {
	case []string:
		if len(accounts) > 0 && common.IsHexAddress(accounts[0]) {
			return common.HexToAddress(accounts[0]), true
		}
	case []any:
		if len(accounts) > 0 {
			if s, ok := accounts[0].(string); ok && common.IsHexAddress(s) {
				return common.HexToAddress(s), true
			}
		}
	}
	return common.Address{}, false
}

// Address returns the token contract address this client is bound to.
func (c *TokenClient) Address() common.Address {
	return c.tokenAddress
}

// Account returns the active signing account, zero if none is attached.
func (c *TokenClient) Account() common.Address {
	return c.account
}

func (c *TokenClient) canWrite() bool {
	return c.privateKey != nil || c.provider != nil
}

// call packs a view method, executes it against the token contract and
// returns the unpacked outputs.
func (c *TokenClient) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := c.tokenABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}
	result, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.tokenAddress, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}
	out, err := c.tokenABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return out, nil
}

// callERC20 executes a view method against an arbitrary ERC-20 contract.
func (c *TokenClient) callERC20(ctx context.Context, token common.Address, method string, args ...any) ([]any, error) {
	data, err := c.erc20ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}
	result, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}
	out, err := c.erc20ABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return out, nil
}

// Name returns the token's ERC-20 name.
func (c *TokenClient) Name(ctx context.Context) (string, error) {
	out, err := c.call(ctx, "name")
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// Symbol returns the token's ERC-20 symbol.
func (c *TokenClient) Symbol(ctx context.Context) (string, error) {
	out, err := c.call(ctx, "symbol")
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// Decimals returns the token's ERC-20 decimals.
func (c *TokenClient) Decimals(ctx context.Context) (uint8, error) {
	out, err := c.call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	return out[0].(uint8), nil
}

// TotalSupply returns the token's total supply in base units.
func (c *TokenClient) TotalSupply(ctx context.Context) (*big.Int, error) {
	out, err := c.call(ctx, "totalSupply")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// BalanceOf returns an account's token balance in base units.
func (c *TokenClient) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	out, err := c.call(ctx, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Owner returns the contract owner.
func (c *TokenClient) Owner(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// FeeRecipient returns the configured fee recipient.
func (c *TokenClient) FeeRecipient(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "feeRecipient")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// CurrentStatus returns the token's lifecycle phase.
func (c *TokenClient) CurrentStatus(ctx context.Context) (models.TokenStatus, error) {
	out, err := c.call(ctx, "currentStatus")
	if err != nil {
		return models.TokenStatusUninitialized, err
	}
	return models.TokenStatus(out[0].(uint8)), nil
}

// GetCurrentPhase returns the raw phase value exposed by the contract. It
// mirrors CurrentStatus and exists because both accessors are public on-chain.
func (c *TokenClient) GetCurrentPhase(ctx context.Context) (models.TokenStatus, error) {
	out, err := c.call(ctx, "getCurrentPhase")
	if err != nil {
		return models.TokenStatusUninitialized, err
	}
	return models.TokenStatus(out[0].(uint8)), nil
}

// TradingToken returns the ERC-20 the curve trades against, or the zero
// address when the curve trades against the chain's native asset.
func (c *TokenClient) TradingToken(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "tradingToken")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// TotalRaisedBonding returns the total trading-token amount raised so far.
func (c *TokenClient) TotalRaisedBonding(ctx context.Context) (*big.Int, error) {
	out, err := c.call(ctx, "totalRaisedBonding")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// GetAmountOfTokensToBuy quotes how many tokens a trading-token amount buys
// at the current curve position.
func (c *TokenClient) GetAmountOfTokensToBuy(ctx context.Context, tradingTokenAmount *big.Int) (*big.Int, error) {
	out, err := c.call(ctx, "getAmountOfTokensToBuy", tradingTokenAmount)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// GetAmountOfTradingTokensToSell quotes the trading-token proceeds of selling
// a token amount at the current curve position.
func (c *TokenClient) GetAmountOfTradingTokensToSell(ctx context.Context, tokenAmount *big.Int) (*big.Int, error) {
	out, err := c.call(ctx, "getAmountOfTradingTokensToSell", tokenAmount)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// GetCurrentPricePerToken returns the instantaneous bonding-curve price.
func (c *TokenClient) GetCurrentPricePerToken(ctx context.Context) (*big.Int, error) {
	out, err := c.call(ctx, "getCurrentBondingCurvePricePerToken")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// GetBondingProgress returns the bonding progress as a percentage in [0,100].
// The contract reports basis points; this divides by 100.
func (c *TokenClient) GetBondingProgress(ctx context.Context) (float64, error) {
	out, err := c.call(ctx, "getBondingProgressPercent")
	if err != nil {
		return 0, err
	}
	bps := out[0].(*big.Int)
	progress, _ := new(big.Float).Quo(
		new(big.Float).SetInt(bps),
		big.NewFloat(100),
	).Float64()
	return progress, nil
}

// GetHolders returns one page of the bonding-phase holder list.
func (c *TokenClient) GetHolders(ctx context.Context, offset, limit *big.Int) ([]models.BondingHolder, error) {
	out, err := c.call(ctx, "getPaginatedHolders", offset, limit)
	if err != nil {
		return nil, err
	}
	addresses := out[0].([]common.Address)
	balances := out[1].([]*big.Int)

	holders := make([]models.BondingHolder, 0, len(addresses))
	for i, addr := range addresses {
		holders = append(holders, models.BondingHolder{
			Address: addr.Hex(),
			Balance: balances[i].String(),
		})
	}
	return holders, nil
}

// V4Hook returns the Uniswap V4 hook address the token migrates into.
func (c *TokenClient) V4Hook(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "v4Hook")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// V4PoolFee returns the pool fee in hundredths of a bip.
func (c *TokenClient) V4PoolFee(ctx context.Context) (uint32, error) {
	out, err := c.call(ctx, "v4PoolFee")
	if err != nil {
		return 0, err
	}
	return uint32(out[0].(*big.Int).Uint64()), nil
}

// V4TickSpacing returns the pool's tick spacing.
func (c *TokenClient) V4TickSpacing(ctx context.Context) (int32, error) {
	out, err := c.call(ctx, "v4TickSpacing")
	if err != nil {
		return 0, err
	}
	return int32(out[0].(*big.Int).Int64()), nil
}

// Buy purchases tokens on the bonding curve. amount is denominated in the
// curve's trading asset. When the trading asset is an ERC-20 the allowance is
// checked first; an insufficient allowance triggers an approval that is
// confirmed on-chain before the buy is submitted. The two transactions are
// strictly sequential because the buy reverts without the allowance.
func (c *TokenClient) Buy(ctx context.Context, amount, minTokensOut *big.Int) (common.Hash, error) {
	if !c.canWrite() {
		return common.Hash{}, ErrNotConnected
	}

	tradingToken, err := c.TradingToken(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to resolve trading token: %w", err)
	}

	if tradingToken == ZeroAddress {
		data, err := c.tokenABI.Pack("buy", minTokensOut)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to pack buy call: %w", err)
		}
		return c.executeWrite(ctx, c.tokenAddress, data, amount)
	}

	if err := c.ensureAllowance(ctx, tradingToken, amount); err != nil {
		return common.Hash{}, err
	}

	// The ERC-20 path calls the two-argument buy overload, which the ABI
	// parser registers as "buy0" next to the payable single-argument "buy".
	data, err := c.tokenABI.Pack("buy0", amount, minTokensOut)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack buy call: %w", err)
	}
	return c.executeWrite(ctx, c.tokenAddress, data, nil)
}

// ensureAllowance approves the token contract to pull amount of the trading
// token when the current allowance is short, waiting for the approval to
// confirm before returning.
func (c *TokenClient) ensureAllowance(ctx context.Context, tradingToken common.Address, amount *big.Int) error {
	out, err := c.callERC20(ctx, tradingToken, "allowance", c.account, c.tokenAddress)
	if err != nil {
		return fmt.Errorf("failed to check allowance: %w", err)
	}
	allowance := out[0].(*big.Int)
	if allowance.Cmp(amount) >= 0 {
		return nil
	}

	data, err := c.erc20ABI.Pack("approve", c.tokenAddress, amount)
	if err != nil {
		return fmt.Errorf("failed to pack approve call: %w", err)
	}
	hash, err := c.executeWrite(ctx, tradingToken, data, nil)
	if err != nil {
		return fmt.Errorf("failed to submit approval: %w", err)
	}

	receipt, err := c.WaitForTransaction(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed waiting for approval %s: %w", hash.Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("approval transaction %s reverted", hash.Hex())
	}
	return nil
}

// Sell sells tokens back to the bonding curve.
func (c *TokenClient) Sell(ctx context.Context, tokenAmount, minTradingTokenOut *big.Int) (common.Hash, error) {
	if !c.canWrite() {
		return common.Hash{}, ErrNotConnected
	}
	data, err := c.tokenABI.Pack("sell", tokenAmount, minTradingTokenOut)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack sell call: %w", err)
	}
	return c.executeWrite(ctx, c.tokenAddress, data, nil)
}

// MigrateToDex triggers the one-way migration from bonding to the V4 pool.
// The contract enforces the target-raised precondition; this method does not
// pre-check it.
func (c *TokenClient) MigrateToDex(ctx context.Context) (common.Hash, error) {
	if !c.canWrite() {
		return common.Hash{}, ErrNotConnected
	}
	data, err := c.tokenABI.Pack("migrateToDex")
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack migrateToDex call: %w", err)
	}
	return c.executeWrite(ctx, c.tokenAddress, data, nil)
}

// executeWrite submits a state-changing call, routing through the wallet
// provider when one is attached and signing locally otherwise.
func (c *TokenClient) executeWrite(ctx context.Context, to common.Address, data []byte, value *big.Int) (common.Hash, error) {
	if c.provider != nil {
		return c.sendViaProvider(to, data, value)
	}
	if c.privateKey == nil {
		return common.Hash{}, ErrNotConnected
	}

	if value == nil {
		value = big.NewInt(0)
	}

	nonce, err := c.backend.PendingNonceAt(ctx, c.account)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to fetch nonce: %w", err)
	}

	tip, feeCap := c.suggestFees(ctx)
	gasLimit := c.estimateGas(ctx, to, data, value)

	chainID, err := c.getChainID(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gasLimit,
		To:        &to,
		Value:     value,
		Data:      data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), c.privateKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return signed.Hash(), nil
}

// suggestFees derives EIP-1559 fee caps from the node, falling back to
// conservative constants when the node cannot answer. Fee estimation failure
// is never fatal for the write itself.
func (c *TokenClient) suggestFees(ctx context.Context) (tip, feeCap *big.Int) {
	tip, err := c.backend.SuggestGasTipCap(ctx)
	if err != nil {
		log.Printf("Warning: gas tip suggestion failed, using 1 gwei: %v", err)
		tip = big.NewInt(1_000_000_000)
	}

	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		log.Printf("Warning: gas price suggestion failed, using 20 gwei: %v", err)
		gasPrice = big.NewInt(20_000_000_000)
	}

	feeCap = new(big.Int).Add(new(big.Int).Mul(gasPrice, big.NewInt(2)), tip)
	return tip, feeCap
}

func (c *TokenClient) estimateGas(ctx context.Context, to common.Address, data []byte, value *big.Int) uint64 {
	gasLimit, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  c.account,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		log.Printf("Warning: gas estimation failed, using fallback limit %d: %v", fallbackGasLimit, err)
		return fallbackGasLimit
	}
	return gasLimit
}

func (c *TokenClient) getChainID(ctx context.Context) (*big.Int, error) {
	if c.chainID != nil {
		return c.chainID, nil
	}
	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain id: %w", err)
	}
	c.chainID = chainID
	return chainID, nil
}

func (c *TokenClient) sendViaProvider(to common.Address, data []byte, value *big.Int) (common.Hash, error) {
	params := map[string]any{
		"from": c.account.Hex(),
		"to":   to.Hex(),
		"data": hexutil.Encode(data),
	}
	if value != nil && value.Sign() > 0 {
		params["value"] = hexutil.EncodeBig(value)
	}

	res, err := c.provider.Request("eth_sendTransaction", params)
	if err != nil {
		return common.Hash{}, fmt.Errorf("wallet rejected transaction: %w", err)
	}
	hashStr, ok := res.(string)
	if !ok {
		return common.Hash{}, fmt.Errorf("wallet returned unexpected response %T", res)
	}
	return common.HexToHash(hashStr), nil
}

// WaitForTransaction blocks until the transaction's receipt is available.
// Some wallets (notably OKX) return the hash before their backing RPC knows
// the transaction, so for those the wait is a fixed-budget poll loop rather
// than a deadline, giving slow propagation up to five minutes to catch up.
func (c *TokenClient) WaitForTransaction(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if c.walletName == "okx" {
		return c.pollReceipt(ctx, hash)
	}

	ctx, cancel := context.WithTimeout(ctx, receiptWaitTimeout)
	defer cancel()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to fetch receipt for %s: %w", hash.Hex(), err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrTimeout, hash.Hex())
		default:
		}
		c.sleep(receiptRetryInterval)
	}
}

func (c *TokenClient) pollReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	for attempt := 0; attempt < c.maxPollAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, hash.Hex())
		}
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		// Only a missing receipt is worth retrying; anything else means the
		// RPC connection itself is broken.
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to fetch receipt for %s: %w", hash.Hex(), err)
		}
		c.sleep(c.pollInterval)
	}
	return nil, fmt.Errorf("%w: %s after %d attempts", ErrTimeout, hash.Hex(), c.maxPollAttempts)
}

// IsSwapAvailable reports whether the token has migrated to its V4 pool. Read
// failures degrade to false so UI callers can gate swap surfaces without
// error plumbing.
func (c *TokenClient) IsSwapAvailable(ctx context.Context) bool {
	status, err := c.CurrentStatus(ctx)
	if err != nil {
		log.Printf("Warning: failed to read token status: %v", err)
		return false
	}
	return status == models.TokenStatusDex
}

// getSwapService lazily builds the V4 swap service from the token's on-chain
// pool parameters. The built service is cached until the next Connect.
func (c *TokenClient) getSwapService(ctx context.Context) (*swap.Service, error) {
	if c.swapService != nil {
		return c.swapService, nil
	}

	tradingToken, err := c.TradingToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve trading token: %w", err)
	}

	tokenDecimals, err := c.Decimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read token decimals: %w", err)
	}
	tradingDecimals := uint8(18)
	if tradingToken != ZeroAddress {
		out, err := c.callERC20(ctx, tradingToken, "decimals")
		if err != nil {
			return nil, fmt.Errorf("failed to read trading token decimals: %w", err)
		}
		tradingDecimals = out[0].(uint8)
	}

	cfg := swap.Config{
		Backend:              c.backend,
		Token:                c.tokenAddress,
		TradingToken:         tradingToken,
		TokenDecimals:        tokenDecimals,
		TradingTokenDecimals: tradingDecimals,
		Fee:                  swap.DefaultPoolFee,
		TickSpacing:          swap.DefaultTickSpacing,
		Account:              func() common.Address { return c.account },
		Submit:               c.executeWrite,
		Wait:                 c.WaitForTransaction,
	}

	// Pool parameters live on the token contract. If any read fails the
	// factory defaults still describe the pool every stock deployment gets.
	if fee, err := c.V4PoolFee(ctx); err == nil {
		cfg.Fee = fee
	} else {
		log.Printf("Warning: failed to read v4 pool fee, using default: %v", err)
	}
	if spacing, err := c.V4TickSpacing(ctx); err == nil {
		cfg.TickSpacing = spacing
	} else {
		log.Printf("Warning: failed to read v4 tick spacing, using default: %v", err)
	}
	if hook, err := c.V4Hook(ctx); err == nil {
		cfg.Hooks = hook
	} else {
		log.Printf("Warning: failed to read v4 hook, using zero hook: %v", err)
	}

	svc, err := swap.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build swap service: %w", err)
	}
	c.swapService = svc
	return svc, nil
}

// GetSwapQuote quotes a post-migration DEX swap. amountIn is a human decimal
// string in the input asset's units. It returns nil, with the cause logged,
// whenever the token has not migrated or any upstream read fails; callers
// treat nil as "no quote available".
func (c *TokenClient) GetSwapQuote(ctx context.Context, direction models.SwapDirection, amountIn string, slippageTolerance float64) *models.SwapQuote {
	if !c.IsSwapAvailable(ctx) {
		log.Printf("Warning: swap quote requested before DEX migration for %s", c.tokenAddress.Hex())
		return nil
	}
	svc, err := c.getSwapService(ctx)
	if err != nil {
		log.Printf("Warning: swap service unavailable: %v", err)
		return nil
	}

	amountRaw, err := c.parseSwapInput(ctx, direction, amountIn)
	if err != nil {
		log.Printf("Warning: invalid swap amount %q: %v", amountIn, err)
		return nil
	}

	quote, err := svc.Quote(ctx, direction, amountRaw, slippageTolerance)
	if err != nil {
		log.Printf("Warning: swap quote failed: %v", err)
		return nil
	}
	return quote
}

// ExecuteSwap quotes and executes a post-migration DEX swap. It returns the
// zero hash, with the cause logged, on any failure; callers must treat a zero
// hash as "the swap was not submitted".
func (c *TokenClient) ExecuteSwap(ctx context.Context, direction models.SwapDirection, amountIn string, slippageTolerance float64) common.Hash {
	if !c.canWrite() {
		log.Printf("Warning: swap execution requested without a signer")
		return common.Hash{}
	}
	if !c.IsSwapAvailable(ctx) {
		log.Printf("Warning: swap execution requested before DEX migration for %s", c.tokenAddress.Hex())
		return common.Hash{}
	}
	svc, err := c.getSwapService(ctx)
	if err != nil {
		log.Printf("Warning: swap service unavailable: %v", err)
		return common.Hash{}
	}

	amountRaw, err := c.parseSwapInput(ctx, direction, amountIn)
	if err != nil {
		log.Printf("Warning: invalid swap amount %q: %v", amountIn, err)
		return common.Hash{}
	}

	hash, err := svc.Execute(ctx, direction, amountRaw, slippageTolerance)
	if err != nil {
		log.Printf("Warning: swap execution failed: %v", err)
		return common.Hash{}
	}
	return hash
}

// parseSwapInput converts a human amount into base units of the swap's input
// asset: the trading asset for buys, the token itself for sells.
func (c *TokenClient) parseSwapInput(ctx context.Context, direction models.SwapDirection, amountIn string) (*big.Int, error) {
	decimals, err := c.swapInputDecimals(ctx, direction)
	if err != nil {
		return nil, err
	}
	return utils.ParseUnits(amountIn, decimals)
}

func (c *TokenClient) swapInputDecimals(ctx context.Context, direction models.SwapDirection) (uint8, error) {
	if direction == models.SwapDirectionSell {
		return c.Decimals(ctx)
	}

	tradingToken, err := c.TradingToken(ctx)
	if err != nil {
		return 0, err
	}
	if tradingToken == ZeroAddress {
		return 18, nil
	}
	out, err := c.callERC20(ctx, tradingToken, "decimals")
	if err != nil {
		return 0, err
	}
	return out[0].(uint8), nil
}
