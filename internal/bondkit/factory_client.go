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
	"github.com/go-playground/validator/v10"

	"github.com/b3dotfun/sdk-go/internal/models"
)

// factoryConfigTuple mirrors the Solidity config struct field-for-field so
// the ABI encoder lays the tuple out exactly as the factory expects.
type factoryConfigTuple struct {
	Name                        string
	Symbol                      string
	FeeRecipient                common.Address
	FinalTokenSupply            *big.Int
	AggressivenessFactor        uint8
	LpSplitRatioFeeRecipientBps uint16
	TargetAmount                *big.Int
	TradingToken                common.Address
	MigrationAdminAddress       common.Address
	V4Hook                      common.Address
	V4PoolFee                   *big.Int
	V4TickSpacing               *big.Int
}

// FactoryClient deploys bonding-curve tokens and reads factory state.
// Connection mirrors TokenClient: construct with a private key to sign
// locally, or attach a wallet provider via ConnectWithProvider. The write
// account of a provider connection resolves lazily on the first write.
type FactoryClient struct {
	factoryAddress common.Address
	rpcURL         string
	backend        ChainBackend
	factoryABI     abi.ABI

	privateKey *ecdsa.PrivateKey
	provider   Provider
	account    common.Address
	chainID    *big.Int

	validate *validator.Validate

	pollInterval time.Duration
	sleep        func(time.Duration)
}

// NewFactoryClient creates a client bound to one deployed factory.
// privateKeyHex may be empty for read-only use.
func NewFactoryClient(factoryAddress, rpcURL, privateKeyHex string) (*FactoryClient, error) {
	if !common.IsHexAddress(factoryAddress) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, factoryAddress)
	}

	backend, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}

	c := &FactoryClient{
		factoryAddress: common.HexToAddress(factoryAddress),
		rpcURL:         rpcURL,
		backend:        backend,
		factoryABI:     GetFactoryABI(),
		validate:       validator.New(),
		pollInterval:   receiptRetryInterval,
		sleep:          time.Sleep,
	}

	if privateKeyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		c.privateKey = key
		c.account = crypto.PubkeyToAddress(key.PublicKey)
	}

	return c, nil
}

// Address returns the factory contract address.
func (c *FactoryClient) Address() common.Address {
	return c.factoryAddress
}

// ConnectWithProvider attaches a wallet provider for signing. Account
// resolution is deferred to the first write so read-only use never prompts
// the wallet. A provider connection supersedes any key-derived account.
func (c *FactoryClient) ConnectWithProvider(p Provider) bool {
	if p == nil {
		return false
	}
	c.provider = p
	c.account = common.Address{}
	return true
}

// ensureWriteAccount resolves the signing account before a write. Key-based
// clients know it at construction; provider clients ask the wallet on first
// use and cache the answer.
func (c *FactoryClient) ensureWriteAccount() error {
	if c.provider != nil {
		if c.account != (common.Address{}) {
			return nil
		}
		account, err := requestAccount(c.provider)
		if err != nil {
			return fmt.Errorf("wallet provider returned no usable account: %w", err)
		}
		c.account = account
		return nil
	}
	if c.privateKey == nil {
		return ErrNotConnected
	}
	return nil
}

func (c *FactoryClient) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := c.factoryABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}
	result, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.factoryAddress, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}
	out, err := c.factoryABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return out, nil
}

// DeployBondkitToken validates the config, submits the deployment, waits for
// it to confirm and returns the new token's address decoded from the
// BondkitTokenCreated event. A confirmed receipt without that event returns
// ErrEventNotFound.
func (c *FactoryClient) DeployBondkitToken(ctx context.Context, config models.BondkitTokenConfig) (common.Address, common.Hash, error) {
	if err := c.ensureWriteAccount(); err != nil {
		return common.Address{}, common.Hash{}, err
	}
	if err := c.validate.Struct(config); err != nil {
		return common.Address{}, common.Hash{}, fmt.Errorf("invalid token config: %w", err)
	}

	tuple, err := configToTuple(config)
	if err != nil {
		return common.Address{}, common.Hash{}, err
	}
	data, err := c.factoryABI.Pack("deployBondkitToken", tuple)
	if err != nil {
		return common.Address{}, common.Hash{}, fmt.Errorf("failed to pack deployment call: %w", err)
	}

	hash, err := c.submit(ctx, data)
	if err != nil {
		return common.Address{}, common.Hash{}, err
	}

	receipt, err := c.waitForReceipt(ctx, hash)
	if err != nil {
		return common.Address{}, hash, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return common.Address{}, hash, fmt.Errorf("deployment transaction %s reverted", hash.Hex())
	}

	tokenAddress, err := tokenAddressFromReceipt(receipt)
	if err != nil {
		return common.Address{}, hash, err
	}
	log.Printf("Deployed bondkit token %s (%s) at %s", config.Name, config.Symbol, tokenAddress.Hex())
	return tokenAddress, hash, nil
}

// tokenAddressFromReceipt finds the creation event among the receipt logs and
// decodes the token address from its first indexed topic.
func tokenAddressFromReceipt(receipt *types.Receipt) (common.Address, error) {
	for _, logEntry := range receipt.Logs {
		if len(logEntry.Topics) >= 2 && logEntry.Topics[0] == BondkitTokenCreatedTopic {
			return common.BytesToAddress(logEntry.Topics[1].Bytes()), nil
		}
	}
	return common.Address{}, ErrEventNotFound
}

func configToTuple(config models.BondkitTokenConfig) (factoryConfigTuple, error) {
	finalSupply, ok := new(big.Int).SetString(config.FinalTokenSupply, 10)
	if !ok {
		return factoryConfigTuple{}, fmt.Errorf("invalid finalTokenSupply: %s", config.FinalTokenSupply)
	}
	targetAmount, ok := new(big.Int).SetString(config.TargetAmount, 10)
	if !ok {
		return factoryConfigTuple{}, fmt.Errorf("invalid targetAmount: %s", config.TargetAmount)
	}

	return factoryConfigTuple{
		Name:                        config.Name,
		Symbol:                      config.Symbol,
		FeeRecipient:                common.HexToAddress(config.FeeRecipient),
		FinalTokenSupply:            finalSupply,
		AggressivenessFactor:        config.AggressivenessFactor,
		LpSplitRatioFeeRecipientBps: config.LpSplitRatioFeeRecipientBps,
		TargetAmount:                targetAmount,
		TradingToken:                common.HexToAddress(config.TradingToken),
		MigrationAdminAddress:       common.HexToAddress(config.MigrationAdminAddress),
		V4Hook:                      common.HexToAddress(config.V4Hook),
		V4PoolFee:                   new(big.Int).SetUint64(uint64(config.V4PoolFee)),
		V4TickSpacing:               big.NewInt(int64(config.V4TickSpacing)),
	}, nil
}

// GetBondkitTokenConfig reads back the config the factory stored for a token.
func (c *FactoryClient) GetBondkitTokenConfig(ctx context.Context, token common.Address) (*models.BondkitTokenConfig, error) {
	out, err := c.call(ctx, "getBondkitTokenConfig", token)
	if err != nil {
		return nil, err
	}

	// Tuple outputs unpack into an anonymous struct whose field names come
	// from the ABI component names; ConvertType copies it into ours.
	tuple := *abi.ConvertType(out[0], new(factoryConfigTuple)).(*factoryConfigTuple)

	return &models.BondkitTokenConfig{
		Name:                        tuple.Name,
		Symbol:                      tuple.Symbol,
		FeeRecipient:                tuple.FeeRecipient.Hex(),
		FinalTokenSupply:            tuple.FinalTokenSupply.String(),
		AggressivenessFactor:        tuple.AggressivenessFactor,
		LpSplitRatioFeeRecipientBps: tuple.LpSplitRatioFeeRecipientBps,
		TargetAmount:                tuple.TargetAmount.String(),
		TradingToken:                tuple.TradingToken.Hex(),
		MigrationAdminAddress:       tuple.MigrationAdminAddress.Hex(),
		V4Hook:                      tuple.V4Hook.Hex(),
		V4PoolFee:                   uint32(tuple.V4PoolFee.Uint64()),
		V4TickSpacing:               int32(tuple.V4TickSpacing.Int64()),
	}, nil
}

// GetDeployedBondkitTokens lists every token the factory has deployed.
func (c *FactoryClient) GetDeployedBondkitTokens(ctx context.Context) ([]common.Address, error) {
	out, err := c.call(ctx, "getDeployedBondkitTokens")
	if err != nil {
		return nil, err
	}
	return out[0].([]common.Address), nil
}

// GetOwner returns the factory owner.
func (c *FactoryClient) GetOwner(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// GetBondkitTokenImplementation returns the implementation address the
// factory clones for each deployment.
func (c *FactoryClient) GetBondkitTokenImplementation(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "bondkitTokenImplementation")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

func (c *FactoryClient) submit(ctx context.Context, data []byte) (common.Hash, error) {
	if c.provider != nil {
		return c.sendViaProvider(data)
	}

	nonce, err := c.backend.PendingNonceAt(ctx, c.account)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to fetch nonce: %w", err)
	}

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
	feeCap := new(big.Int).Add(new(big.Int).Mul(gasPrice, big.NewInt(2)), tip)

	gasLimit, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From: c.account,
		To:   &c.factoryAddress,
		Data: data,
	})
	if err != nil {
		log.Printf("Warning: gas estimation failed, using fallback limit %d: %v", fallbackGasLimit, err)
		gasLimit = fallbackGasLimit
	}

	if c.chainID == nil {
		chainID, err := c.backend.ChainID(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to fetch chain id: %w", err)
		}
		c.chainID = chainID
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gasLimit,
		To:        &c.factoryAddress,
		Data:      data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.privateKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return signed.Hash(), nil
}

func (c *FactoryClient) sendViaProvider(data []byte) (common.Hash, error) {
	res, err := c.provider.Request("eth_sendTransaction", map[string]any{
		"from": c.account.Hex(),
		"to":   c.factoryAddress.Hex(),
		"data": hexutil.Encode(data),
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("wallet rejected transaction: %w", err)
	}
	hashStr, ok := res.(string)
	if !ok {
		return common.Hash{}, fmt.Errorf("wallet returned unexpected response %T", res)
	}
	return common.HexToHash(hashStr), nil
}

func (c *FactoryClient) waitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
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
		c.sleep(c.pollInterval)
	}
}
