package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"marketmind/internal/domain"
)

const erc20ABI = `[
	{"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

const nativeDecimals = 18

// EVMAdapter executes balance lookups and transfers against an
// EVM-compatible network over JSON-RPC.
type EVMAdapter struct {
	client       *ethclient.Client
	chainID      *big.Int
	privateKey   *ecdsa.PrivateKey
	nativeSymbol string
	erc20        abi.ABI
}

// NewEVMAdapter connects to the RPC endpoint and prepares the signing key.
// privateKeyHex may be empty: balance reads still work, but execution
// returns a ConfigurationError until a key is configured.
func NewEVMAdapter(rpcURL, chainIDStr, privateKeyHex string) (*EVMAdapter, error) {
	if rpcURL == "" {
		return nil, &domain.ConfigurationError{Setting: "EVM_RPC_URL"}
	}

	chainID, ok := new(big.Int).SetString(chainIDStr, 10)
	if !ok {
		return nil, fmt.Errorf("invalid EVM chain ID: %s", chainIDStr)
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to EVM RPC: %w", err)
	}

	var privateKey *ecdsa.PrivateKey
	if privateKeyHex != "" {
		privateKey, err = crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid EVM private key: %w", err)
		}
	}

	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC-20 ABI: %w", err)
	}

	return &EVMAdapter{
		client:       client,
		chainID:      chainID,
		privateKey:   privateKey,
		nativeSymbol: "ETH",
		erc20:        parsed,
	}, nil
}

// Chain returns the chain tag this adapter serves
func (a *EVMAdapter) Chain() string {
	return domain.ChainEVM
}

// IsValidAddress checks hex address syntax
func (a *EVMAdapter) IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

// GetBalance fetches the native balance when tokenRef is empty, or the
// ERC-20 balance of the referenced contract otherwise.
func (a *EVMAdapter) GetBalance(ctx context.Context, address, tokenRef string) (*domain.Balance, error) {
	if !a.IsValidAddress(address) {
		return nil, fmt.Errorf("invalid EVM address: %s", address)
	}

	if tokenRef == "" {
		wei, err := a.client.BalanceAt(ctx, common.HexToAddress(address), nil)
		if err != nil {
			return nil, &domain.UpstreamError{Provider: "evm-rpc", Err: err}
		}
		return &domain.Balance{
			Amount:   wei.String(),
			Symbol:   a.nativeSymbol,
			Decimals: nativeDecimals,
		}, nil
	}

	if !a.IsValidAddress(tokenRef) {
		return nil, fmt.Errorf("invalid token contract address: %s", tokenRef)
	}
	token := common.HexToAddress(tokenRef)

	raw, err := a.callUint256(ctx, token, "balanceOf", common.HexToAddress(address))
	if err != nil {
		return nil, err
	}

	decimals, err := a.tokenDecimals(ctx, token)
	if err != nil {
		return nil, err
	}

	symbol, err := a.tokenSymbol(ctx, token)
	if err != nil {
		return nil, err
	}

	return &domain.Balance{
		Amount:   raw.String(),
		Symbol:   symbol,
		Decimals: decimals,
	}, nil
}

// ExecuteTransaction signs and submits a native or ERC-20 transfer and
// waits for the receipt. Returns the transaction hash.
func (a *EVMAdapter) ExecuteTransaction(ctx context.Context, tx domain.TxData) (string, error) {
	if a.privateKey == nil {
		return "", &domain.ConfigurationError{Setting: "EVM_PRIVATE_KEY"}
	}
	if !a.IsValidAddress(tx.To) {
		return "", fmt.Errorf("invalid recipient address: %s", tx.To)
	}

	from := crypto.PubkeyToAddress(a.privateKey.PublicKey)
	to := common.HexToAddress(tx.To)

	var (
		value   *big.Int
		data    []byte
		callTo  common.Address
		callVal *big.Int
	)

	if tx.TokenRef == "" {
		value = toBaseUnits(tx.Amount, nativeDecimals)
		callTo = to
		callVal = value
	} else {
		if !a.IsValidAddress(tx.TokenRef) {
			return "", fmt.Errorf("invalid token contract address: %s", tx.TokenRef)
		}
		token := common.HexToAddress(tx.TokenRef)
		decimals, err := a.tokenDecimals(ctx, token)
		if err != nil {
			return "", err
		}
		data, err = a.erc20.Pack("transfer", to, toBaseUnits(tx.Amount, decimals))
		if err != nil {
			return "", fmt.Errorf("failed to pack transfer call: %w", err)
		}
		value = big.NewInt(0)
		callTo = token
		callVal = big.NewInt(0)
	}

	nonce, err := a.client.PendingNonceAt(ctx, from)
	if err != nil {
		return "", &domain.UpstreamError{Provider: "evm-rpc", Err: fmt.Errorf("failed to get nonce: %w", err)}
	}

	gasPrice, err := a.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", &domain.UpstreamError{Provider: "evm-rpc", Err: fmt.Errorf("failed to get gas price: %w", err)}
	}

	// Estimating gas also validates the transfer won't revert
	estimatedGas, err := a.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &callTo,
		Value: callVal,
		Data:  data,
	})
	if err != nil {
		return "", fmt.Errorf("transfer would revert: %w", err)
	}
	gasLimit := estimatedGas * 120 / 100 // 20% safety margin

	rawTx := types.NewTransaction(nonce, callTo, value, gasLimit, gasPrice, data)

	signer := types.NewEIP155Signer(a.chainID)
	signedTx, err := types.SignTx(rawTx, signer, a.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := a.client.SendTransaction(ctx, signedTx); err != nil {
		return "", &domain.UpstreamError{Provider: "evm-rpc", Err: fmt.Errorf("failed to send transaction: %w", err)}
	}

	txHash := signedTx.Hash()

	receiptCtx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	receipt, err := a.waitForReceipt(receiptCtx, txHash)
	if err != nil {
		return "", fmt.Errorf("failed to get transaction receipt for %s: %w", txHash.Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", fmt.Errorf("transaction %s reverted", txHash.Hex())
	}

	return txHash.Hex(), nil
}

// waitForReceipt polls for the transaction receipt
func (a *EVMAdapter) waitForReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			receipt, err := a.client.TransactionReceipt(ctx, txHash)
			if err == nil {
				return receipt, nil
			}
			// Keep polling until the receipt appears or the context expires
		}
	}
}

func (a *EVMAdapter) callUint256(ctx context.Context, contract common.Address, method string, args ...interface{}) (*big.Int, error) {
	data, err := a.erc20.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	result, err := a.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: "evm-rpc", Err: fmt.Errorf("failed to call %s: %w", method, err)}
	}

	var out *big.Int
	if err := a.erc20.UnpackIntoInterface(&out, method, result); err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return out, nil
}

func (a *EVMAdapter) tokenDecimals(ctx context.Context, contract common.Address) (int, error) {
	data, err := a.erc20.Pack("decimals")
	if err != nil {
		return 0, fmt.Errorf("failed to pack decimals call: %w", err)
	}

	result, err := a.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return 0, &domain.UpstreamError{Provider: "evm-rpc", Err: fmt.Errorf("failed to call decimals: %w", err)}
	}

	var decimals uint8
	if err := a.erc20.UnpackIntoInterface(&decimals, "decimals", result); err != nil {
		return 0, fmt.Errorf("failed to unpack decimals result: %w", err)
	}
	return int(decimals), nil
}

func (a *EVMAdapter) tokenSymbol(ctx context.Context, contract common.Address) (string, error) {
	data, err := a.erc20.Pack("symbol")
	if err != nil {
		return "", fmt.Errorf("failed to pack symbol call: %w", err)
	}

	result, err := a.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return "", &domain.UpstreamError{Provider: "evm-rpc", Err: fmt.Errorf("failed to call symbol: %w", err)}
	}

	var symbol string
	if err := a.erc20.UnpackIntoInterface(&symbol, "symbol", result); err != nil {
		return "", fmt.Errorf("failed to unpack symbol result: %w", err)
	}
	return symbol, nil
}

// toBaseUnits converts a human amount into the asset's smallest unit
func toBaseUnits(amount float64, decimals int) *big.Int {
	scaled := new(big.Float).Mul(
		big.NewFloat(amount),
		new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)),
	)
	out, _ := scaled.Int(nil)
	return out
}
