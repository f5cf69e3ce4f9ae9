package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/anocare/anocare/internal/logging"
)

// registryABI covers the three contract entry points this service uses.
const registryABI = `[
	{"type":"function","name":"isAdmin","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getAdmins","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"}],"outputs":[]}
]`

// EthRegistry implements Registry against an EVM JSON-RPC endpoint.
type EthRegistry struct {
	client   *ethclient.Client
	abi      abi.ABI
	contract ethcommon.Address
	operator *ecdsa.PrivateKey // signs mint transactions; nil for read-only use
	chainID  *big.Int
	log      logging.Logger
}

// NewEthRegistry dials the RPC endpoint and prepares the contract binding.
// operatorKeyHex may be empty, in which case Mint is unavailable.
func NewEthRegistry(ctx context.Context, rpcURL, contractAddr, operatorKeyHex string, chainID int64, log logging.Logger) (*EthRegistry, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("rpc dial: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(registryABI))
	if err != nil {
		return nil, fmt.Errorf("abi parse: %w", err)
	}

	r := &EthRegistry{
		client:   client,
		abi:      parsed,
		contract: ethcommon.HexToAddress(contractAddr),
		chainID:  big.NewInt(chainID),
		log:      log.With("module", "chain"),
	}

	if operatorKeyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(operatorKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("operator key: %w", err)
		}
		r.operator = key
	}

	return r, nil
}

func (r *EthRegistry) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := r.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	out, err := r.client.CallContract(ctx, ethereum.CallMsg{To: &r.contract, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	res, err := r.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}

	return res, nil
}

func (r *EthRegistry) IsAdmin(ctx context.Context, address string) (bool, error) {
	res, err := r.call(ctx, "isAdmin", ethcommon.HexToAddress(address))
	if err != nil {
		return false, err
	}

	ok, valid := res[0].(bool)
	if !valid {
		return false, fmt.Errorf("isAdmin: unexpected return type %T", res[0])
	}
	return ok, nil
}

func (r *EthRegistry) Admins(ctx context.Context) ([]string, error) {
	res, err := r.call(ctx, "getAdmins")
	if err != nil {
		return nil, err
	}

	addrs, valid := res[0].([]ethcommon.Address)
	if !valid {
		return nil, fmt.Errorf("getAdmins: unexpected return type %T", res[0])
	}

	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = strings.ToLower(a.Hex())
	}
	return out, nil
}

func (r *EthRegistry) Mint(ctx context.Context, to string, idempotencyKey string) (string, error) {
	if r.operator == nil {
		return "", fmt.Errorf("mint: no operator key configured")
	}

	data, err := r.abi.Pack("mint", ethcommon.HexToAddress(to))
	if err != nil {
		return "", fmt.Errorf("pack mint: %w", err)
	}

	from := crypto.PubkeyToAddress(r.operator.PublicKey)

	nonce, err := r.client.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}

	gasPrice, err := r.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("gas price: %w", err)
	}

	gas, err := r.client.EstimateGas(ctx, ethereum.CallMsg{
		From: from,
		To:   &r.contract,
		Data: data,
	})
	if err != nil {
		return "", fmt.Errorf("gas estimate: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &r.contract,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(r.chainID), r.operator)
	if err != nil {
		return "", fmt.Errorf("sign mint: %w", err)
	}

	if err := r.client.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("send mint: %w", err)
	}

	hash := signed.Hash().Hex()
	r.log.Info(ctx, "mint submitted", "to", to, "tx", hash, "idempotency_key", idempotencyKey)

	return hash, nil
}
