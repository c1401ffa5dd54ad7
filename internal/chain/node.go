// Package chain wraps a single EVM endpoint behind the reads and the
// simulate-then-send submission path the disperse/collect operations need.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/ethclient/gethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"

	"disperser/internal/domain"
)

// Node talks to one EVM node: balance/allowance reads for the resolver and
// validator, and transaction submission for the assembled batches.
type Node struct {
	eth      *ethclient.Client
	geth     *gethclient.Client
	signers  *Registry
	contract common.Address
	confirm  time.Duration
	log      zerolog.Logger

	chainOnce sync.Once
	chainID   *big.Int
	chainErr  error
}

// Dial connects to the RPC endpoint. contract is the DisperseCollect
// deployment every batched call targets.
func Dial(ctx context.Context, rpcURL string, signers *Registry, contract common.Address, confirmTimeout time.Duration, log zerolog.Logger) (*Node, error) {
	rc, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	return &Node{
		eth:      ethclient.NewClient(rc),
		geth:     gethclient.New(rc),
		signers:  signers,
		contract: contract,
		confirm:  confirmTimeout,
		log:      log,
	}, nil
}

// Close releases the underlying RPC connection.
func (n *Node) Close() {
	n.eth.Close()
}

// ContractAddress returns the DisperseCollect deployment address. It is
// also the spender the API checks ERC20 allowances against.
func (n *Node) ContractAddress() common.Address {
	return n.contract
}

// Balance returns the native balance at the latest block.
func (n *Node) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	balance, err := n.eth.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}
	return balance, nil
}

// TokenBalance returns token.balanceOf(owner).
func (n *Node) TokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	return n.callUint256(ctx, token, "balanceOf", owner)
}

// TokenAllowance returns token.allowance(owner, spender).
func (n *Node) TokenAllowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	return n.callUint256(ctx, token, "allowance", owner, spender)
}

func (n *Node) callUint256(ctx context.Context, token common.Address, method string, args ...interface{}) (*big.Int, error) {
	data, err := erc20.Pack(method, args...)
	if err != nil {
		return nil, &domain.UnexpectedError{Err: err}
	}
	out, err := n.eth.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, n.classifyTokenErr(ctx, token, err)
	}
	if len(out) == 0 {
		// eth_call against an address with no code succeeds with empty
		// returndata instead of failing
		return nil, n.classifyTokenErr(ctx, token, nil)
	}
	values, err := erc20.Unpack(method, out)
	if err != nil {
		return nil, &domain.TokenNotFoundError{Token: token}
	}
	amount, ok := values[0].(*big.Int)
	if !ok {
		return nil, &domain.UnexpectedError{Err: fmt.Errorf("%s returned %T, want *big.Int", method, values[0])}
	}
	return amount, nil
}

// classifyTokenErr distinguishes a missing or incompatible token contract
// from a node fault: no code at the address, or a codeful address that
// produced no returndata, means the token is not deployed there.
func (n *Node) classifyTokenErr(ctx context.Context, token common.Address, callErr error) error {
	code, codeErr := n.eth.CodeAt(ctx, token, nil)
	if codeErr != nil {
		if callErr != nil {
			return &domain.TransportError{Err: callErr}
		}
		return &domain.TransportError{Err: codeErr}
	}
	if len(code) == 0 || callErr == nil {
		return &domain.TokenNotFoundError{Token: token}
	}
	return &domain.TransportError{Err: callErr}
}

// SendAndConfirm signs and submits the call from the given address and
// waits for on-chain inclusion. The signer check runs before any network
// round-trip so an unsendable transaction costs nothing. Metadata is
// filled via simulate-then-send: the node computes an access list for the
// prepared call, which is attached before signing.
func (n *Node) SendAndConfirm(ctx context.Context, call CallSpec, from common.Address) (common.Hash, error) {
	if !n.signers.Has(from) {
		return common.Hash{}, &domain.SignerNotFoundError{Address: from}
	}

	chainID, err := n.cachedChainID(ctx)
	if err != nil {
		return common.Hash{}, &domain.TransportError{Err: err}
	}
	nonce, err := n.eth.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, &domain.TransportError{Err: err}
	}
	tipCap, err := n.eth.SuggestGasTipCap(ctx)
	if err != nil {
		return common.Hash{}, &domain.TransportError{Err: err}
	}
	head, err := n.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, &domain.TransportError{Err: err}
	}
	feeCap := new(big.Int).Set(tipCap)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	msg := ethereum.CallMsg{From: from, To: &call.To, Value: call.Value, Data: call.Data}
	gas, err := n.eth.EstimateGas(ctx, msg)
	if err != nil {
		return common.Hash{}, &domain.TransportError{Err: err}
	}
	accessList, accessGas, vmErr, err := n.geth.CreateAccessList(ctx, msg)
	if err != nil {
		return common.Hash{}, &domain.TransportError{Err: err}
	}
	if vmErr != "" {
		return common.Hash{}, &domain.UnexpectedError{Err: fmt.Errorf("simulation reverted: %s", vmErr)}
	}
	if accessGas > gas {
		gas = accessGas
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:    chainID,
		Nonce:      nonce,
		GasTipCap:  tipCap,
		GasFeeCap:  feeCap,
		Gas:        gas,
		To:         &call.To,
		Value:      call.Value,
		Data:       call.Data,
		AccessList: *accessList,
	})
	signed, err := n.signers.SignTx(from, tx, chainID)
	if err != nil {
		var notFound *domain.SignerNotFoundError
		if errors.As(err, &notFound) {
			return common.Hash{}, err
		}
		return common.Hash{}, &domain.UnexpectedError{Err: err}
	}

	if err := n.eth.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, &domain.TransportError{Err: err}
	}
	n.log.Debug().
		Str("tx", signed.Hash().Hex()).
		Str("from", from.Hex()).
		Uint64("gas", gas).
		Msg("transaction sent, awaiting inclusion")

	waitCtx, cancel := context.WithTimeout(ctx, n.confirm)
	defer cancel()
	receipt, err := bind.WaitMined(waitCtx, n.eth, signed)
	if err != nil {
		return common.Hash{}, &domain.TransportError{Err: err}
	}
	return receipt.TxHash, nil
}

func (n *Node) cachedChainID(ctx context.Context) (*big.Int, error) {
	n.chainOnce.Do(func() {
		n.chainID, n.chainErr = n.eth.ChainID(ctx)
	})
	return n.chainID, n.chainErr
}
