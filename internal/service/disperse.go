package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"disperser/internal/chain"
	"disperser/internal/domain"
)

// DisperseETH sends fractions or fixed amounts of the caller's native
// balance to many recipients in one batched transaction.
func (s *Service) DisperseETH(ctx context.Context, req DisperseETHRequest) (*DisperseCollectResponse, error) {
	balance, err := s.node.Balance(ctx, req.Caller)
	if err != nil {
		return nil, err
	}

	b, err := buildDisperseBatch(req.Caller, balance, req.Recipients)
	if err != nil {
		return nil, err
	}

	call, err := chain.DisperseETHCall(s.node.ContractAddress(), b.addresses, b.amounts)
	if err != nil {
		return nil, &domain.UnexpectedError{Err: err}
	}

	txHash, err := s.node.SendAndConfirm(ctx, call, req.Caller)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("op", "disperse-eth").
		Str("caller", req.Caller.Hex()).
		Int("recipients", len(b.addresses)).
		Str("tx", txHash.Hex()).
		Msg("dispersed")

	transfers := b.transfers()
	s.journalize(ctx, "disperse-eth", req.Caller, nil, txHash, transfers)
	return &DisperseCollectResponse{TxHash: txHash, Transfers: transfers}, nil
}

// DisperseERC20 distributes a spender's tokens to many recipients. The
// spender must have approved the disperse contract; the effective ceiling
// is min(balance, allowance) and an aggregate overdraw is attributed to
// the spender's address.
func (s *Service) DisperseERC20(ctx context.Context, req DisperseERC20Request) (*DisperseCollectResponse, error) {
	balance, allowance, err := s.spenderFunds(ctx, req.Token, req.Spender)
	if err != nil {
		return nil, err
	}
	available := minBig(balance, allowance)

	b, err := buildDisperseBatch(req.Spender, available, req.Recipients)
	if err != nil {
		return nil, err
	}

	call, err := chain.DisperseERC20Call(s.node.ContractAddress(), req.Spender, req.Token, b.addresses, b.amounts)
	if err != nil {
		return nil, &domain.UnexpectedError{Err: err}
	}

	txHash, err := s.node.SendAndConfirm(ctx, call, req.Caller)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("op", "disperse-erc20").
		Str("caller", req.Caller.Hex()).
		Str("token", req.Token.Hex()).
		Int("recipients", len(b.addresses)).
		Str("tx", txHash.Hex()).
		Msg("dispersed")

	transfers := b.transfers()
	s.journalize(ctx, "disperse-erc20", req.Caller, &req.Token, txHash, transfers)
	return &DisperseCollectResponse{TxHash: txHash, Transfers: transfers}, nil
}

// spenderFunds fetches one balance/allowance pair concurrently. Both reads
// must succeed before any amount is resolved against them.
func (s *Service) spenderFunds(ctx context.Context, token, owner common.Address) (balance, allowance *big.Int, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		balance, err = s.node.TokenBalance(gctx, token, owner)
		return err
	})
	g.Go(func() error {
		var err error
		allowance, err = s.node.TokenAllowance(gctx, token, owner, s.node.ContractAddress())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return balance, allowance, nil
}
