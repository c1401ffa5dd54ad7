package service

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"

	"disperser/internal/chain"
	"disperser/internal/domain"
)

type spenderFundsPair struct {
	balance   *big.Int
	allowance *big.Int
}

// CollectERC20 pulls fractions or fixed amounts from many spenders (via
// their pre-granted allowances) into one recipient. Each spender is
// validated independently against min(balance, allowance); the first
// violation fails the whole request with that spender's address.
func (s *Service) CollectERC20(ctx context.Context, req CollectERC20Request) (*DisperseCollectResponse, error) {
	spenders := req.Spenders.SortedAddresses()

	// Fan out one balance+allowance pair per spender; join all before any
	// amount is resolved. A single failed read fails the whole fetch - no
	// batch is ever computed from a partial snapshot.
	results := make([]spenderFundsPair, len(spenders))
	contract := s.node.ContractAddress()
	g, gctx := errgroup.WithContext(ctx)
	for i, owner := range spenders {
		g.Go(func() error {
			var err error
			results[i].balance, err = s.node.TokenBalance(gctx, req.Token, owner)
			return err
		})
		g.Go(func() error {
			var err error
			results[i].allowance, err = s.node.TokenAllowance(gctx, req.Token, owner, contract)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	amounts := make([]*big.Int, 0, len(spenders))
	for i, owner := range spenders {
		amount, err := req.Spenders[owner].Resolve(results[i].balance)
		if err != nil {
			return nil, err
		}
		available := minBig(results[i].balance, results[i].allowance)
		if amount.Cmp(available) > 0 {
			return nil, &domain.InsufficientFundsError{Required: amount, Available: available, Address: owner}
		}
		amounts = append(amounts, amount)
	}
	b := &batch{addresses: spenders, amounts: amounts}

	call, err := chain.CollectERC20Call(contract, req.Token, req.Recipient, b.addresses, b.amounts)
	if err != nil {
		return nil, &domain.UnexpectedError{Err: err}
	}

	txHash, err := s.node.SendAndConfirm(ctx, call, req.Caller)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("op", "collect-erc20").
		Str("caller", req.Caller.Hex()).
		Str("token", req.Token.Hex()).
		Str("recipient", req.Recipient.Hex()).
		Int("spenders", len(b.addresses)).
		Str("tx", txHash.Hex()).
		Msg("collected")

	transfers := b.transfers()
	s.journalize(ctx, "collect-erc20", req.Caller, &req.Token, txHash, transfers)
	return &DisperseCollectResponse{TxHash: txHash, Transfers: transfers}, nil
}
