package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"disperser/internal/chain"
	"disperser/internal/domain"
)

// Transfer sends a fraction or fixed amount of the caller's balance to one
// recipient: native currency when no token is given, token.transfer
// otherwise.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (*TransactionResponse, error) {
	if req.Token != nil {
		return s.transferERC20(ctx, req, *req.Token)
	}
	return s.transferETH(ctx, req)
}

func (s *Service) transferETH(ctx context.Context, req TransferRequest) (*TransactionResponse, error) {
	balance, err := s.node.Balance(ctx, req.Caller)
	if err != nil {
		return nil, err
	}
	amount, err := req.Value.Resolve(balance)
	if err != nil {
		return nil, err
	}
	if amount.Cmp(balance) > 0 {
		return nil, &domain.InsufficientFundsError{Required: amount, Available: balance, Address: req.Caller}
	}

	txHash, err := s.node.SendAndConfirm(ctx, chain.ETHTransferCall(req.Recipient, amount), req.Caller)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("op", "transfer").
		Str("caller", req.Caller.Hex()).
		Str("recipient", req.Recipient.Hex()).
		Str("tx", txHash.Hex()).
		Msg("transferred")

	s.journalize(ctx, "transfer", req.Caller, nil, txHash, domain.TransferMap{req.Recipient: domain.NewAmount(amount)})
	return &TransactionResponse{TxHash: txHash}, nil
}

func (s *Service) transferERC20(ctx context.Context, req TransferRequest, token common.Address) (*TransactionResponse, error) {
	balance, err := s.node.TokenBalance(ctx, token, req.Caller)
	if err != nil {
		return nil, err
	}
	amount, err := req.Value.Resolve(balance)
	if err != nil {
		return nil, err
	}
	if amount.Cmp(balance) > 0 {
		return nil, &domain.InsufficientFundsError{Required: amount, Available: balance, Address: req.Caller}
	}

	call, err := chain.ERC20TransferCall(token, req.Recipient, amount)
	if err != nil {
		return nil, &domain.UnexpectedError{Err: err}
	}
	txHash, err := s.node.SendAndConfirm(ctx, call, req.Caller)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("op", "transfer").
		Str("caller", req.Caller.Hex()).
		Str("recipient", req.Recipient.Hex()).
		Str("token", token.Hex()).
		Str("tx", txHash.Hex()).
		Msg("transferred")

	s.journalize(ctx, "transfer", req.Caller, &token, txHash, domain.TransferMap{req.Recipient: domain.NewAmount(amount)})
	return &TransactionResponse{TxHash: txHash}, nil
}

// Approve grants the spender an allowance over the caller's tokens. The
// amount resolves against the caller's current token balance, so a
// fraction reads as "approve this share of what I hold now". No funds
// validation: an approval moves nothing.
func (s *Service) Approve(ctx context.Context, req ApproveRequest) (*TransactionResponse, error) {
	balance, err := s.node.TokenBalance(ctx, req.Token, req.Caller)
	if err != nil {
		return nil, err
	}
	amount, err := req.Amount.Resolve(balance)
	if err != nil {
		return nil, err
	}

	call, err := chain.ERC20ApproveCall(req.Token, req.Spender, amount)
	if err != nil {
		return nil, &domain.UnexpectedError{Err: err}
	}
	txHash, err := s.node.SendAndConfirm(ctx, call, req.Caller)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("op", "approve").
		Str("caller", req.Caller.Hex()).
		Str("spender", req.Spender.Hex()).
		Str("token", req.Token.Hex()).
		Str("tx", txHash.Hex()).
		Msg("approved")

	s.journalize(ctx, "approve", req.Caller, &req.Token, txHash, domain.TransferMap{req.Spender: domain.NewAmount(amount)})
	return &TransactionResponse{TxHash: txHash}, nil
}
