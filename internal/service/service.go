// Package service implements the four value-distribution operations:
// disperse-ETH, disperse-ERC20, collect-ERC20 and single transfer/approve.
// Each is a fixed linear pipeline: fetch reference balances, resolve and
// validate amounts, assemble the batch, submit. Every failure is terminal
// for the request; there are no retries.
package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"disperser/internal/chain"
	"disperser/internal/domain"
)

// ChainClient is the slice of the chain node the operations depend on.
// *chain.Node implements it; tests substitute a fake.
type ChainClient interface {
	Balance(ctx context.Context, addr common.Address) (*big.Int, error)
	TokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error)
	TokenAllowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	ContractAddress() common.Address
	SendAndConfirm(ctx context.Context, call chain.CallSpec, from common.Address) (common.Hash, error)
}

// Service wires the operations to a chain client and an optional
// submitted-transaction journal.
type Service struct {
	node    ChainClient
	journal domain.TxJournal
	log     zerolog.Logger
}

// New builds a Service. journal may be nil.
func New(node ChainClient, journal domain.TxJournal, log zerolog.Logger) *Service {
	return &Service{node: node, journal: journal, log: log}
}

// Transactions lists the most recently journaled submissions. Without a
// configured journal the list is empty.
func (s *Service) Transactions(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if s.journal == nil {
		return []domain.JournalEntry{}, nil
	}
	entries, err := s.journal.Recent(ctx, limit)
	if err != nil {
		return nil, &domain.UnexpectedError{Err: err}
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, nil
}

// journalize records a successful submission. Journal failures are logged
// and swallowed; the transaction is already on chain.
func (s *Service) journalize(ctx context.Context, op string, caller common.Address, token *common.Address, txHash common.Hash, transfers domain.TransferMap) {
	if s.journal == nil {
		return
	}
	err := s.journal.Record(ctx, domain.SubmittedTx{
		Operation: op,
		Caller:    caller,
		Token:     token,
		TxHash:    txHash,
		Transfers: transfers,
	})
	if err != nil {
		s.log.Error().Err(err).Str("op", op).Str("tx", txHash.Hex()).Msg("journal write failed")
	}
}
