package service

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"disperser/internal/domain"
)

// batch holds the parallel address/amount sequences for one contract call.
// The two slices are always the same length and zip back into the response
// transfer map.
type batch struct {
	addresses []common.Address
	amounts   []*big.Int
}

func (b *batch) transfers() domain.TransferMap {
	return domain.ZipTransfers(b.addresses, b.amounts)
}

// buildDisperseBatch resolves every entry against the shared reference
// balance, validates the aggregate against it (aggregate mode: one sender,
// one ceiling) and assembles the call sequences in ascending address
// order. The insufficient-funds error is attributed to the sender whose
// balance backs the batch.
func buildDisperseBatch(sender common.Address, available *big.Int, recipients domain.RecipientMap) (*batch, error) {
	addresses := recipients.SortedAddresses()
	amounts := make([]*big.Int, 0, len(addresses))
	sum := new(big.Int)
	for _, addr := range addresses {
		amount, err := recipients[addr].Resolve(available)
		if err != nil {
			return nil, err
		}
		sum.Add(sum, amount)
		amounts = append(amounts, amount)
	}
	if sum.Cmp(available) > 0 {
		return nil, &domain.InsufficientFundsError{Required: sum, Available: available, Address: sender}
	}
	return &batch{addresses: addresses, amounts: amounts}, nil
}

func minBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}
