package domain

import (
	"bytes"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// RecipientMap maps addresses to requested fractions or amounts. JSON keys
// are hex addresses. The map itself is unordered; canonical iteration goes
// through SortedAddresses so identical requests always produce identical
// batch orderings.
type RecipientMap map[common.Address]FractionOrAmount

// SortedAddresses returns the keys in ascending byte order.
func (m RecipientMap) SortedAddresses() []common.Address {
	addrs := make([]common.Address, 0, len(m))
	for addr := range m {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
	return addrs
}

// TransferMap maps addresses to resolved absolute amounts. It is part of
// every disperse/collect response.
type TransferMap map[common.Address]*Amount

// ZipTransfers rebuilds the response map from the parallel call sequences.
// Both slices must be the same length.
func ZipTransfers(addresses []common.Address, amounts []*big.Int) TransferMap {
	m := make(TransferMap, len(addresses))
	for i, addr := range addresses {
		m[addr] = NewAmount(amounts[i])
	}
	return m
}
