package chain

import (
	"bytes"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"disperser/internal/domain"
)

// Registry holds the local signing keys the API may send from, indexed by
// the address each key controls.
type Registry struct {
	keys map[common.Address]*ecdsa.PrivateKey
}

// NewRegistry parses a list of hex-encoded private keys. Empty entries are
// skipped; at least one valid key is required.
func NewRegistry(hexKeys []string) (*Registry, error) {
	keys := make(map[common.Address]*ecdsa.PrivateKey, len(hexKeys))
	for _, raw := range hexKeys {
		raw = strings.TrimPrefix(strings.TrimSpace(raw), "0x")
		if raw == "" {
			continue
		}
		key, err := crypto.HexToECDSA(raw)
		if err != nil {
			return nil, fmt.Errorf("parse signer key: %w", err)
		}
		keys[crypto.PubkeyToAddress(key.PublicKey)] = key
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one signer key is required")
	}
	return &Registry{keys: keys}, nil
}

// Has reports whether a key is configured for the address.
func (r *Registry) Has(addr common.Address) bool {
	_, ok := r.keys[addr]
	return ok
}

// Addresses lists the controlled addresses in ascending order, for startup
// logging.
func (r *Registry) Addresses() []common.Address {
	addrs := make([]common.Address, 0, len(r.keys))
	for addr := range r.keys {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
	return addrs
}

// SignTx signs the transaction with the key controlling from.
func (r *Registry) SignTx(from common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	key, ok := r.keys[from]
	if !ok {
		return nil, &domain.SignerNotFoundError{Address: from}
	}
	return types.SignTx(tx, types.NewLondonSigner(chainID), key)
}
