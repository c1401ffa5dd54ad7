package domain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// InsufficientFundsError reports a resolved amount (or aggregate of
// amounts) that exceeds the available balance or allowance ceiling.
type InsufficientFundsError struct {
	Required  *big.Int
	Available *big.Int
	Address   common.Address
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for address %s, required: %s, available: %s, check balance or allowance",
		e.Address.Hex(), e.Required, e.Available)
}

// InvalidFractionalAmountError reports a fraction spec that cannot resolve
// to a usable amount: zero units, 256-bit overflow, or a zero result.
type InvalidFractionalAmountError struct {
	Spec FractionalAmount
}

func (e *InvalidFractionalAmountError) Error() string {
	return fmt.Sprintf("fraction %s results in invalid or zero amount for corresponding balance", e.Spec)
}

// TokenNotFoundError means no ERC20-compatible contract answered at the
// given address, as opposed to the node being unreachable.
type TokenNotFoundError struct {
	Token common.Address
}

func (e *TokenNotFoundError) Error() string {
	return fmt.Sprintf("erc20 not found at address: %s", e.Token.Hex())
}

// SignerNotFoundError means no signing key is configured for the address a
// transaction should be sent from.
type SignerNotFoundError struct {
	Address common.Address
}

func (e *SignerNotFoundError) Error() string {
	return fmt.Sprintf("no signer found for %s", e.Address.Hex())
}

// TransportError wraps a failure to communicate with the node.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("error communicating with node: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedError wraps anything outside the taxonomy.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// ClientFault reports whether the error is caller-fixable and its message
// safe to return verbatim. Transport and unexpected failures are not; they
// surface as opaque server errors with the detail kept in the log.
func ClientFault(err error) bool {
	var (
		insufficient *InsufficientFundsError
		fraction     *InvalidFractionalAmountError
		token        *TokenNotFoundError
		signer       *SignerNotFoundError
	)
	return errors.As(err, &insufficient) ||
		errors.As(err, &fraction) ||
		errors.As(err, &token) ||
		errors.As(err, &signer)
}
