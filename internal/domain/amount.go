package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Amount is an unsigned 256-bit integer. It decodes from a JSON decimal
// string or a plain JSON number and always encodes as a decimal string,
// so values above 2^53 survive JavaScript callers.
type Amount big.Int

// NewAmount copies v into an Amount.
func NewAmount(v *big.Int) *Amount {
	return (*Amount)(new(big.Int).Set(v))
}

// AmountFromUint64 is a convenience constructor, mostly for tests.
func AmountFromUint64(v uint64) *Amount {
	return (*Amount)(new(big.Int).SetUint64(v))
}

// BigInt exposes the underlying integer. Callers must not mutate it.
func (a *Amount) BigInt() *big.Int {
	return (*big.Int)(a)
}

func (a *Amount) String() string {
	if a == nil {
		return "0"
	}
	return (*big.Int)(a).String()
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 0 && s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("invalid amount %q", s)
	}
	if v.Sign() < 0 {
		return fmt.Errorf("amount %s must not be negative", v)
	}
	if v.BitLen() > 256 {
		return fmt.Errorf("amount %s exceeds 256 bits", v)
	}
	*a = Amount(*v)
	return nil
}

func (a *Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// FractionalAmount requests fraction/units of a reference balance.
type FractionalAmount struct {
	Fraction *Amount
	Units    *Amount
}

func (f FractionalAmount) String() string {
	return f.Fraction.String() + "/" + f.Units.String()
}

// DefaultUnits applies when a fraction omits its units, making a bare
// {fraction: n} read as n percent.
const DefaultUnits = 100

// FractionOrAmount is the request-side union: either a fixed {amount} or a
// {fraction, units?} share of a reference balance. Exactly one variant is
// set after a successful decode.
type FractionOrAmount struct {
	Amount   *Amount
	Fraction *FractionalAmount
}

// FixedAmount builds the fixed-amount variant.
func FixedAmount(v *big.Int) FractionOrAmount {
	return FractionOrAmount{Amount: NewAmount(v)}
}

// Fractional builds the fraction variant.
func Fractional(fraction, units uint64) FractionOrAmount {
	return FractionOrAmount{Fraction: &FractionalAmount{
		Fraction: AmountFromUint64(fraction),
		Units:    AmountFromUint64(units),
	}}
}

func (f *FractionOrAmount) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount   *Amount `json:"amount"`
		Fraction *Amount `json:"fraction"`
		Units    *Amount `json:"units"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Amount != nil && raw.Fraction == nil && raw.Units == nil:
		f.Amount = raw.Amount
		f.Fraction = nil
	case raw.Fraction != nil && raw.Amount == nil:
		units := raw.Units
		if units == nil {
			units = AmountFromUint64(DefaultUnits)
		}
		f.Amount = nil
		f.Fraction = &FractionalAmount{Fraction: raw.Fraction, Units: units}
	default:
		return fmt.Errorf("amount spec must be either {amount} or {fraction, units?}")
	}
	return nil
}

func (f FractionOrAmount) MarshalJSON() ([]byte, error) {
	if f.Amount != nil {
		return json.Marshal(struct {
			Amount *Amount `json:"amount"`
		}{f.Amount})
	}
	return json.Marshal(struct {
		Fraction *Amount `json:"fraction"`
		Units    *Amount `json:"units"`
	}{f.Fraction.Fraction, f.Fraction.Units})
}

// Resolve converts the spec into an absolute amount against the given
// reference balance. A fixed amount passes through unchanged, zero
// included. A fraction resolves to floor(fraction*reference/units); zero
// units, a product wider than 256 bits, or a zero result fail with
// InvalidFractionalAmountError. Resolution never checks the result against
// the reference; that is the validator's job.
func (f FractionOrAmount) Resolve(reference *big.Int) (*big.Int, error) {
	if f.Amount != nil {
		return new(big.Int).Set(f.Amount.BigInt()), nil
	}
	fr := f.Fraction
	if fr == nil {
		return nil, fmt.Errorf("empty amount spec")
	}
	if fr.Units.BigInt().Sign() == 0 {
		return nil, &InvalidFractionalAmountError{Spec: *fr}
	}
	product := new(big.Int).Mul(reference, fr.Fraction.BigInt())
	if product.BitLen() > 256 {
		return nil, &InvalidFractionalAmountError{Spec: *fr}
	}
	amount := product.Quo(product, fr.Units.BigInt())
	if amount.Sign() == 0 {
		return nil, &InvalidFractionalAmountError{Spec: *fr}
	}
	return amount, nil
}
