package domain

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"
)

func TestResolveFractionFloors(t *testing.T) {
	spec := Fractional(110, 1000)

	got, err := spec.Resolve(big.NewInt(100))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Cmp(big.NewInt(11)) != 0 {
		t.Fatalf("expected 11, got %s", got)
	}
}

func TestResolveFractionRejectsZeroResult(t *testing.T) {
	// 1% of 10 floors to 0, which must not silently become a no-op transfer
	spec := Fractional(1, 100)

	_, err := spec.Resolve(big.NewInt(10))
	var invalid *InvalidFractionalAmountError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFractionalAmountError, got %v", err)
	}
}

func TestResolveFractionRejectsZeroUnits(t *testing.T) {
	spec := Fractional(1, 0)

	_, err := spec.Resolve(big.NewInt(100))
	var invalid *InvalidFractionalAmountError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFractionalAmountError, got %v", err)
	}
}

func TestResolveFractionRejectsOverflow(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 200)
	spec := FractionOrAmount{Fraction: &FractionalAmount{
		Fraction: NewAmount(huge),
		Units:    AmountFromUint64(1),
	}}

	_, err := spec.Resolve(huge)
	var invalid *InvalidFractionalAmountError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFractionalAmountError, got %v", err)
	}
}

func TestResolveAmountPassesThrough(t *testing.T) {
	got, err := FixedAmount(big.NewInt(30)).Resolve(big.NewInt(1))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Cmp(big.NewInt(30)) != 0 {
		t.Fatalf("expected 30, got %s", got)
	}
}

func TestResolveAmountAllowsZero(t *testing.T) {
	// only fractional resolution rejects zero; an explicit 0 is accepted
	got, err := FixedAmount(big.NewInt(0)).Resolve(big.NewInt(100))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Sign() != 0 {
		t.Fatalf("expected 0, got %s", got)
	}
}

func TestFractionOrAmountDecodeAmountVariant(t *testing.T) {
	var spec FractionOrAmount
	if err := json.Unmarshal([]byte(`{"amount":"30"}`), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Amount == nil || spec.Fraction != nil {
		t.Fatalf("expected amount variant, got %+v", spec)
	}
	if spec.Amount.BigInt().Cmp(big.NewInt(30)) != 0 {
		t.Fatalf("expected 30, got %s", spec.Amount)
	}

	// plain JSON numbers are accepted too
	if err := json.Unmarshal([]byte(`{"amount":30}`), &spec); err != nil {
		t.Fatalf("decode number: %v", err)
	}
	if spec.Amount.BigInt().Cmp(big.NewInt(30)) != 0 {
		t.Fatalf("expected 30, got %s", spec.Amount)
	}
}

func TestFractionOrAmountDecodeDefaultsUnits(t *testing.T) {
	var spec FractionOrAmount
	if err := json.Unmarshal([]byte(`{"fraction":"50"}`), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Fraction == nil {
		t.Fatalf("expected fraction variant, got %+v", spec)
	}
	if spec.Fraction.Units.BigInt().Cmp(big.NewInt(DefaultUnits)) != 0 {
		t.Fatalf("expected default units %d, got %s", DefaultUnits, spec.Fraction.Units)
	}
}

func TestFractionOrAmountDecodeExplicitUnits(t *testing.T) {
	var spec FractionOrAmount
	if err := json.Unmarshal([]byte(`{"fraction":60,"units":200}`), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Fraction.Fraction.BigInt().Cmp(big.NewInt(60)) != 0 {
		t.Fatalf("expected fraction 60, got %s", spec.Fraction.Fraction)
	}
	if spec.Fraction.Units.BigInt().Cmp(big.NewInt(200)) != 0 {
		t.Fatalf("expected units 200, got %s", spec.Fraction.Units)
	}
}

func TestFractionOrAmountDecodeRejectsInvalid(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"amount":1,"fraction":2}`,
		`{"amount":"-5"}`,
		`{"amount":"not a number"}`,
		`{"units":100}`,
	}
	for _, input := range inputs {
		var spec FractionOrAmount
		if err := json.Unmarshal([]byte(input), &spec); err == nil {
			t.Fatalf("expected decode of %s to fail", input)
		}
	}
}

func TestAmountEncodesAsDecimalString(t *testing.T) {
	big53 := new(big.Int).Lsh(big.NewInt(1), 60)
	data, err := json.Marshal(NewAmount(big53))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"`+big53.String()+`"` {
		t.Fatalf("expected quoted decimal, got %s", data)
	}
}
