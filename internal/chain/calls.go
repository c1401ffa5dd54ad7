package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CallSpec is an unsent contract call: destination, calldata and attached
// native value. Builders below only pack arguments; nothing touches the
// network until the spec is handed to Node.SendAndConfirm.
type CallSpec struct {
	To    common.Address
	Data  []byte
	Value *big.Int
}

// ETHTransferCall is a plain value transfer with no calldata.
func ETHTransferCall(recipient common.Address, amount *big.Int) CallSpec {
	return CallSpec{To: recipient, Value: amount}
}

// ERC20TransferCall packs token.transfer(to, amount).
func ERC20TransferCall(token, to common.Address, amount *big.Int) (CallSpec, error) {
	data, err := erc20.Pack("transfer", to, amount)
	if err != nil {
		return CallSpec{}, fmt.Errorf("pack transfer: %w", err)
	}
	return CallSpec{To: token, Data: data}, nil
}

// ERC20ApproveCall packs token.approve(spender, amount).
func ERC20ApproveCall(token, spender common.Address, amount *big.Int) (CallSpec, error) {
	data, err := erc20.Pack("approve", spender, amount)
	if err != nil {
		return CallSpec{}, fmt.Errorf("pack approve: %w", err)
	}
	return CallSpec{To: token, Data: data}, nil
}

// DisperseETHCall packs disperseEth(recipients, amounts) with the attached
// native value equal to the amount sum. Argument order is taken verbatim
// from the input slices.
func DisperseETHCall(contract common.Address, recipients []common.Address, amounts []*big.Int) (CallSpec, error) {
	data, err := disperse.Pack("disperseEth", recipients, amounts)
	if err != nil {
		return CallSpec{}, fmt.Errorf("pack disperseEth: %w", err)
	}
	value := new(big.Int)
	for _, amount := range amounts {
		value.Add(value, amount)
	}
	return CallSpec{To: contract, Data: data, Value: value}, nil
}

// DisperseERC20Call packs disperseERC20(spender, token, recipients, amounts).
func DisperseERC20Call(contract, spender, token common.Address, recipients []common.Address, amounts []*big.Int) (CallSpec, error) {
	data, err := disperse.Pack("disperseERC20", spender, token, recipients, amounts)
	if err != nil {
		return CallSpec{}, fmt.Errorf("pack disperseERC20: %w", err)
	}
	return CallSpec{To: contract, Data: data}, nil
}

// CollectERC20Call packs collectERC20(token, recipient, from, amounts).
func CollectERC20Call(contract, token, recipient common.Address, from []common.Address, amounts []*big.Int) (CallSpec, error) {
	data, err := disperse.Pack("collectERC20", token, recipient, from, amounts)
	if err != nil {
		return CallSpec{}, fmt.Errorf("pack collectERC20: %w", err)
	}
	return CallSpec{To: contract, Data: data}, nil
}
