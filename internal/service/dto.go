package service

import (
	"github.com/ethereum/go-ethereum/common"

	"disperser/internal/domain"
)

// Request and response shapes for the HTTP surface. Field names follow the
// wire contract (lowerCamelCase); amounts travel as decimal strings.

type DisperseETHRequest struct {
	Recipients domain.RecipientMap `json:"recipients"`
	Caller     common.Address      `json:"caller"`
}

type DisperseERC20Request struct {
	Recipients domain.RecipientMap `json:"recipients"`
	Token      common.Address      `json:"token"`
	Spender    common.Address      `json:"spender"`
	Caller     common.Address      `json:"caller"`
}

type CollectERC20Request struct {
	Caller    common.Address      `json:"caller"`
	Recipient common.Address      `json:"recipient"`
	Token     common.Address      `json:"token"`
	Spenders  domain.RecipientMap `json:"spenders"`
}

type TransferRequest struct {
	Recipient common.Address          `json:"recipient"`
	Value     domain.FractionOrAmount `json:"value"`
	Token     *common.Address         `json:"token,omitempty"`
	Caller    common.Address          `json:"caller"`
}

type ApproveRequest struct {
	Spender common.Address          `json:"spender"`
	Amount  domain.FractionOrAmount `json:"amount"`
	Token   common.Address          `json:"token"`
	Caller  common.Address          `json:"caller"`
}

// TransactionResponse is the single-transfer/approve response.
type TransactionResponse struct {
	TxHash common.Hash `json:"txHash"`
}

// DisperseCollectResponse is shared by the three batched operations. The
// transfers map zips the exact address/amount sequences the contract call
// carried.
type DisperseCollectResponse struct {
	TxHash    common.Hash        `json:"txHash"`
	Transfers domain.TransferMap `json:"transfers"`
}
