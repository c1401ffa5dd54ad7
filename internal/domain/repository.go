package domain

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// SubmittedTx is the journal view of one successfully submitted
// transaction. Request entities themselves are never persisted; the
// journal only keeps the outcome for auditing.
type SubmittedTx struct {
	Operation string
	Caller    common.Address
	Token     *common.Address
	TxHash    common.Hash
	Transfers TransferMap
}

// JournalEntry is a persisted SubmittedTx as read back from the journal.
type JournalEntry struct {
	ID        string         `json:"id"`
	Operation string         `json:"operation"`
	Caller    common.Address `json:"caller"`
	Token     string         `json:"token,omitempty"`
	TxHash    common.Hash    `json:"txHash"`
	Transfers TransferMap    `json:"transfers"`
	CreatedAt time.Time      `json:"createdAt"`
}

// TxJournal records submitted transactions. Implementations must be safe
// for concurrent use; a failed write must never fail the request that
// produced the transaction.
type TxJournal interface {
	Record(ctx context.Context, tx SubmittedTx) error
	Recent(ctx context.Context, limit int) ([]JournalEntry, error)
}
