package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5/pgxpool"

	"disperser/internal/domain"
	"disperser/internal/sqlinline"
)

// TxJournalPG implements domain.TxJournal on PostgreSQL.
type TxJournalPG struct {
	pool *pgxpool.Pool
}

// NewTxJournal creates a new journal repo.
func NewTxJournal(pool *pgxpool.Pool) *TxJournalPG {
	return &TxJournalPG{pool: pool}
}

// Record inserts one journal row for a submitted transaction.
func (r *TxJournalPG) Record(ctx context.Context, tx domain.SubmittedTx) error {
	transfers, err := json.Marshal(tx.Transfers)
	if err != nil {
		return fmt.Errorf("encode transfers: %w", err)
	}
	token := ""
	if tx.Token != nil {
		token = tx.Token.Hex()
	}
	_, err = r.pool.Exec(ctx, sqlinline.QInsertSubmittedTx,
		tx.Operation, tx.Caller.Hex(), token, tx.TxHash.Hex(), transfers)
	return err
}

// Recent returns the newest journal entries, most recent first.
func (r *TxJournalPG) Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QListSubmittedTxs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var (
			entry     domain.JournalEntry
			caller    string
			txHash    string
			transfers []byte
		)
		if err := rows.Scan(&entry.ID, &entry.Operation, &caller, &entry.Token,
			&txHash, &transfers, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.Caller = common.HexToAddress(caller)
		entry.TxHash = common.HexToHash(txHash)
		if err := json.Unmarshal(transfers, &entry.Transfers); err != nil {
			return nil, fmt.Errorf("decode transfers: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
