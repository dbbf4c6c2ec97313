package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/keshavkalani15/Aapna-Bank/internal/models"
)

// TransactionRepository reads the append-only ledger. Writes happen only
// through LedgerRepository as a side effect of balance mutations.
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// ListByAccount returns ledger entries for an account, newest first.
// A limit of 0 returns the full history.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64, limit int) ([]models.Transaction, error) {
	query := `
		SELECT transaction_id, account_id, transaction_type, amount, description, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
	`
	args := []any{accountID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}
