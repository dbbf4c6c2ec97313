package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/keshavkalani15/Aapna-Bank/internal/bankerr"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
)

// LedgerRepository performs the balance-mutating atomic units. Every method
// runs inside one database transaction: the balance updates and their ledger
// rows commit together or not at all, and the deferred rollback covers every
// error path. Balance rows are locked in ascending account-id order so
// concurrent opposite transfers cannot deadlock.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Transfer debits the sender, credits the recipient and appends the paired
// Debit/Credit ledger rows. The sender's balance is re-checked under row lock
// so concurrent transfers against the same account serialise correctly.
func (r *LedgerRepository) Transfer(ctx context.Context, senderAccountID, recipientAccountID int64, amount decimal.Decimal, debitDescription, creditDescription string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT account_id, balance
		FROM accounts
		WHERE account_id IN ($1, $2)
		ORDER BY account_id
		FOR UPDATE
	`, senderAccountID, recipientAccountID)
	if err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}
	balances := make(map[int64]decimal.Decimal, 2)
	for rows.Next() {
		var id int64
		var balance decimal.Decimal
		if err := rows.Scan(&id, &balance); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan balance: %w", err)
		}
		balances[id] = balance
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read balances: %w", err)
	}

	senderBalance, ok := balances[senderAccountID]
	if !ok {
		return bankerr.ErrAccountNotFound
	}
	if _, ok := balances[recipientAccountID]; !ok {
		return bankerr.ErrRecipientNotFound
	}
	if senderBalance.Cmp(amount) < 0 {
		return bankerr.ErrInsufficientFunds
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance - $1 WHERE account_id = $2`,
		amount, senderAccountID,
	); err != nil {
		return fmt.Errorf("failed to debit sender: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE account_id = $2`,
		amount, recipientAccountID,
	); err != nil {
		return fmt.Errorf("failed to credit recipient: %w", err)
	}

	now := time.Now().UTC()
	if err := insertEntry(ctx, tx, senderAccountID, models.Debit, amount, debitDescription, now); err != nil {
		return err
	}
	if err := insertEntry(ctx, tx, recipientAccountID, models.Credit, amount, creditDescription, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}
	return nil
}

// Adjust applies a bank-initiated deposit or withdrawal to the account behind
// accountNumber and appends its ledger row.
func (r *LedgerRepository) Adjust(ctx context.Context, accountNumber string, amount decimal.Decimal, entryType models.TransactionType, description string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var accountID int64
	var balance decimal.Decimal
	err = tx.QueryRowContext(ctx,
		`SELECT account_id, balance FROM accounts WHERE account_number = $1 FOR UPDATE`,
		accountNumber,
	).Scan(&accountID, &balance)
	if err == sql.ErrNoRows {
		return bankerr.ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock account: %w", err)
	}

	var stmt string
	switch entryType {
	case models.Credit:
		stmt = `UPDATE accounts SET balance = balance + $1 WHERE account_id = $2`
	case models.Debit:
		if balance.Cmp(amount) < 0 {
			return bankerr.ErrInsufficientFunds
		}
		stmt = `UPDATE accounts SET balance = balance - $1 WHERE account_id = $2`
	default:
		return fmt.Errorf("unknown entry type %q", entryType)
	}
	if _, err := tx.ExecContext(ctx, stmt, amount, accountID); err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}

	if err := insertEntry(ctx, tx, accountID, entryType, amount, description, time.Now().UTC()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit adjustment: %w", err)
	}
	return nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, accountID int64, entryType models.TransactionType, amount decimal.Decimal, description string, createdAt time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (transaction_id, account_id, transaction_type, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), accountID, entryType, amount, description, createdAt)
	if err != nil {
		return fmt.Errorf("failed to append ledger row: %w", err)
	}
	return nil
}
