package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/keshavkalani15/Aapna-Bank/internal/bankerr"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
	"github.com/keshavkalani15/Aapna-Bank/internal/transfer"
)

// AccountRepository handles account reads: summaries and recipient
// resolution. Balance mutations live in LedgerRepository.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// SummaryByUserID builds the dashboard header for one customer.
func (r *AccountRepository) SummaryByUserID(ctx context.Context, userID int64) (*models.AccountSummaryView, error) {
	query := `
		SELECT u.first_name, u.last_name, u.phone_number, a.account_number, a.balance
		FROM users u
		JOIN accounts a ON a.user_id = u.user_id
		WHERE u.user_id = $1
	`
	var v models.AccountSummaryView
	var first, last string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&first, &last, &v.PhoneNumber, &v.AccountNumber, &v.Balance,
	)
	if err == sql.ErrNoRows {
		return nil, bankerr.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account summary: %w", err)
	}
	v.Name = first + " " + last
	return &v, nil
}

// ResolveRecipient looks up the transfer recipient behind a validated target.
func (r *AccountRepository) ResolveRecipient(ctx context.Context, target transfer.Target) (*models.CustomerIdentity, error) {
	var query string
	switch target.Kind {
	case transfer.TargetAccountNumber:
		query = `
			SELECT a.account_id, a.user_id, a.account_number, u.first_name, u.last_name
			FROM accounts a
			JOIN users u ON u.user_id = a.user_id
			WHERE a.account_number = $1
		`
	case transfer.TargetPhoneNumber:
		query = `
			SELECT a.account_id, a.user_id, a.account_number, u.first_name, u.last_name
			FROM accounts a
			JOIN users u ON u.user_id = a.user_id
			WHERE u.phone_number = $1
		`
	default:
		return nil, bankerr.ErrInvalidRecipient
	}

	var identity models.CustomerIdentity
	var first, last string
	err := r.db.QueryRowContext(ctx, query, target.Value).Scan(
		&identity.AccountID, &identity.UserID, &identity.AccountNumber, &first, &last,
	)
	if err == sql.ErrNoRows {
		return nil, bankerr.ErrRecipientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipient: %w", err)
	}
	identity.Name = first + " " + last
	return &identity, nil
}
