package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/keshavkalani15/Aapna-Bank/internal/bankerr"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
	"github.com/keshavkalani15/Aapna-Bank/internal/utils"
)

// UserRepository handles customer identity rows and the atomic
// customer+account creation unit.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `
		SELECT user_id, first_name, last_name, email, phone_number,
		       password_hash, pin_hash, status, created_at
		FROM users
		WHERE user_id = $1
	`
	var user models.User
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PhoneNumber,
		&user.PasswordHash, &user.PinHash, &user.Status, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, bankerr.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetLoginByAccountNumber joins the user with its account for the customer
// login check.
func (r *UserRepository) GetLoginByAccountNumber(ctx context.Context, accountNumber string) (*models.User, *models.Account, error) {
	query := `
		SELECT u.user_id, u.first_name, u.last_name, u.password_hash, u.status,
		       a.account_id, a.account_number
		FROM users u
		JOIN accounts a ON a.user_id = u.user_id
		WHERE a.account_number = $1
	`
	var user models.User
	var account models.Account
	err := r.db.QueryRowContext(ctx, query, accountNumber).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.PasswordHash, &user.Status,
		&account.ID, &account.AccountNumber,
	)
	if err == sql.ErrNoRows {
		return nil, nil, bankerr.ErrUserNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get login row: %w", err)
	}
	account.UserID = user.ID
	return &user, &account, nil
}

// CreateWithAccount inserts the user and its zero-balance account within one
// transaction. The account number is derived from the user id assigned by the
// insert, so both rows commit or neither does.
func (r *UserRepository) CreateWithAccount(ctx context.Context, user *models.User) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM users WHERE email = $1 OR phone_number = $2`,
		user.Email, user.PhoneNumber,
	).Scan(&existing)
	if err == nil {
		return "", bankerr.ErrDuplicateIdentity
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to check identity: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (first_name, last_name, email, phone_number, password_hash, pin_hash, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id
	`, user.FirstName, user.LastName, user.Email, user.PhoneNumber,
		user.PasswordHash, user.PinHash, models.StatusActive, time.Now().UTC(),
	).Scan(&user.ID)
	if err != nil {
		return "", mapUniqueViolation(err, "failed to create user")
	}

	accountNumber := utils.AccountNumber(user.ID)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO accounts (user_id, account_number, balance, created_at)
		VALUES ($1, $2, 0, $3)
	`, user.ID, accountNumber, time.Now().UTC())
	if err != nil {
		return "", mapUniqueViolation(err, "failed to create account")
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit customer creation: %w", err)
	}
	return accountNumber, nil
}

// ToggleStatus flips Active/Inactive in a single statement and reports the
// resulting status.
func (r *UserRepository) ToggleStatus(ctx context.Context, userID int64) (models.UserStatus, error) {
	var status models.UserStatus
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET status = CASE WHEN status = $1 THEN $2 ELSE $1 END
		WHERE user_id = $3
		RETURNING status
	`, models.StatusActive, models.StatusInactive, userID).Scan(&status)
	if err == sql.ErrNoRows {
		return "", bankerr.ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to toggle status: %w", err)
	}
	return status, nil
}

// UpdateProfile updates the mutable identity fields after verifying the new
// email/phone do not belong to a different user. Both steps share one
// transaction so a concurrent registration cannot slip between them.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, email, phoneNumber string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var other int64
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM users WHERE (email = $1 OR phone_number = $2) AND user_id != $3`,
		email, phoneNumber, userID,
	).Scan(&other)
	if err == nil {
		return bankerr.ErrDuplicateIdentity
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check identity: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, phone_number = $4
		WHERE user_id = $5
	`, firstName, lastName, email, phoneNumber, userID)
	if err != nil {
		return mapUniqueViolation(err, "failed to update user")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return bankerr.ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile update: %w", err)
	}
	return nil
}

// CustomerDetail fetches one customer with its account number for the
// manager's update form.
func (r *UserRepository) CustomerDetail(ctx context.Context, userID int64) (*models.CustomerDetailView, error) {
	query := `
		SELECT u.user_id, u.first_name, u.last_name, u.email, u.phone_number, a.account_number
		FROM users u
		JOIN accounts a ON a.user_id = u.user_id
		WHERE u.user_id = $1
	`
	var v models.CustomerDetailView
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&v.UserID, &v.FirstName, &v.LastName, &v.Email, &v.PhoneNumber, &v.AccountNumber,
	)
	if err == sql.ErrNoRows {
		return nil, bankerr.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer detail: %w", err)
	}
	return &v, nil
}

// Roster lists every customer with account status and balance, newest first.
func (r *UserRepository) Roster(ctx context.Context) ([]models.RosterEntryView, error) {
	query := `
		SELECT u.user_id, u.first_name, u.last_name, u.status, a.account_number, a.balance
		FROM users u
		JOIN accounts a ON a.user_id = u.user_id
		ORDER BY u.user_id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	defer rows.Close()

	var roster []models.RosterEntryView
	for rows.Next() {
		var entry models.RosterEntryView
		var first, last string
		if err := rows.Scan(&entry.UserID, &first, &last, &entry.Status, &entry.AccountNumber, &entry.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		entry.Name = first + " " + last
		roster = append(roster, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return roster, nil
}

// mapUniqueViolation turns a Postgres unique violation into the duplicate
// identity error; everything else is wrapped with msg.
func mapUniqueViolation(err error, msg string) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return bankerr.ErrDuplicateIdentity
	}
	return fmt.Errorf("%s: %w", msg, err)
}
