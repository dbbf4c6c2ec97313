package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserStatus gates customer login. Managers flip it; it is never deleted-through.
type UserStatus string

const (
	StatusActive   UserStatus = "Active"
	StatusInactive UserStatus = "Inactive"
)

// TransactionType is the side of a ledger entry as seen by its account.
type TransactionType string

const (
	Credit TransactionType = "Credit"
	Debit  TransactionType = "Debit"
)

type User struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phoneNumber"`
	PasswordHash string     `json:"-"`
	PinHash      string     `json:"-"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdTimestamp"`
}

// FullName joins the stored name parts for display and ledger descriptions.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Account struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"-"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
}

// Transaction is an immutable ledger entry. Rows are only ever appended, one
// per balance-affecting event on one account.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   int64           `json:"-"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdTimestamp"`
}

type Employee struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
