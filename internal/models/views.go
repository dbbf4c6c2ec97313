package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSummaryView is the read-optimised projection backing the customer
// dashboard header. It never exposes hashes or internal ids.
type AccountSummaryView struct {
	Name          string          `json:"name"`
	PhoneNumber   string          `json:"phoneNumber"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

// TransactionView is a ledger entry prepared for display. CreatedAt is
// converted to the fixed display time zone; storage stays UTC.
type TransactionView struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdTimestamp"`
}

// RosterEntryView is one row of the manager dashboard, newest customer first.
type RosterEntryView struct {
	UserID        int64           `json:"userId"`
	Name          string          `json:"name"`
	Status        UserStatus      `json:"status"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

// CustomerDetailView backs the manager's update-user form.
type CustomerDetailView struct {
	UserID        int64  `json:"userId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	AccountNumber string `json:"accountNumber"`
}

// CustomerIdentity is what a successful customer login yields; it seeds the
// server-side session.
type CustomerIdentity struct {
	UserID        int64
	AccountID     int64
	AccountNumber string
	Name          string
}

// ManagerIdentity seeds the manager side of the session.
type ManagerIdentity struct {
	EmployeeID int64
	Name       string
}
