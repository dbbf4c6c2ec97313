package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	TransferCompleted = "transfer.completed"
	AccountAdjusted   = "account.adjusted"
	CustomerCreated   = "customer.created"
	StatusToggled     = "status.toggled"
)

// LedgerEventsStream carries every post-commit notification. Nothing in this
// process consumes it; it is an integration point for downstream systems.
const LedgerEventsStream = "ledger.events"

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type TransferCompletedEvent struct {
	SenderAccountID    int64           `json:"senderAccountId"`
	RecipientAccountID int64           `json:"recipientAccountId"`
	Amount             decimal.Decimal `json:"amount"`
}

type AccountAdjustedEvent struct {
	AccountNumber string          `json:"accountNumber"`
	Action        string          `json:"action"`
	Amount        decimal.Decimal `json:"amount"`
}

type CustomerCreatedEvent struct {
	UserID        int64  `json:"userId"`
	AccountNumber string `json:"accountNumber"`
	Email         string `json:"email"`
}

type StatusToggledEvent struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}
