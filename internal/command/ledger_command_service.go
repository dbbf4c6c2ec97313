package command

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/keshavkalani15/Aapna-Bank/internal/bankerr"
	"github.com/keshavkalani15/Aapna-Bank/internal/cqrs"
	"github.com/keshavkalani15/Aapna-Bank/internal/events"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
	"github.com/keshavkalani15/Aapna-Bank/internal/transfer"
	"github.com/keshavkalani15/Aapna-Bank/internal/utils"
)

// ledgerStore is the slice of LedgerRepository the service needs.
type ledgerStore interface {
	Transfer(ctx context.Context, senderAccountID, recipientAccountID int64, amount decimal.Decimal, debitDescription, creditDescription string) error
	Adjust(ctx context.Context, accountNumber string, amount decimal.Decimal, entryType models.TransactionType, description string) error
}

type userReader interface {
	GetByID(ctx context.Context, userID int64) (*models.User, error)
}

type recipientResolver interface {
	ResolveRecipient(ctx context.Context, target transfer.Target) (*models.CustomerIdentity, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// LedgerCommandService executes the balance-mutating operations. All
// authorization and resolution checks run before the store transaction; the
// funds check runs again inside it under row lock.
type LedgerCommandService struct {
	ledger    ledgerStore
	users     userReader
	accounts  recipientResolver
	publisher eventPublisher
}

func NewLedgerCommandService(ledger ledgerStore, users userReader, accounts recipientResolver, publisher eventPublisher) *LedgerCommandService {
	return &LedgerCommandService{
		ledger:    ledger,
		users:     users,
		accounts:  accounts,
		publisher: publisher,
	}
}

// Transfer moves funds between two customer accounts and appends the paired
// Debit/Credit ledger rows within one atomic unit.
func (s *LedgerCommandService) Transfer(ctx context.Context, cmd cqrs.TransferCommand) error {
	if err := validateAmount(cmd.Amount); err != nil {
		return err
	}

	sender, err := s.users.GetByID(ctx, cmd.SenderUserID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(cmd.Pin, sender.PinHash) {
		return bankerr.ErrInvalidPin
	}

	recipient, err := s.accounts.ResolveRecipient(ctx, cmd.Target)
	if err != nil {
		return err
	}
	if recipient.AccountID == cmd.SenderAccountID {
		return bankerr.ErrSelfTransfer
	}

	debitDescription := "Transfer to " + recipient.Name
	creditDescription := "Received from " + sender.FullName()
	if err := s.ledger.Transfer(ctx, cmd.SenderAccountID, recipient.AccountID, cmd.Amount, debitDescription, creditDescription); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, events.LedgerEventsStream, events.TransferCompleted, events.TransferCompletedEvent{
		SenderAccountID:    cmd.SenderAccountID,
		RecipientAccountID: recipient.AccountID,
		Amount:             cmd.Amount,
	}); err != nil {
		log.Printf("Failed to publish transfer.completed event: %v", err)
	}
	return nil
}

// ManagerAdjust applies a bank-initiated cash deposit or withdrawal.
func (s *LedgerCommandService) ManagerAdjust(ctx context.Context, cmd cqrs.ManagerAdjustCommand) error {
	if err := validateAmount(cmd.Amount); err != nil {
		return err
	}

	var entryType models.TransactionType
	var description string
	switch cmd.Action {
	case cqrs.AdjustDeposit:
		entryType = models.Credit
		description = "Cash Deposit by Bank"
	case cqrs.AdjustWithdraw:
		entryType = models.Debit
		description = "Cash Withdrawal by Bank"
	default:
		return fmt.Errorf("unknown adjustment action %q", cmd.Action)
	}

	if err := s.ledger.Adjust(ctx, cmd.AccountNumber, cmd.Amount, entryType, description); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, events.LedgerEventsStream, events.AccountAdjusted, events.AccountAdjustedEvent{
		AccountNumber: cmd.AccountNumber,
		Action:        string(cmd.Action),
		Amount:        cmd.Amount,
	}); err != nil {
		log.Printf("Failed to publish account.adjusted event: %v", err)
	}
	return nil
}

// validateAmount enforces positive fixed-scale currency: strictly positive
// and at most two decimal places. Currency never touches floats.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return bankerr.ErrInvalidAmount
	}
	return nil
}
