package cqrs

import (
	"github.com/shopspring/decimal"

	"github.com/keshavkalani15/Aapna-Bank/internal/transfer"
)

type TransferCommand struct {
	SenderUserID    int64
	SenderAccountID int64
	Target          transfer.Target
	Amount          decimal.Decimal
	Pin             string
}

type AdjustAction string

const (
	AdjustDeposit  AdjustAction = "deposit"
	AdjustWithdraw AdjustAction = "withdraw"
)

type ManagerAdjustCommand struct {
	AccountNumber string
	Amount        decimal.Decimal
	Action        AdjustAction
}

type CreateCustomerCommand struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
	Pin         string
}

type ToggleStatusCommand struct {
	UserID int64
}

type UpdateProfileCommand struct {
	UserID      int64
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}
