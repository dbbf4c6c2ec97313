package query

import (
	"context"
	"time"

	"github.com/keshavkalani15/Aapna-Bank/internal/cqrs"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
)

type summaryReader interface {
	SummaryByUserID(ctx context.Context, userID int64) (*models.AccountSummaryView, error)
}

type transactionLister interface {
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]models.Transaction, error)
}

// AccountQueryService serves the customer-facing read views. Timestamps are
// stored in UTC and converted to the fixed display zone only here, while
// building views.
type AccountQueryService struct {
	accounts     summaryReader
	transactions transactionLister
	displayZone  *time.Location
}

func NewAccountQueryService(accounts summaryReader, transactions transactionLister, displayZone *time.Location) *AccountQueryService {
	return &AccountQueryService{
		accounts:     accounts,
		transactions: transactions,
		displayZone:  displayZone,
	}
}

func (s *AccountQueryService) AccountSummary(ctx context.Context, q cqrs.AccountSummaryQuery) (*models.AccountSummaryView, error) {
	return s.accounts.SummaryByUserID(ctx, q.UserID)
}

func (s *AccountQueryService) Transactions(ctx context.Context, q cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
	transactions, err := s.transactions.ListByAccount(ctx, q.AccountID, q.Limit)
	if err != nil {
		return nil, err
	}
	views := make([]models.TransactionView, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, models.TransactionView{
			ID:          t.ID,
			Type:        t.Type,
			Amount:      t.Amount,
			Description: t.Description,
			CreatedAt:   t.CreatedAt.In(s.displayZone),
		})
	}
	return views, nil
}
