package query

import (
	"context"

	"github.com/keshavkalani15/Aapna-Bank/internal/cqrs"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
)

type rosterReader interface {
	Roster(ctx context.Context) ([]models.RosterEntryView, error)
	CustomerDetail(ctx context.Context, userID int64) (*models.CustomerDetailView, error)
}

// CustomerQueryService serves the manager-facing read views.
type CustomerQueryService struct {
	users rosterReader
}

func NewCustomerQueryService(users rosterReader) *CustomerQueryService {
	return &CustomerQueryService{users: users}
}

// Roster lists every customer, most recently created first.
func (s *CustomerQueryService) Roster(ctx context.Context) ([]models.RosterEntryView, error) {
	return s.users.Roster(ctx)
}

func (s *CustomerQueryService) CustomerDetail(ctx context.Context, q cqrs.CustomerDetailQuery) (*models.CustomerDetailView, error) {
	return s.users.CustomerDetail(ctx, q.UserID)
}
