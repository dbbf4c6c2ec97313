package query

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keshavkalani15/Aapna-Bank/internal/cqrs"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
)

type fakeSummaryReader struct {
	summary *models.AccountSummaryView
}

func (f *fakeSummaryReader) SummaryByUserID(_ context.Context, _ int64) (*models.AccountSummaryView, error) {
	return f.summary, nil
}

type fakeTransactionLister struct {
	transactions []models.Transaction
	gotLimit     int
}

func (f *fakeTransactionLister) ListByAccount(_ context.Context, _ int64, limit int) ([]models.Transaction, error) {
	f.gotLimit = limit
	return f.transactions, nil
}

func TestTransactionsConvertTimestampsToDisplayZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	storedUTC := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	lister := &fakeTransactionLister{transactions: []models.Transaction{
		{
			ID:          "tx-1",
			AccountID:   1,
			Type:        models.Credit,
			Amount:      decimal.RequireFromString("30.00"),
			Description: "Received from Rahul Sharma",
			CreatedAt:   storedUTC,
		},
	}}
	svc := NewAccountQueryService(&fakeSummaryReader{}, lister, ist)

	views, err := svc.Transactions(context.Background(), cqrs.ListTransactionsQuery{AccountID: 1, Limit: 5})
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if lister.gotLimit != 5 {
		t.Errorf("limit passed through = %d, want 5", lister.gotLimit)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}

	got := views[0].CreatedAt
	if got.Location() != ist {
		t.Errorf("view timestamp zone = %v, want IST", got.Location())
	}
	if got.Hour() != 17 || got.Minute() != 30 {
		t.Errorf("view timestamp = %v, want 17:30 IST", got)
	}
	if !got.Equal(storedUTC) {
		t.Error("conversion changed the instant, not just the zone")
	}
}

func TestAccountSummaryPassesThrough(t *testing.T) {
	summary := &models.AccountSummaryView{
		Name:          "Rahul Sharma",
		PhoneNumber:   "8888888888",
		AccountNumber: "AAPNA0000001",
		Balance:       decimal.RequireFromString("100.00"),
	}
	svc := NewAccountQueryService(&fakeSummaryReader{summary: summary}, &fakeTransactionLister{}, time.UTC)

	got, err := svc.AccountSummary(context.Background(), cqrs.AccountSummaryQuery{UserID: 1})
	if err != nil {
		t.Fatalf("AccountSummary: %v", err)
	}
	if got != summary {
		t.Errorf("summary = %+v", got)
	}
}
