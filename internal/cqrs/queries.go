package cqrs

// ---------- Customer queries ----------

// AccountSummaryQuery fetches the dashboard header for one customer.
type AccountSummaryQuery struct {
	UserID int64
}

// ListTransactionsQuery fetches ledger entries for one account, newest first.
// Limit 0 means the full history.
type ListTransactionsQuery struct {
	AccountID int64
	Limit     int
}

// ---------- Manager queries ----------

// CustomerDetailQuery fetches one customer for the manager's update form.
type CustomerDetailQuery struct {
	UserID int64
}

// ---------- Login queries ----------

type CustomerLoginQuery struct {
	AccountNumber string
	Password      string
}

type ManagerLoginQuery struct {
	Email    string
	Password string
}
