package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/keshavkalani15/Aapna-Bank/internal/bankerr"
	"github.com/keshavkalani15/Aapna-Bank/internal/cqrs"
	"github.com/keshavkalani15/Aapna-Bank/internal/middleware"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
	"github.com/keshavkalani15/Aapna-Bank/internal/session"
)

func managerSession() *session.Session {
	return &session.Session{ID: "mgr-session", ManagerID: 1, ManagerName: "Bank Manager"}
}

func TestManagerLogin(t *testing.T) {
	tests := []struct {
		name         string
		form         url.Values
		loginErr     error
		wantLocation string
		wantFlash    string
	}{
		{
			name: "valid credentials land on manager dashboard",
			form: url.Values{
				"email":    {"manager@bank.com"},
				"password": {"admin123"},
			},
			wantLocation: "/manager/dashboard",
		},
		{
			name: "wrong password",
			form: url.Values{
				"email":    {"manager@bank.com"},
				"password": {"nope"},
			},
			loginErr:     bankerr.ErrInvalidCredentials,
			wantLocation: "/manager/login",
			wantFlash:    "Invalid manager credentials.",
		},
		{
			name: "malformed email never reaches the auth service",
			form: url.Values{
				"email":    {"not-an-email"},
				"password": {"admin123"},
			},
			wantLocation: "/manager/login",
			wantFlash:    "Email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := newFakeSessionManager()
			sess := &session.Session{ID: "test-session"}

			authCalled := false
			auth := &fakeAuth{
				managerFn: func(q cqrs.ManagerLoginQuery) (*models.ManagerIdentity, error) {
					authCalled = true
					if tt.loginErr != nil {
						return nil, tt.loginErr
					}
					return &models.ManagerIdentity{EmployeeID: 1, Name: "Bank Manager"}, nil
				},
			}
			h := NewManagerHandler(auth, &fakeLedgerCommander{}, &fakeCustomerCommander{}, &fakeCustomerQuerier{}, mgr)

			r := newTestEngine(t)
			r.Use(fakeSessionMiddleware(mgr, sess))
			r.POST("/manager/login", h.Login)

			w := postForm(r, "/manager/login", tt.form)
			assertRedirect(t, w, tt.wantLocation)

			if tt.wantFlash != "" && !mgr.hasFlash(tt.wantFlash) {
				t.Errorf("flash %q not queued, got %v", tt.wantFlash, mgr.allFlashes())
			}
			if tt.wantLocation == "/manager/dashboard" {
				if sess.ManagerID != 1 || sess.ManagerName != "Bank Manager" {
					t.Errorf("session identity not set: %+v", sess)
				}
			}
			if tt.form.Get("email") == "not-an-email" && authCalled {
				t.Error("auth service called despite failed validation")
			}
		})
	}
}

func TestCreateCustomer(t *testing.T) {
	validForm := func() url.Values {
		return url.Values{
			"first_name":   {"Priya"},
			"last_name":    {"Patel"},
			"email":        {"priya@example.com"},
			"phone_number": {"9876543210"},
			"password":     {"secret123"},
			"pin":          {"1234"},
		}
	}

	tests := []struct {
		name         string
		mutate       func(url.Values)
		createErr    error
		wantLocation string
		wantFlash    string
		wantCalls    int
	}{
		{
			name:         "success flashes the new account number",
			mutate:       func(url.Values) {},
			wantLocation: "/manager/dashboard",
			wantFlash:    "The new account number is AAPNA0000007.",
			wantCalls:    1,
		},
		{
			name:         "duplicate identity stays on the form",
			mutate:       func(url.Values) {},
			createErr:    bankerr.ErrDuplicateIdentity,
			wantLocation: "/manager/create_customer",
			wantFlash:    "An account with this email or phone number already exists.",
			wantCalls:    1,
		},
		{
			name:         "nine-digit phone number fails validation",
			mutate:       func(f url.Values) { f.Set("phone_number", "987654321") },
			wantLocation: "/manager/create_customer",
			wantFlash:    "PhoneNumber",
			wantCalls:    0,
		},
		{
			name:         "non-numeric pin fails validation",
			mutate:       func(f url.Values) { f.Set("pin", "12ab") },
			wantLocation: "/manager/create_customer",
			wantFlash:    "Pin",
			wantCalls:    0,
		},
		{
			name:         "short password fails validation",
			mutate:       func(f url.Values) { f.Set("password", "abc") },
			wantLocation: "/manager/create_customer",
			wantFlash:    "Password",
			wantCalls:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := newFakeSessionManager()

			customers := &fakeCustomerCommander{
				createFn: func(cqrs.CreateCustomerCommand) (string, error) {
					if tt.createErr != nil {
						return "", tt.createErr
					}
					return "AAPNA0000007", nil
				},
			}
			h := NewManagerHandler(&fakeAuth{}, &fakeLedgerCommander{}, customers, &fakeCustomerQuerier{}, mgr)

			r := newTestEngine(t)
			r.Use(fakeSessionMiddleware(mgr, managerSession()))
			r.POST("/manager/create_customer", h.CreateCustomer)

			form := validForm()
			tt.mutate(form)
			w := postForm(r, "/manager/create_customer", form)
			assertRedirect(t, w, tt.wantLocation)

			if len(customers.creates) != tt.wantCalls {
				t.Fatalf("create called %d times, want %d", len(customers.creates), tt.wantCalls)
			}
			if tt.wantFlash != "" && !mgr.hasFlash(tt.wantFlash) {
				t.Errorf("flash %q not queued, got %v", tt.wantFlash, mgr.allFlashes())
			}
		})
	}
}

func TestToggleStatus(t *testing.T) {
	mgr := newFakeSessionManager()

	var gotUserID int64
	customers := &fakeCustomerCommander{
		toggleFn: func(cmd cqrs.ToggleStatusCommand) (models.UserStatus, error) {
			gotUserID = cmd.UserID
			return models.StatusInactive, nil
		},
	}
	h := NewManagerHandler(&fakeAuth{}, &fakeLedgerCommander{}, customers, &fakeCustomerQuerier{}, mgr)

	r := newTestEngine(t)
	r.Use(fakeSessionMiddleware(mgr, managerSession()))
	r.GET("/manager/toggle_status/:userID", h.ToggleStatus)

	w := getPage(r, "/manager/toggle_status/42")
	assertRedirect(t, w, "/manager/dashboard")

	if gotUserID != 42 {
		t.Errorf("toggled user id = %d, want 42", gotUserID)
	}
	if !mgr.hasFlash("User status updated.") {
		t.Errorf("status flash not queued, got %v", mgr.allFlashes())
	}
}

func TestManagerTransaction(t *testing.T) {
	form := func(accountNumber, amount, action string) url.Values {
		return url.Values{
			"account_number": {accountNumber},
			"amount":         {amount},
			"action":         {action},
		}
	}

	tests := []struct {
		name         string
		form         url.Values
		adjustErr    error
		wantLocation string
		wantFlash    string
		wantAction   cqrs.AdjustAction
	}{
		{
			name:         "deposit succeeds",
			form:         form("AAPNA0000001", "25.50", "deposit"),
			wantLocation: "/manager/dashboard",
			wantFlash:    "Deposit successful.",
			wantAction:   cqrs.AdjustDeposit,
		},
		{
			name:         "withdraw succeeds",
			form:         form("AAPNA0000001", "10.00", "withdraw"),
			wantLocation: "/manager/dashboard",
			wantFlash:    "Withdraw successful.",
			wantAction:   cqrs.AdjustWithdraw,
		},
		{
			name:         "insufficient funds returns to the prefilled form",
			form:         form("AAPNA0000001", "999.00", "withdraw"),
			adjustErr:    bankerr.ErrInsufficientFunds,
			wantLocation: "/manager/transaction?account_number=AAPNA0000001&action=withdraw",
			wantFlash:    "Insufficient funds.",
			wantAction:   cqrs.AdjustWithdraw,
		},
		{
			name:         "unknown account falls back to the dashboard",
			form:         form("AAPNA9999999", "10.00", "deposit"),
			adjustErr:    bankerr.ErrAccountNotFound,
			wantLocation: "/manager/dashboard",
			wantFlash:    "Account not found.",
			wantAction:   cqrs.AdjustDeposit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := newFakeSessionManager()

			ledger := &fakeLedgerCommander{
				adjustFn: func(cqrs.ManagerAdjustCommand) error { return tt.adjustErr },
			}
			h := NewManagerHandler(&fakeAuth{}, ledger, &fakeCustomerCommander{}, &fakeCustomerQuerier{}, mgr)

			r := newTestEngine(t)
			r.Use(fakeSessionMiddleware(mgr, managerSession()))
			r.POST("/manager/transaction", h.Transaction)

			w := postForm(r, "/manager/transaction", tt.form)
			assertRedirect(t, w, tt.wantLocation)

			if len(ledger.adjusts) != 1 {
				t.Fatalf("adjust called %d times, want 1", len(ledger.adjusts))
			}
			cmd := ledger.adjusts[0]
			if cmd.Action != tt.wantAction {
				t.Errorf("action = %q, want %q", cmd.Action, tt.wantAction)
			}
			if !cmd.Amount.Equal(decimal.RequireFromString(tt.form.Get("amount"))) {
				t.Errorf("amount = %s, want %s", cmd.Amount, tt.form.Get("amount"))
			}
			if tt.wantFlash != "" && !mgr.hasFlash(tt.wantFlash) {
				t.Errorf("flash %q not queued, got %v", tt.wantFlash, mgr.allFlashes())
			}
		})
	}
}

func TestManagerTransactionRejectsUnknownAction(t *testing.T) {
	mgr := newFakeSessionManager()
	ledger := &fakeLedgerCommander{}
	h := NewManagerHandler(&fakeAuth{}, ledger, &fakeCustomerCommander{}, &fakeCustomerQuerier{}, mgr)

	r := newTestEngine(t)
	r.Use(fakeSessionMiddleware(mgr, managerSession()))
	r.POST("/manager/transaction", h.Transaction)

	w := postForm(r, "/manager/transaction", url.Values{
		"account_number": {"AAPNA0000001"},
		"amount":         {"10.00"},
		"action":         {"steal"},
	})
	assertRedirect(t, w, "/manager/transaction")

	if len(ledger.adjusts) != 0 {
		t.Fatalf("adjust called %d times, want 0", len(ledger.adjusts))
	}
}

func TestUpdateUser(t *testing.T) {
	validForm := func() url.Values {
		return url.Values{
			"first_name":   {"Priya"},
			"last_name":    {"Patel"},
			"email":        {"priya@example.com"},
			"phone_number": {"9876543210"},
		}
	}

	t.Run("success redirects to dashboard", func(t *testing.T) {
		mgr := newFakeSessionManager()

		var gotCmd cqrs.UpdateProfileCommand
		customers := &fakeCustomerCommander{
			updateFn: func(cmd cqrs.UpdateProfileCommand) error {
				gotCmd = cmd
				return nil
			},
		}
		h := NewManagerHandler(&fakeAuth{}, &fakeLedgerCommander{}, customers, &fakeCustomerQuerier{}, mgr)

		r := newTestEngine(t)
		r.Use(fakeSessionMiddleware(mgr, managerSession()))
		r.POST("/manager/update_user/:userID", h.UpdateUser)

		w := postForm(r, "/manager/update_user/7", validForm())
		assertRedirect(t, w, "/manager/dashboard")

		if gotCmd.UserID != 7 || gotCmd.Email != "priya@example.com" {
			t.Errorf("command = %+v", gotCmd)
		}
		if !mgr.hasFlash("Customer details updated successfully!") {
			t.Errorf("success flash not queued, got %v", mgr.allFlashes())
		}
	})

	t.Run("duplicate identity returns to the edit form", func(t *testing.T) {
		mgr := newFakeSessionManager()

		customers := &fakeCustomerCommander{
			updateFn: func(cqrs.UpdateProfileCommand) error { return bankerr.ErrDuplicateIdentity },
		}
		h := NewManagerHandler(&fakeAuth{}, &fakeLedgerCommander{}, customers, &fakeCustomerQuerier{}, mgr)

		r := newTestEngine(t)
		r.Use(fakeSessionMiddleware(mgr, managerSession()))
		r.POST("/manager/update_user/:userID", h.UpdateUser)

		w := postForm(r, "/manager/update_user/7", validForm())
		assertRedirect(t, w, "/manager/update_user/7")

		if !mgr.hasFlash("Email or phone number is already in use by another account.") {
			t.Errorf("duplicate flash not queued, got %v", mgr.allFlashes())
		}
	})
}

func TestManagerRoutesRequireLogin(t *testing.T) {
	mgr := newFakeSessionManager()
	sess := &session.Session{ID: "anon"}

	h := NewManagerHandler(&fakeAuth{}, &fakeLedgerCommander{}, &fakeCustomerCommander{}, &fakeCustomerQuerier{}, mgr)

	r := newTestEngine(t)
	r.Use(fakeSessionMiddleware(mgr, sess))
	guarded := r.Group("/manager", middleware.RequireManager(mgr))
	guarded.GET("/dashboard", h.Dashboard)
	guarded.POST("/transaction", h.Transaction)

	w := getPage(r, "/manager/dashboard")
	assertRedirect(t, w, "/manager/login")

	w = postForm(r, "/manager/transaction", url.Values{})
	assertRedirect(t, w, "/manager/login")

	if !mgr.hasFlash("Please log in to access this page.") {
		t.Errorf("login prompt flash not queued, got %v", mgr.allFlashes())
	}
}

func TestManagerDashboardRendersRoster(t *testing.T) {
	mgr := newFakeSessionManager()

	queries := &fakeCustomerQuerier{
		rosterFn: func() ([]models.RosterEntryView, error) {
			return []models.RosterEntryView{
				{UserID: 2, Name: "Priya Patel", Status: models.StatusActive, AccountNumber: "AAPNA0000002", Balance: decimal.RequireFromString("30.00")},
				{UserID: 1, Name: "Rahul Sharma", Status: models.StatusInactive, AccountNumber: "AAPNA0000001", Balance: decimal.RequireFromString("70.00")},
			}, nil
		},
	}
	h := NewManagerHandler(&fakeAuth{}, &fakeLedgerCommander{}, &fakeCustomerCommander{}, queries, mgr)

	r := newTestEngine(t)
	r.Use(fakeSessionMiddleware(mgr, managerSession()))
	r.GET("/manager/dashboard", middleware.RequireManager(mgr), h.Dashboard)

	w := getPage(r, "/manager/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
