package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/keshavkalani15/Aapna-Bank/internal/bankerr"
	"github.com/keshavkalani15/Aapna-Bank/internal/cqrs"
	"github.com/keshavkalani15/Aapna-Bank/internal/middleware"
	"github.com/keshavkalani15/Aapna-Bank/internal/session"
	"github.com/keshavkalani15/Aapna-Bank/internal/transfer"
)

// CustomerHandler serves the customer page group: login, dashboard, transfer
// and transaction history.
type CustomerHandler struct {
	auth     Authenticator
	ledger   LedgerCommander
	queries  AccountQuerier
	sessions session.Manager
}

func NewCustomerHandler(auth Authenticator, ledger LedgerCommander, queries AccountQuerier, sessions session.Manager) *CustomerHandler {
	return &CustomerHandler{auth: auth, ledger: ledger, queries: queries, sessions: sessions}
}

type customerLoginRequest struct {
	AccountNumber string `form:"account_number" validate:"required"`
	Password      string `form:"password" validate:"required"`
}

type transferRequest struct {
	RecipientIdentifier string `form:"recipient_identifier" validate:"required"`
	Amount              string `form:"amount" validate:"required"`
	Pin                 string `form:"pin" validate:"required"`
}

func (h *CustomerHandler) Index(c *gin.Context) {
	render(c, h.sessions, "index.html", nil)
}

func (h *CustomerHandler) ShowLogin(c *gin.Context) {
	render(c, h.sessions, "login.html", nil)
}

func (h *CustomerHandler) Login(c *gin.Context) {
	var req customerLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		flash(c, h.sessions, "error", "Invalid request.")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		flash(c, h.sessions, "error", middleware.ValidationMessage(validationErrors))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	identity, err := h.auth.CustomerLogin(c.Request.Context(), cqrs.CustomerLoginQuery{
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, bankerr.ErrAccountInactive):
			flash(c, h.sessions, "error", "Your account is deactivated. Please contact the bank.")
		case errors.Is(err, bankerr.ErrInvalidCredentials):
			flash(c, h.sessions, "error", "Invalid account number or password.")
		default:
			flash(c, h.sessions, "error", "An error occurred. Please try again.")
		}
		c.Redirect(http.StatusFound, "/login")
		return
	}

	sess := middleware.CurrentSession(c)
	sess.UserID = identity.UserID
	sess.AccountID = identity.AccountID
	sess.AccountNumber = identity.AccountNumber
	sess.UserName = identity.Name
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		flash(c, h.sessions, "error", "An error occurred. Please try again.")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *CustomerHandler) Dashboard(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	ctx := c.Request.Context()

	summary, err := h.queries.AccountSummary(ctx, cqrs.AccountSummaryQuery{UserID: sess.UserID})
	if err != nil {
		flash(c, h.sessions, "error", "Could not load dashboard.")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	transactions, err := h.queries.Transactions(ctx, cqrs.ListTransactionsQuery{
		AccountID: sess.AccountID,
		Limit:     5,
	})
	if err != nil {
		flash(c, h.sessions, "error", "Could not load dashboard.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	render(c, h.sessions, "user_dashboard.html", gin.H{
		"account":      summary,
		"transactions": transactions,
	})
}

func (h *CustomerHandler) ShowTransfer(c *gin.Context) {
	render(c, h.sessions, "transfer_money.html", nil)
}

func (h *CustomerHandler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBind(&req); err != nil {
		flash(c, h.sessions, "error", "Invalid request.")
		c.Redirect(http.StatusFound, "/transfer")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		flash(c, h.sessions, "error", middleware.ValidationMessage(validationErrors))
		c.Redirect(http.StatusFound, "/transfer")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		flashDomainError(c, h.sessions, bankerr.ErrInvalidAmount)
		c.Redirect(http.StatusFound, "/transfer")
		return
	}
	target, err := transfer.ParseTarget(req.RecipientIdentifier)
	if err != nil {
		flashDomainError(c, h.sessions, err)
		c.Redirect(http.StatusFound, "/transfer")
		return
	}

	sess := middleware.CurrentSession(c)
	err = h.ledger.Transfer(c.Request.Context(), cqrs.TransferCommand{
		SenderUserID:    sess.UserID,
		SenderAccountID: sess.AccountID,
		Target:          target,
		Amount:          amount,
		Pin:             req.Pin,
	})
	if err != nil {
		flashDomainError(c, h.sessions, err)
		c.Redirect(http.StatusFound, "/transfer")
		return
	}

	flash(c, h.sessions, "success", "Transfer successful!")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *CustomerHandler) TransactionHistory(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	transactions, err := h.queries.Transactions(c.Request.Context(), cqrs.ListTransactionsQuery{
		AccountID: sess.AccountID,
	})
	if err != nil {
		flash(c, h.sessions, "error", "Could not load transaction history.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	render(c, h.sessions, "transaction_history.html", gin.H{
		"transactions": transactions,
	})
}

func (h *CustomerHandler) Logout(c *gin.Context) {
	resetSession(c, h.sessions)
	flash(c, h.sessions, "success", "You have been logged out.")
	c.Redirect(http.StatusFound, "/login")
}
