// Package handler contains the gin handlers for both page groups. Handlers
// bind form posts, validate, call the command/query services and communicate
// results through flash messages and redirects (post/redirect/get).
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keshavkalani15/Aapna-Bank/internal/bankerr"
	"github.com/keshavkalani15/Aapna-Bank/internal/cqrs"
	"github.com/keshavkalani15/Aapna-Bank/internal/middleware"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
	"github.com/keshavkalani15/Aapna-Bank/internal/session"
)

// Authenticator covers both login domains.
type Authenticator interface {
	CustomerLogin(ctx context.Context, q cqrs.CustomerLoginQuery) (*models.CustomerIdentity, error)
	ManagerLogin(ctx context.Context, q cqrs.ManagerLoginQuery) (*models.ManagerIdentity, error)
}

// LedgerCommander is the write side of the ledger.
type LedgerCommander interface {
	Transfer(ctx context.Context, cmd cqrs.TransferCommand) error
	ManagerAdjust(ctx context.Context, cmd cqrs.ManagerAdjustCommand) error
}

// AccountQuerier serves the customer read views.
type AccountQuerier interface {
	AccountSummary(ctx context.Context, q cqrs.AccountSummaryQuery) (*models.AccountSummaryView, error)
	Transactions(ctx context.Context, q cqrs.ListTransactionsQuery) ([]models.TransactionView, error)
}

// CustomerCommander covers the manager-initiated lifecycle operations.
type CustomerCommander interface {
	CreateCustomer(ctx context.Context, cmd cqrs.CreateCustomerCommand) (string, error)
	ToggleStatus(ctx context.Context, cmd cqrs.ToggleStatusCommand) (models.UserStatus, error)
	UpdateProfile(ctx context.Context, cmd cqrs.UpdateProfileCommand) error
}

// CustomerQuerier serves the manager read views.
type CustomerQuerier interface {
	Roster(ctx context.Context) ([]models.RosterEntryView, error)
	CustomerDetail(ctx context.Context, q cqrs.CustomerDetailQuery) (*models.CustomerDetailView, error)
}

// flash queues a one-shot message; a failed write is logged, never surfaced.
func flash(c *gin.Context, store session.Manager, level, message string) {
	sess := middleware.CurrentSession(c)
	if err := store.Flash(c.Request.Context(), sess, level, message); err != nil {
		log.Printf("Failed to queue flash: %v", err)
	}
}

// flashDomainError maps the failure taxonomy to its user-facing message.
func flashDomainError(c *gin.Context, store session.Manager, err error) {
	message := "An error occurred. Please try again."
	for _, known := range []error{
		bankerr.ErrInvalidPin,
		bankerr.ErrInvalidAmount,
		bankerr.ErrInvalidRecipient,
		bankerr.ErrInsufficientFunds,
		bankerr.ErrRecipientNotFound,
		bankerr.ErrSelfTransfer,
		bankerr.ErrAccountNotFound,
		bankerr.ErrUserNotFound,
		bankerr.ErrDuplicateIdentity,
	} {
		if errors.Is(err, known) {
			message = capitalize(known.Error()) + "."
			break
		}
	}
	flash(c, store, "error", message)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}

// resetSession destroys the current session and starts a fresh anonymous one
// so logout flashes still reach the next page.
func resetSession(c *gin.Context, store session.Manager) *session.Session {
	ctx := c.Request.Context()
	old := middleware.CurrentSession(c)
	if err := store.Destroy(ctx, old); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}
	fresh, err := store.New(ctx)
	if err != nil {
		log.Printf("Failed to create session: %v", err)
		return old
	}
	if value, err := store.CookieValue(fresh); err == nil {
		c.SetCookie(session.CookieName, value, int(store.TTL().Seconds()), "/", "", false, true)
	}
	c.Set(middleware.SessionContextKey, fresh)
	return fresh
}

// render wraps c.HTML, always supplying drained flash messages and the
// session display names.
func render(c *gin.Context, store session.Manager, name string, data gin.H) {
	sess := middleware.CurrentSession(c)
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = store.PopFlashes(c.Request.Context(), sess)
	data["userName"] = sess.UserName
	data["managerName"] = sess.ManagerName
	c.HTML(http.StatusOK, name, data)
}
