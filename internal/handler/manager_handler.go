package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/keshavkalani15/Aapna-Bank/internal/bankerr"
	"github.com/keshavkalani15/Aapna-Bank/internal/cqrs"
	"github.com/keshavkalani15/Aapna-Bank/internal/middleware"
	"github.com/keshavkalani15/Aapna-Bank/internal/session"
)

// ManagerHandler serves the manager page group: login, roster, customer
// creation, status toggling, manual cash movements and profile edits.
type ManagerHandler struct {
	auth      Authenticator
	ledger    LedgerCommander
	customers CustomerCommander
	queries   CustomerQuerier
	sessions  session.Manager
}

func NewManagerHandler(auth Authenticator, ledger LedgerCommander, customers CustomerCommander, queries CustomerQuerier, sessions session.Manager) *ManagerHandler {
	return &ManagerHandler{auth: auth, ledger: ledger, customers: customers, queries: queries, sessions: sessions}
}

type managerLoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type createCustomerRequest struct {
	FirstName   string `form:"first_name" validate:"required"`
	LastName    string `form:"last_name" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	PhoneNumber string `form:"phone_number" validate:"required,numeric,len=10"`
	Password    string `form:"password" validate:"required,min=6"`
	Pin         string `form:"pin" validate:"required,numeric,min=4,max=6"`
}

type managerAdjustRequest struct {
	AccountNumber string `form:"account_number" validate:"required"`
	Amount        string `form:"amount" validate:"required"`
	Action        string `form:"action" validate:"required,oneof=deposit withdraw"`
}

type updateUserRequest struct {
	FirstName   string `form:"first_name" validate:"required"`
	LastName    string `form:"last_name" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	PhoneNumber string `form:"phone_number" validate:"required,numeric,len=10"`
}

func (h *ManagerHandler) ShowLogin(c *gin.Context) {
	render(c, h.sessions, "manager_login.html", nil)
}

func (h *ManagerHandler) Login(c *gin.Context) {
	var req managerLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		flash(c, h.sessions, "error", "Invalid request.")
		c.Redirect(http.StatusFound, "/manager/login")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		flash(c, h.sessions, "error", middleware.ValidationMessage(validationErrors))
		c.Redirect(http.StatusFound, "/manager/login")
		return
	}

	identity, err := h.auth.ManagerLogin(c.Request.Context(), cqrs.ManagerLoginQuery{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, bankerr.ErrInvalidCredentials) {
			flash(c, h.sessions, "error", "Invalid manager credentials.")
		} else {
			flash(c, h.sessions, "error", "An error occurred. Please try again.")
		}
		c.Redirect(http.StatusFound, "/manager/login")
		return
	}

	sess := middleware.CurrentSession(c)
	sess.ManagerID = identity.EmployeeID
	sess.ManagerName = identity.Name
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		flash(c, h.sessions, "error", "An error occurred. Please try again.")
		c.Redirect(http.StatusFound, "/manager/login")
		return
	}
	c.Redirect(http.StatusFound, "/manager/dashboard")
}

func (h *ManagerHandler) Dashboard(c *gin.Context) {
	roster, err := h.queries.Roster(c.Request.Context())
	if err != nil {
		flash(c, h.sessions, "error", "Could not load manager dashboard.")
		c.Redirect(http.StatusFound, "/manager/login")
		return
	}
	render(c, h.sessions, "manager_dashboard.html", gin.H{
		"users": roster,
	})
}

func (h *ManagerHandler) ShowCreateCustomer(c *gin.Context) {
	render(c, h.sessions, "create_customer.html", nil)
}

func (h *ManagerHandler) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBind(&req); err != nil {
		flash(c, h.sessions, "error", "Invalid request.")
		c.Redirect(http.StatusFound, "/manager/create_customer")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		flash(c, h.sessions, "error", middleware.ValidationMessage(validationErrors))
		c.Redirect(http.StatusFound, "/manager/create_customer")
		return
	}

	accountNumber, err := h.customers.CreateCustomer(c.Request.Context(), cqrs.CreateCustomerCommand{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Pin:         req.Pin,
	})
	if err != nil {
		if errors.Is(err, bankerr.ErrDuplicateIdentity) {
			flash(c, h.sessions, "error", "An account with this email or phone number already exists.")
		} else {
			flash(c, h.sessions, "error", "An error occurred. Please try again.")
		}
		c.Redirect(http.StatusFound, "/manager/create_customer")
		return
	}

	flash(c, h.sessions, "success", "Customer account created successfully! The new account number is "+accountNumber+".")
	c.Redirect(http.StatusFound, "/manager/dashboard")
}

func (h *ManagerHandler) ToggleStatus(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		flash(c, h.sessions, "error", "Invalid user id.")
		c.Redirect(http.StatusFound, "/manager/dashboard")
		return
	}

	if _, err := h.customers.ToggleStatus(c.Request.Context(), cqrs.ToggleStatusCommand{UserID: userID}); err != nil {
		flashDomainError(c, h.sessions, err)
	} else {
		flash(c, h.sessions, "success", "User status updated.")
	}
	c.Redirect(http.StatusFound, "/manager/dashboard")
}

func (h *ManagerHandler) ShowTransaction(c *gin.Context) {
	render(c, h.sessions, "manager_transaction.html", gin.H{
		"accountNumber": c.Query("account_number"),
		"action":        c.DefaultQuery("action", "deposit"),
	})
}

func (h *ManagerHandler) Transaction(c *gin.Context) {
	var req managerAdjustRequest
	if err := c.ShouldBind(&req); err != nil {
		flash(c, h.sessions, "error", "Invalid request.")
		c.Redirect(http.StatusFound, "/manager/transaction")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		flash(c, h.sessions, "error", middleware.ValidationMessage(validationErrors))
		c.Redirect(http.StatusFound, "/manager/transaction")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		flashDomainError(c, h.sessions, bankerr.ErrInvalidAmount)
		c.Redirect(http.StatusFound, "/manager/transaction?account_number="+url.QueryEscape(req.AccountNumber)+"&action="+req.Action)
		return
	}

	err = h.ledger.ManagerAdjust(c.Request.Context(), cqrs.ManagerAdjustCommand{
		AccountNumber: req.AccountNumber,
		Amount:        amount,
		Action:        cqrs.AdjustAction(req.Action),
	})
	if err != nil {
		flashDomainError(c, h.sessions, err)
		if errors.Is(err, bankerr.ErrInsufficientFunds) {
			c.Redirect(http.StatusFound, "/manager/transaction?account_number="+url.QueryEscape(req.AccountNumber)+"&action=withdraw")
			return
		}
		c.Redirect(http.StatusFound, "/manager/dashboard")
		return
	}

	flash(c, h.sessions, "success", capitalize(req.Action)+" successful.")
	c.Redirect(http.StatusFound, "/manager/dashboard")
}

func (h *ManagerHandler) ShowUpdateUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		flash(c, h.sessions, "error", "Invalid user id.")
		c.Redirect(http.StatusFound, "/manager/dashboard")
		return
	}

	detail, err := h.queries.CustomerDetail(c.Request.Context(), cqrs.CustomerDetailQuery{UserID: userID})
	if err != nil {
		if errors.Is(err, bankerr.ErrUserNotFound) {
			flash(c, h.sessions, "error", "User not found.")
		} else {
			flash(c, h.sessions, "error", "An error occurred. Please try again.")
		}
		c.Redirect(http.StatusFound, "/manager/dashboard")
		return
	}
	render(c, h.sessions, "update_user.html", gin.H{
		"user": detail,
	})
}

func (h *ManagerHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		flash(c, h.sessions, "error", "Invalid user id.")
		c.Redirect(http.StatusFound, "/manager/dashboard")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		flash(c, h.sessions, "error", "Invalid request.")
		c.Redirect(http.StatusFound, "/manager/update_user/"+strconv.FormatInt(userID, 10))
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		flash(c, h.sessions, "error", middleware.ValidationMessage(validationErrors))
		c.Redirect(http.StatusFound, "/manager/update_user/"+strconv.FormatInt(userID, 10))
		return
	}

	err = h.customers.UpdateProfile(c.Request.Context(), cqrs.UpdateProfileCommand{
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, bankerr.ErrDuplicateIdentity) {
			flash(c, h.sessions, "error", "Email or phone number is already in use by another account.")
			c.Redirect(http.StatusFound, "/manager/update_user/"+strconv.FormatInt(userID, 10))
			return
		}
		flashDomainError(c, h.sessions, err)
		c.Redirect(http.StatusFound, "/manager/dashboard")
		return
	}

	flash(c, h.sessions, "success", "Customer details updated successfully!")
	c.Redirect(http.StatusFound, "/manager/dashboard")
}

func (h *ManagerHandler) Logout(c *gin.Context) {
	resetSession(c, h.sessions)
	flash(c, h.sessions, "success", "You have been logged out.")
	c.Redirect(http.StatusFound, "/manager/login")
}
