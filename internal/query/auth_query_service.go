package query

import (
	"context"
	"errors"

	"github.com/keshavkalani15/Aapna-Bank/internal/bankerr"
	"github.com/keshavkalani15/Aapna-Bank/internal/cqrs"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
	"github.com/keshavkalani15/Aapna-Bank/internal/utils"
)

type loginReader interface {
	GetLoginByAccountNumber(ctx context.Context, accountNumber string) (*models.User, *models.Account, error)
}

type employeeReader interface {
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
}

// AuthQueryService handles both login domains. There is no command service
// for auth because credential checks don't mutate application state.
type AuthQueryService struct {
	users     loginReader
	employees employeeReader
}

func NewAuthQueryService(users loginReader, employees employeeReader) *AuthQueryService {
	return &AuthQueryService{users: users, employees: employees}
}

// CustomerLogin verifies an account-number/password pair. An Inactive account
// is rejected with a distinct error even when the password is correct.
func (s *AuthQueryService) CustomerLogin(ctx context.Context, q cqrs.CustomerLoginQuery) (*models.CustomerIdentity, error) {
	user, account, err := s.users.GetLoginByAccountNumber(ctx, q.AccountNumber)
	if err != nil {
		if errors.Is(err, bankerr.ErrUserNotFound) {
			return nil, bankerr.ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(q.Password, user.PasswordHash) {
		return nil, bankerr.ErrInvalidCredentials
	}
	if user.Status == models.StatusInactive {
		return nil, bankerr.ErrAccountInactive
	}
	return &models.CustomerIdentity{
		UserID:        user.ID,
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Name:          user.FullName(),
	}, nil
}

// ManagerLogin verifies an email/password pair against the employees table.
func (s *AuthQueryService) ManagerLogin(ctx context.Context, q cqrs.ManagerLoginQuery) (*models.ManagerIdentity, error) {
	employee, err := s.employees.GetByEmail(ctx, q.Email)
	if err != nil {
		if errors.Is(err, bankerr.ErrUserNotFound) {
			return nil, bankerr.ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(q.Password, employee.PasswordHash) {
		return nil, bankerr.ErrInvalidCredentials
	}
	return &models.ManagerIdentity{
		EmployeeID: employee.ID,
		Name:       employee.FullName(),
	}, nil
}
