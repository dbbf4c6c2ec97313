package command

import (
	"context"
	"fmt"
	"log"

	"github.com/keshavkalani15/Aapna-Bank/internal/cqrs"
	"github.com/keshavkalani15/Aapna-Bank/internal/events"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
	"github.com/keshavkalani15/Aapna-Bank/internal/utils"
)

// customerStore is the slice of UserRepository the service needs.
type customerStore interface {
	CreateWithAccount(ctx context.Context, user *models.User) (string, error)
	ToggleStatus(ctx context.Context, userID int64) (models.UserStatus, error)
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName, email, phoneNumber string) error
}

// CustomerCommandService handles manager-initiated customer lifecycle
// operations: creation, status toggling and profile edits.
type CustomerCommandService struct {
	users     customerStore
	publisher eventPublisher
}

func NewCustomerCommandService(users customerStore, publisher eventPublisher) *CustomerCommandService {
	return &CustomerCommandService{users: users, publisher: publisher}
}

// CreateCustomer creates the user and its zero-balance account in one atomic
// unit and returns the generated account number.
func (s *CustomerCommandService) CreateCustomer(ctx context.Context, cmd cqrs.CreateCustomerCommand) (string, error) {
	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	pinHash, err := utils.HashPassword(cmd.Pin)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}

	user := &models.User{
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		Email:        cmd.Email,
		PhoneNumber:  cmd.PhoneNumber,
		PasswordHash: passwordHash,
		PinHash:      pinHash,
		Status:       models.StatusActive,
	}
	accountNumber, err := s.users.CreateWithAccount(ctx, user)
	if err != nil {
		return "", err
	}

	if err := s.publisher.Publish(ctx, events.LedgerEventsStream, events.CustomerCreated, events.CustomerCreatedEvent{
		UserID:        user.ID,
		AccountNumber: accountNumber,
		Email:         user.Email,
	}); err != nil {
		log.Printf("Failed to publish customer.created event: %v", err)
	}
	return accountNumber, nil
}

// ToggleStatus flips a customer between Active and Inactive.
func (s *CustomerCommandService) ToggleStatus(ctx context.Context, cmd cqrs.ToggleStatusCommand) (models.UserStatus, error) {
	status, err := s.users.ToggleStatus(ctx, cmd.UserID)
	if err != nil {
		return "", err
	}
	if err := s.publisher.Publish(ctx, events.LedgerEventsStream, events.StatusToggled, events.StatusToggledEvent{
		UserID: cmd.UserID,
		Status: string(status),
	}); err != nil {
		log.Printf("Failed to publish status.toggled event: %v", err)
	}
	return status, nil
}

// UpdateProfile edits the mutable identity fields of a customer.
func (s *CustomerCommandService) UpdateProfile(ctx context.Context, cmd cqrs.UpdateProfileCommand) error {
	return s.users.UpdateProfile(ctx, cmd.UserID, cmd.FirstName, cmd.LastName, cmd.Email, cmd.PhoneNumber)
}
