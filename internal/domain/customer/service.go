package customer

import (
	"context"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const customerNotFound = "Customer not found by repository"

type CustomerService interface {
	GetAllCustomers(ctx context.Context) ([]*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	AddCustomer(ctx context.Context, req RegistrationRequest) (*Customer, error)
	DeleteCustomerByID(ctx context.Context, customerID int64) error
	UpdateCustomer(ctx context.Context, customerID int64, req UpdateRequest) (*Customer, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) GetAllCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.DebugContext(ctx, "Calling repository FindAll")
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.DebugContext(ctx, "Successfully listed customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, customerID)
		}
		logger.ErrorContext(ctx, "Repository error getting customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	return cust, nil
}

func (s *customerService) AddCustomer(ctx context.Context, req RegistrationRequest) (*Customer, error) {
	logger := s.logger.With(slog.String("email", req.Email))
	logger.InfoContext(ctx, "Attempting to register new customer")

	taken, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		logger.ErrorContext(ctx, "Repository error checking email", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		logger.WarnContext(ctx, "Registration rejected, email already taken")
		return nil, ErrDuplicateEmail
	}

	if strings.TrimSpace(req.Name) == "" {
		logger.WarnContext(ctx, "Validation failed: name is empty")
		return nil, apperrors.NewValidationError("name", "cannot be empty")
	}
	if strings.TrimSpace(req.Email) == "" {
		logger.WarnContext(ctx, "Validation failed: email is empty")
		return nil, apperrors.NewValidationError("email", "cannot be empty")
	}

	cust := NewCustomer(req.Name, req.Email, req.Age)
	if err := s.repo.Insert(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Repository rejected insert, email already taken")
			return nil, ErrDuplicateEmail
		}
		logger.ErrorContext(ctx, "Repository failed to insert new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	logger.InfoContext(ctx, "Successfully registered new customer", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func (s *customerService) DeleteCustomerByID(ctx context.Context, customerID int64) error {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to delete customer")

	exists, err := s.repo.ExistsByID(ctx, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Repository error checking customer", slog.Any("error", err))
		return fmt.Errorf("failed to check customer %d: %w", customerID, err)
	}
	if !exists {
		logger.WarnContext(ctx, customerNotFound)
		return fmt.Errorf("%w: id %d", ErrNotFound, customerID)
	}

	if err := s.repo.DeleteByID(ctx, customerID); err != nil {
		logger.ErrorContext(ctx, "Repository error deleting customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	logger.InfoContext(ctx, "Successfully deleted customer")
	return nil
}

// UpdateCustomer applies req to the stored customer. The email collision
// check runs against every stored customer, the one being updated included,
// so a request that repeats the customer's own email is reported as a
// duplicate.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, req UpdateRequest) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to update customer")

	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !cust.Apply(req) {
		logger.WarnContext(ctx, "Update rejected, no field changed")
		return nil, ErrNoChanges
	}

	if req.Email != nil {
		taken, err := s.repo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			logger.ErrorContext(ctx, "Repository error checking email", slog.Any("error", err))
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			logger.WarnContext(ctx, "Update rejected, email already taken")
			return nil, ErrDuplicateEmail
		}
	}

	if err := s.repo.Update(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, customerID)
		}
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Repository rejected update, email already taken")
			return nil, ErrDuplicateEmail
		}
		logger.ErrorContext(ctx, "Repository error updating customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update customer %d: %w", customerID, err)
	}

	logger.InfoContext(ctx, "Successfully updated customer")
	return cust, nil
}
