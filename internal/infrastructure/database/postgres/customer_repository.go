package postgres

import (
	"context"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

const (
	selectAllCustomers  = `SELECT id, name, email, age FROM customer ORDER BY id ASC`
	selectCustomerByID  = `SELECT id, name, email, age FROM customer WHERE id = $1`
	insertCustomer      = `INSERT INTO customer (name, email, age) VALUES ($1, $2, $3) RETURNING id`
	existsCustomerEmail = `SELECT EXISTS (SELECT 1 FROM customer WHERE email = $1)`
	existsCustomerID    = `SELECT EXISTS (SELECT 1 FROM customer WHERE id = $1)`
	deleteCustomerByID  = `DELETE FROM customer WHERE id = $1`
	updateCustomerByID  = `UPDATE customer SET name = $1, email = $2, age = $3 WHERE id = $4`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	r.logger.DebugContext(ctx, "Attempting to find all customers")

	rows, err := r.db.Query(ctx, selectAllCustomers)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to query customers")
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var cust customer.Customer
		if err := rows.Scan(&cust.ID, &cust.Name, &cust.Email, &cust.Age); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, apperrors.WrapDatabaseError(err, "failed to scan customer row")
		}
		customers = append(customers, &cust)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "error iterating customer rows")
	}

	r.logger.DebugContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	logger := r.logger.With(slog.Int64("customerID", customerID))
	logger.DebugContext(ctx, "Attempting to find customer by ID")

	var cust customer.Customer
	err := r.db.QueryRow(ctx, selectCustomerByID, customerID).Scan(&cust.ID, &cust.Name, &cust.Email, &cust.Age)
	if err != nil {
		translated := translateDBError(err, logger)
		if errors.Is(translated, apperrors.ErrNotFound) {
			logger.DebugContext(ctx, "Customer not found")
			return nil, customer.ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, translated
	}

	return &cust, nil
}

func (r *CustomerRepository) Insert(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("email", cust.Email))

	err := r.db.QueryRow(ctx, insertCustomer, cust.Name, cust.Email, cust.Age).Scan(&cust.ID)
	if err != nil {
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation")
			return translated
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("failed to insert customer: %w", translated)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, existsCustomerEmail, email)
}

func (r *CustomerRepository) ExistsByID(ctx context.Context, customerID int64) (bool, error) {
	return r.exists(ctx, existsCustomerID, customerID)
}

func (r *CustomerRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	if err := r.db.QueryRow(ctx, query, arg).Scan(&found); err != nil {
		r.logger.ErrorContext(ctx, "Failed to run existence check", slog.Any("error", err))
		return false, apperrors.WrapDatabaseError(err, "failed to check customer existence")
	}
	return found, nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, customerID int64) error {
	logger := r.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to delete customer")

	cmdTag, err := r.db.Exec(ctx, deleteCustomerByID, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to delete customer")
	}

	if cmdTag.RowsAffected() == 0 {
		logger.DebugContext(ctx, "Delete affected zero rows")
		return nil
	}

	logger.InfoContext(ctx, "Customer deleted successfully")
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	logger := r.logger.With(slog.Int64("customerID", cust.ID))
	logger.InfoContext(ctx, "Attempting to update customer")

	cmdTag, err := r.db.Exec(ctx, updateCustomerByID, cust.Name, cust.Email, cust.Age, cust.ID)
	if err != nil {
		translated := translateDBError(err, logger)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Failed to update customer due to unique constraint violation")
			return translated
		}
		logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("failed to update customer: %w", translated)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	logger.InfoContext(ctx, "Customer updated successfully")
	return nil
}
