package customer

import (
	"context"
	"customer-service/internal/pkg/apperrors"
	"fmt"
)

var (
	ErrNotFound = &apperrors.AppError{Message: "customer not found", Cause: apperrors.ErrNotFound}

	ErrDuplicateEmail = fmt.Errorf("%w: email already taken", apperrors.ErrAlreadyExists)

	ErrNoChanges = &apperrors.ValidationError{Message: "no changed data available for update"}
)

// CustomerRepository stores customer records. Implementations do no
// uniqueness or existence enforcement of their own beyond what FindByID
// reports.
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]*Customer, error)

	// FindByID returns ErrNotFound when no record has the given id.
	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// Insert assigns the next id to c.ID and stores the record.
	Insert(ctx context.Context, c *Customer) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	ExistsByID(ctx context.Context, customerID int64) (bool, error)

	// DeleteByID is a no-op when the id is absent.
	DeleteByID(ctx context.Context, customerID int64) error

	Update(ctx context.Context, c *Customer) error
}
