// Package memory keeps customers in a process-local list. Records are lost
// on restart.
package memory

import (
	"context"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

type CustomerRepository struct {
	mu        sync.RWMutex
	customers []customer.Customer
	nextID    int64
	logger    *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

// DefaultSeed is the record set a freshly started service exposes.
func DefaultSeed() []customer.Customer {
	return []customer.Customer{
		{ID: 1, Name: "Alex", Email: "alex@gmail.com", Age: 21},
		{ID: 2, Name: "Jamila", Email: "jamila@gmail.com", Age: 21},
	}
}

// NewCustomerRepository returns a store holding a copy of seed. Ids handed
// out by Insert start after the highest seeded id.
func NewCustomerRepository(logger *slog.Logger, seed ...customer.Customer) *CustomerRepository {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}

	r := &CustomerRepository{
		customers: make([]customer.Customer, 0, len(seed)),
		nextID:    1,
		logger:    logger.With("component", "MemoryCustomerRepository"),
	}
	for _, c := range seed {
		r.customers = append(r.customers, c)
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*customer.Customer, 0, len(r.customers))
	for i := range r.customers {
		c := r.customers[i]
		customers = append(customers, &c)
	}

	r.logger.DebugContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(customerID)
	if i < 0 {
		r.logger.DebugContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
		return nil, customer.ErrNotFound
	}
	c := r.customers[i]
	return &c, nil
}

func (r *CustomerRepository) Insert(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.nextID
	r.nextID++
	r.customers = append(r.customers, *c)

	r.logger.DebugContext(ctx, "Customer inserted", slog.Int64("customerID", c.ID))
	return nil
}

func (r *CustomerRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.customers {
		if r.customers[i].Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerRepository) ExistsByID(_ context.Context, customerID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.indexOf(customerID) >= 0, nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, customerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(customerID)
	if i < 0 {
		return nil
	}
	r.customers = append(r.customers[:i], r.customers[i+1:]...)

	r.logger.DebugContext(ctx, "Customer deleted", slog.Int64("customerID", customerID))
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(c.ID)
	if i < 0 {
		return customer.ErrNotFound
	}
	r.customers[i] = *c

	r.logger.DebugContext(ctx, "Customer updated", slog.Int64("customerID", c.ID))
	return nil
}

// indexOf expects r.mu to be held.
func (r *CustomerRepository) indexOf(customerID int64) int {
	for i := range r.customers {
		if r.customers[i].ID == customerID {
			return i
		}
	}
	return -1
}
