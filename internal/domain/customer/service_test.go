package customer_test

import (
	"context"
	"customer-service/internal/domain/customer"
	"customer-service/internal/infrastructure/database/memory"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func setupTest() (*customer.MockCustomerRepository, customer.CustomerService) {
	mockRepo := new(customer.MockCustomerRepository)
	service := customer.NewCustomerService(mockRepo, discard)
	return mockRepo, service
}

func TestNewCustomerService_PanicsOnNilRepo(t *testing.T) {
	assert.Panics(t, func() { customer.NewCustomerService(nil, discard) })
}

func TestCustomerService_GetAllCustomers(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		expected := []*customer.Customer{{ID: 1, Name: "Alex"}, {ID: 2, Name: "Jamila"}}
		mockRepo.On("FindAll", ctx).Return(expected, nil).Once()

		customers, err := service.GetAllCustomers(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, customers)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Repository Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("connection refused")
		mockRepo.On("FindAll", ctx).Return(nil, dbError).Once()

		customers, err := service.GetAllCustomers(ctx)

		assert.Nil(t, customers)
		assert.ErrorIs(t, err, dbError)
		assert.Contains(t, err.Error(), "failed to list customers")
	})
}

func TestCustomerService_GetCustomer(t *testing.T) {
	ctx := context.Background()
	customerID := int64(42)

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		expected := &customer.Customer{ID: customerID, Name: "Test"}
		mockRepo.On("FindByID", ctx, customerID).Return(expected, nil).Once()

		cust, err := service.GetCustomer(ctx, customerID)

		assert.NoError(t, err)
		assert.Equal(t, expected, cust)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("FindByID", ctx, customerID).Return(nil, customer.ErrNotFound).Once()

		cust, err := service.GetCustomer(ctx, customerID)

		assert.Nil(t, cust)
		assert.ErrorIs(t, err, customer.ErrNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.EqualError(t, err, "customer not found: id 42")
	})

	t.Run("Error - Repository Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("internal server error")
		mockRepo.On("FindByID", ctx, customerID).Return(nil, dbError).Once()

		cust, err := service.GetCustomer(ctx, customerID)

		assert.Nil(t, cust)
		assert.ErrorIs(t, err, dbError)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
		assert.Contains(t, err.Error(), "failed to get customer 42")
	})
}

func TestCustomerService_AddCustomer(t *testing.T) {
	ctx := context.Background()
	req := customer.RegistrationRequest{Name: "Bob", Email: "bob@gmail.com", Age: 30}

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("ExistsByEmail", ctx, req.Email).Return(false, nil).Once()
		mockRepo.On("Insert", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			match := c.Name == req.Name && c.Email == req.Email && c.Age == req.Age && c.ID == 0
			if match {
				c.ID = 3
			}
			return match
		})).Return(nil).Once()

		created, err := service.AddCustomer(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, &customer.Customer{ID: 3, Name: "Bob", Email: "bob@gmail.com", Age: 30}, created)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Duplicate Email", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("ExistsByEmail", ctx, req.Email).Return(true, nil).Once()

		created, err := service.AddCustomer(ctx, req)

		assert.Nil(t, created)
		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Error - Duplicate wins over blank name", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("ExistsByEmail", ctx, req.Email).Return(true, nil).Once()

		_, err := service.AddCustomer(ctx, customer.RegistrationRequest{Email: req.Email})

		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
	})

	t.Run("Error - Blank Name", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("ExistsByEmail", ctx, "x@gmail.com").Return(false, nil).Once()

		_, err := service.AddCustomer(ctx, customer.RegistrationRequest{Name: "  ", Email: "x@gmail.com"})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		var ve *apperrors.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "name", ve.Field)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Error - Blank Email", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("ExistsByEmail", ctx, "").Return(false, nil).Once()

		_, err := service.AddCustomer(ctx, customer.RegistrationRequest{Name: "Bob"})

		var ve *apperrors.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "email", ve.Field)
	})

	t.Run("Error - Exists Check Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("timeout")
		mockRepo.On("ExistsByEmail", ctx, req.Email).Return(false, dbError).Once()

		_, err := service.AddCustomer(ctx, req)

		assert.ErrorIs(t, err, dbError)
		assert.Contains(t, err.Error(), "failed to check email")
	})

	t.Run("Error - Insert hits unique constraint", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("ExistsByEmail", ctx, req.Email).Return(false, nil).Once()
		mockRepo.On("Insert", ctx, mock.AnythingOfType("*customer.Customer")).Return(apperrors.ErrAlreadyExists).Once()

		_, err := service.AddCustomer(ctx, req)

		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
	})

	t.Run("Error - Insert Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("disk full")
		mockRepo.On("ExistsByEmail", ctx, req.Email).Return(false, nil).Once()
		mockRepo.On("Insert", ctx, mock.AnythingOfType("*customer.Customer")).Return(dbError).Once()

		_, err := service.AddCustomer(ctx, req)

		assert.ErrorIs(t, err, dbError)
		assert.Contains(t, err.Error(), "failed to save new customer")
	})
}

func TestCustomerService_DeleteCustomerByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("ExistsByID", ctx, int64(2)).Return(true, nil).Once()
		mockRepo.On("DeleteByID", ctx, int64(2)).Return(nil).Once()

		assert.NoError(t, service.DeleteCustomerByID(ctx, 2))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("ExistsByID", ctx, int64(9)).Return(false, nil).Once()

		err := service.DeleteCustomerByID(ctx, 9)

		assert.ErrorIs(t, err, customer.ErrNotFound)
		mockRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("Error - Delete Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("lock timeout")
		mockRepo.On("ExistsByID", ctx, int64(2)).Return(true, nil).Once()
		mockRepo.On("DeleteByID", ctx, int64(2)).Return(dbError).Once()

		err := service.DeleteCustomerByID(ctx, 2)

		assert.ErrorIs(t, err, dbError)
		assert.Contains(t, err.Error(), "failed to delete customer 2")
	})
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	ctx := context.Background()
	stored := func() *customer.Customer {
		return &customer.Customer{ID: 1, Name: "Alex", Email: "alex@gmail.com", Age: 21}
	}

	t.Run("Success - name only", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("FindByID", ctx, int64(1)).Return(stored(), nil).Once()
		mockRepo.On("Update", ctx, &customer.Customer{ID: 1, Name: "Alexander", Email: "alex@gmail.com", Age: 21}).Return(nil).Once()

		updated, err := service.UpdateCustomer(ctx, 1, customer.UpdateRequest{Name: ptr("Alexander")})

		require.NoError(t, err)
		assert.Equal(t, "Alexander", updated.Name)
		assert.Equal(t, "alex@gmail.com", updated.Email)
		assert.Equal(t, 21, updated.Age)
		mockRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - new email", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("FindByID", ctx, int64(1)).Return(stored(), nil).Once()
		mockRepo.On("ExistsByEmail", ctx, "alex@example.com").Return(false, nil).Once()
		mockRepo.On("Update", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil).Once()

		updated, err := service.UpdateCustomer(ctx, 1, customer.UpdateRequest{Email: ptr("alex@example.com")})

		require.NoError(t, err)
		assert.Equal(t, "alex@example.com", updated.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("FindByID", ctx, int64(7)).Return(nil, customer.ErrNotFound).Once()

		_, err := service.UpdateCustomer(ctx, 7, customer.UpdateRequest{Name: ptr("X")})

		assert.ErrorIs(t, err, customer.ErrNotFound)
	})

	t.Run("Error - No Changes", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("FindByID", ctx, int64(1)).Return(stored(), nil).Once()

		_, err := service.UpdateCustomer(ctx, 1, customer.UpdateRequest{Name: ptr("Alex"), Age: ptr(21)})

		assert.ErrorIs(t, err, customer.ErrNoChanges)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error - Duplicate Email", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("FindByID", ctx, int64(1)).Return(stored(), nil).Once()
		mockRepo.On("ExistsByEmail", ctx, "jamila@gmail.com").Return(true, nil).Once()

		_, err := service.UpdateCustomer(ctx, 1, customer.UpdateRequest{Email: ptr("jamila@gmail.com")})

		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error - Own email repeated alongside a change", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("FindByID", ctx, int64(1)).Return(stored(), nil).Once()
		mockRepo.On("ExistsByEmail", ctx, "alex@gmail.com").Return(true, nil).Once()

		_, err := service.UpdateCustomer(ctx, 1, customer.UpdateRequest{Name: ptr("Alexander"), Email: ptr("alex@gmail.com")})

		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
	})

	t.Run("Error - Update Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("serialization failure")
		mockRepo.On("FindByID", ctx, int64(1)).Return(stored(), nil).Once()
		mockRepo.On("Update", ctx, mock.AnythingOfType("*customer.Customer")).Return(dbError).Once()

		_, err := service.UpdateCustomer(ctx, 1, customer.UpdateRequest{Age: ptr(22)})

		assert.ErrorIs(t, err, dbError)
		assert.Contains(t, err.Error(), "failed to update customer 1")
	})
}

func TestCustomerService_SeededScenario(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCustomerRepository(discard, memory.DefaultSeed()...)
	service := customer.NewCustomerService(repo, discard)

	bob, err := service.AddCustomer(ctx, customer.RegistrationRequest{Name: "Bob", Email: "bob@gmail.com", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(3), bob.ID)

	all, err := service.GetAllCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(3), all[2].ID)

	got, err := service.GetCustomer(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
	assert.Equal(t, "bob@gmail.com", got.Email)
	assert.Equal(t, 30, got.Age)

	_, err = service.AddCustomer(ctx, customer.RegistrationRequest{Name: "Eve", Email: "alex@gmail.com", Age: 22})
	assert.ErrorIs(t, err, customer.ErrDuplicateEmail)

	_, err = service.UpdateCustomer(ctx, 1, customer.UpdateRequest{Name: ptr("Alexander")})
	require.NoError(t, err)
	alex, err := service.GetCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alexander", alex.Name)
	assert.Equal(t, "alex@gmail.com", alex.Email)
	assert.Equal(t, 21, alex.Age)

	_, err = service.UpdateCustomer(ctx, 1, customer.UpdateRequest{})
	assert.ErrorIs(t, err, customer.ErrNoChanges)

	_, err = service.UpdateCustomer(ctx, 1, customer.UpdateRequest{Age: ptr(40), Email: ptr("jamila@gmail.com")})
	assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
	alex, err = service.GetCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 21, alex.Age, "rejected update must not leak into the store")

	require.NoError(t, service.DeleteCustomerByID(ctx, 2))
	_, err = service.GetCustomer(ctx, 2)
	assert.ErrorIs(t, err, customer.ErrNotFound)

	err = service.DeleteCustomerByID(ctx, 2)
	assert.ErrorIs(t, err, customer.ErrNotFound)
}
