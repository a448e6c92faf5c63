package handler

import (
	"customer-service/internal/api/handler/dto"
	mw "customer-service/internal/api/middleware"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

// serviceFailureLevel keeps expected domain outcomes out of the error log.
func serviceFailureLevel(err error) slog.Level {
	var validationError *apperrors.ValidationError
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrAlreadyExists),
		errors.As(err, &validationError):
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// requestLogger tags records with the authenticated caller when auth is on.
func (h *CustomerHandler) requestLogger(r *http.Request) *slog.Logger {
	if subject, ok := mw.SubjectFromContext(r.Context()); ok && subject != "" {
		return h.logger.With(slog.String("actor", subject))
	}
	return h.logger
}

// ListCustomers handles GET /api/v1/customers
// @Summary List customers
// @Description Returns every stored customer in insertion order.
// @Tags Customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse "List of customers"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list customers request")

	customers, err := h.service.GetAllCustomers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCustomerListResponse(customers)
	h.logger.InfoContext(r.Context(), "Customers listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// GetCustomer handles GET /api/v1/customers/{customerID}
// @Summary Retrieve a customer
// @Description Retrieves a single customer by id.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer details"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/customers/{customerID} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	cust, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.Log(r.Context(), serviceFailureLevel(err), "Service failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// RegisterCustomer handles POST /api/v1/customers
// @Summary Register a customer
// @Description Creates a customer. The email must not belong to any stored customer.
// @Tags Customers
// @Accept json
// @Param request body dto.RegisterCustomerRequest true "Customer registration request"
// @Success 201 "Customer registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "Email already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/customers [post]
func (h *CustomerHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)
	logger.DebugContext(r.Context(), "Received register customer request")

	var req dto.RegisterCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.AddCustomer(r.Context(), req.ToDomain())
	if err != nil {
		logger.Log(r.Context(), serviceFailureLevel(err), "Service failed to register customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Customer registered successfully", slog.Int64("customerID", created.ID))
	w.Header().Set("Location", strings.TrimSuffix(r.URL.Path, "/")+"/"+strconv.FormatInt(created.ID, 10))
	w.WriteHeader(http.StatusCreated)
}

// UpdateCustomer handles PUT /api/v1/customers/{customerID}
// @Summary Update a customer
// @Description Applies a partial update. At least one field must change.
// @Tags Customers
// @Accept json
// @Param customerID path int true "Customer ID"
// @Param request body dto.UpdateCustomerRequest true "Fields to change"
// @Success 200 "Customer updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or no changed data"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "Email already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/customers/{customerID} [put]
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.UpdateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if _, err := h.service.UpdateCustomer(r.Context(), customerID, req.ToDomain()); err != nil {
		logger.Log(r.Context(), serviceFailureLevel(err), "Service failed to update customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Customer updated successfully", slog.Int64("customerID", customerID))
	w.WriteHeader(http.StatusOK)
}

// DeleteCustomer handles DELETE /api/v1/customers/{customerID}
// @Summary Delete a customer
// @Tags Customers
// @Param customerID path int true "Customer ID"
// @Success 200 "Customer deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/customers/{customerID} [delete]
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := h.service.DeleteCustomerByID(r.Context(), customerID); err != nil {
		logger.Log(r.Context(), serviceFailureLevel(err), "Service failed to delete customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Customer deleted successfully", slog.Int64("customerID", customerID))
	w.WriteHeader(http.StatusOK)
}
