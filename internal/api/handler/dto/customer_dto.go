package dto

import "customer-service/internal/domain/customer"

type RegisterCustomerRequest struct {
	Name  string `json:"name" example:"Bob"`
	Email string `json:"email" example:"bob@gmail.com"`
	Age   int    `json:"age" example:"30"`
}

func (r RegisterCustomerRequest) ToDomain() customer.RegistrationRequest {
	return customer.RegistrationRequest{
		Name:  r.Name,
		Email: r.Email,
		Age:   r.Age,
	}
}

// UpdateCustomerRequest fields left out of the JSON body are not changed.
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty" example:"Alexander"`
	Email *string `json:"email,omitempty" example:"alexander@gmail.com"`
	Age   *int    `json:"age,omitempty" example:"22"`
}

func (r UpdateCustomerRequest) ToDomain() customer.UpdateRequest {
	return customer.UpdateRequest{
		Name:  r.Name,
		Email: r.Email,
		Age:   r.Age,
	}
}

type CustomerResponse struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Alex"`
	Email string `json:"email" example:"alex@gmail.com"`
	Age   int    `json:"age" example:"21"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:    cust.ID,
		Name:  cust.Name,
		Email: cust.Email,
		Age:   cust.Age,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		resp[i] = NewCustomerResponse(cust)
	}
	return resp
}

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
