package customer

import "strings"

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func NewCustomer(name, email string, age int) *Customer {
	return &Customer{
		Name:  name,
		Email: email,
		Age:   age,
	}
}

type RegistrationRequest struct {
	Name  string
	Email string
	Age   int
}

// UpdateRequest is a partial update. A nil field leaves the stored value
// untouched.
type UpdateRequest struct {
	Name  *string
	Email *string
	Age   *int
}

// Apply copies every present, non-blank and different field of req onto c
// and reports whether anything changed.
func (c *Customer) Apply(req UpdateRequest) bool {
	changed := false

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" && *req.Name != c.Name {
		c.Name = *req.Name
		changed = true
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" && *req.Email != c.Email {
		c.Email = *req.Email
		changed = true
	}
	if req.Age != nil && *req.Age != c.Age {
		c.Age = *req.Age
		changed = true
	}

	return changed
}
