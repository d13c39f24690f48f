package ports

import (
	"context"
	"strconv"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/customers/domain"
)

// ListFilter carries the customer list query options.
type ListFilter struct {
	Search    string
	IsCompany string
	Page      int
	PerPage   int
}

// Map serializes the filter for cache key construction.
func (f ListFilter) Map() map[string]string {
	m := map[string]string{}
	if f.Search != "" {
		m["search"] = f.Search
	}
	if f.IsCompany != "" {
		m["is_company"] = f.IsCompany
	}
	if f.Page > 0 {
		m["page"] = strconv.Itoa(f.Page)
	}
	if f.PerPage > 0 {
		m["per_page"] = strconv.Itoa(f.PerPage)
	}
	return m
}

// CustomerList is a paginated customer page.
type CustomerList struct {
	Data []domain.Customer `json:"data"`
	Meta apiclient.Meta    `json:"meta"`
}

// AddressInput carries the editable address fields.
type AddressInput struct {
	ID         int    `json:"id,omitempty"`
	Label      string `json:"label,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// CustomerInput carries the editable customer fields. Addresses replace
// the existing set.
type CustomerInput struct {
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone,omitempty"`
	IsCompany bool           `json:"is_company"`
	TaxID     string         `json:"tax_id,omitempty"`
	Addresses []AddressInput `json:"addresses,omitempty"`
}

// CustomerProvider is the upstream source for customer records.
type CustomerProvider interface {
	List(ctx context.Context, filter ListFilter) (*CustomerList, error)
	Get(ctx context.Context, id int) (*domain.Customer, error)
	Create(ctx context.Context, input CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id int, input CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id int) error
	// EmailExists reports whether a customer with the given email is
	// already registered.
	EmailExists(ctx context.Context, email string) (bool, error)
}
