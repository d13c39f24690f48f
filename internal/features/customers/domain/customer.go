package domain

// Address is a customer shipping or billing address. At most one address
// per customer carries the default flag.
type Address struct {
	ID         int    `json:"id"`
	Label      string `json:"label,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// Customer is an admin-facing customer record.
type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	IsCompany bool      `json:"is_company"`
	TaxID     string    `json:"tax_id,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
	CreatedAt string    `json:"created_at,omitempty"`
}

// DefaultAddress returns the customer's default address, or nil.
func (c *Customer) DefaultAddress() *Address {
	for i := range c.Addresses {
		if c.Addresses[i].IsDefault {
			return &c.Addresses[i]
		}
	}
	return nil
}
