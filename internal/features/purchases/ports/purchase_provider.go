package ports

import (
	"context"
	"strconv"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/purchases/domain"
)

// ListFilter carries the purchase list query options.
type ListFilter struct {
	Status  string
	StoreID string
	Search  string
	Page    int
	PerPage int
}

// Map serializes the filter for cache key construction.
func (f ListFilter) Map() map[string]string {
	m := map[string]string{}
	if f.Status != "" {
		m["status"] = f.Status
	}
	if f.StoreID != "" {
		m["store_id"] = f.StoreID
	}
	if f.Search != "" {
		m["search"] = f.Search
	}
	if f.Page > 0 {
		m["page"] = strconv.Itoa(f.Page)
	}
	if f.PerPage > 0 {
		m["per_page"] = strconv.Itoa(f.PerPage)
	}
	return m
}

// PurchaseList is a paginated purchase page.
type PurchaseList struct {
	Data []domain.Purchase `json:"data"`
	Meta apiclient.Meta    `json:"meta"`
}

// PurchaseItemInput is one line of a purchase order.
type PurchaseItemInput struct {
	ProductVariantID int     `json:"product_variant_id"`
	Quantity         int     `json:"quantity"`
	CostPrice        float64 `json:"cost_price"`
}

// PurchaseInput carries the editable purchase fields.
type PurchaseInput struct {
	StoreID      int                 `json:"store_id"`
	SupplierName string              `json:"supplier_name,omitempty"`
	ShippingCost float64             `json:"shipping_cost"`
	Items        []PurchaseItemInput `json:"items"`
	Notes        string              `json:"notes,omitempty"`
}

// ReceiveItemInput reports the quantity received per purchase line.
type ReceiveItemInput struct {
	PurchaseItemID   int `json:"purchase_item_id"`
	ReceivedQuantity int `json:"received_quantity"`
}

// PurchaseProvider is the upstream source for purchase orders.
type PurchaseProvider interface {
	List(ctx context.Context, filter ListFilter) (*PurchaseList, error)
	Get(ctx context.Context, id int) (*domain.Purchase, error)
	Create(ctx context.Context, input PurchaseInput) (*domain.Purchase, error)
	Update(ctx context.Context, id int, input PurchaseInput) (*domain.Purchase, error)
	Delete(ctx context.Context, id int) error
	Receive(ctx context.Context, id int, items []ReceiveItemInput) error
}

// StoreProvider is the upstream source for stores. Stores are read-only
// in the admin console.
type StoreProvider interface {
	ListStores(ctx context.Context) ([]domain.Store, error)
	// StoreExists reports whether the store id is known upstream.
	StoreExists(ctx context.Context, id int) (bool, error)
}
