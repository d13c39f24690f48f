package ports

import (
	"context"
	"strconv"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/inventory/domain"
)

// ListFilter carries the transfer list query options.
type ListFilter struct {
	Status  string
	StoreID string
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
	if f.Page > 0 {
		m["page"] = strconv.Itoa(f.Page)
	}
	if f.PerPage > 0 {
		m["per_page"] = strconv.Itoa(f.PerPage)
	}
	return m
}

// TransferList is a paginated transfer page.
type TransferList struct {
	Data []domain.Transfer `json:"data"`
	Meta apiclient.Meta    `json:"meta"`
}

// TransferItemInput is one line of a new transfer.
type TransferItemInput struct {
	ProductVariantID int `json:"product_variant_id"`
	Quantity         int `json:"quantity"`
}

// CreateTransferInput carries the fields for a new transfer.
type CreateTransferInput struct {
	SourceStoreID      int                 `json:"source_store_id"`
	DestinationStoreID int                 `json:"destination_store_id"`
	Items              []TransferItemInput `json:"items"`
	Notes              string              `json:"notes,omitempty"`
}

// ReceiveItemInput reports the quantity actually received per line.
type ReceiveItemInput struct {
	TransferItemID   int `json:"transfer_item_id"`
	ReceivedQuantity int `json:"received_quantity"`
}

// TransferProvider is the upstream source for inventory transfers.
type TransferProvider interface {
	List(ctx context.Context, filter ListFilter) (*TransferList, error)
	Get(ctx context.Context, id int) (*domain.Transfer, error)
	Create(ctx context.Context, input CreateTransferInput) (*domain.Transfer, error)
	Receive(ctx context.Context, id int, items []ReceiveItemInput) error
	Cancel(ctx context.Context, id int, reason string) error
}
