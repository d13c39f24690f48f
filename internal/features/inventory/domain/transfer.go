package domain

// TransferStatus is the lifecycle state of an inventory transfer.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferInTransit TransferStatus = "in_transit"
	TransferReceived  TransferStatus = "received"
	TransferCancelled TransferStatus = "cancelled"
)

// TransferItem is a single line of an inventory transfer.
type TransferItem struct {
	ID               int `json:"id"`
	ProductVariantID int `json:"product_variant_id"`
	Quantity         int `json:"quantity"`
	ReceivedQuantity int `json:"received_quantity"`
}

// Transfer moves stock between two stores.
type Transfer struct {
	ID                 int            `json:"id"`
	Number             string         `json:"number"`
	SourceStoreID      int            `json:"source_store_id"`
	DestinationStoreID int            `json:"destination_store_id"`
	Status             TransferStatus `json:"status"`
	Items              []TransferItem `json:"items"`
	Notes              string         `json:"notes,omitempty"`
	CreatedAt          string         `json:"created_at,omitempty"`
	ReceivedAt         string         `json:"received_at,omitempty"`
}

// IsOpen reports whether the transfer can still be received or
// cancelled.
func (t *Transfer) IsOpen() bool {
	return t.Status == TransferPending || t.Status == TransferInTransit
}
