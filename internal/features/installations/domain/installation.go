package domain

// InstallationStatus is the lifecycle state of an installation job.
type InstallationStatus string

const (
	InstallationScheduled  InstallationStatus = "scheduled"
	InstallationInProgress InstallationStatus = "in_progress"
	InstallationCompleted  InstallationStatus = "completed"
	InstallationCancelled  InstallationStatus = "cancelled"
)

// validTransitions lists the allowed status moves. Completed and
// cancelled are terminal.
var validTransitions = map[InstallationStatus][]InstallationStatus{
	InstallationScheduled:  {InstallationInProgress, InstallationCancelled},
	InstallationInProgress: {InstallationCompleted, InstallationCancelled},
}

// CanTransition reports whether the status may move to next.
func (s InstallationStatus) CanTransition(next InstallationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// InstallationItem is a single product to install.
type InstallationItem struct {
	ID               int    `json:"id"`
	ProductVariantID int    `json:"product_variant_id"`
	ProductName      string `json:"product_name"`
	Quantity         int    `json:"quantity"`
}

// Installation is an on-site installation job linked to an order.
type Installation struct {
	ID            int                `json:"id"`
	OrderID       int                `json:"order_id"`
	CustomerName  string             `json:"customer_name"`
	Status        InstallationStatus `json:"status"`
	ScheduledDate string             `json:"scheduled_date,omitempty"`
	InstallerID   *int               `json:"installer_id"`
	InstallerName string             `json:"installer_name,omitempty"`
	Address       string             `json:"address,omitempty"`
	Items         []InstallationItem `json:"items,omitempty"`
	Notes         string             `json:"notes,omitempty"`
}
