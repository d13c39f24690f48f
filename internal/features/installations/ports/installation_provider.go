package ports

import (
	"context"
	"strconv"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/installations/domain"
)

// ListFilter carries the installation list query options.
type ListFilter struct {
	Status      string
	InstallerID string
	DateFrom    string
	DateTo      string
	Page        int
	PerPage     int
}

// Map serializes the filter for cache key construction.
func (f ListFilter) Map() map[string]string {
	m := map[string]string{}
	if f.Status != "" {
		m["status"] = f.Status
	}
	if f.InstallerID != "" {
		m["installer_id"] = f.InstallerID
	}
	if f.DateFrom != "" {
		m["date_from"] = f.DateFrom
	}
	if f.DateTo != "" {
		m["date_to"] = f.DateTo
	}
	if f.Page > 0 {
		m["page"] = strconv.Itoa(f.Page)
	}
	if f.PerPage > 0 {
		m["per_page"] = strconv.Itoa(f.PerPage)
	}
	return m
}

// InstallationList is a paginated installation page.
type InstallationList struct {
	Data []domain.Installation `json:"data"`
	Meta apiclient.Meta        `json:"meta"`
}

// CreateInstallationInput carries the fields for a new installation.
type CreateInstallationInput struct {
	OrderID       int    `json:"order_id"`
	ScheduledDate string `json:"scheduled_date"`
	Address       string `json:"address,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// InstallationProvider is the upstream source for installation jobs.
type InstallationProvider interface {
	List(ctx context.Context, filter ListFilter) (*InstallationList, error)
	Get(ctx context.Context, id int) (*domain.Installation, error)
	Create(ctx context.Context, input CreateInstallationInput) (*domain.Installation, error)
	UpdateStatus(ctx context.Context, id int, status domain.InstallationStatus) error
	Schedule(ctx context.Context, id int, date string) error
	AssignInstaller(ctx context.Context, id, installerID int) error
}
