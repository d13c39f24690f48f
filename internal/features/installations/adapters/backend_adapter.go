package adapters

import (
	"context"
	"fmt"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/installations/domain"
	"stockdesk/internal/features/installations/ports"
)

// BackendAdapter implements ports.InstallationProvider against the ERP
// REST API.
type BackendAdapter struct {
	client *apiclient.Client
}

// NewBackendAdapter creates an installation provider over the backend
// client.
func NewBackendAdapter(client *apiclient.Client) *BackendAdapter {
	return &BackendAdapter{client: client}
}

// List fetches a filtered installation page.
func (a *BackendAdapter) List(ctx context.Context, filter ports.ListFilter) (*ports.InstallationList, error) {
	params := apiclient.NewParams().
		Filter("status", filter.Status).
		Filter("installer_id", filter.InstallerID).
		Filter("date_from", filter.DateFrom).
		Filter("date_to", filter.DateTo).
		Page(filter.Page).
		PerPage(filter.PerPage)

	raw, err := a.client.Get(ctx, "/api/installations", params.Values())
	if err != nil {
		return nil, fmt.Errorf("list installations: %w", err)
	}

	data, meta, err := apiclient.DecodeList[domain.Installation](raw)
	if err != nil {
		return nil, fmt.Errorf("list installations: %w", err)
	}
	return &ports.InstallationList{Data: data, Meta: meta}, nil
}

// Get fetches a single installation.
func (a *BackendAdapter) Get(ctx context.Context, id int) (*domain.Installation, error) {
	raw, err := a.client.Get(ctx, fmt.Sprintf("/api/installations/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get installation %d: %w", id, err)
	}

	installation, err := apiclient.DecodeItem[domain.Installation](raw)
	if err != nil {
		return nil, fmt.Errorf("get installation %d: %w", id, err)
	}
	return &installation, nil
}

// Create creates an installation for an order.
func (a *BackendAdapter) Create(ctx context.Context, input ports.CreateInstallationInput) (*domain.Installation, error) {
	raw, err := a.client.Post(ctx, "/api/installations", input)
	if err != nil {
		return nil, err
	}

	installation, err := apiclient.DecodeItem[domain.Installation](raw)
	if err != nil {
		return nil, fmt.Errorf("create installation: %w", err)
	}
	return &installation, nil
}

// UpdateStatus transitions the installation status.
func (a *BackendAdapter) UpdateStatus(ctx context.Context, id int, status domain.InstallationStatus) error {
	_, err := a.client.Patch(ctx, fmt.Sprintf("/api/installations/%d/status", id), map[string]string{
		"status": string(status),
	})
	if err != nil {
		return fmt.Errorf("update installation %d status: %w", id, err)
	}
	return nil
}

// Schedule sets the installation date.
func (a *BackendAdapter) Schedule(ctx context.Context, id int, date string) error {
	_, err := a.client.Patch(ctx, fmt.Sprintf("/api/installations/%d/schedule", id), map[string]string{
		"scheduled_date": date,
	})
	if err != nil {
		return fmt.Errorf("schedule installation %d: %w", id, err)
	}
	return nil
}

// AssignInstaller assigns the job to an installer.
func (a *BackendAdapter) AssignInstaller(ctx context.Context, id, installerID int) error {
	_, err := a.client.Patch(ctx, fmt.Sprintf("/api/installations/%d/installer", id), map[string]int{
		"installer_id": installerID,
	})
	if err != nil {
		return fmt.Errorf("assign installer to installation %d: %w", id, err)
	}
	return nil
}
