package handler

import (
	"errors"
	"net/http"

	"stockdesk/internal/core/server"
	"stockdesk/internal/features/installations/domain"
	"stockdesk/internal/features/installations/ports"
	"stockdesk/internal/features/installations/service"

	"github.com/gofiber/fiber/v2"
)

// InstallationHandler handles HTTP requests for installation jobs.
type InstallationHandler struct {
	service *service.InstallationService
}

// NewInstallationHandler creates a new instance of InstallationHandler.
func NewInstallationHandler(s *service.InstallationService) *InstallationHandler {
	return &InstallationHandler{service: s}
}

// Register mounts the installation routes on the router.
func (h *InstallationHandler) Register(r fiber.Router) {
	r.Get("/installations", h.List)
	r.Post("/installations", h.Create)
	r.Get("/installations/:id", h.Get)
	r.Patch("/installations/:id/status", h.UpdateStatus)
	r.Patch("/installations/:id/schedule", h.Schedule)
	r.Patch("/installations/:id/installer", h.AssignInstaller)
}

// List returns a filtered installation page.
// @Summary List installations
// @Produce json
// @Param filter[status] query string false "Installation status"
// @Success 200 {object} ports.InstallationList
// @Router /api/installations [get]
func (h *InstallationHandler) List(c *fiber.Ctx) error {
	filter := ports.ListFilter{
		Status:      c.Query("filter[status]"),
		InstallerID: c.Query("filter[installer_id]"),
		DateFrom:    c.Query("filter[date_from]"),
		DateTo:      c.Query("filter[date_to]"),
		Page:        c.QueryInt("page"),
		PerPage:     c.QueryInt("per_page"),
	}

	list, err := h.service.List(c.Context(), filter)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.JSON(list)
}

// Get returns a single installation.
func (h *InstallationHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Installation ID must be numeric")
	}

	installation, err := h.service.Get(c.Context(), id)
	if err != nil {
		return server.RespondError(c, err, service.ErrInstallationNotFound)
	}
	return c.JSON(installation)
}

// Create creates an installation for an order.
func (h *InstallationHandler) Create(c *fiber.Ctx) error {
	var input ports.CreateInstallationInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	installation, err := h.service.Create(c.Context(), input)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.Status(http.StatusCreated).JSON(installation)
}

// UpdateStatus transitions the installation status.
func (h *InstallationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Installation ID must be numeric")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return server.RespondBadRequest(c, "status is required")
	}

	err = h.service.UpdateStatus(c.Context(), id, domain.InstallationStatus(body.Status))
	if err != nil {
		if errors.Is(err, service.ErrInvalidTransition) {
			return c.Status(http.StatusConflict).JSON(server.ErrorResponse{
				Message: err.Error(),
				RayID:   server.RayID(c),
			})
		}
		return server.RespondError(c, err, service.ErrInstallationNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Schedule sets the installation date.
func (h *InstallationHandler) Schedule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Installation ID must be numeric")
	}

	var body struct {
		ScheduledDate string `json:"scheduled_date"`
	}
	if err := c.BodyParser(&body); err != nil || body.ScheduledDate == "" {
		return server.RespondBadRequest(c, "scheduled_date is required")
	}

	if err := h.service.Schedule(c.Context(), id, body.ScheduledDate); err != nil {
		return server.RespondError(c, err, service.ErrInstallationNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}

// AssignInstaller assigns the job to an installer.
func (h *InstallationHandler) AssignInstaller(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Installation ID must be numeric")
	}

	var body struct {
		InstallerID int `json:"installer_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.InstallerID == 0 {
		return server.RespondBadRequest(c, "installer_id is required")
	}

	if err := h.service.AssignInstaller(c.Context(), id, body.InstallerID); err != nil {
		return server.RespondError(c, err, service.ErrInstallationNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}
