package handler

import (
	"errors"
	"net/http"

	"stockdesk/internal/core/server"
	"stockdesk/internal/features/inventory/ports"
	"stockdesk/internal/features/inventory/service"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler handles HTTP requests for inventory transfers.
type TransferHandler struct {
	service *service.TransferService
}

// NewTransferHandler creates a new instance of TransferHandler.
func NewTransferHandler(s *service.TransferService) *TransferHandler {
	return &TransferHandler{service: s}
}

// Register mounts the transfer routes on the router.
func (h *TransferHandler) Register(r fiber.Router) {
	r.Get("/inventory-transfers", h.List)
	r.Post("/inventory-transfers", h.Create)
	r.Get("/inventory-transfers/:id", h.Get)
	r.Post("/inventory-transfers/:id/receive", h.Receive)
	r.Post("/inventory-transfers/:id/cancel", h.Cancel)
}

// List returns a filtered transfer page.
// @Summary List inventory transfers
// @Produce json
// @Param filter[status] query string false "Transfer status"
// @Success 200 {object} ports.TransferList
// @Router /api/inventory-transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	filter := ports.ListFilter{
		Status:  c.Query("filter[status]"),
		StoreID: c.Query("filter[store_id]"),
		Page:    c.QueryInt("page"),
		PerPage: c.QueryInt("per_page"),
	}

	list, err := h.service.List(c.Context(), filter)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.JSON(list)
}

// Get returns a single transfer.
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Transfer ID must be numeric")
	}

	transfer, err := h.service.Get(c.Context(), id)
	if err != nil {
		return server.RespondError(c, err, service.ErrTransferNotFound)
	}
	return c.JSON(transfer)
}

// Create creates a transfer.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var input ports.CreateTransferInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	transfer, err := h.service.Create(c.Context(), input)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.Status(http.StatusCreated).JSON(transfer)
}

// Receive marks the transfer received and returns the refreshed state.
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Transfer ID must be numeric")
	}

	var body struct {
		Items []ports.ReceiveItemInput `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	transfer, err := h.service.Receive(c.Context(), id, body.Items)
	if err != nil {
		if errors.Is(err, service.ErrTransferClosed) {
			return c.Status(http.StatusConflict).JSON(server.ErrorResponse{
				Message: err.Error(),
				RayID:   server.RayID(c),
			})
		}
		return server.RespondError(c, err, service.ErrTransferNotFound)
	}
	return c.JSON(transfer)
}

// Cancel cancels an open transfer; confirmed=true and a reason are
// mandatory.
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Transfer ID must be numeric")
	}

	var body struct {
		Reason    string `json:"reason"`
		Confirmed bool   `json:"confirmed"`
	}
	if err := c.BodyParser(&body); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}
	if body.Reason == "" {
		return server.RespondBadRequest(c, "Cancellation reason is required")
	}
	if !body.Confirmed {
		return server.RespondBadRequest(c, "Cancellation must be confirmed")
	}

	if err := h.service.Cancel(c.Context(), id, body.Reason); err != nil {
		if errors.Is(err, service.ErrTransferClosed) {
			return c.Status(http.StatusConflict).JSON(server.ErrorResponse{
				Message: err.Error(),
				RayID:   server.RayID(c),
			})
		}
		return server.RespondError(c, err, service.ErrTransferNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}
