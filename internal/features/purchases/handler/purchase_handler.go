package handler

import (
	"errors"
	"net/http"

	"stockdesk/internal/core/server"
	"stockdesk/internal/features/purchases/ports"
	"stockdesk/internal/features/purchases/service"

	"github.com/gofiber/fiber/v2"
)

// PurchaseHandler handles HTTP requests for purchases and stores.
type PurchaseHandler struct {
	service *service.PurchaseService
}

// NewPurchaseHandler creates a new instance of PurchaseHandler.
func NewPurchaseHandler(s *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

// Register mounts the purchase and store routes on the router.
func (h *PurchaseHandler) Register(r fiber.Router) {
	r.Get("/purchases", h.List)
	r.Post("/purchases", h.Create)
	r.Get("/purchases/:id", h.Get)
	r.Put("/purchases/:id", h.Update)
	r.Delete("/purchases/:id", h.Delete)
	r.Post("/purchases/:id/receive", h.Receive)

	r.Get("/stores", h.ListStores)
}

// List returns a filtered purchase page.
// @Summary List purchases
// @Produce json
// @Param filter[status] query string false "Purchase status"
// @Success 200 {object} ports.PurchaseList
// @Router /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	filter := ports.ListFilter{
		Status:  c.Query("filter[status]"),
		StoreID: c.Query("filter[store_id]"),
		Search:  c.Query("filter[search]"),
		Page:    c.QueryInt("page"),
		PerPage: c.QueryInt("per_page"),
	}

	list, err := h.service.List(c.Context(), filter)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.JSON(list)
}

// Get returns a single purchase.
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Purchase ID must be numeric")
	}

	purchase, err := h.service.Get(c.Context(), id)
	if err != nil {
		return server.RespondError(c, err, service.ErrPurchaseNotFound)
	}
	return c.JSON(purchase)
}

// Create creates a purchase.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var input ports.PurchaseInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	purchase, err := h.service.Create(c.Context(), input)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.Status(http.StatusCreated).JSON(purchase)
}

// Update replaces a purchase's editable fields.
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Purchase ID must be numeric")
	}

	var input ports.PurchaseInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	purchase, err := h.service.Update(c.Context(), id, input)
	if err != nil {
		return server.RespondError(c, err, service.ErrPurchaseNotFound)
	}
	return c.JSON(purchase)
}

// Delete deletes a purchase; confirmed=true is mandatory.
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Purchase ID must be numeric")
	}
	if !c.QueryBool("confirmed") {
		return server.RespondBadRequest(c, "Deletion must be confirmed")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return server.RespondError(c, err, service.ErrPurchaseNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Receive records received quantities and returns the refreshed
// purchase.
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Purchase ID must be numeric")
	}

	var body struct {
		Items []ports.ReceiveItemInput `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	purchase, err := h.service.Receive(c.Context(), id, body.Items)
	if err != nil {
		if errors.Is(err, service.ErrPurchaseNotReceivable) {
			return c.Status(http.StatusConflict).JSON(server.ErrorResponse{
				Message: err.Error(),
				RayID:   server.RayID(c),
			})
		}
		return server.RespondError(c, err, service.ErrPurchaseNotFound)
	}
	return c.JSON(purchase)
}

// ListStores returns all stores.
func (h *PurchaseHandler) ListStores(c *fiber.Ctx) error {
	stores, err := h.service.ListStores(c.Context())
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.JSON(stores)
}
