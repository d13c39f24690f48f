package handler

import (
	"net/http"

	"stockdesk/internal/core/logger"
	"stockdesk/internal/core/server"
	"stockdesk/internal/features/orders/domain"
	"stockdesk/internal/features/orders/ports"
	"stockdesk/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	service *service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// Register mounts the order routes on the router.
func (h *OrderHandler) Register(r fiber.Router) {
	r.Get("/orders", h.List)
	r.Post("/orders", h.Create)
	r.Post("/orders/batch-delete", h.BatchDelete)
	r.Post("/orders/batch-update-status", h.BatchUpdateStatus)
	r.Get("/orders/:id", h.Get)
	r.Put("/orders/:id", h.Update)
	r.Patch("/orders/:id/status", h.UpdateStatus)
	r.Post("/orders/:id/cancel", h.Cancel)
	r.Post("/orders/:id/payments", h.RecordPayment)
	r.Post("/orders/:id/refunds", h.Refund)
	r.Post("/orders/:id/shipments", h.Ship)
}

// List handles the order list request.
// @Summary List orders
// @Description Returns a filtered, paginated order list.
// @Produce json
// @Param filter[search] query string false "Free text search"
// @Param filter[shipping_status] query string false "Shipping status"
// @Param filter[payment_status] query string false "Payment status"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} ports.OrderList
// @Failure 500 {object} server.ErrorResponse
// @Router /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	filter := ports.ListFilter{
		Search:         c.Query("filter[search]"),
		ShippingStatus: c.Query("filter[shipping_status]"),
		PaymentStatus:  c.Query("filter[payment_status]"),
		CustomerID:     c.Query("filter[customer_id]"),
		DateFrom:       c.Query("filter[date_from]"),
		DateTo:         c.Query("filter[date_to]"),
		Page:           c.QueryInt("page"),
		PerPage:        c.QueryInt("per_page"),
	}

	list, err := h.service.List(c.Context(), filter)
	if err != nil {
		logger.Get().Error("Failed to list orders",
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.RespondError(c, err, nil)
	}
	return c.JSON(list)
}

// Get handles the order detail request.
// @Summary Get order by ID
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} server.ErrorResponse
// @Router /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Order ID must be numeric")
	}

	order, err := h.service.Get(c.Context(), id)
	if err != nil {
		return server.RespondError(c, err, service.ErrOrderNotFound)
	}
	return c.JSON(order)
}

// Create handles order creation. A stock shortage is returned as the raw
// 422 payload so the client can open the backorder dialog.
// @Summary Create order
// @Accept json
// @Produce json
// @Success 201 {object} domain.Order
// @Failure 422 {object} server.ErrorResponse
// @Router /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var input ports.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}
	if input.CustomerID == 0 || len(input.Items) == 0 {
		return server.RespondBadRequest(c, "customer_id and items are required")
	}

	order, err := h.service.Create(c.Context(), input)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.Status(http.StatusCreated).JSON(order)
}

// Update handles a full order update.
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Order ID must be numeric")
	}

	var input ports.UpdateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	order, err := h.service.Update(c.Context(), id, input)
	if err != nil {
		return server.RespondError(c, err, service.ErrOrderNotFound)
	}
	return c.JSON(order)
}

// UpdateStatus handles a shipping status transition.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Order ID must be numeric")
	}

	var body struct {
		ShippingStatus string `json:"shipping_status"`
	}
	if err := c.BodyParser(&body); err != nil || body.ShippingStatus == "" {
		return server.RespondBadRequest(c, "shipping_status is required")
	}

	if err := h.service.UpdateStatus(c.Context(), id, domain.ShippingStatus(body.ShippingStatus)); err != nil {
		return server.RespondError(c, err, service.ErrOrderNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Cancel handles order cancellation. Cancellation is destructive: the
// request must carry confirmed=true along with a reason, echoing what the
// operator approved.
// @Summary Cancel order
// @Accept json
// @Param id path int true "Order ID"
// @Success 204
// @Failure 400 {object} server.ErrorResponse
// @Router /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Order ID must be numeric")
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
		return server.RespondError(c, err, service.ErrOrderNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}

// RecordPayment records a payment and returns the refreshed order so the
// client immediately sees the updated paid amount.
func (h *OrderHandler) RecordPayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Order ID must be numeric")
	}

	var input ports.PaymentInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}
	if input.Amount <= 0 {
		return server.RespondBadRequest(c, "Payment amount must be positive")
	}
	if input.Method == "" {
		return server.RespondBadRequest(c, "Payment method is required")
	}

	order, err := h.service.RecordPayment(c.Context(), id, input)
	if err != nil {
		return server.RespondError(c, err, service.ErrOrderNotFound)
	}
	return c.JSON(order)
}

// Refund drives the refund workflow in a single request: load, select,
// confirm, submit. The confirmed flag is the operator's approval of the
// echoed amount.
func (h *OrderHandler) Refund(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Order ID must be numeric")
	}

	var body struct {
		Items     []ports.RefundItem `json:"items"`
		Reason    string             `json:"reason"`
		Confirmed bool               `json:"confirmed"`
	}
	if err := c.BodyParser(&body); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	workflow := service.NewRefundWorkflow(h.service)
	if err := workflow.Load(c.Context(), id); err != nil {
		return server.RespondError(c, err, service.ErrOrderNotFound)
	}
	for _, item := range body.Items {
		if err := workflow.Select(item.OrderItemID, item.Quantity); err != nil {
			return server.RespondBadRequest(c, err.Error())
		}
	}

	amount, err := workflow.Confirm(body.Reason)
	if err != nil {
		return server.RespondBadRequest(c, err.Error())
	}
	if !body.Confirmed {
		// Echo the computed amount back; nothing is submitted.
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"requires_confirmation": true,
			"refund_amount":         amount,
			"reason":                body.Reason,
		})
	}

	if err := workflow.Submit(c.Context()); err != nil {
		return server.RespondError(c, err, service.ErrOrderNotFound)
	}
	return c.JSON(workflow.Order())
}

// Ship records a shipment for the order.
func (h *OrderHandler) Ship(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Order ID must be numeric")
	}

	var input ports.ShipmentInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	if err := h.service.Ship(c.Context(), id, input); err != nil {
		return server.RespondError(c, err, service.ErrOrderNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}

// BatchDelete deletes multiple orders. Ids may arrive as numbers or
// strings; confirmation is mandatory for the destructive action.
func (h *OrderHandler) BatchDelete(c *fiber.Ctx) error {
	var body struct {
		IDs       []any `json:"ids"`
		Confirmed bool  `json:"confirmed"`
	}
	if err := c.BodyParser(&body); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}
	if !body.Confirmed {
		return server.RespondBadRequest(c, "Batch deletion must be confirmed")
	}

	if err := h.service.BatchDelete(c.Context(), body.IDs); err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.SendStatus(http.StatusNoContent)
}

// BatchUpdateStatus updates the shipping status of multiple orders.
func (h *OrderHandler) BatchUpdateStatus(c *fiber.Ctx) error {
	var body struct {
		IDs    []any  `json:"ids"`
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}
	if body.Status == "" {
		return server.RespondBadRequest(c, "status is required")
	}

	if err := h.service.BatchUpdateStatus(c.Context(), body.IDs, body.Status); err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.SendStatus(http.StatusNoContent)
}
