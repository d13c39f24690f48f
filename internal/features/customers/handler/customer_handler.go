package handler

import (
	"net/http"

	"stockdesk/internal/core/server"
	"stockdesk/internal/features/customers/ports"
	"stockdesk/internal/features/customers/service"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles HTTP requests related to customers.
type CustomerHandler struct {
	service *service.CustomerService
}

// NewCustomerHandler creates a new instance of CustomerHandler.
func NewCustomerHandler(s *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

// Register mounts the customer routes on the router.
func (h *CustomerHandler) Register(r fiber.Router) {
	r.Get("/customers", h.List)
	r.Post("/customers", h.Create)
	r.Get("/customers/check-email", h.CheckEmail)
	r.Get("/customers/:id", h.Get)
	r.Put("/customers/:id", h.Update)
	r.Delete("/customers/:id", h.Delete)
}

// List returns a filtered customer page.
// @Summary List customers
// @Produce json
// @Param filter[search] query string false "Free text search"
// @Param page query int false "Page number"
// @Success 200 {object} ports.CustomerList
// @Router /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	filter := ports.ListFilter{
		Search:    c.Query("filter[search]"),
		IsCompany: c.Query("filter[is_company]"),
		Page:      c.QueryInt("page"),
		PerPage:   c.QueryInt("per_page"),
	}

	list, err := h.service.List(c.Context(), filter)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.JSON(list)
}

// Get returns a single customer with addresses.
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Customer ID must be numeric")
	}

	customer, err := h.service.Get(c.Context(), id)
	if err != nil {
		return server.RespondError(c, err, service.ErrCustomerNotFound)
	}
	return c.JSON(customer)
}

// Create creates a customer.
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var input ports.CustomerInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}
	if input.Name == "" || input.Email == "" {
		return server.RespondBadRequest(c, "name and email are required")
	}

	customer, err := h.service.Create(c.Context(), input)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.Status(http.StatusCreated).JSON(customer)
}

// Update replaces a customer's editable fields.
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Customer ID must be numeric")
	}

	var input ports.CustomerInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	customer, err := h.service.Update(c.Context(), id, input)
	if err != nil {
		return server.RespondError(c, err, service.ErrCustomerNotFound)
	}
	return c.JSON(customer)
}

// Delete deletes a customer.
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Customer ID must be numeric")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return server.RespondError(c, err, service.ErrCustomerNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}

// CheckEmail reports whether the email is already registered. The check
// never fails; upstream trouble reads as available.
func (h *CustomerHandler) CheckEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return server.RespondBadRequest(c, "email is required")
	}
	return c.JSON(fiber.Map{"exists": h.service.EmailExists(c.Context(), email)})
}
