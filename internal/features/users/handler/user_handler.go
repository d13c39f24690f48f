package handler

import (
	"net/http"

	"stockdesk/internal/core/server"
	"stockdesk/internal/features/users/ports"
	"stockdesk/internal/features/users/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests related to admin accounts.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Register mounts the user routes on the router.
func (h *UserHandler) Register(r fiber.Router) {
	r.Get("/users", h.List)
	r.Post("/users", h.Create)
	r.Put("/users/:id", h.Update)
	r.Delete("/users/:id", h.Delete)
}

// List returns all admin accounts.
// @Summary List users
// @Produce json
// @Success 200 {array} domain.User
// @Router /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.JSON(users)
}

// Create creates an admin account.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input ports.UserInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}
	if input.Name == "" || input.Email == "" {
		return server.RespondBadRequest(c, "name and email are required")
	}

	user, err := h.service.Create(c.Context(), input)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.Status(http.StatusCreated).JSON(user)
}

// Update replaces an account's editable fields.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return server.RespondBadRequest(c, "User ID is required")
	}

	var input ports.UserInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	user, err := h.service.Update(c.Context(), id, input)
	if err != nil {
		return server.RespondError(c, err, service.ErrUserNotFound)
	}
	return c.JSON(user)
}

// Delete deletes an admin account.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return server.RespondBadRequest(c, "User ID is required")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return server.RespondError(c, err, service.ErrUserNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}
