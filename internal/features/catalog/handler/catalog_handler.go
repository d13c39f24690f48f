package handler

import (
	"net/http"

	"stockdesk/internal/core/server"
	"stockdesk/internal/features/catalog/ports"
	"stockdesk/internal/features/catalog/service"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for categories and attributes.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler creates a new instance of CatalogHandler.
func NewCatalogHandler(s *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// Register mounts the catalog routes on the router.
func (h *CatalogHandler) Register(r fiber.Router) {
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/tree", h.CategoryTree)
	r.Post("/categories", h.CreateCategory)
	r.Put("/categories/:id", h.UpdateCategory)
	r.Delete("/categories/:id", h.DeleteCategory)

	r.Get("/attributes", h.ListAttributes)
	r.Post("/attributes", h.CreateAttribute)
	r.Get("/attributes/:id", h.GetAttribute)
	r.Put("/attributes/:id", h.UpdateAttribute)
	r.Delete("/attributes/:id", h.DeleteAttribute)
}

// ListCategories returns the flat category list.
// @Summary List categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.JSON(categories)
}

// CategoryTree returns the category forest.
// @Summary Category tree
// @Produce json
// @Success 200 {array} domain.CategoryNode
// @Router /api/categories/tree [get]
func (h *CatalogHandler) CategoryTree(c *fiber.Ctx) error {
	tree, err := h.service.CategoryTree(c.Context())
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.JSON(tree)
}

// CreateCategory creates a category.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var input ports.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return server.RespondBadRequest(c, "Category name is required")
	}

	cat, err := h.service.CreateCategory(c.Context(), input)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.Status(http.StatusCreated).JSON(cat)
}

// UpdateCategory updates a category.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Category ID must be numeric")
	}

	var input ports.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	cat, err := h.service.UpdateCategory(c.Context(), id, input)
	if err != nil {
		return server.RespondError(c, err, service.ErrCategoryNotFound)
	}
	return c.JSON(cat)
}

// DeleteCategory deletes a category.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Category ID must be numeric")
	}

	if err := h.service.DeleteCategory(c.Context(), id); err != nil {
		return server.RespondError(c, err, service.ErrCategoryNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListAttributes returns a paginated attribute page.
func (h *CatalogHandler) ListAttributes(c *fiber.Ctx) error {
	list, err := h.service.ListAttributes(c.Context(), c.QueryInt("page"), c.QueryInt("per_page"))
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.JSON(list)
}

// GetAttribute returns a single attribute.
func (h *CatalogHandler) GetAttribute(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Attribute ID must be numeric")
	}

	attr, err := h.service.GetAttribute(c.Context(), id)
	if err != nil {
		return server.RespondError(c, err, service.ErrAttributeNotFound)
	}
	return c.JSON(attr)
}

// CreateAttribute creates an attribute with its value set.
func (h *CatalogHandler) CreateAttribute(c *fiber.Ctx) error {
	var input ports.AttributeInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return server.RespondBadRequest(c, "Attribute name is required")
	}

	attr, err := h.service.CreateAttribute(c.Context(), input)
	if err != nil {
		return server.RespondError(c, err, nil)
	}
	return c.Status(http.StatusCreated).JSON(attr)
}

// UpdateAttribute replaces the attribute's name and values.
func (h *CatalogHandler) UpdateAttribute(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Attribute ID must be numeric")
	}

	var input ports.AttributeInput
	if err := c.BodyParser(&input); err != nil {
		return server.RespondBadRequest(c, "Invalid request body")
	}

	attr, err := h.service.UpdateAttribute(c.Context(), id, input)
	if err != nil {
		return server.RespondError(c, err, service.ErrAttributeNotFound)
	}
	return c.JSON(attr)
}

// DeleteAttribute deletes an attribute.
func (h *CatalogHandler) DeleteAttribute(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return server.RespondBadRequest(c, "Attribute ID must be numeric")
	}

	if err := h.service.DeleteAttribute(c.Context(), id); err != nil {
		return server.RespondError(c, err, service.ErrAttributeNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}
