package server

import (
	"errors"
	"net/http"

	"stockdesk/internal/core/apiclient"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
	// Errors carries field-keyed validation messages when present.
	Errors map[string][]string `json:"errors,omitempty"`
}

// RayID extracts the request id set by the requestid middleware.
func RayID(c *fiber.Ctx) string {
	if rayID, ok := c.Locals("requestid").(string); ok {
		return rayID
	}
	return "unknown"
}

// RespondError maps an error to an HTTP response. notFound is the feature's
// not-found sentinel; pass nil if the route has none. Stock-shortage
// payloads are sent back raw so the client can open the backorder dialog
// instead of a generic failure message.
func RespondError(c *fiber.Ctx, err error, notFound error) error {
	rayID := RayID(c)

	if notFound != nil && errors.Is(err, notFound) {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Message: notFound.Error(),
			RayID:   rayID,
		})
	}

	var shortage *apiclient.StockShortageError
	if errors.As(err, &shortage) {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(http.StatusUnprocessableEntity).Send(shortage.Raw)
	}

	var validation *apiclient.ValidationError
	if errors.As(err, &validation) {
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Message: validation.Message,
			RayID:   rayID,
			Errors:  validation.Fields,
		})
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(ErrorResponse{
			Message: apiErr.Message,
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID,
	})
}

// RespondBadRequest returns a 400 with the given message.
func RespondBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Message: message,
		RayID:   RayID(c),
	})
}
