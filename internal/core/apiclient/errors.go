package apiclient

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// APIError is a non-2xx backend response that is neither a validation
// failure nor a stock shortage.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// Message is the backend's message, or the HTTP status text.
	Message string
	// Raw is the unparsed response body.
	Raw json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// ValidationError is a field-keyed 422 payload:
// {"message": "...", "errors": {"field": ["msg", ...]}}.
type ValidationError struct {
	// Message is the flattened, joined message for display.
	Message string
	// Fields maps field names to their error messages. Preserved so a
	// caller can re-surface errors per field instead of as one string.
	Fields map[string][]string
	// Raw is the unparsed response body.
	Raw json.RawMessage
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StockShortageError carries the backend's machine-readable shortage
// payload unprocessed. Callers branch into the backorder flow on it
// rather than showing a generic failure.
type StockShortageError struct {
	// Message is the backend's top-level message, if any.
	Message string
	// Raw is the complete, untouched response body.
	Raw json.RawMessage
}

func (e *StockShortageError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "insufficient stock for requested items"
}

// validationEnvelope mirrors the backend's 422 body.
type validationEnvelope struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// parseValidationError flattens a field-keyed error payload into a single
// joined message, keeping the field map intact on the error value.
func parseValidationError(raw []byte) *ValidationError {
	var env validationEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || (env.Message == "" && len(env.Errors) == 0) {
		return &ValidationError{
			Message: "the given data was invalid",
			Raw:     raw,
		}
	}

	parts := make([]string, 0, len(env.Errors))
	fields := make([]string, 0, len(env.Errors))
	for field := range env.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, strings.Join(env.Errors[field], " "))
	}

	message := strings.Join(parts, " ")
	if message == "" {
		message = env.Message
	}

	return &ValidationError{
		Message: message,
		Fields:  env.Errors,
		Raw:     raw,
	}
}

// shortageProbe sniffs for the shortage shape at the top level and one
// level under "data".
type shortageProbe struct {
	Message                string          `json:"message"`
	StockCheckResults      json.RawMessage `json:"stockCheckResults"`
	InsufficientStockItems json.RawMessage `json:"insufficientStockItems"`
	Data                   *shortageProbe  `json:"data"`
}

func (p *shortageProbe) present() bool {
	return len(p.StockCheckResults) > 0 || len(p.InsufficientStockItems) > 0
}

// parseStockShortage returns a StockShortageError if the payload has the
// shortage shape, nil otherwise.
func parseStockShortage(raw []byte) *StockShortageError {
	var probe shortageProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil
	}

	if probe.present() || (probe.Data != nil && probe.Data.present()) {
		return &StockShortageError{
			Message: probe.Message,
			Raw:     raw,
		}
	}
	return nil
}

// messageFrom extracts a display message from an error body, falling back
// to the HTTP status text.
func messageFrom(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallback
}
