package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockdesk/internal/core/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		BaseURL:  server.URL,
		APIToken: "test-token",
		Metrics:  metrics.NewRecorder(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	return client
}

func TestClient_Get_SendsAuthAndParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "pending", r.URL.Query().Get("filter[status]"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Write([]byte(`{"data":[]}`))
	})

	params := NewParams().Filter("status", "pending").Page(2)
	raw, err := client.Get(context.Background(), "/api/orders", params.Values())
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(raw))
}

func TestClient_Post_SendsJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"customer_id":1}`, string(body))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":10}}`))
	})

	raw, err := client.Post(context.Background(), "/api/orders", map[string]int{"customer_id": 1})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":10`)
}

func TestClient_NoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	raw, err := client.Delete(context.Background(), "/api/orders/5")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Order not found"}`))
	})

	_, err := client.Get(context.Background(), "/api/orders/999", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Order not found", apiErr.Message)
}

func TestClient_ValidationError_Flattened(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{
			"message": "The given data was invalid.",
			"errors": {
				"email": ["The email field is required."],
				"name": ["The name field is required.", "The name must be a string."]
			}
		}`))
	})

	_, err := client.Post(context.Background(), "/api/customers", map[string]string{})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "The email field is required. The name field is required. The name must be a string.", valErr.Message)
	assert.Equal(t, []string{"The email field is required."}, valErr.Fields["email"])
}

func TestClient_StockShortage_PassedThroughUnprocessed(t *testing.T) {
	shortageBody := `{
		"message": "Insufficient stock",
		"stockCheckResults": [{"product_variant_id": 1, "requested": 10, "available": 3}],
		"insufficientStockItems": [{"product_variant_id": 1}]
	}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(shortageBody))
	})

	_, err := client.Post(context.Background(), "/api/orders", map[string]int{"customer_id": 1})
	require.Error(t, err)

	var shortage *StockShortageError
	require.True(t, errors.As(err, &shortage), "shortage payload must not be wrapped as a generic error")
	assert.Equal(t, "Insufficient stock", shortage.Message)
	assert.JSONEq(t, shortageBody, string(shortage.Raw))

	var payload struct {
		StockCheckResults []json.RawMessage `json:"stockCheckResults"`
	}
	require.NoError(t, json.Unmarshal(shortage.Raw, &payload))
	assert.Len(t, payload.StockCheckResults, 1)
}

func TestClient_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	})

	_, err := client.Get(context.Background(), "/api/orders", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New(Config{BaseURL: "/not-absolute", APIToken: "x", Metrics: metrics.NewRecorder(prometheus.NewRegistry())})
	assert.Error(t, err)
}
