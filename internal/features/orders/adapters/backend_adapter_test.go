package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/core/metrics"
	"stockdesk/internal/features/orders/domain"
	"stockdesk/internal/features/orders/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T, handler http.HandlerFunc) *BackendAdapter {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := apiclient.New(apiclient.Config{
		BaseURL:  server.URL,
		APIToken: "t",
		Metrics:  metrics.NewRecorder(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	return NewBackendAdapter(client)
}

func TestBackendAdapter_List_FilterConvention(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "pending", r.URL.Query().Get("filter[shipping_status]"))
		assert.Equal(t, "acme", r.URL.Query().Get("filter[search]"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("per_page"))

		w.Write([]byte(`{
			"data": [{"id": 1, "number": "ORD-1", "grand_total": "113.00", "paid_amount": "0.00", "shipping_status": "pending", "payment_status": "unpaid"}],
			"meta": {"current_page": 2, "per_page": 25, "total": 26, "last_page": 2}
		}`))
	})

	list, err := adapter.List(context.Background(), ports.ListFilter{
		Search:         "acme",
		ShippingStatus: "pending",
		Page:           2,
		PerPage:        25,
	})
	require.NoError(t, err)

	require.Len(t, list.Data, 1)
	assert.Equal(t, apiclient.Money(113), list.Data[0].GrandTotal)
	assert.Equal(t, 26, list.Meta.Total)
}

func TestBackendAdapter_List_DoubleWrappedEnvelope(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"data":[{"id":2,"number":"ORD-2"}],"meta":{"current_page":1,"per_page":15,"total":1,"last_page":1}}}`))
	})

	list, err := adapter.List(context.Background(), ports.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "ORD-2", list.Data[0].Number)
	assert.Equal(t, 1, list.Meta.Total)
}

func TestBackendAdapter_Get_UnwrapsDetail(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/5", r.URL.Path)
		w.Write([]byte(`{"data":{"id":5,"number":"ORD-5","grand_total":"50.00","paid_amount":"50.00"}}`))
	})

	order, err := adapter.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, order.ID)
	assert.True(t, order.IsFullyPaid())
}

func TestBackendAdapter_Create_StockShortagePassesThrough(t *testing.T) {
	shortage := `{"message":"Insufficient stock","stockCheckResults":[{"product_variant_id":1,"requested":10,"available":3}]}`

	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"customer_id":1`)

		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(shortage))
	})

	_, err := adapter.Create(context.Background(), ports.CreateOrderInput{
		CustomerID: 1,
		Items:      []ports.CreateOrderItem{{ProductVariantID: 1, Quantity: 10, Price: 50}},
	})
	require.Error(t, err)

	var shortageErr *apiclient.StockShortageError
	require.True(t, errors.As(err, &shortageErr), "shortage must surface as the structured error, not a generic one")
	assert.JSONEq(t, shortage, string(shortageErr.Raw))
}

func TestBackendAdapter_Cancel(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders/9/cancel", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"reason":"customer request"}`, string(body))

		w.Write([]byte(`{"data":{"id":9}}`))
	})

	err := adapter.Cancel(context.Background(), 9, "customer request")
	assert.NoError(t, err)
}

func TestBackendAdapter_UpdateStatus_UsesPatch(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/orders/4/status", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"shipping_status":"shipped"}`, string(body))

		w.WriteHeader(http.StatusNoContent)
	})

	err := adapter.UpdateStatus(context.Background(), 4, domain.ShippingStatusShipped)
	assert.NoError(t, err)
}

func TestBackendAdapter_BatchDelete_StringIDs(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/batch-delete", r.URL.Path)

		var body struct {
			IDs []json.RawMessage `json:"ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.IDs, 3)
		// Every id must be a JSON string on the wire
		assert.Equal(t, `"1"`, string(body.IDs[0]))
		assert.Equal(t, `"2"`, string(body.IDs[1]))
		assert.Equal(t, `"3"`, string(body.IDs[2]))

		w.WriteHeader(http.StatusNoContent)
	})

	err := adapter.BatchDelete(context.Background(), []string{"1", "2", "3"})
	assert.NoError(t, err)
}

func TestBackendAdapter_Refund(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/3/refunds", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"items":[{"order_item_id":11,"quantity":1}],"reason":"damaged"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":77}}`))
	})

	err := adapter.Refund(context.Background(), 3, ports.RefundInput{
		Items:  []ports.RefundItem{{OrderItemID: 11, Quantity: 1}},
		Reason: "damaged",
	})
	assert.NoError(t, err)
}
