package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(server *httptest.Server) *RazorpayClient {
	client := NewRazorpayClient("rzp_test_key", "rzp_test_secret")
	client.BaseURL = server.URL
	client.HTTPClient = server.Client()
	return client
}

func Test_CreateOrder_Success(t *testing.T) {
	var received OrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(Order{
			OrderID:  "order_ABC123",
			Amount:   received.Amount,
			Currency: received.Currency,
			Receipt:  received.Receipt,
			Status:   "created",
		})
	}))
	defer server.Close()

	client := newTestClient(server)

	order, err := client.CreateOrder(context.Background(), &OrderRequest{
		Amount:  50000,
		Receipt: "SK-ABC-12345",
		Notes:   map[string]string{"division": "legal"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "order_ABC123", order.OrderID)
	assert.Equal(t, int64(50000), order.Amount)
	assert.Equal(t, "INR", received.Currency, "currency should default to INR")
	assert.Equal(t, "SK-ABC-12345", received.Receipt)
}

func Test_CreateOrder_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server)

	order, err := client.CreateOrder(context.Background(), &OrderRequest{
		Amount:  50000,
		Receipt: "SK-ABC-12345",
	})

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "order creation failed")
}

func Test_ToResponse(t *testing.T) {
	response := ToResponse(&Order{
		OrderID:  "order_ABC123",
		Amount:   50000,
		Currency: "INR",
	}, "rzp_test_key")

	assert.True(t, response.Success)
	assert.Equal(t, "order_ABC123", response.OrderID)
	assert.Equal(t, int64(50000), response.Amount)
	assert.Equal(t, "INR", response.Currency)
	assert.Equal(t, "rzp_test_key", response.KeyID)
}
