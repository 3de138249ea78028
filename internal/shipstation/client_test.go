package shipstation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("key", "secret", zap.NewNop()).WithBaseURL(server.URL)
}

func TestListOrdersPagination(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "41", r.URL.Query().Get("storeId"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		resp := map[string]interface{}{
			"orders": []map[string]interface{}{
				{"orderId": page * 100, "orderNumber": "ORD-" + strconv.Itoa(page)},
			},
			"total": 2,
			"page":  page,
			"pages": 2,
		}
		json.NewEncoder(w).Encode(resp)
	}

	client := testClient(t, handler)
	orders, err := client.ListOrders(context.Background(), ListParams{StoreID: "41"})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(100), orders[0].OrderID)
	assert.Equal(t, int64(200), orders[1].OrderID)
}

func TestListShipmentsIncludesItems(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("includeShipmentItems"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"shipments": []map[string]interface{}{
				{"shipmentId": 9001, "orderId": 100, "voided": false},
			},
			"total": 1, "page": 1, "pages": 1,
		})
	}

	client := testClient(t, handler)
	shipments, err := client.ListShipments(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, shipments, 1)
	assert.Equal(t, int64(9001), shipments[0].ShipmentID)
}

func TestDateWindowFormat(t *testing.T) {
	var gotStart string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotStart = r.URL.Query().Get("createDateStart")
		json.NewEncoder(w).Encode(map[string]interface{}{"orders": []interface{}{}, "pages": 1})
	}

	client := testClient(t, handler)
	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	_, err := client.ListOrders(context.Background(), ListParams{CreateDateStart: start})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 09:30:00", gotStart)
}

func TestCreateLabelHubException(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/createlabelfororder", r.URL.Path)
		// The hub reports business errors inside a 200 response.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ExceptionMessage": "Insufficient postage balance",
		})
	}

	client := testClient(t, handler)
	_, err := client.CreateLabelForOrder(context.Background(), &Order{OrderID: 100})
	require.Error(t, err)
	assert.True(t, errors.IsHub(err))
	assert.Contains(t, err.Error(), "Insufficient postage balance")
}

func TestErrorBodyMessageSurfaces(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"Message": "Invalid date range",
		})
	}

	client := testClient(t, handler)
	_, err := client.ListOrders(context.Background(), ListParams{})
	require.Error(t, err)
	assert.True(t, errors.IsHub(err))
}

func TestFetchOrdersByURL(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/webhook-batch", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"orders": []map[string]interface{}{{"orderId": 100}},
		})
	})

	client := NewClient("key", "secret", zap.NewNop()).WithBaseURL(server.URL)
	orders, err := client.FetchOrdersByURL(context.Background(), server.URL+"/webhook-batch")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(100), orders[0].OrderID)
}

func TestTimeUnmarshal(t *testing.T) {
	cases := map[string]time.Time{
		`"2021-06-29T14:05:29.0000000"`: time.Date(2021, 6, 29, 14, 5, 29, 0, time.UTC),
		`"2021-06-29T14:05:29"`:         time.Date(2021, 6, 29, 14, 5, 29, 0, time.UTC),
		`"2021-06-29"`:                  time.Date(2021, 6, 29, 0, 0, 0, 0, time.UTC),
		`null`:                          {},
	}
	for raw, want := range cases {
		var ts Time
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		assert.True(t, ts.Time.Equal(want), raw)
	}

	var ts Time
	assert.Error(t, json.Unmarshal([]byte(`"29/06/2021"`), &ts))
}
