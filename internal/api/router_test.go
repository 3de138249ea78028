package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ParsimonyGit/shipstation-integration/internal/api/handlers"
	"github.com/ParsimonyGit/shipstation-integration/internal/config"
	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/service"
	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
)

type fakeDispatcher struct {
	calls []string
	err   error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, accountName, resourceType, resourceURL string) error {
	f.calls = append(f.calls, resourceType+" "+resourceURL+" account="+accountName)
	return f.err
}

type fakeSyncer struct{ orderCalls, shipmentCalls int }

func (f *fakeSyncer) SyncOrders(context.Context, time.Time) error {
	f.orderCalls++
	return nil
}

func (f *fakeSyncer) SyncShipments(context.Context, time.Time) error {
	f.shipmentCalls++
	return nil
}

type fakeLabels struct{}

func (fakeLabels) CreateLabel(context.Context, service.LabelRequest) (*shipstation.Label, error) {
	return &shipstation.Label{ShipmentID: 9001, TrackingNumber: "1Z999"}, nil
}

type fakeSettings struct{}

func (fakeSettings) UpdateCarriersAndStores(_ context.Context, name string) (*domain.AccountSettings, error) {
	return &domain.AccountSettings{Name: name}, nil
}

func (fakeSettings) UpdateStores(_ context.Context, name string) (*domain.AccountSettings, error) {
	return &domain.AccountSettings{Name: name}, nil
}

func (fakeSettings) UpdateWarehouses(_ context.Context, name string) (*domain.AccountSettings, error) {
	return &domain.AccountSettings{Name: name}, nil
}

func (fakeSettings) ImportProducts(context.Context, string) (string, error) {
	return "0 product(s) imported successfully", nil
}

func (fakeSettings) CarrierServices(context.Context, string, string) ([]string, error) {
	return []string{"UPS Ground"}, nil
}

func testRouter(t *testing.T) (*fakeDispatcher, *fakeSyncer, http.Handler) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("test-key"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment: "production",
		API:         config.APIConfig{KeyHash: string(hash)},
	}

	dispatcher := &fakeDispatcher{}
	syncer := &fakeSyncer{}
	router := NewRouter(cfg, &handlers.Services{
		Webhook:   dispatcher,
		Orders:    syncer,
		Shipments: syncer,
		Labels:    fakeLabels{},
		Settings:  fakeSettings{},
	}, zap.NewNop())
	return dispatcher, syncer, router
}

func TestHealth(t *testing.T) {
	_, _, router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookDispatches(t *testing.T) {
	dispatcher, _, router := testRouter(t)

	form := url.Values{
		"resource_url":  {"https://hub.example.com/orders?importBatch=1"},
		"resource_type": {"ORDER_NOTIFY"},
	}
	req := httptest.NewRequest(http.MethodPost, "/webhook?account=SETTINGS-1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, "ORDER_NOTIFY https://hub.example.com/orders?importBatch=1 account=SETTINGS-1", dispatcher.calls[0])
}

func TestWebhookWithoutResourceURLIsNoOp(t *testing.T) {
	dispatcher, _, router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, dispatcher.calls)
}

func TestActionsRequireAPIKey(t *testing.T) {
	_, syncer, router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/actions/pull-orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/actions/pull-orders", nil)
	req.Header.Set("X-API-Key", "wrong-key")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Zero(t, syncer.orderCalls)
}

func TestPullOrders(t *testing.T) {
	_, syncer, router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/actions/pull-orders", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, syncer.orderCalls)
}

func TestCreateLabelValidatesBody(t *testing.T) {
	_, _, router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/actions/labels", strings.NewReader(`{}`))
	req.Header.Set("X-API-Key", "test-key")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := `{"account":"SETTINGS-1","source_type":"Delivery Note","source_name":"DN-1",` +
		`"carrier":"UPS","service":"UPS Ground","gross_weight":2.5}`
	req = httptest.NewRequest(http.MethodPost, "/v1/actions/labels", strings.NewReader(body))
	req.Header.Set("X-API-Key", "test-key")
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1Z999")
}

func TestCarrierServicesRoute(t *testing.T) {
	_, _, router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/SETTINGS-1/carriers/UPS/services", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "UPS Ground")
}
