package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository/memory"
	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
)

// fakeHubClient satisfies HubClient with canned responses.
type fakeHubClient struct {
	orders      []shipstation.Order
	shipments   []shipstation.Shipment
	products    []shipstation.Product
	carriers    []shipstation.Carrier
	services    map[string][]shipstation.Service
	packages    map[string][]shipstation.Package
	warehouses  []shipstation.Warehouse
	stores      []shipstation.Store
	order       *shipstation.Order
	label       *shipstation.Label
	labelErr    error
	validateErr error

	labelRequests []shipstation.Order
}

func (f *fakeHubClient) ListOrders(context.Context, shipstation.ListParams) ([]shipstation.Order, error) {
	return f.orders, nil
}

func (f *fakeHubClient) ListShipments(context.Context, shipstation.ListParams) ([]shipstation.Shipment, error) {
	return f.shipments, nil
}

func (f *fakeHubClient) FetchOrdersByURL(context.Context, string) ([]shipstation.Order, error) {
	return f.orders, nil
}

func (f *fakeHubClient) FetchShipmentsByURL(context.Context, string) ([]shipstation.Shipment, error) {
	return f.shipments, nil
}

func (f *fakeHubClient) GetOrder(context.Context, int64) (*shipstation.Order, error) {
	return f.order, nil
}

func (f *fakeHubClient) ListCarriers(context.Context) ([]shipstation.Carrier, error) {
	return f.carriers, nil
}

func (f *fakeHubClient) ListServices(_ context.Context, carrierCode string) ([]shipstation.Service, error) {
	return f.services[carrierCode], nil
}

func (f *fakeHubClient) ListPackages(_ context.Context, carrierCode string) ([]shipstation.Package, error) {
	return f.packages[carrierCode], nil
}

func (f *fakeHubClient) ListWarehouses(context.Context) ([]shipstation.Warehouse, error) {
	return f.warehouses, nil
}

func (f *fakeHubClient) ListStores(context.Context, bool) ([]shipstation.Store, error) {
	return f.stores, nil
}

func (f *fakeHubClient) ListProducts(context.Context) ([]shipstation.Product, error) {
	return f.products, nil
}

func (f *fakeHubClient) CreateLabelForOrder(_ context.Context, order *shipstation.Order) (*shipstation.Label, error) {
	f.labelRequests = append(f.labelRequests, *order)
	if f.labelErr != nil {
		return nil, f.labelErr
	}
	return f.label, nil
}

func (f *fakeHubClient) Validate(context.Context) error {
	return f.validateErr
}

func fakeFactory(client *fakeHubClient) HubClientFactory {
	return func(_, _ string) HubClient {
		return client
	}
}

func testStore() *domain.StoreConfig {
	return &domain.StoreConfig{
		StoreID:                "41",
		StoreName:              "Main Store",
		MarketplaceName:        "Web Store",
		EnableOrders:           true,
		EnableShipments:        true,
		CreateSalesInvoice:     true,
		CreateDeliveryNote:     true,
		CreateShipment:         true,
		Company:                "Parsimony LLC",
		Warehouse:              "Main - P",
		CostCenter:             "Main - P",
		TaxAccount:             "Sales Tax - P",
		SalesAccount:           "Sales - P",
		ExpenseAccount:         "COGS - P",
		ShippingIncomeAccount:  "Shipping Income - P",
		ShippingExpenseAccount: "Shipping Expense - P",
	}
}

func testAccount() *domain.AccountSettings {
	return &domain.AccountSettings{
		Name:    "SETTINGS-1",
		Enabled: true,
		APIKey:  "key",
		Stores:  []domain.StoreConfig{*testStore()},
	}
}

// testFixture wires the services against the in-memory store.
type testFixture struct {
	store     *memory.Store
	client    *fakeHubClient
	customers *customerService
	items     *itemService
	orders    *orderService
	shipments *shipmentService
	labels    *labelService
	settings  *settingsService
	webhooks  *webhookService
}

func newFixture(client *fakeHubClient) *testFixture {
	if client == nil {
		client = &fakeHubClient{}
	}
	store := memory.NewStore()
	repos := store.Repositories()
	logger := zap.NewNop()
	factory := fakeFactory(client)

	customers := NewCustomerService(repos, logger)
	items := NewItemService(repos, logger, nil)
	orders := NewOrderService(repos, logger, factory, customers, items, nil, nil, 24*time.Hour)
	shipments := NewShipmentService(repos, logger, factory, 24*time.Hour)
	labels := NewLabelService(repos, logger, factory)
	settings := NewSettingsService(repos, logger, factory, items)
	webhooks := NewWebhookService(repos, logger, factory, orders, shipments)

	return &testFixture{
		store:     store,
		client:    client,
		customers: customers,
		items:     items,
		orders:    orders,
		shipments: shipments,
		labels:    labels,
		settings:  settings,
		webhooks:  webhooks,
	}
}

func hubTime(t time.Time) shipstation.Time {
	return shipstation.Time{Time: t}
}
