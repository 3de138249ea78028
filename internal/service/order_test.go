package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
)

func testOrder() *shipstation.Order {
	return &shipstation.Order{
		OrderID:        100,
		OrderNumber:    "ORD-100",
		OrderDate:      hubTime(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)),
		ShipDate:       hubTime(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)),
		CustomerEmail:  "buyer@example.com",
		BillTo:         &shipstation.Address{Name: "Jane Buyer", Street1: "1 Main St", City: "Austin", State: "TX", PostalCode: "78701", Country: "US"},
		ShipTo:         &shipstation.Address{Name: "Jane Buyer", Street1: "1 Main St", City: "Austin", State: "TX", PostalCode: "78701", Country: "US"},
		TaxAmount:      1.00,
		ShippingAmount: 5.00,
		Items: []shipstation.OrderItem{
			{SKU: "ABC", Name: "Widget", Quantity: 2, UnitPrice: 9.99},
		},
		AdvancedOptions: &shipstation.AdvancedOptions{WarehouseID: 1},
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()
	store := &account.Stores[0]

	so, err := f.orders.CreateOrder(ctx, account, store, testOrder())
	require.NoError(t, err)
	require.NotNil(t, so)

	assert.Equal(t, domain.DocStatusSubmitted, so.Status)
	assert.Equal(t, "100", so.ShipstationOrderID)
	assert.Equal(t, "ORD-100", so.MarketplaceOrderID)
	assert.Equal(t, "Web Store", so.Marketplace)
	assert.Equal(t, "Parsimony LLC", so.Company)
	assert.True(t, so.HasPII)

	require.Len(t, so.Items, 1)
	assert.Equal(t, "ABC", so.Items[0].ItemCode)
	assert.Equal(t, 2.0, so.Items[0].Qty)
	assert.Equal(t, 9.99, so.Items[0].Rate)
	assert.Equal(t, "Main - P", so.Items[0].Warehouse)

	require.Len(t, so.Charges, 2)
	assert.Equal(t, "Shipstation Tax Amount", so.Charges[0].Description)
	assert.Equal(t, 1.00, so.Charges[0].Amount)
	assert.Equal(t, "Shipstation Shipping Amount", so.Charges[1].Description)
	assert.Equal(t, 5.00, so.Charges[1].Amount)

	// The customer came out of the resolver keyed on the buyer email.
	assert.Equal(t, "buyer@example.com", so.Customer)
}

func TestCreateOrderIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()
	store := &account.Stores[0]

	first, err := f.orders.CreateOrder(ctx, account, store, testOrder())
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := f.orders.CreateOrder(ctx, account, store, testOrder())
	require.NoError(t, err)
	assert.Nil(t, second, "a submitted order for the same hub order id must be skipped")
}

func TestCreateOrderWarehouseFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()
	account.ActiveWarehouseIDs = []string{"2", "3"}
	store := &account.Stores[0]

	so, err := f.orders.CreateOrder(ctx, account, store, testOrder())
	require.NoError(t, err)
	assert.Nil(t, so, "orders routed to an inactive warehouse must be skipped")

	account.ActiveWarehouseIDs = []string{"1"}
	so, err = f.orders.CreateOrder(ctx, account, store, testOrder())
	require.NoError(t, err)
	assert.NotNil(t, so)
}

func TestCreateOrderSinceDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()
	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	account.SinceDate = &since
	store := &account.Stores[0]

	so, err := f.orders.CreateOrder(ctx, account, store, testOrder())
	require.NoError(t, err)
	assert.Nil(t, so, "orders older than the since date must be skipped")
}

func TestCreateOrderNoItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()
	store := &account.Stores[0]

	order := testOrder()
	order.Items = []shipstation.OrderItem{
		{SKU: "ABC", Name: "Widget", Quantity: 0, UnitPrice: 9.99},
		{SKU: "DEF", Name: "Refund", Quantity: -1, UnitPrice: 9.99},
	}

	so, err := f.orders.CreateOrder(ctx, account, store, order)
	require.NoError(t, err)
	assert.Nil(t, so, "an order with no positive-quantity lines is a no-op")
}

func TestCreateOrderNoCharges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()
	store := &account.Stores[0]

	order := testOrder()
	order.TaxAmount = 0
	order.ShippingAmount = 0

	so, err := f.orders.CreateOrder(ctx, account, store, order)
	require.NoError(t, err)
	require.NotNil(t, so)
	assert.Empty(t, so.Charges)
}

type divertHook struct {
	calls   int
	proceed bool
}

func (h *divertHook) ShouldCreateOrder(context.Context, *domain.StoreConfig, *shipstation.Order, CustomerDetailsUpdater) (bool, error) {
	h.calls++
	return h.proceed, nil
}

func TestCreateOrderMarketplaceDivert(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	hook := &divertHook{proceed: false}
	f.orders.hook = hook

	account := testAccount()
	account.Stores[0].IsAmazonStore = true
	store := &account.Stores[0]

	so, err := f.orders.CreateOrder(ctx, account, store, testOrder())
	require.NoError(t, err)
	assert.Nil(t, so)
	assert.Equal(t, 1, hook.calls)

	hook.proceed = true
	so, err = f.orders.CreateOrder(ctx, account, store, testOrder())
	require.NoError(t, err)
	assert.NotNil(t, so)
	assert.Equal(t, 2, hook.calls)
}

func TestSyncOrders(t *testing.T) {
	ctx := context.Background()
	client := &fakeHubClient{orders: []shipstation.Order{*testOrder()}}
	f := newFixture(client)

	account := testAccount()
	require.NoError(t, f.store.Repositories().Accounts.Create(ctx, account))

	require.NoError(t, f.orders.SyncOrders(ctx, time.Time{}))

	so, err := f.store.Repositories().SalesOrders.FindByExternalID(ctx, "100", domain.DocStatusSubmitted)
	require.NoError(t, err)
	assert.Equal(t, "ORD-100", so.MarketplaceOrderID)

	// A second sweep over the same window creates nothing new.
	require.NoError(t, f.orders.SyncOrders(ctx, time.Time{}))
	so2, err := f.store.Repositories().SalesOrders.FindByExternalID(ctx, "100", domain.DocStatusSubmitted)
	require.NoError(t, err)
	assert.Equal(t, so.Name, so2.Name)
}

func TestSyncOrdersSkipsDisabledStores(t *testing.T) {
	ctx := context.Background()
	client := &fakeHubClient{orders: []shipstation.Order{*testOrder()}}
	f := newFixture(client)

	account := testAccount()
	account.Stores[0].EnableOrders = false
	require.NoError(t, f.store.Repositories().Accounts.Create(ctx, account))

	require.NoError(t, f.orders.SyncOrders(ctx, time.Time{}))

	_, err := f.store.Repositories().SalesOrders.FindByExternalID(ctx, "100",
		domain.DocStatusDraft, domain.DocStatusSubmitted, domain.DocStatusCancelled)
	assert.Error(t, err)
}
