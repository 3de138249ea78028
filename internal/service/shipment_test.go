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

func testShipment() *shipstation.Shipment {
	return &shipstation.Shipment{
		ShipmentID:     9001,
		OrderID:        100,
		OrderNumber:    "ORD-100",
		ShipDate:       hubTime(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)),
		TrackingNumber: "1Z999",
		CarrierCode:    "ups",
		ServiceCode:    "ups_ground",
		ShipmentCost:   4.20,
		Weight:         &shipstation.Weight{Value: 32, Units: "ounces"},
		Dimensions:     &shipstation.Dimensions{Length: 10, Width: 8, Height: 4},
		ShipmentItems: []shipstation.OrderItem{
			{SKU: "ABC", Name: "Widget", Quantity: 2},
		},
	}
}

// submitOrder pushes the canonical test order through the order pipeline so
// shipment tests have something to chain off.
func submitOrder(t *testing.T, f *testFixture) *domain.SalesOrder {
	t.Helper()
	account := testAccount()
	so, err := f.orders.CreateOrder(context.Background(), account, &account.Stores[0], testOrder())
	require.NoError(t, err)
	require.NotNil(t, so)
	return so
}

func TestProcessShipment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	store := testStore()
	so := submitOrder(t, f)

	require.NoError(t, f.shipments.ProcessShipment(ctx, store, testShipment()))
	repos := f.store.Repositories()

	invoice, err := repos.SalesInvoices.FindByShipmentID(ctx, "9001", domain.DocStatusSubmitted)
	require.NoError(t, err)
	assert.Equal(t, so.Name, invoice.SalesOrder)
	require.Len(t, invoice.Charges, 3)
	last := invoice.Charges[2]
	assert.Equal(t, "Shipstation Shipping Cost", last.Description)
	assert.Equal(t, -4.20, last.Amount)
	assert.Equal(t, "Shipping Expense - P", last.AccountHead)

	note, err := repos.DeliveryNotes.FindByShipmentID(ctx, "9001", domain.DocStatusSubmitted)
	require.NoError(t, err)
	assert.Equal(t, invoice.Name, note.SalesInvoice)
	assert.Equal(t, "UPS", note.Carrier)
	assert.Equal(t, "UPS_GROUND", note.CarrierService)
	assert.Equal(t, "1Z999", note.TrackingNumber)
	require.Len(t, note.Items, 1)
	assert.True(t, note.Items[0].AllowZeroValuationRate)

	record, err := repos.Shipments.FindByShipmentOrOrderID(ctx, "9001", "100", domain.DocStatusSubmitted)
	require.NoError(t, err)
	assert.Equal(t, note.Name, record.DeliveryNote)
	require.Len(t, record.Parcels, 1)
	assert.Equal(t, 2.0, record.Parcels[0].Weight, "32 ounces is two pounds")
	assert.Equal(t, 10.0, record.Parcels[0].Length)
	assert.Equal(t, "2 x Widget (Nos)", record.Description)
}

func TestProcessShipmentIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	store := testStore()
	submitOrder(t, f)

	require.NoError(t, f.shipments.ProcessShipment(ctx, store, testShipment()))
	require.NoError(t, f.shipments.ProcessShipment(ctx, store, testShipment()))

	// Still exactly one delivery note for the shipment.
	note, err := f.store.Repositories().DeliveryNotes.FindByShipmentID(ctx, "9001",
		domain.DocStatusDraft, domain.DocStatusSubmitted)
	require.NoError(t, err)
	assert.Equal(t, domain.DocStatusSubmitted, note.Status)
}

func TestProcessShipmentUnknownOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	store := testStore()

	// No sales order captured for this hub order; nothing should be created.
	require.NoError(t, f.shipments.ProcessShipment(ctx, store, testShipment()))

	_, err := f.store.Repositories().SalesInvoices.FindByShipmentID(ctx, "9001",
		domain.DocStatusDraft, domain.DocStatusSubmitted)
	assert.Error(t, err)
}

func TestProcessShipmentVoidCancelsCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	store := testStore()
	submitOrder(t, f)

	require.NoError(t, f.shipments.ProcessShipment(ctx, store, testShipment()))

	voided := testShipment()
	voided.Voided = true
	require.NoError(t, f.shipments.ProcessShipment(ctx, store, voided))
	repos := f.store.Repositories()

	_, err := repos.DeliveryNotes.FindByShipmentID(ctx, "9001", domain.DocStatusSubmitted)
	assert.Error(t, err, "delivery note should no longer be submitted")
	note, err := repos.DeliveryNotes.FindByShipmentID(ctx, "9001", domain.DocStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.DocStatusCancelled, note.Status)

	invoice, err := repos.SalesInvoices.FindByShipmentID(ctx, "9001", domain.DocStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.DocStatusCancelled, invoice.Status)

	record, err := repos.Shipments.FindByShipmentOrOrderID(ctx, "9001", "100", domain.DocStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.DocStatusCancelled, record.Status)
}

func TestProcessShipmentVoidWithoutDocuments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	store := testStore()

	voided := testShipment()
	voided.Voided = true
	assert.NoError(t, f.shipments.ProcessShipment(ctx, store, voided))
}

func TestProcessShipmentToggles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	store := testStore()
	store.CreateSalesInvoice = false
	store.CreateDeliveryNote = false
	store.CreateShipment = true
	submitOrder(t, f)

	require.NoError(t, f.shipments.ProcessShipment(ctx, store, testShipment()))
	repos := f.store.Repositories()

	_, err := repos.SalesInvoices.FindByShipmentID(ctx, "9001",
		domain.DocStatusDraft, domain.DocStatusSubmitted)
	assert.Error(t, err)
	_, err = repos.DeliveryNotes.FindByShipmentID(ctx, "9001",
		domain.DocStatusDraft, domain.DocStatusSubmitted)
	assert.Error(t, err)

	record, err := repos.Shipments.FindByShipmentOrOrderID(ctx, "9001", "100", domain.DocStatusSubmitted)
	require.NoError(t, err)
	assert.Empty(t, record.DeliveryNote)
}

func TestParcelWeightFloor(t *testing.T) {
	shipment := testShipment()
	shipment.Weight = &shipstation.Weight{Value: 0, Units: "ounces"}
	parcel := buildParcel(shipment)
	assert.Equal(t, 0.01, parcel.Weight, "parcel weight must never be zero")

	shipment.Weight = nil
	parcel = buildParcel(shipment)
	assert.Equal(t, 0.01, parcel.Weight)
}

func TestToPounds(t *testing.T) {
	assert.Equal(t, 1.0, toPounds(&shipstation.Weight{Value: 16, Units: "ounces"}))
	assert.Equal(t, 2.5, toPounds(&shipstation.Weight{Value: 2.5, Units: "pounds"}))
	assert.InDelta(t, 1.0, toPounds(&shipstation.Weight{Value: 453.592, Units: "grams"}), 0.001)
}

func TestSyncShipments(t *testing.T) {
	ctx := context.Background()
	client := &fakeHubClient{shipments: []shipstation.Shipment{*testShipment()}}
	f := newFixture(client)
	submitOrder(t, f)

	account := testAccount()
	require.NoError(t, f.store.Repositories().Accounts.Create(ctx, account))
	require.NoError(t, f.shipments.SyncShipments(ctx, time.Time{}))

	_, err := f.store.Repositories().DeliveryNotes.FindByShipmentID(ctx, "9001", domain.DocStatusSubmitted)
	assert.NoError(t, err)
}
