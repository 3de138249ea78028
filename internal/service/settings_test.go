package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
)

func TestUpdateCarriersAndStores(t *testing.T) {
	ctx := context.Background()
	client := &fakeHubClient{
		carriers: []shipstation.Carrier{
			{Name: "UPS", Code: "ups", Nickname: "My UPS"},
		},
		services: map[string][]shipstation.Service{
			"ups": {{CarrierCode: "ups", Code: "ups_ground", Name: "UPS Ground"}},
		},
		packages: map[string][]shipstation.Package{
			"ups": {{CarrierCode: "ups", Code: "ups_box", Name: "UPS Box"}},
		},
		stores: []shipstation.Store{
			{StoreID: 41, StoreName: "Main Store", MarketplaceName: "Web Store", Active: true},
			{StoreID: 55, StoreName: "Amazon US", MarketplaceName: "Amazon", AccountName: "ATVPDKIKX0DER", Active: true},
		},
	}
	f := newFixture(client)
	require.NoError(t, f.store.Repositories().Accounts.Create(ctx, testAccount()))

	account, err := f.settings.UpdateCarriersAndStores(ctx, "SETTINGS-1")
	require.NoError(t, err)

	require.Len(t, account.Carriers, 1)
	assert.Equal(t, "ups", account.Carriers[0].Code)
	require.Len(t, account.Carriers[0].Services, 1)
	assert.Equal(t, "UPS Ground", account.Carriers[0].Services[0].Name)
	require.Len(t, account.Carriers[0].Packages, 1)

	// The existing store was updated in place; the Amazon store was added
	// and routed through the marketplace registry.
	require.Len(t, account.Stores, 2)
	assert.Equal(t, "Web Store", account.Stores[0].MarketplaceName)

	amazon := account.Store("55")
	require.NotNil(t, amazon)
	assert.True(t, amazon.IsAmazonStore)
	assert.Equal(t, "ATVPDKIKX0DER", amazon.AmazonMarketplace)
	assert.Equal(t, "Amazon US", amazon.StoreName)
	assert.NotEqual(t, "Amazon", amazon.MarketplaceName, "registry supplies the sales partner name")
	assert.True(t, amazon.EnableOrders)
}

func TestUpdateStoresMergeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	client := &fakeHubClient{
		stores: []shipstation.Store{
			{StoreID: 41, StoreName: "Main Store Renamed", MarketplaceName: "Web Store", Active: true},
		},
	}
	f := newFixture(client)
	require.NoError(t, f.store.Repositories().Accounts.Create(ctx, testAccount()))

	account, err := f.settings.UpdateStores(ctx, "SETTINGS-1")
	require.NoError(t, err)
	require.Len(t, account.Stores, 1)
	assert.Equal(t, "Main Store Renamed", account.Stores[0].StoreName)
	assert.True(t, account.Stores[0].CreateSalesInvoice, "merge keeps local toggles")

	account, err = f.settings.UpdateStores(ctx, "SETTINGS-1")
	require.NoError(t, err)
	assert.Len(t, account.Stores, 1)
}

func TestUpdateWarehouses(t *testing.T) {
	ctx := context.Background()
	client := &fakeHubClient{
		warehouses: []shipstation.Warehouse{
			{WarehouseID: 1, WarehouseName: "East Coast"},
			{WarehouseID: 2, WarehouseName: "West Coast"},
		},
	}
	f := newFixture(client)
	require.NoError(t, f.store.Repositories().Accounts.Create(ctx, testAccount()))

	account, err := f.settings.UpdateWarehouses(ctx, "SETTINGS-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, account.ActiveWarehouseIDs)

	warehouse, err := f.store.Repositories().Warehouses.FindByShipstationID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "East Coast", warehouse.WarehouseName)
	assert.NotEmpty(t, warehouse.ParentWarehouse)

	// Refreshing again reuses the mirrored warehouses.
	_, err = f.settings.UpdateWarehouses(ctx, "SETTINGS-1")
	require.NoError(t, err)
}

func TestImportProducts(t *testing.T) {
	ctx := context.Background()
	client := &fakeHubClient{
		products: []shipstation.Product{
			{ProductID: 1, SKU: "ABC", Name: "Widget", WeightOz: 8, Active: true},
			{ProductID: 2, SKU: "DEF", Name: "Gadget", WeightOz: 3, Active: true},
		},
	}
	f := newFixture(client)
	require.NoError(t, f.store.Repositories().Accounts.Create(ctx, testAccount()))

	message, err := f.settings.ImportProducts(ctx, "SETTINGS-1")
	require.NoError(t, err)
	assert.Equal(t, "2 product(s) imported successfully", message)

	item, err := f.store.Repositories().Items.GetByCode(ctx, "ABC")
	require.NoError(t, err)
	assert.Equal(t, 8.0, item.WeightPerUnit)
	assert.Equal(t, "Ounce", item.WeightUOM)
}

func TestValidateAccountNormalizesToggles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(&fakeHubClient{})

	account := testAccount()
	account.Stores[0].EnableOrders = false
	account.Stores[0].EnableShipments = true

	require.NoError(t, f.settings.ValidateAccount(ctx, account))
	assert.False(t, account.Stores[0].EnableShipments,
		"shipments cannot stay enabled on a store that does not ingest orders")
}

func TestCarrierServices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(&fakeHubClient{})
	account := labelAccount()
	require.NoError(t, f.store.Repositories().Accounts.Create(ctx, account))

	names, err := f.settings.CarrierServices(ctx, "SETTINGS-1", "My UPS")
	require.NoError(t, err)
	assert.Equal(t, []string{"UPS Ground"}, names)

	names, err = f.settings.CarrierServices(ctx, "SETTINGS-1", "FedEx")
	require.NoError(t, err)
	assert.Empty(t, names)
}
