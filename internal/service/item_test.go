package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
)

func TestResolveItemCreates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()
	account.DefaultItemGroup = "ShipStation Products"
	store := testStore()

	item, err := f.items.ResolveItem(ctx, account, store, ProductInput{
		SKU:    "ABC",
		Name:   "Widget",
		Weight: &shipstation.Weight{Value: 8, Units: "Ounces"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ABC", item.Code)
	assert.Equal(t, "Widget", item.Name)
	assert.Equal(t, "ShipStation Products", item.ItemGroup)
	assert.True(t, item.IsStockItem)
	assert.Equal(t, 8.0, item.WeightPerUnit)
	assert.Equal(t, "Ounce", item.WeightUOM, "hub unit names are normalized")

	require.Len(t, item.Defaults, 1)
	assert.Equal(t, "Parsimony LLC", item.Defaults[0].Company)
	assert.Equal(t, "ShipStation", item.Defaults[0].PriceList)
	assert.Equal(t, "Sales - P", item.Defaults[0].IncomeAccount)
}

func TestResolveItemReusesBySKU(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()

	first, err := f.items.ResolveItem(ctx, account, testStore(), ProductInput{SKU: "ABC", Name: "Widget"})
	require.NoError(t, err)

	second, err := f.items.ResolveItem(ctx, account, testStore(), ProductInput{SKU: "ABC", Name: "Widget renamed"})
	require.NoError(t, err)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, "Widget", second.Name, "existing items are reused, not renamed")
}

func TestResolveItemAlias(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()

	item, err := f.items.ResolveItem(ctx, account, testStore(), ProductInput{SKU: "ABC", Name: "Widget"})
	require.NoError(t, err)

	f.store.AddItemAlias("OLD-ABC", item.Code)

	resolved, err := f.items.ResolveItem(ctx, account, testStore(), ProductInput{SKU: "OLD-ABC", Name: "Widget legacy listing"})
	require.NoError(t, err)
	assert.Equal(t, item.Code, resolved.Code, "the alias table outranks the SKU match")
}

func TestResolveItemByName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()

	first, err := f.items.ResolveItem(ctx, account, testStore(), ProductInput{Name: "Unlabelled widget"})
	require.NoError(t, err)
	assert.Equal(t, "Unlabelled widget", first.Code, "SKU-less items are keyed by name")

	second, err := f.items.ResolveItem(ctx, account, testStore(), ProductInput{Name: "Unlabelled widget"})
	require.NoError(t, err)
	assert.Equal(t, first.Code, second.Code)
}

func TestResolveItemTruncatesName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	long := strings.Repeat("x", 200)

	item, err := f.items.ResolveItem(ctx, testAccount(), testStore(), ProductInput{SKU: "LONG", Name: long})
	require.NoError(t, err)
	assert.Len(t, item.Name, 140)
}

func TestResolveItemReenablesDisabled(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()

	item, err := f.items.ResolveItem(ctx, account, testStore(), ProductInput{SKU: "ABC", Name: "Widget"})
	require.NoError(t, err)

	item.Disabled = true
	require.NoError(t, f.store.Repositories().Items.Update(ctx, item))

	resolved, err := f.items.ResolveItem(ctx, account, testStore(), ProductInput{SKU: "ABC", Name: "Widget"})
	require.NoError(t, err)
	assert.False(t, resolved.Disabled)
	require.NotEmpty(t, resolved.Comments)
	assert.Contains(t, resolved.Comments[len(resolved.Comments)-1], "Re-enabled")
}

func TestResolveItemNonStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()

	item, err := f.items.ResolveItem(ctx, account, testStore(), ProductInput{SKU: "CPN", Name: "Holiday Coupon"})
	require.NoError(t, err)
	assert.False(t, item.IsStockItem, "the default keyword list flags coupons")

	account.NonStockKeywords = []string{"gift card"}
	item, err = f.items.ResolveItem(ctx, account, testStore(), ProductInput{SKU: "GC", Name: "Gift Card $50"})
	require.NoError(t, err)
	assert.False(t, item.IsStockItem)

	item, err = f.items.ResolveItem(ctx, account, testStore(), ProductInput{SKU: "CPN2", Name: "Coupon booklet"})
	require.NoError(t, err)
	assert.True(t, item.IsStockItem, "a custom keyword list replaces the default")
}

func TestResolveItemCatalogWeight(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	item, err := f.items.ResolveItem(ctx, testAccount(), nil, ProductFromCatalog(&shipstation.Product{
		SKU:      "CAT",
		Name:     "Catalog product",
		WeightOz: 12,
	}))
	require.NoError(t, err)
	assert.Equal(t, 12.0, item.WeightPerUnit)
	assert.Equal(t, "Ounce", item.WeightUOM)
	assert.Empty(t, item.Defaults, "no store, no item defaults")
}

func TestResolveItemDefaultsAttachOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	account := testAccount()

	item, err := f.items.ResolveItem(ctx, account, testStore(), ProductInput{SKU: "ABC", Name: "Widget"})
	require.NoError(t, err)
	require.Len(t, item.Defaults, 1)

	other := testStore()
	other.Company = "Other Co"
	resolved, err := f.items.ResolveItem(ctx, account, other, ProductInput{SKU: "ABC", Name: "Widget"})
	require.NoError(t, err)
	require.Len(t, resolved.Defaults, 1)
	assert.Equal(t, "Parsimony LLC", resolved.Defaults[0].Company, "defaults never get overwritten on resync")
}

type upperCaseItemHook struct{}

func (upperCaseItemHook) ProcessItem(_ context.Context, item *domain.Item, _ *domain.StoreConfig) error {
	item.Description = strings.ToUpper(item.Description)
	return nil
}

func TestResolveItemPostProcessor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	f.items.postProcessor = upperCaseItemHook{}

	item, err := f.items.ResolveItem(ctx, testAccount(), testStore(), ProductInput{SKU: "ABC", Name: "Widget"})
	require.NoError(t, err)
	assert.Equal(t, "WIDGET", item.Description)
}

func TestNormalizeWeightUOM(t *testing.T) {
	assert.Equal(t, "Ounce", normalizeWeightUOM("Ounces"))
	assert.Equal(t, "Ounce", normalizeWeightUOM("oz"))
	assert.Equal(t, "Pound", normalizeWeightUOM("Pounds"))
	assert.Equal(t, "Gram", normalizeWeightUOM("grams"))
	assert.Equal(t, "Ounce", normalizeWeightUOM(""))
}
