package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
)

func TestResolveCustomerKeyPriority(t *testing.T) {
	order := testOrder()

	order.CustomerID = 77
	order.CustomerEmail = "buyer@example.com"
	assert.Equal(t, "77", customerKey(order), "an explicit customer id outranks the email")

	order.CustomerID = 0
	assert.Equal(t, "buyer@example.com", customerKey(order))

	order.CustomerEmail = ""
	assert.Equal(t, "Jane Buyer", customerKey(order), "ship-to name is the next fallback")

	order.ShipTo = nil
	token := customerKey(order)
	assert.Len(t, token, 10, "anonymous buyers get a generated token")
	assert.NotEqual(t, token, customerKey(order))
}

func TestResolveCustomerCreates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	customer, err := f.customers.ResolveCustomer(ctx, testOrder())
	require.NoError(t, err)

	assert.Equal(t, "buyer@example.com", customer.Name)
	assert.Equal(t, "ShipStation", customer.CustomerGroup)
	assert.Equal(t, "United States", customer.Territory)
	assert.NotEmpty(t, customer.PrimaryContact)
	assert.NotEmpty(t, customer.PrimaryAddress)

	address, err := f.store.Repositories().Addresses.Get(ctx, customer.PrimaryAddress)
	require.NoError(t, err)
	assert.Equal(t, domain.AddressTypeShipping, address.AddressType)
	assert.Equal(t, "United States", address.Country, "country code translated through the lookup table")

	contact, err := f.store.Repositories().Contacts.Get(ctx, customer.PrimaryContact)
	require.NoError(t, err)
	assert.Equal(t, "Jane", contact.FirstName)
	assert.Equal(t, "Buyer", contact.LastName)
}

func TestResolveCustomerReturnsExistingUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	first, err := f.customers.ResolveCustomer(ctx, testOrder())
	require.NoError(t, err)

	changed := testOrder()
	changed.ShipTo.Street1 = "500 Elsewhere Ave"
	second, err := f.customers.ResolveCustomer(ctx, changed)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.PrimaryAddress, second.PrimaryAddress)

	address, err := f.store.Repositories().Addresses.Get(ctx, second.PrimaryAddress)
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", address.Line1, "existing customers are never overwritten")
}

func TestResolveCustomerUnknownCountrySoftFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	order := testOrder()
	order.ShipTo.Country = "ZZ"
	order.BillTo.Country = "ZZ"

	customer, err := f.customers.ResolveCustomer(ctx, order)
	require.NoError(t, err, "a bad country must not block order capture")
	assert.Empty(t, customer.PrimaryAddress, "the address save fails softly and the field stays unset")
}

func TestResolveCustomerSanitizesContactName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	order := testOrder()
	order.BillTo.Name = "<Jane> <Buyer>"

	customer, err := f.customers.ResolveCustomer(ctx, order)
	require.NoError(t, err)

	contact, err := f.store.Repositories().Contacts.Get(ctx, customer.PrimaryContact)
	require.NoError(t, err)
	assert.Equal(t, "Jane", contact.FirstName)
	assert.Equal(t, "Buyer", contact.LastName)
}

func TestResolveCustomerWithoutStreetSkipsAddress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	order := testOrder()
	order.ShipTo.Street1 = ""
	order.BillTo.Street1 = ""

	customer, err := f.customers.ResolveCustomer(ctx, order)
	require.NoError(t, err)
	assert.Empty(t, customer.PrimaryAddress)
}

func TestUpdateCustomerDetails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	repos := f.store.Repositories()

	// A marketplace integration created the order without buyer details.
	so := &domain.SalesOrder{
		Name:     "SO-EXT-1",
		Status:   domain.DocStatusSubmitted,
		Customer: "marketplace-buyer",
	}
	require.NoError(t, repos.SalesOrders.Create(ctx, so))

	require.NoError(t, f.customers.UpdateCustomerDetails(ctx, so, testOrder()))

	updated, err := repos.SalesOrders.Get(ctx, so.Name)
	require.NoError(t, err)
	assert.Equal(t, "100", updated.ShipstationOrderID)
	assert.True(t, updated.HasPII)
	assert.NotEmpty(t, updated.ContactPerson)
	assert.NotEmpty(t, updated.CustomerAddress)
	assert.NotEmpty(t, updated.ShippingAddress)

	// A second pass updates the same addresses in place.
	moved := testOrder()
	moved.ShipTo.Street1 = "9 Moved St"
	require.NoError(t, f.customers.UpdateCustomerDetails(ctx, updated, moved))

	again, err := repos.SalesOrders.Get(ctx, so.Name)
	require.NoError(t, err)
	assert.Equal(t, updated.ShippingAddress, again.ShippingAddress)

	address, err := repos.Addresses.Get(ctx, again.ShippingAddress)
	require.NoError(t, err)
	assert.Equal(t, "9 Moved St", address.Line1)
}

func TestSplitPersonName(t *testing.T) {
	first, last := splitPersonName("Jane Q Buyer")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Q Buyer", last)

	first, last = splitPersonName("")
	assert.Equal(t, "Not Provided", first)
	assert.Empty(t, last)
}
