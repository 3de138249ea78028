// Package repository defines the document-store surface the connector
// consumes: get/create/update/submit/cancel documents, field-level lookups
// by filter, and existence checks. The connector has no persistence of its
// own; every entity here is owned by the ERP.
package repository

import (
	"context"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
)

// Accounts stores carrier-hub credential sets and their store configs.
type Accounts interface {
	Get(ctx context.Context, name string) (*domain.AccountSettings, error)
	// List returns every account, enabled or not.
	List(ctx context.Context) ([]*domain.AccountSettings, error)
	// MostRecent returns the most recently created enabled account. The
	// webhook dispatcher falls back to this when no account is named.
	MostRecent(ctx context.Context) (*domain.AccountSettings, error)
	Create(ctx context.Context, account *domain.AccountSettings) error
	Update(ctx context.Context, account *domain.AccountSettings) error
}

// Customers stores ERP customers keyed by resolved customer name.
type Customers interface {
	Get(ctx context.Context, name string) (*domain.Customer, error)
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
}

// Contacts stores contact persons linked to customers.
type Contacts interface {
	Get(ctx context.Context, name string) (*domain.Contact, error)
	// FindByEmail returns the contact whose email matches, if any.
	FindByEmail(ctx context.Context, email string) (*domain.Contact, error)
	Create(ctx context.Context, contact *domain.Contact) error
}

// Addresses stores billing/shipping addresses linked to customers.
type Addresses interface {
	Get(ctx context.Context, name string) (*domain.Address, error)
	// FindByCustomerLink returns the first address of the given type linked
	// to a customer (the raw address-by-customer-link query).
	FindByCustomerLink(ctx context.Context, customer string, addressType domain.AddressType) (*domain.Address, error)
	Create(ctx context.Context, address *domain.Address) error
	Update(ctx context.Context, address *domain.Address) error
}

// Items stores catalog items.
type Items interface {
	GetByCode(ctx context.Context, code string) (*domain.Item, error)
	// FindByName matches on the truncated item name.
	FindByName(ctx context.Context, name string) (*domain.Item, error)
	// FindAlias resolves an explicit SKU alias to an item code, empty when
	// no alias table entry exists.
	FindAlias(ctx context.Context, sku string) (string, error)
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
}

// SalesOrders stores ERP sales orders.
type SalesOrders interface {
	Get(ctx context.Context, name string) (*domain.SalesOrder, error)
	// FindByExternalID returns the first order with the given hub order id
	// in any of the given statuses.
	FindByExternalID(ctx context.Context, shipstationOrderID string, statuses ...domain.DocStatus) (*domain.SalesOrder, error)
	Create(ctx context.Context, order *domain.SalesOrder) error
	Update(ctx context.Context, order *domain.SalesOrder) error
	Cancel(ctx context.Context, name string) error
}

// SalesInvoices stores ERP sales invoices.
type SalesInvoices interface {
	Get(ctx context.Context, name string) (*domain.SalesInvoice, error)
	FindByShipmentID(ctx context.Context, shipstationShipmentID string, statuses ...domain.DocStatus) (*domain.SalesInvoice, error)
	Create(ctx context.Context, invoice *domain.SalesInvoice) error
	Cancel(ctx context.Context, name string) error
}

// DeliveryNotes stores ERP delivery notes.
type DeliveryNotes interface {
	Get(ctx context.Context, name string) (*domain.DeliveryNote, error)
	FindByShipmentID(ctx context.Context, shipstationShipmentID string, statuses ...domain.DocStatus) (*domain.DeliveryNote, error)
	// FindByOrderExternalID matches on the hub order id; the void check
	// keys off the order rather than the shipment.
	FindByOrderExternalID(ctx context.Context, shipstationOrderID string, statuses ...domain.DocStatus) (*domain.DeliveryNote, error)
	Create(ctx context.Context, note *domain.DeliveryNote) error
	Update(ctx context.Context, note *domain.DeliveryNote) error
	Cancel(ctx context.Context, name string) error
}

// Shipments stores ERP shipment records.
type Shipments interface {
	Get(ctx context.Context, name string) (*domain.Shipment, error)
	// FindByShipmentOrOrderID matches on the hub shipment id OR order id;
	// either may exist independently from a prior partial run.
	FindByShipmentOrOrderID(ctx context.Context, shipstationShipmentID, shipstationOrderID string, statuses ...domain.DocStatus) (*domain.Shipment, error)
	Create(ctx context.Context, shipment *domain.Shipment) error
	Cancel(ctx context.Context, name string) error
}

// Warehouses stores ERP warehouses mirrored from the hub.
type Warehouses interface {
	Get(ctx context.Context, name string) (*domain.Warehouse, error)
	FindByShipstationID(ctx context.Context, shipstationWarehouseID string) (*domain.Warehouse, error)
	// EnsureGroup creates the named group warehouse if missing and returns it.
	EnsureGroup(ctx context.Context, warehouseName string) (*domain.Warehouse, error)
	Create(ctx context.Context, warehouse *domain.Warehouse) error
}

// Attachments stores files linked to documents.
type Attachments interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	ListFor(ctx context.Context, attachedToType, attachedToName string) ([]*domain.Attachment, error)
}

// Countries translates between ISO country codes and ERP country names.
type Countries interface {
	NameByCode(ctx context.Context, code string) (string, error)
	CodeByName(ctx context.Context, name string) (string, error)
}

// Repositories aggregates the full document-store surface.
type Repositories struct {
	Accounts      Accounts
	Customers     Customers
	Contacts      Contacts
	Addresses     Addresses
	Items         Items
	SalesOrders   SalesOrders
	SalesInvoices SalesInvoices
	DeliveryNotes DeliveryNotes
	Shipments     Shipments
	Warehouses    Warehouses
	Attachments   Attachments
	Countries     Countries
}
