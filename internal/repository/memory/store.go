// Package memory is an in-memory document store used by tests and local
// runs. It enforces the same external-id uniqueness the postgres schema
// does, so idempotency behavior matches the real store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type Store struct {
	mu sync.Mutex

	accounts      map[string]domain.AccountSettings
	customers     map[string]domain.Customer
	contacts      map[string]domain.Contact
	addresses     map[string]domain.Address
	items         map[string]domain.Item
	itemAliases   map[string]string
	salesOrders   map[string]domain.SalesOrder
	salesInvoices map[string]domain.SalesInvoice
	deliveryNotes map[string]domain.DeliveryNote
	shipments     map[string]domain.Shipment
	warehouses    map[string]domain.Warehouse
	attachments   map[string]domain.Attachment
	countries     map[string]string
}

func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]domain.AccountSettings),
		customers:     make(map[string]domain.Customer),
		contacts:      make(map[string]domain.Contact),
		addresses:     make(map[string]domain.Address),
		items:         make(map[string]domain.Item),
		itemAliases:   make(map[string]string),
		salesOrders:   make(map[string]domain.SalesOrder),
		salesInvoices: make(map[string]domain.SalesInvoice),
		deliveryNotes: make(map[string]domain.DeliveryNote),
		shipments:     make(map[string]domain.Shipment),
		warehouses:    make(map[string]domain.Warehouse),
		attachments:   make(map[string]domain.Attachment),
		countries: map[string]string{
			"us": "United States",
			"ca": "Canada",
			"gb": "United Kingdom",
			"de": "Germany",
			"fr": "France",
			"mx": "Mexico",
		},
	}
}

// Repositories exposes the store through the document-store interfaces.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Accounts:      (*accountStore)(s),
		Customers:     (*customerStore)(s),
		Contacts:      (*contactStore)(s),
		Addresses:     (*addressStore)(s),
		Items:         (*itemStore)(s),
		SalesOrders:   (*salesOrderStore)(s),
		SalesInvoices: (*salesInvoiceStore)(s),
		DeliveryNotes: (*deliveryNoteStore)(s),
		Shipments:     (*shipmentStore)(s),
		Warehouses:    (*warehouseStore)(s),
		Attachments:   (*attachmentStore)(s),
		Countries:     (*countryStore)(s),
	}
}

// AddItemAlias seeds the SKU alias table.
func (s *Store) AddItemAlias(sku, itemCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemAliases[sku] = itemCode
}

// AddCountry seeds the country lookup table.
func (s *Store) AddCountry(code, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries[strings.ToLower(code)] = name
}

func matchStatus(status domain.DocStatus, statuses []domain.DocStatus) bool {
	for _, want := range statuses {
		if status == want {
			return true
		}
	}
	return false
}

// --- accounts ---

type accountStore Store

func (s *accountStore) Get(_ context.Context, name string) (*domain.AccountSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[name]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "account settings", ID: name}
	}
	return &account, nil
}

func (s *accountStore) List(_ context.Context) ([]*domain.AccountSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var accounts []*domain.AccountSettings
	for name := range s.accounts {
		account := s.accounts[name]
		accounts = append(accounts, &account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (s *accountStore) MostRecent(_ context.Context) (*domain.AccountSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *domain.AccountSettings
	for name := range s.accounts {
		account := s.accounts[name]
		if !account.Enabled {
			continue
		}
		if latest == nil || account.CreatedAt.After(latest.CreatedAt) {
			latest = &account
		}
	}
	if latest == nil {
		return nil, &errors.ErrNotFound{Resource: "account settings"}
	}
	return latest, nil
}

func (s *accountStore) Create(_ context.Context, account *domain.AccountSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	account.UpdatedAt = time.Now()
	s.accounts[account.Name] = *account
	return nil
}

func (s *accountStore) Update(_ context.Context, account *domain.AccountSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account.UpdatedAt = time.Now()
	s.accounts[account.Name] = *account
	return nil
}

// --- customers ---

type customerStore Store

func (s *customerStore) Get(_ context.Context, name string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.customers[name]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "customer", ID: name}
	}
	return &customer, nil
}

func (s *customerStore) Exists(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.customers[name]
	return ok, nil
}

func (s *customerStore) Create(_ context.Context, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.Name]; ok {
		return fmt.Errorf("customer %q already exists", customer.Name)
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	s.customers[customer.Name] = *customer
	return nil
}

func (s *customerStore) Update(_ context.Context, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.Name] = *customer
	return nil
}

// --- contacts ---

type contactStore Store

func (s *contactStore) Get(_ context.Context, name string) (*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact, ok := s.contacts[name]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "contact", ID: name}
	}
	return &contact, nil
}

func (s *contactStore) FindByEmail(_ context.Context, email string) (*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.contacts {
		if s.contacts[name].EmailID == email {
			contact := s.contacts[name]
			return &contact, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "contact", ID: email}
}

func (s *contactStore) Create(_ context.Context, contact *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}
	s.contacts[contact.Name] = *contact
	return nil
}

// --- addresses ---

type addressStore Store

func (s *addressStore) Get(_ context.Context, name string) (*domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	address, ok := s.addresses[name]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "address", ID: name}
	}
	return &address, nil
}

func (s *addressStore) FindByCustomerLink(_ context.Context, customer string, addressType domain.AddressType) (*domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.addresses {
		address := s.addresses[name]
		if address.CustomerLink == customer && address.AddressType == addressType {
			return &address, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "address", ID: customer}
}

func (s *addressStore) Create(_ context.Context, address *domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if address.CreatedAt.IsZero() {
		address.CreatedAt = time.Now()
	}
	s.addresses[address.Name] = *address
	return nil
}

func (s *addressStore) Update(_ context.Context, address *domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[address.Name] = *address
	return nil
}

// --- items ---

type itemStore Store

func (s *itemStore) GetByCode(_ context.Context, code string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[code]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "item", ID: code}
	}
	return &item, nil
}

func (s *itemStore) FindByName(_ context.Context, name string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code := range s.items {
		if s.items[code].Name == name {
			item := s.items[code]
			return &item, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "item", ID: name}
}

func (s *itemStore) FindAlias(_ context.Context, sku string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemAliases[sku], nil
}

func (s *itemStore) Create(_ context.Context, item *domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.Code]; ok {
		return fmt.Errorf("item %q already exists", item.Code)
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	s.items[item.Code] = *item
	return nil
}

func (s *itemStore) Update(_ context.Context, item *domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.UpdatedAt = time.Now()
	s.items[item.Code] = *item
	return nil
}

// --- sales orders ---

type salesOrderStore Store

func (s *salesOrderStore) Get(_ context.Context, name string) (*domain.SalesOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.salesOrders[name]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "sales order", ID: name}
	}
	return &order, nil
}

func (s *salesOrderStore) FindByExternalID(_ context.Context, shipstationOrderID string, statuses ...domain.DocStatus) (*domain.SalesOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.salesOrders {
		order := s.salesOrders[name]
		if order.ShipstationOrderID == shipstationOrderID && matchStatus(order.Status, statuses) {
			return &order, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "sales order", ID: shipstationOrderID}
}

func (s *salesOrderStore) Create(_ context.Context, order *domain.SalesOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.salesOrders {
		existing := s.salesOrders[name]
		if existing.ShipstationOrderID != "" &&
			existing.ShipstationOrderID == order.ShipstationOrderID &&
			existing.Status != domain.DocStatusCancelled {
			return fmt.Errorf("duplicate sales order for hub order %s", order.ShipstationOrderID)
		}
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	s.salesOrders[order.Name] = *order
	return nil
}

func (s *salesOrderStore) Update(_ context.Context, order *domain.SalesOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.UpdatedAt = time.Now()
	s.salesOrders[order.Name] = *order
	return nil
}

func (s *salesOrderStore) Cancel(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.salesOrders[name]
	if !ok || order.Status != domain.DocStatusSubmitted {
		return &errors.ErrNotFound{Resource: "sales order", ID: name}
	}
	order.Status = domain.DocStatusCancelled
	s.salesOrders[name] = order
	return nil
}

// --- sales invoices ---

type salesInvoiceStore Store

func (s *salesInvoiceStore) Get(_ context.Context, name string) (*domain.SalesInvoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice, ok := s.salesInvoices[name]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "sales invoice", ID: name}
	}
	return &invoice, nil
}

func (s *salesInvoiceStore) FindByShipmentID(_ context.Context, shipstationShipmentID string, statuses ...domain.DocStatus) (*domain.SalesInvoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.salesInvoices {
		invoice := s.salesInvoices[name]
		if invoice.ShipstationShipmentID == shipstationShipmentID && matchStatus(invoice.Status, statuses) {
			return &invoice, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "sales invoice", ID: shipstationShipmentID}
}

func (s *salesInvoiceStore) Create(_ context.Context, invoice *domain.SalesInvoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.salesInvoices {
		existing := s.salesInvoices[name]
		if existing.ShipstationShipmentID != "" &&
			existing.ShipstationShipmentID == invoice.ShipstationShipmentID &&
			existing.Status != domain.DocStatusCancelled {
			return fmt.Errorf("duplicate sales invoice for hub shipment %s", invoice.ShipstationShipmentID)
		}
	}
	now := time.Now()
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = now
	}
	invoice.UpdatedAt = now
	s.salesInvoices[invoice.Name] = *invoice
	return nil
}

func (s *salesInvoiceStore) Cancel(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice, ok := s.salesInvoices[name]
	if !ok || invoice.Status != domain.DocStatusSubmitted {
		return &errors.ErrNotFound{Resource: "sales invoice", ID: name}
	}
	invoice.Status = domain.DocStatusCancelled
	s.salesInvoices[name] = invoice
	return nil
}

// --- delivery notes ---

type deliveryNoteStore Store

func (s *deliveryNoteStore) Get(_ context.Context, name string) (*domain.DeliveryNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.deliveryNotes[name]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "delivery note", ID: name}
	}
	return &note, nil
}

func (s *deliveryNoteStore) FindByShipmentID(_ context.Context, shipstationShipmentID string, statuses ...domain.DocStatus) (*domain.DeliveryNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.deliveryNotes {
		note := s.deliveryNotes[name]
		if note.ShipstationShipmentID == shipstationShipmentID && matchStatus(note.Status, statuses) {
			return &note, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "delivery note", ID: shipstationShipmentID}
}

func (s *deliveryNoteStore) FindByOrderExternalID(_ context.Context, shipstationOrderID string, statuses ...domain.DocStatus) (*domain.DeliveryNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.deliveryNotes {
		note := s.deliveryNotes[name]
		if note.ShipstationOrderID == shipstationOrderID && matchStatus(note.Status, statuses) {
			return &note, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "delivery note", ID: shipstationOrderID}
}

func (s *deliveryNoteStore) Create(_ context.Context, note *domain.DeliveryNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.deliveryNotes {
		existing := s.deliveryNotes[name]
		if existing.ShipstationShipmentID != "" &&
			existing.ShipstationShipmentID == note.ShipstationShipmentID &&
			existing.Status != domain.DocStatusCancelled {
			return fmt.Errorf("duplicate delivery note for hub shipment %s", note.ShipstationShipmentID)
		}
	}
	now := time.Now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now
	s.deliveryNotes[note.Name] = *note
	return nil
}

func (s *deliveryNoteStore) Update(_ context.Context, note *domain.DeliveryNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	note.UpdatedAt = time.Now()
	s.deliveryNotes[note.Name] = *note
	return nil
}

func (s *deliveryNoteStore) Cancel(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.deliveryNotes[name]
	if !ok || note.Status != domain.DocStatusSubmitted {
		return &errors.ErrNotFound{Resource: "delivery note", ID: name}
	}
	note.Status = domain.DocStatusCancelled
	s.deliveryNotes[name] = note
	return nil
}

// --- shipments ---

type shipmentStore Store

func (s *shipmentStore) Get(_ context.Context, name string) (*domain.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shipment, ok := s.shipments[name]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "shipment", ID: name}
	}
	return &shipment, nil
}

func (s *shipmentStore) FindByShipmentOrOrderID(_ context.Context, shipstationShipmentID, shipstationOrderID string, statuses ...domain.DocStatus) (*domain.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.shipments {
		shipment := s.shipments[name]
		if !matchStatus(shipment.Status, statuses) {
			continue
		}
		if shipment.ShipstationShipmentID == shipstationShipmentID ||
			(shipstationOrderID != "" && shipment.ShipstationOrderID == shipstationOrderID) {
			return &shipment, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "shipment", ID: shipstationShipmentID}
}

func (s *shipmentStore) Create(_ context.Context, shipment *domain.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.shipments {
		existing := s.shipments[name]
		if existing.ShipstationShipmentID != "" &&
			existing.ShipstationShipmentID == shipment.ShipstationShipmentID &&
			existing.Status != domain.DocStatusCancelled {
			return fmt.Errorf("duplicate shipment for hub shipment %s", shipment.ShipstationShipmentID)
		}
	}
	now := time.Now()
	if shipment.CreatedAt.IsZero() {
		shipment.CreatedAt = now
	}
	shipment.UpdatedAt = now
	s.shipments[shipment.Name] = *shipment
	return nil
}

func (s *shipmentStore) Cancel(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shipment, ok := s.shipments[name]
	if !ok || shipment.Status != domain.DocStatusSubmitted {
		return &errors.ErrNotFound{Resource: "shipment", ID: name}
	}
	shipment.Status = domain.DocStatusCancelled
	s.shipments[name] = shipment
	return nil
}

// --- warehouses ---

type warehouseStore Store

func (s *warehouseStore) Get(_ context.Context, name string) (*domain.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	warehouse, ok := s.warehouses[name]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "warehouse", ID: name}
	}
	return &warehouse, nil
}

func (s *warehouseStore) FindByShipstationID(_ context.Context, shipstationWarehouseID string) (*domain.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.warehouses {
		warehouse := s.warehouses[name]
		if warehouse.ShipstationWarehouseID == shipstationWarehouseID {
			return &warehouse, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "warehouse", ID: shipstationWarehouseID}
}

func (s *warehouseStore) EnsureGroup(_ context.Context, warehouseName string) (*domain.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.warehouses {
		warehouse := s.warehouses[name]
		if warehouse.WarehouseName == warehouseName && warehouse.IsGroup {
			return &warehouse, nil
		}
	}
	group := domain.Warehouse{
		Name:          warehouseName,
		WarehouseName: warehouseName,
		IsGroup:       true,
	}
	s.warehouses[group.Name] = group
	return &group, nil
}

func (s *warehouseStore) Create(_ context.Context, warehouse *domain.Warehouse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses[warehouse.Name] = *warehouse
	return nil
}

// --- attachments ---

type attachmentStore Store

func (s *attachmentStore) Create(_ context.Context, attachment *domain.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if attachment.CreatedAt.IsZero() {
		attachment.CreatedAt = time.Now()
	}
	s.attachments[attachment.Name] = *attachment
	return nil
}

func (s *attachmentStore) ListFor(_ context.Context, attachedToType, attachedToName string) ([]*domain.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var attachments []*domain.Attachment
	for name := range s.attachments {
		attachment := s.attachments[name]
		if attachment.AttachedToType == attachedToType && attachment.AttachedToName == attachedToName {
			attachments = append(attachments, &attachment)
		}
	}
	sort.Slice(attachments, func(i, j int) bool {
		return attachments[i].CreatedAt.Before(attachments[j].CreatedAt)
	})
	return attachments, nil
}

// --- countries ---

type countryStore Store

func (s *countryStore) NameByCode(_ context.Context, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.countries[strings.ToLower(code)]
	if !ok {
		return "", &errors.ErrNotFound{Resource: "country", ID: code}
	}
	return name, nil
}

func (s *countryStore) CodeByName(_ context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, countryName := range s.countries {
		if countryName == name {
			return code, nil
		}
	}
	return "", &errors.ErrNotFound{Resource: "country", ID: name}
}
