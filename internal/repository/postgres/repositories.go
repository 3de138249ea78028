package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/repository"
)

// NewRepositories wires the full postgres-backed document store.
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Accounts:      NewAccountRepository(db, logger),
		Customers:     NewCustomerRepository(db, logger),
		Contacts:      NewContactRepository(db, logger),
		Addresses:     NewAddressRepository(db, logger),
		Items:         NewItemRepository(db, logger),
		SalesOrders:   NewSalesOrderRepository(db, logger),
		SalesInvoices: NewSalesInvoiceRepository(db, logger),
		DeliveryNotes: NewDeliveryNoteRepository(db, logger),
		Shipments:     NewShipmentRepository(db, logger),
		Warehouses:    NewWarehouseRepository(db, logger),
		Attachments:   NewAttachmentRepository(db, logger),
		Countries:     NewCountryRepository(db, logger),
	}
}
