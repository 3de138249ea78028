package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type salesInvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSalesInvoiceRepository creates a new sales invoice repository
func NewSalesInvoiceRepository(db *sql.DB, logger *zap.Logger) *salesInvoiceRepository {
	return &salesInvoiceRepository{
		db:     db,
		logger: logger,
	}
}

const salesInvoiceColumns = `name, status, sales_order, shipstation_order_id,
	shipstation_shipment_id, customer, company, items, charges, created_at, updated_at`

func scanSalesInvoice(row interface{ Scan(...interface{}) error }) (*domain.SalesInvoice, error) {
	var invoice domain.SalesInvoice
	err := row.Scan(
		&invoice.Name,
		&invoice.Status,
		&invoice.SalesOrder,
		&invoice.ShipstationOrderID,
		&invoice.ShipstationShipmentID,
		&invoice.Customer,
		&invoice.Company,
		asJSON(&invoice.Items),
		asJSON(&invoice.Charges),
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *salesInvoiceRepository) Get(ctx context.Context, name string) (*domain.SalesInvoice, error) {
	query := `SELECT ` + salesInvoiceColumns + ` FROM sales_invoices WHERE name = $1`

	invoice, err := scanSalesInvoice(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "sales invoice", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get sales invoice", zap.Error(err))
		return nil, err
	}
	return invoice, nil
}

func (r *salesInvoiceRepository) FindByShipmentID(ctx context.Context, shipstationShipmentID string, statuses ...domain.DocStatus) (*domain.SalesInvoice, error) {
	query := `
		SELECT ` + salesInvoiceColumns + `
		FROM sales_invoices
		WHERE shipstation_shipment_id = $1 AND status IN (` + statusPlaceholders(2, len(statuses)) + `)
		LIMIT 1
	`

	args := []interface{}{shipstationShipmentID}
	for _, status := range statuses {
		args = append(args, status)
	}

	invoice, err := scanSalesInvoice(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "sales invoice", ID: shipstationShipmentID}
	}
	if err != nil {
		r.logger.Error("Failed to find sales invoice by shipment ID", zap.Error(err))
		return nil, err
	}
	return invoice, nil
}

func (r *salesInvoiceRepository) Create(ctx context.Context, invoice *domain.SalesInvoice) error {
	query := `
		INSERT INTO sales_invoices (` + salesInvoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	now := time.Now()
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = now
	}
	invoice.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		invoice.Name,
		invoice.Status,
		invoice.SalesOrder,
		invoice.ShipstationOrderID,
		invoice.ShipstationShipmentID,
		invoice.Customer,
		invoice.Company,
		asJSON(invoice.Items),
		asJSON(invoice.Charges),
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create sales invoice", zap.Error(err))
		return err
	}
	return nil
}

func (r *salesInvoiceRepository) Cancel(ctx context.Context, name string) error {
	return cancelDocument(ctx, r.db, r.logger, "sales_invoices", "sales invoice", name)
}
