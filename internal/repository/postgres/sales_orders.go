package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type salesOrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSalesOrderRepository creates a new sales order repository
func NewSalesOrderRepository(db *sql.DB, logger *zap.Logger) *salesOrderRepository {
	return &salesOrderRepository{
		db:     db,
		logger: logger,
	}
}

const salesOrderColumns = `name, status, shipstation_order_id, marketplace,
	marketplace_order_id, customer, company, transaction_date, delivery_date,
	customer_address, shipping_address, contact_person, warehouse_id,
	items, charges, has_pii, created_at, updated_at`

func scanSalesOrder(row interface{ Scan(...interface{}) error }) (*domain.SalesOrder, error) {
	var order domain.SalesOrder
	var transactionDate, deliveryDate sql.NullTime

	err := row.Scan(
		&order.Name,
		&order.Status,
		&order.ShipstationOrderID,
		&order.Marketplace,
		&order.MarketplaceOrderID,
		&order.Customer,
		&order.Company,
		&transactionDate,
		&deliveryDate,
		&order.CustomerAddress,
		&order.ShippingAddress,
		&order.ContactPerson,
		&order.WarehouseID,
		asJSON(&order.Items),
		asJSON(&order.Charges),
		&order.HasPII,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if transactionDate.Valid {
		order.TransactionDate = transactionDate.Time
	}
	if deliveryDate.Valid {
		order.DeliveryDate = deliveryDate.Time
	}
	return &order, nil
}

func (r *salesOrderRepository) Get(ctx context.Context, name string) (*domain.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders WHERE name = $1`

	order, err := scanSalesOrder(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "sales order", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get sales order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *salesOrderRepository) FindByExternalID(ctx context.Context, shipstationOrderID string, statuses ...domain.DocStatus) (*domain.SalesOrder, error) {
	query := `
		SELECT ` + salesOrderColumns + `
		FROM sales_orders
		WHERE shipstation_order_id = $1 AND status IN (` + statusPlaceholders(2, len(statuses)) + `)
		LIMIT 1
	`

	args := []interface{}{shipstationOrderID}
	for _, status := range statuses {
		args = append(args, status)
	}

	order, err := scanSalesOrder(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "sales order", ID: shipstationOrderID}
	}
	if err != nil {
		r.logger.Error("Failed to find sales order by external ID", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *salesOrderRepository) Create(ctx context.Context, order *domain.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (` + salesOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		order.Name,
		order.Status,
		order.ShipstationOrderID,
		order.Marketplace,
		order.MarketplaceOrderID,
		order.Customer,
		order.Company,
		order.TransactionDate,
		order.DeliveryDate,
		order.CustomerAddress,
		order.ShippingAddress,
		order.ContactPerson,
		order.WarehouseID,
		asJSON(order.Items),
		asJSON(order.Charges),
		order.HasPII,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create sales order", zap.Error(err))
		return err
	}
	return nil
}

func (r *salesOrderRepository) Update(ctx context.Context, order *domain.SalesOrder) error {
	query := `
		UPDATE sales_orders
		SET status = $2, customer = $3, customer_address = $4,
			shipping_address = $5, contact_person = $6, items = $7,
			charges = $8, has_pii = $9, updated_at = $10
		WHERE name = $1
	`

	order.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		order.Name,
		order.Status,
		order.Customer,
		order.CustomerAddress,
		order.ShippingAddress,
		order.ContactPerson,
		asJSON(order.Items),
		asJSON(order.Charges),
		order.HasPII,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update sales order", zap.Error(err))
		return err
	}
	return nil
}

func (r *salesOrderRepository) Cancel(ctx context.Context, name string) error {
	return cancelDocument(ctx, r.db, r.logger, "sales_orders", "sales order", name)
}
