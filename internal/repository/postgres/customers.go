package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type customerRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sql.DB, logger *zap.Logger) *customerRepository {
	return &customerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *customerRepository) Get(ctx context.Context, name string) (*domain.Customer, error) {
	query := `
		SELECT name, shipstation_customer_id, customer_type, customer_group,
			territory, primary_contact, primary_address, created_at
		FROM customers
		WHERE name = $1
	`

	var customer domain.Customer
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&customer.Name,
		&customer.ShipstationCustomerID,
		&customer.CustomerType,
		&customer.CustomerGroup,
		&customer.Territory,
		&customer.PrimaryContact,
		&customer.PrimaryAddress,
		&customer.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "customer", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get customer", zap.Error(err))
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check customer existence", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (name, shipstation_customer_id, customer_type,
			customer_group, territory, primary_contact, primary_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		customer.Name,
		customer.ShipstationCustomerID,
		customer.CustomerType,
		customer.CustomerGroup,
		customer.Territory,
		customer.PrimaryContact,
		customer.PrimaryAddress,
		customer.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create customer", zap.Error(err))
		return err
	}
	return nil
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers
		SET shipstation_customer_id = $2, customer_type = $3, customer_group = $4,
			territory = $5, primary_contact = $6, primary_address = $7
		WHERE name = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		customer.Name,
		customer.ShipstationCustomerID,
		customer.CustomerType,
		customer.CustomerGroup,
		customer.Territory,
		customer.PrimaryContact,
		customer.PrimaryAddress,
	)
	if err != nil {
		r.logger.Error("Failed to update customer", zap.Error(err))
		return err
	}
	return nil
}
