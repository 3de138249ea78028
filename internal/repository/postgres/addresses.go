package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type addressRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *sql.DB, logger *zap.Logger) *addressRepository {
	return &addressRepository{
		db:     db,
		logger: logger,
	}
}

const addressColumns = `name, address_type, address_title, line1, line2, line3,
	city, state, pin_code, country, phone, email, customer_link, created_at`

func scanAddress(row interface{ Scan(...interface{}) error }) (*domain.Address, error) {
	var address domain.Address
	err := row.Scan(
		&address.Name,
		&address.AddressType,
		&address.AddressTitle,
		&address.Line1,
		&address.Line2,
		&address.Line3,
		&address.City,
		&address.State,
		&address.PinCode,
		&address.Country,
		&address.Phone,
		&address.Email,
		&address.CustomerLink,
		&address.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) Get(ctx context.Context, name string) (*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE name = $1`

	address, err := scanAddress(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "address", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get address", zap.Error(err))
		return nil, err
	}
	return address, nil
}

func (r *addressRepository) FindByCustomerLink(ctx context.Context, customer string, addressType domain.AddressType) (*domain.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE customer_link = $1 AND address_type = $2
		LIMIT 1
	`

	address, err := scanAddress(r.db.QueryRowContext(ctx, query, customer, addressType))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "address", ID: customer}
	}
	if err != nil {
		r.logger.Error("Failed to find address by customer link", zap.Error(err))
		return nil, err
	}
	return address, nil
}

func (r *addressRepository) Create(ctx context.Context, address *domain.Address) error {
	query := `
		INSERT INTO addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	if address.CreatedAt.IsZero() {
		address.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		address.Name,
		address.AddressType,
		address.AddressTitle,
		address.Line1,
		address.Line2,
		address.Line3,
		address.City,
		address.State,
		address.PinCode,
		address.Country,
		address.Phone,
		address.Email,
		address.CustomerLink,
		address.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create address", zap.Error(err))
		return err
	}
	return nil
}

func (r *addressRepository) Update(ctx context.Context, address *domain.Address) error {
	query := `
		UPDATE addresses
		SET address_type = $2, address_title = $3, line1 = $4, line2 = $5,
			line3 = $6, city = $7, state = $8, pin_code = $9, country = $10,
			phone = $11, email = $12, customer_link = $13
		WHERE name = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		address.Name,
		address.AddressType,
		address.AddressTitle,
		address.Line1,
		address.Line2,
		address.Line3,
		address.City,
		address.State,
		address.PinCode,
		address.Country,
		address.Phone,
		address.Email,
		address.CustomerLink,
	)
	if err != nil {
		r.logger.Error("Failed to update address", zap.Error(err))
		return err
	}
	return nil
}
