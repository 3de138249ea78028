package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type accountRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAccountRepository creates a new account settings repository
func NewAccountRepository(db *sql.DB, logger *zap.Logger) *accountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

const accountColumns = `name, enabled, api_key, api_secret, since_date,
	active_warehouse_ids, non_stock_keywords, default_item_group,
	carrier_data, stores, created_at, updated_at`

func (r *accountRepository) scan(row interface{ Scan(...interface{}) error }) (*domain.AccountSettings, error) {
	var account domain.AccountSettings
	var sinceDate sql.NullTime

	err := row.Scan(
		&account.Name,
		&account.Enabled,
		&account.APIKey,
		&account.APISecret,
		&sinceDate,
		asJSON(&account.ActiveWarehouseIDs),
		asJSON(&account.NonStockKeywords),
		&account.DefaultItemGroup,
		asJSON(&account.Carriers),
		asJSON(&account.Stores),
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sinceDate.Valid {
		account.SinceDate = &sinceDate.Time
	}
	return &account, nil
}

func (r *accountRepository) Get(ctx context.Context, name string) (*domain.AccountSettings, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE name = $1`

	account, err := r.scan(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "account settings", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get account settings", zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]*domain.AccountSettings, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list account settings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.AccountSettings
	for rows.Next() {
		account, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) MostRecent(ctx context.Context) (*domain.AccountSettings, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE enabled ORDER BY created_at DESC LIMIT 1`

	account, err := r.scan(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "account settings"}
	}
	if err != nil {
		r.logger.Error("Failed to get most recent account settings", zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) Create(ctx context.Context, account *domain.AccountSettings) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		account.Name,
		account.Enabled,
		account.APIKey,
		account.APISecret,
		account.SinceDate,
		asJSON(account.ActiveWarehouseIDs),
		asJSON(account.NonStockKeywords),
		account.DefaultItemGroup,
		asJSON(account.Carriers),
		asJSON(account.Stores),
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create account settings", zap.Error(err))
		return err
	}
	return nil
}

func (r *accountRepository) Update(ctx context.Context, account *domain.AccountSettings) error {
	query := `
		UPDATE accounts
		SET enabled = $2, api_key = $3, api_secret = $4, since_date = $5,
			active_warehouse_ids = $6, non_stock_keywords = $7,
			default_item_group = $8, carrier_data = $9, stores = $10,
			updated_at = $11
		WHERE name = $1
	`

	account.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		account.Name,
		account.Enabled,
		account.APIKey,
		account.APISecret,
		account.SinceDate,
		asJSON(account.ActiveWarehouseIDs),
		asJSON(account.NonStockKeywords),
		account.DefaultItemGroup,
		asJSON(account.Carriers),
		asJSON(account.Stores),
		account.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update account settings", zap.Error(err))
		return err
	}
	return nil
}
