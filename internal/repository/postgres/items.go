package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type itemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sql.DB, logger *zap.Logger) *itemRepository {
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

const itemColumns = `code, item_name, item_group, description, is_stock_item,
	disabled, weight_per_unit, weight_uom, defaults, comments, created_at, updated_at`

func scanItem(row interface{ Scan(...interface{}) error }) (*domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.Code,
		&item.Name,
		&item.ItemGroup,
		&item.Description,
		&item.IsStockItem,
		&item.Disabled,
		&item.WeightPerUnit,
		&item.WeightUOM,
		asJSON(&item.Defaults),
		asJSON(&item.Comments),
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) GetByCode(ctx context.Context, code string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE code = $1`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "item", ID: code}
	}
	if err != nil {
		r.logger.Error("Failed to get item", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) FindByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_name = $1 LIMIT 1`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "item", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to find item by name", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) FindAlias(ctx context.Context, sku string) (string, error) {
	var code string
	err := r.db.QueryRowContext(ctx,
		`SELECT item_code FROM item_aliases WHERE sku = $1`, sku,
	).Scan(&code)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		r.logger.Error("Failed to find item alias", zap.Error(err))
		return "", err
	}
	return code, nil
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		item.Code,
		item.Name,
		item.ItemGroup,
		item.Description,
		item.IsStockItem,
		item.Disabled,
		item.WeightPerUnit,
		item.WeightUOM,
		asJSON(item.Defaults),
		asJSON(item.Comments),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create item", zap.Error(err))
		return err
	}
	return nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE items
		SET item_name = $2, item_group = $3, description = $4, is_stock_item = $5,
			disabled = $6, weight_per_unit = $7, weight_uom = $8, defaults = $9,
			comments = $10, updated_at = $11
		WHERE code = $1
	`

	item.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		item.Code,
		item.Name,
		item.ItemGroup,
		item.Description,
		item.IsStockItem,
		item.Disabled,
		item.WeightPerUnit,
		item.WeightUOM,
		asJSON(item.Defaults),
		asJSON(item.Comments),
		item.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update item", zap.Error(err))
		return err
	}
	return nil
}
