package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type warehouseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWarehouseRepository creates a new warehouse repository
func NewWarehouseRepository(db *sql.DB, logger *zap.Logger) *warehouseRepository {
	return &warehouseRepository{
		db:     db,
		logger: logger,
	}
}

const warehouseColumns = `name, warehouse_name, shipstation_warehouse_id, parent_warehouse, is_group`

func scanWarehouse(row interface{ Scan(...interface{}) error }) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	err := row.Scan(
		&warehouse.Name,
		&warehouse.WarehouseName,
		&warehouse.ShipstationWarehouseID,
		&warehouse.ParentWarehouse,
		&warehouse.IsGroup,
	)
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepository) Get(ctx context.Context, name string) (*domain.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE name = $1`

	warehouse, err := scanWarehouse(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "warehouse", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get warehouse", zap.Error(err))
		return nil, err
	}
	return warehouse, nil
}

func (r *warehouseRepository) FindByShipstationID(ctx context.Context, shipstationWarehouseID string) (*domain.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE shipstation_warehouse_id = $1 LIMIT 1`

	warehouse, err := scanWarehouse(r.db.QueryRowContext(ctx, query, shipstationWarehouseID))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "warehouse", ID: shipstationWarehouseID}
	}
	if err != nil {
		r.logger.Error("Failed to find warehouse", zap.Error(err))
		return nil, err
	}
	return warehouse, nil
}

func (r *warehouseRepository) EnsureGroup(ctx context.Context, warehouseName string) (*domain.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE warehouse_name = $1 AND is_group LIMIT 1`

	warehouse, err := scanWarehouse(r.db.QueryRowContext(ctx, query, warehouseName))
	if err == nil {
		return warehouse, nil
	}
	if err != sql.ErrNoRows {
		r.logger.Error("Failed to find group warehouse", zap.Error(err))
		return nil, err
	}

	group := &domain.Warehouse{
		Name:          warehouseName,
		WarehouseName: warehouseName,
		IsGroup:       true,
	}
	if err := r.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (r *warehouseRepository) Create(ctx context.Context, warehouse *domain.Warehouse) error {
	query := `
		INSERT INTO warehouses (` + warehouseColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		warehouse.Name,
		warehouse.WarehouseName,
		warehouse.ShipstationWarehouseID,
		warehouse.ParentWarehouse,
		warehouse.IsGroup,
	)
	if err != nil {
		r.logger.Error("Failed to create warehouse", zap.Error(err))
		return err
	}
	return nil
}
