package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type shipmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(db *sql.DB, logger *zap.Logger) *shipmentRepository {
	return &shipmentRepository{
		db:     db,
		logger: logger,
	}
}

const shipmentColumns = `name, status, delivery_note, shipstation_order_id,
	shipstation_shipment_id, carrier, carrier_service, tracking_number,
	pickup_date, parcels, description, created_at, updated_at`

func scanShipment(row interface{ Scan(...interface{}) error }) (*domain.Shipment, error) {
	var shipment domain.Shipment
	var pickupDate sql.NullTime

	err := row.Scan(
		&shipment.Name,
		&shipment.Status,
		&shipment.DeliveryNote,
		&shipment.ShipstationOrderID,
		&shipment.ShipstationShipmentID,
		&shipment.Carrier,
		&shipment.CarrierService,
		&shipment.TrackingNumber,
		&pickupDate,
		asJSON(&shipment.Parcels),
		&shipment.Description,
		&shipment.CreatedAt,
		&shipment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if pickupDate.Valid {
		shipment.PickupDate = pickupDate.Time
	}
	return &shipment, nil
}

func (r *shipmentRepository) Get(ctx context.Context, name string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE name = $1`

	shipment, err := scanShipment(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "shipment", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get shipment", zap.Error(err))
		return nil, err
	}
	return shipment, nil
}

func (r *shipmentRepository) FindByShipmentOrOrderID(ctx context.Context, shipstationShipmentID, shipstationOrderID string, statuses ...domain.DocStatus) (*domain.Shipment, error) {
	// Either id may exist from a prior partial run; the OR is deliberate.
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE (shipstation_shipment_id = $1 OR shipstation_order_id = $2)
			AND status IN (` + statusPlaceholders(3, len(statuses)) + `)
		LIMIT 1
	`

	args := []interface{}{shipstationShipmentID, shipstationOrderID}
	for _, status := range statuses {
		args = append(args, status)
	}

	shipment, err := scanShipment(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "shipment", ID: shipstationShipmentID}
	}
	if err != nil {
		r.logger.Error("Failed to find shipment", zap.Error(err))
		return nil, err
	}
	return shipment, nil
}

func (r *shipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	now := time.Now()
	if shipment.CreatedAt.IsZero() {
		shipment.CreatedAt = now
	}
	shipment.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		shipment.Name,
		shipment.Status,
		shipment.DeliveryNote,
		shipment.ShipstationOrderID,
		shipment.ShipstationShipmentID,
		shipment.Carrier,
		shipment.CarrierService,
		shipment.TrackingNumber,
		shipment.PickupDate,
		asJSON(shipment.Parcels),
		shipment.Description,
		shipment.CreatedAt,
		shipment.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create shipment", zap.Error(err))
		return err
	}
	return nil
}

func (r *shipmentRepository) Cancel(ctx context.Context, name string) error {
	return cancelDocument(ctx, r.db, r.logger, "shipments", "shipment", name)
}
