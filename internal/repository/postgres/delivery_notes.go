package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type deliveryNoteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDeliveryNoteRepository creates a new delivery note repository
func NewDeliveryNoteRepository(db *sql.DB, logger *zap.Logger) *deliveryNoteRepository {
	return &deliveryNoteRepository{
		db:     db,
		logger: logger,
	}
}

const deliveryNoteColumns = `name, status, sales_invoice, sales_order,
	shipstation_order_id, shipstation_shipment_id, customer, carrier,
	carrier_service, tracking_number, items, created_at, updated_at`

func scanDeliveryNote(row interface{ Scan(...interface{}) error }) (*domain.DeliveryNote, error) {
	var note domain.DeliveryNote
	err := row.Scan(
		&note.Name,
		&note.Status,
		&note.SalesInvoice,
		&note.SalesOrder,
		&note.ShipstationOrderID,
		&note.ShipstationShipmentID,
		&note.Customer,
		&note.Carrier,
		&note.CarrierService,
		&note.TrackingNumber,
		asJSON(&note.Items),
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *deliveryNoteRepository) Get(ctx context.Context, name string) (*domain.DeliveryNote, error) {
	query := `SELECT ` + deliveryNoteColumns + ` FROM delivery_notes WHERE name = $1`

	note, err := scanDeliveryNote(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "delivery note", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get delivery note", zap.Error(err))
		return nil, err
	}
	return note, nil
}

func (r *deliveryNoteRepository) findOne(ctx context.Context, column, value string, statuses []domain.DocStatus) (*domain.DeliveryNote, error) {
	query := `
		SELECT ` + deliveryNoteColumns + `
		FROM delivery_notes
		WHERE ` + column + ` = $1 AND status IN (` + statusPlaceholders(2, len(statuses)) + `)
		LIMIT 1
	`

	args := []interface{}{value}
	for _, status := range statuses {
		args = append(args, status)
	}

	note, err := scanDeliveryNote(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "delivery note", ID: value}
	}
	if err != nil {
		r.logger.Error("Failed to find delivery note", zap.Error(err))
		return nil, err
	}
	return note, nil
}

func (r *deliveryNoteRepository) FindByShipmentID(ctx context.Context, shipstationShipmentID string, statuses ...domain.DocStatus) (*domain.DeliveryNote, error) {
	return r.findOne(ctx, "shipstation_shipment_id", shipstationShipmentID, statuses)
}

func (r *deliveryNoteRepository) FindByOrderExternalID(ctx context.Context, shipstationOrderID string, statuses ...domain.DocStatus) (*domain.DeliveryNote, error) {
	return r.findOne(ctx, "shipstation_order_id", shipstationOrderID, statuses)
}

func (r *deliveryNoteRepository) Create(ctx context.Context, note *domain.DeliveryNote) error {
	query := `
		INSERT INTO delivery_notes (` + deliveryNoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	now := time.Now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		note.Name,
		note.Status,
		note.SalesInvoice,
		note.SalesOrder,
		note.ShipstationOrderID,
		note.ShipstationShipmentID,
		note.Customer,
		note.Carrier,
		note.CarrierService,
		note.TrackingNumber,
		asJSON(note.Items),
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create delivery note", zap.Error(err))
		return err
	}
	return nil
}

func (r *deliveryNoteRepository) Update(ctx context.Context, note *domain.DeliveryNote) error {
	query := `
		UPDATE delivery_notes
		SET status = $2, carrier = $3, carrier_service = $4,
			tracking_number = $5, shipstation_shipment_id = $6, items = $7,
			updated_at = $8
		WHERE name = $1
	`

	note.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		note.Name,
		note.Status,
		note.Carrier,
		note.CarrierService,
		note.TrackingNumber,
		note.ShipstationShipmentID,
		asJSON(note.Items),
		note.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update delivery note", zap.Error(err))
		return err
	}
	return nil
}

func (r *deliveryNoteRepository) Cancel(ctx context.Context, name string) error {
	return cancelDocument(ctx, r.db, r.logger, "delivery_notes", "delivery note", name)
}
