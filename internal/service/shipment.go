package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository"
	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

// minParcelWeight is the floor in pounds; carriers reject zero-weight parcels.
const minParcelWeight = 0.01

type shipmentService struct {
	repos    *repository.Repositories
	logger   *zap.Logger
	clients  HubClientFactory
	lookback time.Duration
}

// NewShipmentService creates a new shipment pipeline
func NewShipmentService(repos *repository.Repositories, logger *zap.Logger, clients HubClientFactory, lookback time.Duration) *shipmentService {
	if lookback <= 0 {
		lookback = defaultLookback
	}
	return &shipmentService{
		repos:    repos,
		logger:   logger,
		clients:  clients,
		lookback: lookback,
	}
}

// SyncShipments sweeps every enabled account and store for shipments created
// since the given time. Stores that ingest orders also process shipments.
func (s *shipmentService) SyncShipments(ctx context.Context, start time.Time) error {
	accounts, err := s.repos.Accounts.List(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if start.IsZero() {
		start = now.Add(-s.lookback)
	}

	for _, account := range accounts {
		if !account.Enabled {
			continue
		}
		client := s.clients(account.APIKey, account.APISecret)

		for i := range account.Stores {
			store := &account.Stores[i]
			if !store.EnableOrders && !store.EnableShipments {
				continue
			}

			shipments, err := client.ListShipments(ctx, shipstation.ListParams{
				StoreID:         store.StoreID,
				CreateDateStart: start,
				CreateDateEnd:   now,
			})
			if err != nil {
				s.logger.Error("Error listing Shipstation shipments",
					zap.String("account", account.Name),
					zap.String("store", store.StoreName),
					zap.Error(err),
				)
				continue
			}

			for j := range shipments {
				if err := s.ProcessShipment(ctx, store, &shipments[j]); err != nil {
					s.logger.Error("Error processing Shipstation shipment",
						zap.Int64("shipstation_shipment_id", shipments[j].ShipmentID),
						zap.String("store", store.StoreName),
						zap.Error(err),
					)
				}
			}
		}
	}
	return nil
}

// ProcessShipment runs one hub shipment through the pipeline. Voided
// shipments cancel the document cascade; live shipments drive invoice,
// delivery note and shipment record creation per store toggles. Every step
// reuses an existing document rather than recreating it.
func (s *shipmentService) ProcessShipment(ctx context.Context, store *domain.StoreConfig, shipment *shipstation.Shipment) error {
	shipmentID := strconv.FormatInt(shipment.ShipmentID, 10)
	orderID := strconv.FormatInt(shipment.OrderID, 10)

	submittedNote, err := s.repos.DeliveryNotes.FindByOrderExternalID(ctx, orderID, domain.DocStatusSubmitted)
	if err != nil && !errors.IsNotFound(err) {
		return err
	}

	if shipment.Voided {
		if submittedNote == nil {
			return nil
		}
		s.cancelVoidedShipment(ctx, shipmentID, orderID)
		return nil
	}

	// A submitted delivery note for this order means a prior run already
	// processed it.
	if submittedNote != nil {
		return nil
	}

	var invoice *domain.SalesInvoice
	if store.CreateSalesInvoice {
		invoice, err = s.createSalesInvoice(ctx, store, shipment, shipmentID, orderID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return nil
		}
	}

	var note *domain.DeliveryNote
	if store.CreateDeliveryNote {
		note, err = s.createDeliveryNote(ctx, shipment, invoice, shipmentID, orderID)
		if err != nil {
			return err
		}
	}

	if store.CreateShipment {
		if err := s.createShipmentRecord(ctx, shipment, note, shipmentID, orderID); err != nil {
			return err
		}
	}
	return nil
}

// cancelVoidedShipment cancels whichever of the shipment record, delivery
// note and sales invoice exist in submitted state. Each cancellation is
// independent; a failure on one does not block the others.
func (s *shipmentService) cancelVoidedShipment(ctx context.Context, shipmentID, orderID string) {
	record, err := s.repos.Shipments.FindByShipmentOrOrderID(ctx, shipmentID, orderID, domain.DocStatusSubmitted)
	if err == nil {
		if err := s.repos.Shipments.Cancel(ctx, record.Name); err != nil {
			s.logger.Error("Error cancelling shipment record",
				zap.String("shipment", record.Name), zap.Error(err))
		}
	} else if !errors.IsNotFound(err) {
		s.logger.Error("Error finding shipment record to cancel",
			zap.String("shipstation_shipment_id", shipmentID), zap.Error(err))
	}

	note, err := s.repos.DeliveryNotes.FindByShipmentID(ctx, shipmentID, domain.DocStatusSubmitted)
	if err == nil {
		if err := s.repos.DeliveryNotes.Cancel(ctx, note.Name); err != nil {
			s.logger.Error("Error cancelling delivery note",
				zap.String("delivery_note", note.Name), zap.Error(err))
		}
	} else if !errors.IsNotFound(err) {
		s.logger.Error("Error finding delivery note to cancel",
			zap.String("shipstation_shipment_id", shipmentID), zap.Error(err))
	}

	invoice, err := s.repos.SalesInvoices.FindByShipmentID(ctx, shipmentID, domain.DocStatusSubmitted)
	if err == nil {
		if err := s.repos.SalesInvoices.Cancel(ctx, invoice.Name); err != nil {
			s.logger.Error("Error cancelling sales invoice",
				zap.String("sales_invoice", invoice.Name), zap.Error(err))
		}
	} else if !errors.IsNotFound(err) {
		s.logger.Error("Error finding sales invoice to cancel",
			zap.String("shipstation_shipment_id", shipmentID), zap.Error(err))
	}
}

// createSalesInvoice builds the invoice off the originating sales order.
// Shipments for orders the connector never captured are skipped, not
// created. The hub's shipping cost lands as a negative charge row.
func (s *shipmentService) createSalesInvoice(ctx context.Context, store *domain.StoreConfig, shipment *shipstation.Shipment, shipmentID, orderID string) (*domain.SalesInvoice, error) {
	existing, err := s.repos.SalesInvoices.FindByShipmentID(ctx, shipmentID, domain.DocStatusDraft, domain.DocStatusSubmitted)
	if err == nil {
		return existing, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	so, err := s.repos.SalesOrders.FindByExternalID(ctx, orderID, domain.DocStatusSubmitted)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	invoice := &domain.SalesInvoice{
		Name:                  docName("SINV"),
		Status:                domain.DocStatusDraft,
		SalesOrder:            so.Name,
		ShipstationOrderID:    orderID,
		ShipstationShipmentID: shipmentID,
		Customer:              so.Customer,
		Company:               so.Company,
		Items:                 so.Items,
		Charges:               so.Charges,
	}

	if shipment.ShipmentCost != 0 {
		invoice.Charges = append(invoice.Charges, domain.ChargeRow{
			ChargeType:  "Actual",
			AccountHead: store.ShippingExpenseAccount,
			Description: "Shipstation Shipping Cost",
			Amount:      -shipment.ShipmentCost,
			CostCenter:  store.CostCenter,
		})
	}

	invoice.Status = domain.DocStatusSubmitted
	if err := s.repos.SalesInvoices.Create(ctx, invoice); err != nil {
		return nil, err
	}
	s.logger.Info("Created sales invoice",
		zap.String("sales_invoice", invoice.Name),
		zap.String("shipstation_shipment_id", shipmentID),
	)
	return invoice, nil
}

// createDeliveryNote chains the delivery note off the invoice when one
// exists, else directly off the sales order. Rows always allow a zero
// valuation rate so free and promotional items pass stock validation.
func (s *shipmentService) createDeliveryNote(ctx context.Context, shipment *shipstation.Shipment, invoice *domain.SalesInvoice, shipmentID, orderID string) (*domain.DeliveryNote, error) {
	existing, err := s.repos.DeliveryNotes.FindByShipmentID(ctx, shipmentID, domain.DocStatusDraft, domain.DocStatusSubmitted)
	if err == nil {
		return existing, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	note := &domain.DeliveryNote{
		Name:                  docName("DN"),
		Status:                domain.DocStatusDraft,
		ShipstationOrderID:    orderID,
		ShipstationShipmentID: shipmentID,
		Carrier:               strings.ToUpper(shipment.CarrierCode),
		CarrierService:        strings.ToUpper(shipment.ServiceCode),
		TrackingNumber:        shipment.TrackingNumber,
	}

	var items []domain.SalesOrderItem
	if invoice != nil {
		note.SalesInvoice = invoice.Name
		note.SalesOrder = invoice.SalesOrder
		note.Customer = invoice.Customer
		items = invoice.Items
	} else {
		so, err := s.repos.SalesOrders.FindByExternalID(ctx, orderID, domain.DocStatusSubmitted)
		if errors.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		note.SalesOrder = so.Name
		note.Customer = so.Customer
		items = so.Items
	}

	for _, row := range items {
		note.Items = append(note.Items, domain.DeliveryNoteItem{
			ItemCode:               row.ItemCode,
			Qty:                    row.Qty,
			UOM:                    row.UOM,
			Rate:                   row.Rate,
			AllowZeroValuationRate: true,
		})
	}

	note.Status = domain.DocStatusSubmitted
	if err := s.repos.DeliveryNotes.Create(ctx, note); err != nil {
		return nil, err
	}
	s.logger.Info("Created delivery note",
		zap.String("delivery_note", note.Name),
		zap.String("shipstation_shipment_id", shipmentID),
	)
	return note, nil
}

// createShipmentRecord captures parcel and content details. The dedup check
// matches on shipment id OR order id, since either may exist from a prior
// partial run.
func (s *shipmentService) createShipmentRecord(ctx context.Context, shipment *shipstation.Shipment, note *domain.DeliveryNote, shipmentID, orderID string) error {
	_, err := s.repos.Shipments.FindByShipmentOrOrderID(ctx, shipmentID, orderID, domain.DocStatusDraft, domain.DocStatusSubmitted)
	if err == nil {
		return nil
	}
	if !errors.IsNotFound(err) {
		return err
	}

	record := &domain.Shipment{
		Name:                  docName("SHIP"),
		Status:                domain.DocStatusSubmitted,
		ShipstationOrderID:    orderID,
		ShipstationShipmentID: shipmentID,
		Carrier:               strings.ToUpper(shipment.CarrierCode),
		CarrierService:        strings.ToUpper(shipment.ServiceCode),
		TrackingNumber:        shipment.TrackingNumber,
		PickupDate:            shipment.ShipDate.Time,
		Parcels:               []domain.Parcel{buildParcel(shipment)},
		Description:           shipmentContents(shipment.ShipmentItems),
	}
	if note != nil {
		record.DeliveryNote = note.Name
	}

	if err := s.repos.Shipments.Create(ctx, record); err != nil {
		return err
	}
	s.logger.Info("Created shipment record",
		zap.String("shipment", record.Name),
		zap.String("shipstation_shipment_id", shipmentID),
	)
	return nil
}

func buildParcel(shipment *shipstation.Shipment) domain.Parcel {
	parcel := domain.Parcel{Count: 1, Weight: minParcelWeight}
	if shipment.Dimensions != nil {
		parcel.Length = shipment.Dimensions.Length
		parcel.Width = shipment.Dimensions.Width
		parcel.Height = shipment.Dimensions.Height
	}
	if shipment.Weight != nil {
		if pounds := toPounds(shipment.Weight); pounds > minParcelWeight {
			parcel.Weight = pounds
		}
	}
	return parcel
}

// toPounds converts a hub weight to pounds; the hub reports parcel weights
// in ounces unless labelled otherwise.
func toPounds(weight *shipstation.Weight) float64 {
	switch strings.ToLower(strings.TrimSpace(weight.Units)) {
	case "pounds", "pound", "lbs", "lb":
		return weight.Value
	case "grams", "gram", "g":
		return weight.Value / 453.592
	default:
		return weight.Value / 16
	}
}

// shipmentContents renders a human-readable package description from the
// shipped lines.
func shipmentContents(items []shipstation.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = item.SKU
		}
		parts = append(parts, fmt.Sprintf("%g x %s (Nos)", item.Quantity, name))
	}
	return strings.Join(parts, ", ")
}
