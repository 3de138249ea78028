package handlers

import (
	"context"
	"time"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/service"
	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
)

// WebhookDispatcher translates hub webhook notifications into pipeline runs.
type WebhookDispatcher interface {
	Dispatch(ctx context.Context, accountName, resourceType, resourceURL string) error
}

// OrderSyncer pulls orders from the hub.
type OrderSyncer interface {
	SyncOrders(ctx context.Context, start time.Time) error
}

// ShipmentSyncer pulls shipments from the hub.
type ShipmentSyncer interface {
	SyncShipments(ctx context.Context, start time.Time) error
}

// LabelCreator generates shipping labels for ERP documents.
type LabelCreator interface {
	CreateLabel(ctx context.Context, req service.LabelRequest) (*shipstation.Label, error)
}

// SettingsManager drives the account maintenance actions.
type SettingsManager interface {
	UpdateCarriersAndStores(ctx context.Context, accountName string) (*domain.AccountSettings, error)
	UpdateStores(ctx context.Context, accountName string) (*domain.AccountSettings, error)
	UpdateWarehouses(ctx context.Context, accountName string) (*domain.AccountSettings, error)
	ImportProducts(ctx context.Context, accountName string) (string, error)
	CarrierServices(ctx context.Context, accountName, carrier string) ([]string, error)
}

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Webhook   WebhookDispatcher
	Orders    OrderSyncer
	Shipments ShipmentSyncer
	Labels    LabelCreator
	Settings  SettingsManager
}
