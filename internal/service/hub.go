package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
)

// HubClient is the carrier-hub API surface the pipelines consume.
type HubClient interface {
	ListOrders(ctx context.Context, params shipstation.ListParams) ([]shipstation.Order, error)
	ListShipments(ctx context.Context, params shipstation.ListParams) ([]shipstation.Shipment, error)
	FetchOrdersByURL(ctx context.Context, resourceURL string) ([]shipstation.Order, error)
	FetchShipmentsByURL(ctx context.Context, resourceURL string) ([]shipstation.Shipment, error)
	GetOrder(ctx context.Context, orderID int64) (*shipstation.Order, error)
	ListCarriers(ctx context.Context) ([]shipstation.Carrier, error)
	ListServices(ctx context.Context, carrierCode string) ([]shipstation.Service, error)
	ListPackages(ctx context.Context, carrierCode string) ([]shipstation.Package, error)
	ListWarehouses(ctx context.Context) ([]shipstation.Warehouse, error)
	ListStores(ctx context.Context, showInactive bool) ([]shipstation.Store, error)
	ListProducts(ctx context.Context) ([]shipstation.Product, error)
	CreateLabelForOrder(ctx context.Context, order *shipstation.Order) (*shipstation.Label, error)
	Validate(ctx context.Context) error
}

// HubClientFactory builds a client for one account's credentials.
type HubClientFactory func(apiKey, apiSecret string) HubClient

// DefaultHubClientFactory returns the real hub client factory.
func DefaultHubClientFactory(logger *zap.Logger) HubClientFactory {
	return func(apiKey, apiSecret string) HubClient {
		return shipstation.NewClient(apiKey, apiSecret, logger)
	}
}

// docName generates a document name in the ERP naming style.
func docName(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}
