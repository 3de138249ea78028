package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository"
)

// Webhook resource types the hub sends.
const (
	ResourceOrderNotify    = "ORDER_NOTIFY"
	ResourceItemShipNotify = "ITEM_SHIP_NOTIFY"
)

type webhookService struct {
	repos     *repository.Repositories
	logger    *zap.Logger
	clients   HubClientFactory
	orders    *orderService
	shipments *shipmentService
}

// NewWebhookService creates a new webhook dispatcher
func NewWebhookService(repos *repository.Repositories, logger *zap.Logger, clients HubClientFactory, orders *orderService, shipments *shipmentService) *webhookService {
	return &webhookService{
		repos:     repos,
		logger:    logger,
		clients:   clients,
		orders:    orders,
		shipments: shipments,
	}
}

// Dispatch fetches the webhook's resource and re-runs the relevant pipeline
// for every store of the account. The dispatcher performs no deduplication
// of its own; the pipelines' idempotency guards absorb replays. An empty
// resource URL is a silent no-op.
func (s *webhookService) Dispatch(ctx context.Context, accountName, resourceType, resourceURL string) error {
	if resourceURL == "" {
		return nil
	}

	account, err := s.resolveAccount(ctx, accountName)
	if err != nil {
		return err
	}
	client := s.clients(account.APIKey, account.APISecret)

	switch resourceType {
	case ResourceOrderNotify:
		orders, err := client.FetchOrdersByURL(ctx, resourceURL)
		if err != nil {
			return err
		}
		for i := range account.Stores {
			store := &account.Stores[i]
			if !store.EnableOrders {
				continue
			}
			for j := range orders {
				if _, err := s.orders.CreateOrder(ctx, account, store, &orders[j]); err != nil {
					s.logger.Error("Error creating sales order from webhook",
						zap.Int64("shipstation_order_id", orders[j].OrderID),
						zap.String("store", store.StoreName),
						zap.Error(err),
					)
				}
			}
		}
	case ResourceItemShipNotify:
		shipments, err := client.FetchShipmentsByURL(ctx, resourceURL)
		if err != nil {
			return err
		}
		for i := range account.Stores {
			store := &account.Stores[i]
			if !store.EnableOrders && !store.EnableShipments {
				continue
			}
			for j := range shipments {
				if err := s.shipments.ProcessShipment(ctx, store, &shipments[j]); err != nil {
					s.logger.Error("Error processing shipment from webhook",
						zap.Int64("shipstation_shipment_id", shipments[j].ShipmentID),
						zap.String("store", store.StoreName),
						zap.Error(err),
					)
				}
			}
		}
	default:
		s.logger.Warn("Ignoring webhook with unknown resource type",
			zap.String("resource_type", resourceType),
		)
	}
	return nil
}

// resolveAccount picks the account a webhook belongs to. Without an explicit
// account name it falls back to the most recently created enabled account,
// since the hub's webhook payload does not identify the account.
func (s *webhookService) resolveAccount(ctx context.Context, accountName string) (*domain.AccountSettings, error) {
	if accountName != "" {
		return s.repos.Accounts.Get(ctx, accountName)
	}
	account, err := s.repos.Accounts.MostRecent(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Warn("Webhook dispatched to most recently created account",
		zap.String("account", account.Name),
	)
	return account, nil
}
