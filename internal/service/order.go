package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository"
	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

const defaultLookback = 24 * time.Hour

type orderService struct {
	repos         *repository.Repositories
	logger        *zap.Logger
	clients       HubClientFactory
	customers     *customerService
	items         *itemService
	hook          MarketplaceHook
	postProcessor OrderPostProcessor
	lookback      time.Duration
}

// NewOrderService creates a new order pipeline
func NewOrderService(
	repos *repository.Repositories,
	logger *zap.Logger,
	clients HubClientFactory,
	customers *customerService,
	items *itemService,
	hook MarketplaceHook,
	postProcessor OrderPostProcessor,
	lookback time.Duration,
) *orderService {
	if hook == nil {
		hook = NoopMarketplaceHook{}
	}
	if postProcessor == nil {
		postProcessor = NoopOrderPostProcessor{}
	}
	if lookback <= 0 {
		lookback = defaultLookback
	}
	return &orderService{
		repos:         repos,
		logger:        logger,
		clients:       clients,
		customers:     customers,
		items:         items,
		hook:          hook,
		postProcessor: postProcessor,
		lookback:      lookback,
	}
}

// SyncOrders sweeps every enabled account and store for orders created since
// the given time. A zero start falls back to the rolling lookback window;
// the hub API behaves oddly with shorter periods. One store's fetch failure
// is logged and skipped without aborting sibling stores.
func (s *orderService) SyncOrders(ctx context.Context, start time.Time) error {
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
			if !store.EnableOrders {
				continue
			}

			orders, err := client.ListOrders(ctx, shipstation.ListParams{
				StoreID:         store.StoreID,
				CreateDateStart: start,
				CreateDateEnd:   now,
			})
			if err != nil {
				s.logger.Error("Error listing Shipstation orders",
					zap.String("account", account.Name),
					zap.String("store", store.StoreName),
					zap.Error(err),
				)
				continue
			}

			for j := range orders {
				if _, err := s.CreateOrder(ctx, account, store, &orders[j]); err != nil {
					s.logger.Error("Error creating sales order",
						zap.Int64("shipstation_order_id", orders[j].OrderID),
						zap.String("store", store.StoreName),
						zap.Error(err),
					)
				}
			}
		}
	}
	return nil
}

// CreateOrder runs one hub order through the pipeline. It returns (nil, nil)
// when the order is skipped: already submitted, filtered out, diverted by a
// marketplace hook, or empty after item resolution.
func (s *orderService) CreateOrder(ctx context.Context, account *domain.AccountSettings, store *domain.StoreConfig, order *shipstation.Order) (*domain.SalesOrder, error) {
	if order == nil {
		return nil, nil
	}
	externalID := strconv.FormatInt(order.OrderID, 10)

	_, err := s.repos.SalesOrders.FindByExternalID(ctx, externalID, domain.DocStatusSubmitted)
	if err == nil {
		return nil, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	if !s.warehouseAllowed(account, order) {
		return nil, nil
	}
	if account.SinceDate != nil && !order.OrderDate.IsZero() && order.OrderDate.Before(*account.SinceDate) {
		return nil, nil
	}

	if store.IsAmazonStore || store.IsShopifyStore {
		proceed, err := s.hook.ShouldCreateOrder(ctx, store, order, s.customers.UpdateCustomerDetails)
		if err != nil {
			return nil, err
		}
		if !proceed {
			return nil, nil
		}
	}

	customer, err := s.customers.ResolveCustomer(ctx, order)
	if err != nil {
		return nil, err
	}

	so := &domain.SalesOrder{
		Name:               docName("SO"),
		Status:             domain.DocStatusDraft,
		ShipstationOrderID: externalID,
		Marketplace:        store.MarketplaceName,
		MarketplaceOrderID: order.OrderNumber,
		Customer:           customer.Name,
		Company:            store.Company,
		TransactionDate:    order.OrderDate.Time,
		DeliveryDate:       order.ShipDate.Time,
		ShippingAddress:    customer.PrimaryAddress,
		CustomerAddress:    s.customers.GetBillingAddress(ctx, customer.Name),
		HasPII:             true,
	}
	if order.AdvancedOptions != nil && order.AdvancedOptions.WarehouseID != 0 {
		so.WarehouseID = strconv.FormatInt(order.AdvancedOptions.WarehouseID, 10)
	}

	for i := range order.Items {
		row := &order.Items[i]
		if row.Quantity <= 0 {
			continue
		}
		item, err := s.items.ResolveItem(ctx, account, store, ProductFromOrderItem(row))
		if err != nil {
			return nil, err
		}
		so.Items = append(so.Items, domain.SalesOrderItem{
			ItemCode:         item.Code,
			Qty:              row.Quantity,
			UOM:              "Nos",
			ConversionFactor: 1,
			Rate:             row.UnitPrice,
			Warehouse:        store.Warehouse,
		})
	}

	// An order with nothing to sell is a no-op, not an error.
	if len(so.Items) == 0 {
		return nil, nil
	}

	if order.TaxAmount != 0 {
		so.Charges = append(so.Charges, domain.ChargeRow{
			ChargeType:  "Actual",
			AccountHead: store.TaxAccount,
			Description: "Shipstation Tax Amount",
			Amount:      order.TaxAmount,
			CostCenter:  store.CostCenter,
		})
	}
	if order.ShippingAmount != 0 {
		so.Charges = append(so.Charges, domain.ChargeRow{
			ChargeType:  "Actual",
			AccountHead: store.ShippingIncomeAccount,
			Description: "Shipstation Shipping Amount",
			Amount:      order.ShippingAmount,
			CostCenter:  store.CostCenter,
		})
	}

	if err := s.postProcessor.ProcessOrder(ctx, so, order, store); err != nil {
		return nil, err
	}

	// Save and submit in a single write so no partially-submitted order is
	// ever observable. The storage layer's uniqueness constraint on the hub
	// order id is the guard against concurrent overlapping runs.
	so.Status = domain.DocStatusSubmitted
	if err := s.repos.SalesOrders.Create(ctx, so); err != nil {
		return nil, err
	}

	s.logger.Info("Created sales order",
		zap.String("sales_order", so.Name),
		zap.String("shipstation_order_id", externalID),
		zap.String("store", store.StoreName),
	)
	return so, nil
}

// warehouseAllowed applies the account-level warehouse allow-list. Orders
// without routing info pass through.
func (s *orderService) warehouseAllowed(account *domain.AccountSettings, order *shipstation.Order) bool {
	if len(account.ActiveWarehouseIDs) == 0 {
		return true
	}
	if order.AdvancedOptions == nil || order.AdvancedOptions.WarehouseID == 0 {
		return true
	}
	warehouseID := strconv.FormatInt(order.AdvancedOptions.WarehouseID, 10)
	for _, id := range account.ActiveWarehouseIDs {
		if id == warehouseID {
			return true
		}
	}
	return false
}
