package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/marketplace"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

const warehouseGroupName = "Shipstation Warehouses"

type settingsService struct {
	repos   *repository.Repositories
	logger  *zap.Logger
	clients HubClientFactory
	items   *itemService
}

// NewSettingsService creates a new account settings service
func NewSettingsService(repos *repository.Repositories, logger *zap.Logger, clients HubClientFactory, items *itemService) *settingsService {
	return &settingsService{
		repos:   repos,
		logger:  logger,
		clients: clients,
		items:   items,
	}
}

// ValidateAccount normalizes store toggles and tests the account's hub
// credentials with a live call.
func (s *settingsService) ValidateAccount(ctx context.Context, account *domain.AccountSettings) error {
	account.ValidateStores()
	client := s.clients(account.APIKey, account.APISecret)
	if err := client.Validate(ctx); err != nil {
		return &errors.ErrUnauthorized{Message: "the hub rejected the account credentials"}
	}
	return nil
}

// UpdateCarriersAndStores refreshes the cached carrier metadata (carriers
// with their nested services and packages) and merges the hub's store list
// into the account config.
func (s *settingsService) UpdateCarriersAndStores(ctx context.Context, accountName string) (*domain.AccountSettings, error) {
	account, err := s.repos.Accounts.Get(ctx, accountName)
	if err != nil {
		return nil, err
	}
	client := s.clients(account.APIKey, account.APISecret)

	carriers, err := client.ListCarriers(ctx)
	if err != nil {
		return nil, err
	}

	cached := make([]domain.CachedCarrier, 0, len(carriers))
	for _, carrier := range carriers {
		entry := domain.CachedCarrier{
			Name:     carrier.Name,
			Nickname: carrier.Nickname,
			Code:     carrier.Code,
		}
		services, err := client.ListServices(ctx, carrier.Code)
		if err != nil {
			return nil, err
		}
		for _, service := range services {
			entry.Services = append(entry.Services, domain.CarrierService{
				Name: service.Name,
				Code: service.Code,
			})
		}
		packages, err := client.ListPackages(ctx, carrier.Code)
		if err != nil {
			return nil, err
		}
		for _, pkg := range packages {
			entry.Packages = append(entry.Packages, domain.CarrierPackage{
				Name: pkg.Name,
				Code: pkg.Code,
			})
		}
		cached = append(cached, entry)
	}
	account.Carriers = cached

	if err := s.mergeStores(ctx, account, client); err != nil {
		return nil, err
	}

	account.ValidateStores()
	if err := s.repos.Accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateStores merges the hub's active store list into the account config
// without touching carrier metadata.
func (s *settingsService) UpdateStores(ctx context.Context, accountName string) (*domain.AccountSettings, error) {
	account, err := s.repos.Accounts.Get(ctx, accountName)
	if err != nil {
		return nil, err
	}
	client := s.clients(account.APIKey, account.APISecret)

	if err := s.mergeStores(ctx, account, client); err != nil {
		return nil, err
	}

	account.ValidateStores()
	if err := s.repos.Accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// mergeStores updates known stores in place and appends new ones with order
// ingestion enabled. Amazon stores route their account name through the
// marketplace registry to get the sales-partner display name.
func (s *settingsService) mergeStores(ctx context.Context, account *domain.AccountSettings, client HubClient) error {
	stores, err := client.ListStores(ctx, false)
	if err != nil {
		return err
	}

	for _, hubStore := range stores {
		storeID := strconv.FormatInt(hubStore.StoreID, 10)
		if existing := account.Store(storeID); existing != nil {
			existing.MarketplaceName = hubStore.MarketplaceName
			existing.StoreName = hubStore.StoreName
			continue
		}

		store := domain.StoreConfig{
			StoreID:         storeID,
			StoreName:       hubStore.StoreName,
			MarketplaceName: hubStore.MarketplaceName,
			EnableOrders:    true,
		}
		if hubStore.MarketplaceName == "Amazon" {
			store.IsAmazonStore = true
			store.AmazonMarketplace = hubStore.AccountName
			if m := marketplace.ByID(hubStore.AccountName); !m.IsZero() {
				store.MarketplaceName = m.SalesPartner
			}
		}
		if hubStore.MarketplaceName == "Shopify" {
			store.IsShopifyStore = true
		}
		account.Stores = append(account.Stores, store)
	}
	return nil
}

// UpdateWarehouses mirrors the hub's ship-from locations into the warehouse
// tree under a dedicated group, and records their ids as the account's
// active warehouse filter.
func (s *settingsService) UpdateWarehouses(ctx context.Context, accountName string) (*domain.AccountSettings, error) {
	account, err := s.repos.Accounts.Get(ctx, accountName)
	if err != nil {
		return nil, err
	}
	client := s.clients(account.APIKey, account.APISecret)

	group, err := s.repos.Warehouses.EnsureGroup(ctx, warehouseGroupName)
	if err != nil {
		return nil, err
	}

	warehouses, err := client.ListWarehouses(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]string, 0, len(warehouses))
	for _, hubWarehouse := range warehouses {
		warehouseID := strconv.FormatInt(hubWarehouse.WarehouseID, 10)
		_, err := s.repos.Warehouses.FindByShipstationID(ctx, warehouseID)
		if errors.IsNotFound(err) {
			err = s.repos.Warehouses.Create(ctx, &domain.Warehouse{
				Name:                   docName("WH"),
				WarehouseName:          hubWarehouse.WarehouseName,
				ShipstationWarehouseID: warehouseID,
				ParentWarehouse:        group.Name,
			})
		}
		if err != nil {
			return nil, err
		}
		active = append(active, warehouseID)
	}
	account.ActiveWarehouseIDs = active

	if err := s.repos.Accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ImportProducts pulls the hub's product catalog through the item resolver.
func (s *settingsService) ImportProducts(ctx context.Context, accountName string) (string, error) {
	account, err := s.repos.Accounts.Get(ctx, accountName)
	if err != nil {
		return "", err
	}
	client := s.clients(account.APIKey, account.APISecret)

	products, err := client.ListProducts(ctx)
	if err != nil {
		return "", err
	}

	for i := range products {
		if _, err := s.items.ResolveItem(ctx, account, nil, ProductFromCatalog(&products[i])); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%d product(s) imported successfully", len(products)), nil
}

// CarrierServices lists the service display names of a cached carrier.
func (s *settingsService) CarrierServices(ctx context.Context, accountName, carrier string) ([]string, error) {
	account, err := s.repos.Accounts.Get(ctx, accountName)
	if err != nil {
		return nil, err
	}
	return account.CarrierServiceNames(carrier), nil
}
