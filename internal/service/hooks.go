package service

import (
	"context"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
)

// CustomerDetailsUpdater re-binds contact and addresses onto a sales order
// that a marketplace integration created ahead of this pipeline.
type CustomerDetailsUpdater func(ctx context.Context, so *domain.SalesOrder, order *shipstation.Order) error

// MarketplaceHook diverts marketplace-specific flows before order creation.
// A marketplace that already created the order through a separate
// integration answers proceed=false, optionally refreshing that order's
// customer details through the supplied updater first.
type MarketplaceHook interface {
	// ShouldCreateOrder is consulted for Amazon/Shopify stores before the
	// pipeline builds a sales order.
	ShouldCreateOrder(ctx context.Context, store *domain.StoreConfig, order *shipstation.Order, updateCustomer CustomerDetailsUpdater) (bool, error)
}

// OrderPostProcessor mutates a draft sales order immediately before it is
// saved and submitted.
type OrderPostProcessor interface {
	ProcessOrder(ctx context.Context, so *domain.SalesOrder, order *shipstation.Order, store *domain.StoreConfig) error
}

// ItemPostProcessor mutates an item immediately before its final save.
type ItemPostProcessor interface {
	ProcessItem(ctx context.Context, item *domain.Item, store *domain.StoreConfig) error
}

// NoopMarketplaceHook always proceeds.
type NoopMarketplaceHook struct{}

func (NoopMarketplaceHook) ShouldCreateOrder(context.Context, *domain.StoreConfig, *shipstation.Order, CustomerDetailsUpdater) (bool, error) {
	return true, nil
}

// NoopOrderPostProcessor leaves the draft untouched.
type NoopOrderPostProcessor struct{}

func (NoopOrderPostProcessor) ProcessOrder(context.Context, *domain.SalesOrder, *shipstation.Order, *domain.StoreConfig) error {
	return nil
}

// NoopItemPostProcessor leaves the item untouched.
type NoopItemPostProcessor struct{}

func (NoopItemPostProcessor) ProcessItem(context.Context, *domain.Item, *domain.StoreConfig) error {
	return nil
}
