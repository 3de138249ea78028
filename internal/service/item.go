package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository"
	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

const (
	maxItemNameLength = 140
	defaultItemGroup  = "Products"
	ounceUOM          = "Ounce"
)

// ProductInput is the resolver's view of a hub product or order line. Order
// items carry a structured weight object; catalog products carry a flat
// per-unit ounce weight.
type ProductInput struct {
	SKU           string
	Name          string
	Weight        *shipstation.Weight
	WeightOz      float64
	InternalNotes string
}

// ProductFromOrderItem adapts a hub order line for item resolution.
func ProductFromOrderItem(item *shipstation.OrderItem) ProductInput {
	return ProductInput{
		SKU:    item.SKU,
		Name:   item.Name,
		Weight: item.Weight,
	}
}

// ProductFromCatalog adapts a hub catalog product for item resolution.
func ProductFromCatalog(product *shipstation.Product) ProductInput {
	return ProductInput{
		SKU:           product.SKU,
		Name:          product.Name,
		WeightOz:      product.WeightOz,
		InternalNotes: product.InternalNotes,
	}
}

type itemService struct {
	repos         *repository.Repositories
	logger        *zap.Logger
	postProcessor ItemPostProcessor
}

// NewItemService creates a new item resolver
func NewItemService(repos *repository.Repositories, logger *zap.Logger, postProcessor ItemPostProcessor) *itemService {
	if postProcessor == nil {
		postProcessor = NoopItemPostProcessor{}
	}
	return &itemService{
		repos:         repos,
		logger:        logger,
		postProcessor: postProcessor,
	}
}

// ResolveItem finds or creates the catalog item for a hub product. Lookup
// order: SKU alias table, exact SKU, then truncated name. Store-level item
// defaults attach only when absent and are never overwritten on resync.
func (s *itemService) ResolveItem(ctx context.Context, account *domain.AccountSettings, store *domain.StoreConfig, product ProductInput) (*domain.Item, error) {
	item, err := s.lookup(ctx, product)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	if item == nil {
		item = s.newItem(account, product)
	} else if item.Disabled {
		item.Disabled = false
		item.Comments = append(item.Comments, "Re-enabled during ShipStation sync")
	}

	if store != nil && store.Company != "" && len(item.Defaults) == 0 {
		item.Defaults = []domain.ItemDefault{{
			Company:           store.Company,
			PriceList:         "ShipStation",
			BuyingCostCenter:  store.CostCenter,
			SellingCostCenter: store.CostCenter,
			ExpenseAccount:    store.ExpenseAccount,
			IncomeAccount:     store.SalesAccount,
		}}
	}

	if err := s.postProcessor.ProcessItem(ctx, item, store); err != nil {
		return nil, err
	}

	if item.CreatedAt.IsZero() {
		err = s.repos.Items.Create(ctx, item)
	} else {
		err = s.repos.Items.Update(ctx, item)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) lookup(ctx context.Context, product ProductInput) (*domain.Item, error) {
	sku := strings.TrimSpace(product.SKU)
	if sku != "" {
		alias, err := s.repos.Items.FindAlias(ctx, sku)
		if err != nil && !errors.IsNotFound(err) {
			return nil, err
		}
		if alias != "" {
			return s.repos.Items.GetByCode(ctx, alias)
		}
		item, err := s.repos.Items.GetByCode(ctx, sku)
		if err == nil || !errors.IsNotFound(err) {
			return item, err
		}
	}
	return s.repos.Items.FindByName(ctx, truncateItemName(product.Name))
}

func (s *itemService) newItem(account *domain.AccountSettings, product ProductInput) *domain.Item {
	name := truncateItemName(product.Name)
	code := strings.TrimSpace(product.SKU)
	if code == "" {
		code = name
	}

	group := account.DefaultItemGroup
	if group == "" {
		group = defaultItemGroup
	}

	description := product.InternalNotes
	if description == "" {
		description = product.Name
	}

	item := &domain.Item{
		Code:        code,
		Name:        name,
		ItemGroup:   group,
		Description: description,
		IsStockItem: !isNonStock(name, account.NonStockKeywords),
	}
	item.WeightPerUnit, item.WeightUOM = normalizeWeight(product)
	return item
}

func truncateItemName(name string) string {
	name = strings.TrimSpace(name)
	if len(name) > maxItemNameLength {
		name = name[:maxItemNameLength]
	}
	return name
}

// isNonStock reports whether the item name matches the account's non-stock
// keyword list. Coupons and similar non-physical lines must not drive stock
// movements.
func isNonStock(name string, keywords []string) bool {
	if len(keywords) == 0 {
		keywords = []string{"coupon"}
	}
	lower := strings.ToLower(name)
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// normalizeWeight picks whichever weight representation the hub sent: the
// structured weight object on order lines, or the flat ounce field on
// catalog products.
func normalizeWeight(product ProductInput) (float64, string) {
	if product.Weight != nil && product.Weight.Value > 0 {
		return product.Weight.Value, normalizeWeightUOM(product.Weight.Units)
	}
	if product.WeightOz > 0 {
		return product.WeightOz, ounceUOM
	}
	return 0, ""
}

func normalizeWeightUOM(units string) string {
	switch strings.ToLower(strings.TrimSpace(units)) {
	case "oz", "ounce", "ounces":
		return ounceUOM
	case "lb", "lbs", "pound", "pounds":
		return "Pound"
	case "g", "gram", "grams":
		return "Gram"
	case "kg", "kilogram", "kilograms":
		return "Kg"
	case "":
		return ounceUOM
	default:
		lower := strings.ToLower(strings.TrimSpace(units))
		return strings.ToUpper(lower[:1]) + strings.TrimSuffix(lower[1:], "s")
	}
}
