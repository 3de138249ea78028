package domain

import (
	"time"
)

// Customer is an ERP customer resolved from an incoming order's buyer info.
// Name is the natural key: at most one customer per resolved key.
type Customer struct {
	Name                  string
	ShipstationCustomerID string
	CustomerType          string
	CustomerGroup         string
	Territory             string
	PrimaryContact        string
	PrimaryAddress        string
	CreatedAt             time.Time
}

// Contact holds person details linked to a customer.
type Contact struct {
	Name         string
	FirstName    string
	LastName     string
	EmailID      string
	Phone        string
	CustomerLink string
	CreatedAt    time.Time
}

// Address is a billing or shipping address linked to a customer.
type Address struct {
	Name         string
	AddressType  AddressType
	AddressTitle string
	Line1        string
	Line2        string
	Line3        string
	City         string
	State        string
	PinCode      string
	Country      string
	Phone        string
	Email        string
	CustomerLink string
	CreatedAt    time.Time
}

// ItemDefault carries per-company defaults attached to an item once, never
// overwritten on resync.
type ItemDefault struct {
	Company           string
	PriceList         string
	Warehouse         string
	BuyingCostCenter  string
	SellingCostCenter string
	ExpenseAccount    string
	IncomeAccount     string
}

// Item is a catalog item resolved by SKU first, then by truncated name.
type Item struct {
	Code          string
	Name          string
	ItemGroup     string
	Description   string
	IsStockItem   bool
	Disabled      bool
	WeightPerUnit float64
	WeightUOM     string
	Defaults      []ItemDefault
	Comments      []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SalesOrderItem is one line on a sales order or sales invoice.
type SalesOrderItem struct {
	ItemCode         string
	Qty              float64
	UOM              string
	ConversionFactor float64
	Rate             float64
	Warehouse        string
}

// ChargeRow is an "Actual" tax/charge line (tax amount, shipping amount,
// shipping cost) attached to an order or invoice.
type ChargeRow struct {
	ChargeType  string
	AccountHead string
	Description string
	Amount      float64
	CostCenter  string
}

// SalesOrder is the ERP sales document created from an external order.
// ShipstationOrderID is the idempotency key.
type SalesOrder struct {
	Name               string
	Status             DocStatus
	ShipstationOrderID string
	Marketplace        string
	MarketplaceOrderID string
	Customer           string
	Company            string
	TransactionDate    time.Time
	DeliveryDate       time.Time
	CustomerAddress    string
	ShippingAddress    string
	ContactPerson      string
	WarehouseID        string
	Items              []SalesOrderItem
	Charges            []ChargeRow
	HasPII             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SalesInvoice is created from a sales order when a shipment arrives.
type SalesInvoice struct {
	Name                  string
	Status                DocStatus
	SalesOrder            string
	ShipstationOrderID    string
	ShipstationShipmentID string
	Customer              string
	Company               string
	Items                 []SalesOrderItem
	Charges               []ChargeRow
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// DeliveryNoteItem is one line on a delivery note.
type DeliveryNoteItem struct {
	ItemCode               string
	Qty                    float64
	UOM                    string
	Rate                   float64
	AllowZeroValuationRate bool
}

// DeliveryNote is the delivery document chained off an invoice (or order).
type DeliveryNote struct {
	Name                  string
	Status                DocStatus
	SalesInvoice          string
	SalesOrder            string
	ShipstationOrderID    string
	ShipstationShipmentID string
	Customer              string
	Carrier               string
	CarrierService        string
	TrackingNumber        string
	Items                 []DeliveryNoteItem
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Parcel aggregates package dimensions and weight for a shipment record.
// Weight is in pounds and never zero.
type Parcel struct {
	Length float64
	Width  float64
	Height float64
	Weight float64
	Count  int
}

// Shipment is the ERP shipment record for a hub shipment. Dedup checks both
// ShipstationShipmentID and ShipstationOrderID.
type Shipment struct {
	Name                  string
	Status                DocStatus
	DeliveryNote          string
	ShipstationOrderID    string
	ShipstationShipmentID string
	Carrier               string
	CarrierService        string
	TrackingNumber        string
	PickupDate            time.Time
	Parcels               []Parcel
	Description           string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Attachment is a stored file linked to a document (shipping label PDFs).
type Attachment struct {
	Name           string
	FileName       string
	Content        []byte
	AttachedToType string
	AttachedToName string
	Folder         string
	IsPrivate      bool
	CreatedAt      time.Time
}

// Warehouse mirrors a hub warehouse into the ERP warehouse tree.
type Warehouse struct {
	Name                   string
	WarehouseName          string
	ShipstationWarehouseID string
	ParentWarehouse        string
	IsGroup                bool
}

// CarrierService is one service offered by a cached carrier.
type CarrierService struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// CarrierPackage is one package type offered by a cached carrier.
type CarrierPackage struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// CachedCarrier is the hub carrier metadata cached on account settings and
// scanned when resolving display names to hub codes.
type CachedCarrier struct {
	Name     string           `json:"name"`
	Nickname string           `json:"nickname"`
	Code     string           `json:"code"`
	Services []CarrierService `json:"services"`
	Packages []CarrierPackage `json:"packages"`
}

// StoreConfig is one marketplace sales channel nested under an account.
type StoreConfig struct {
	StoreID                string
	StoreName              string
	MarketplaceName        string
	AmazonMarketplace      string
	IsAmazonStore          bool
	IsShopifyStore         bool
	EnableOrders           bool
	EnableShipments        bool
	CreateSalesInvoice     bool
	CreateDeliveryNote     bool
	CreateShipment         bool
	Company                string
	Warehouse              string
	CostCenter             string
	TaxAccount             string
	SalesAccount           string
	ExpenseAccount         string
	ShippingIncomeAccount  string
	ShippingExpenseAccount string
}

// AccountSettings is one carrier-hub credential set and its stores.
type AccountSettings struct {
	Name               string
	Enabled            bool
	APIKey             string
	APISecret          string
	SinceDate          *time.Time
	ActiveWarehouseIDs []string
	NonStockKeywords   []string
	DefaultItemGroup   string
	Carriers           []CachedCarrier
	Stores             []StoreConfig
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Store returns the store config with the given hub store id, if present.
func (a *AccountSettings) Store(storeID string) *StoreConfig {
	for i := range a.Stores {
		if a.Stores[i].StoreID == storeID {
			return &a.Stores[i]
		}
	}
	return nil
}

// GetCodes resolves carrier, service and package display names to hub codes
// by scanning the cached carrier metadata. The carrier matches on name or
// nickname; the package defaults to the generic "Package" code when the
// display name is unmatched.
func (a *AccountSettings) GetCodes(carrier, service, pkg string) (carrierCode, serviceCode, packageCode string) {
	packageCode = "package"
	for _, c := range a.Carriers {
		if carrier != c.Name && carrier != c.Nickname {
			continue
		}
		carrierCode = c.Code
		for _, s := range c.Services {
			if s.Name == service {
				serviceCode = s.Code
			}
		}
		for _, p := range c.Packages {
			if p.Name == pkg {
				packageCode = p.Code
			}
		}
	}
	return carrierCode, serviceCode, packageCode
}

// CarrierServiceNames lists the service display names of a cached carrier,
// matched on name or nickname.
func (a *AccountSettings) CarrierServiceNames(carrier string) []string {
	for _, c := range a.Carriers {
		if carrier == c.Name || carrier == c.Nickname {
			names := make([]string, 0, len(c.Services))
			for _, s := range c.Services {
				names = append(names, s.Name)
			}
			return names
		}
	}
	return nil
}

// ValidateStores normalizes store toggles: shipments cannot be enabled on a
// store that does not ingest orders.
func (a *AccountSettings) ValidateStores() {
	for i := range a.Stores {
		if a.Stores[i].EnableShipments && !a.Stores[i].EnableOrders {
			a.Stores[i].EnableShipments = false
		}
	}
}
