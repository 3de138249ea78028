package shipstation

import (
	"fmt"
	"strings"
	"time"
)

// Time handles the hub's date format, which carries a 7-digit fractional
// second and no timezone ("2021-06-29T14:05:29.0000000"), alongside RFC3339.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	"2006-01-02T15:04:05.0000000",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func (t *Time) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", raw)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Time.Format("2006-01-02T15:04:05.0000000") + `"`), nil
}

// Address is a hub-side postal address.
type Address struct {
	Name       string `json:"name,omitempty"`
	Company    string `json:"company,omitempty"`
	Street1    string `json:"street1,omitempty"`
	Street2    string `json:"street2,omitempty"`
	Street3    string `json:"street3,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Residential *bool `json:"residential,omitempty"`
}

// Weight is a structured weight with hub-flavored unit names ("Ounces",
// "pounds"); consumers normalize units themselves.
type Weight struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

// Dimensions describes a parcel's measurements.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Units  string  `json:"units,omitempty"`
}

// OrderItem is one line on a hub order or shipment.
type OrderItem struct {
	OrderItemID int64   `json:"orderItemId,omitempty"`
	LineItemKey string  `json:"lineItemKey,omitempty"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Weight      *Weight `json:"weight,omitempty"`
}

// AdvancedOptions carries warehouse/store routing on a hub order.
type AdvancedOptions struct {
	WarehouseID int64 `json:"warehouseId,omitempty"`
	StoreID     int64 `json:"storeId,omitempty"`
}

// Order is an immutable snapshot of a hub order, fetched and discarded.
type Order struct {
	OrderID          int64            `json:"orderId,omitempty"`
	OrderNumber      string           `json:"orderNumber,omitempty"`
	OrderKey         string           `json:"orderKey,omitempty"`
	OrderDate        Time             `json:"orderDate,omitempty"`
	CreateDate       Time             `json:"createDate,omitempty"`
	ModifyDate       Time             `json:"modifyDate,omitempty"`
	ShipDate         Time             `json:"shipDate,omitempty"`
	OrderStatus      string           `json:"orderStatus,omitempty"`
	CustomerID       int64            `json:"customerId,omitempty"`
	CustomerUsername string           `json:"customerUsername,omitempty"`
	CustomerEmail    string           `json:"customerEmail,omitempty"`
	BillTo           *Address         `json:"billTo,omitempty"`
	ShipTo           *Address         `json:"shipTo,omitempty"`
	Items            []OrderItem      `json:"items,omitempty"`
	TaxAmount        float64          `json:"taxAmount,omitempty"`
	ShippingAmount   float64          `json:"shippingAmount,omitempty"`
	AmountPaid       float64          `json:"amountPaid,omitempty"`
	CustomerNotes    string           `json:"customerNotes,omitempty"`
	InternalNotes    string           `json:"internalNotes,omitempty"`
	CarrierCode      string           `json:"carrierCode,omitempty"`
	ServiceCode      string           `json:"serviceCode,omitempty"`
	PackageCode      string           `json:"packageCode,omitempty"`
	Weight           *Weight          `json:"weight,omitempty"`
	AdvancedOptions  *AdvancedOptions `json:"advancedOptions,omitempty"`
}

// Shipment is a hub shipment snapshot.
type Shipment struct {
	ShipmentID     int64       `json:"shipmentId"`
	OrderID        int64       `json:"orderId"`
	OrderNumber    string      `json:"orderNumber,omitempty"`
	CreateDate     Time        `json:"createDate,omitempty"`
	ShipDate       Time        `json:"shipDate,omitempty"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	CarrierCode    string      `json:"carrierCode,omitempty"`
	ServiceCode    string      `json:"serviceCode,omitempty"`
	PackageCode    string      `json:"packageCode,omitempty"`
	Voided         bool        `json:"voided"`
	VoidDate       Time        `json:"voidDate,omitempty"`
	ShipmentCost   float64     `json:"shipmentCost,omitempty"`
	Weight         *Weight     `json:"weight,omitempty"`
	Dimensions     *Dimensions `json:"dimensions,omitempty"`
	ShipmentItems  []OrderItem `json:"shipmentItems,omitempty"`
}

// Carrier is a hub carrier with its display name and user nickname.
type Carrier struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Nickname string `json:"nickname,omitempty"`
}

// Service is one shipping service of a carrier.
type Service struct {
	CarrierCode string `json:"carrierCode"`
	Code        string `json:"code"`
	Name        string `json:"name"`
}

// Package is one package type of a carrier.
type Package struct {
	CarrierCode string `json:"carrierCode"`
	Code        string `json:"code"`
	Name        string `json:"name"`
}

// Warehouse is a hub ship-from location.
type Warehouse struct {
	WarehouseID   int64  `json:"warehouseId"`
	WarehouseName string `json:"warehouseName"`
}

// Store is a hub marketplace connection.
type Store struct {
	StoreID         int64  `json:"storeId"`
	StoreName       string `json:"storeName"`
	MarketplaceName string `json:"marketplaceName"`
	AccountName     string `json:"accountName,omitempty"`
	Active          bool   `json:"active"`
}

// Product is a hub catalog product. WeightOz is the flat per-unit weight
// representation; order items carry the structured Weight object instead.
type Product struct {
	ProductID     int64   `json:"productId"`
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	WeightOz      float64 `json:"weightOz,omitempty"`
	InternalNotes string  `json:"internalNotes,omitempty"`
	Active        bool    `json:"active"`
}

// Label is the hub's response to a label creation request. ExceptionMessage
// is set when the hub reports a business error inside a 200 response.
type Label struct {
	ShipmentID       int64   `json:"shipmentId"`
	OrderID          int64   `json:"orderId,omitempty"`
	TrackingNumber   string  `json:"trackingNumber"`
	CarrierCode      string  `json:"carrierCode"`
	ServiceCode      string  `json:"serviceCode"`
	PackageCode      string  `json:"packageCode,omitempty"`
	ShipmentCost     float64 `json:"shipmentCost,omitempty"`
	LabelData        string  `json:"labelData"`
	ExceptionMessage string  `json:"ExceptionMessage,omitempty"`
}
