package shipstation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

const (
	defaultBaseURL = "https://ssapi.shipstation.com"

	// dateParamLayout is the format the hub expects for date window params.
	dateParamLayout = "2006-01-02 15:04:05"

	pageSize = 100
)

type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new carrier hub client authenticated with one
// account's key/secret pair.
func NewClient(apiKey, apiSecret string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// WithBaseURL overrides the hub endpoint; used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// ListParams narrows list endpoints to a store and a creation date window.
type ListParams struct {
	StoreID         string
	CreateDateStart time.Time
	CreateDateEnd   time.Time
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.StoreID != "" {
		q.Set("storeId", p.StoreID)
	}
	if !p.CreateDateStart.IsZero() {
		q.Set("createDateStart", p.CreateDateStart.UTC().Format(dateParamLayout))
	}
	if !p.CreateDateEnd.IsZero() {
		q.Set("createDateEnd", p.CreateDateEnd.UTC().Format(dateParamLayout))
	}
	return q
}

// ListOrders fetches every order page matching the params.
func (c *Client) ListOrders(ctx context.Context, params ListParams) ([]Order, error) {
	var orders []Order
	q := params.query()
	page := 1
	for {
		q.Set("page", strconv.Itoa(page))
		q.Set("pageSize", strconv.Itoa(pageSize))

		var result struct {
			Orders []Order `json:"orders"`
			Total  int     `json:"total"`
			Page   int     `json:"page"`
			Pages  int     `json:"pages"`
		}
		if err := c.get(ctx, "/orders", q, &result); err != nil {
			return nil, fmt.Errorf("failed to list orders: %w", err)
		}
		orders = append(orders, result.Orders...)
		if page >= result.Pages {
			break
		}
		page++
	}
	return orders, nil
}

// ListShipments fetches every shipment page matching the params.
func (c *Client) ListShipments(ctx context.Context, params ListParams) ([]Shipment, error) {
	var shipments []Shipment
	q := params.query()
	q.Set("includeShipmentItems", "true")
	page := 1
	for {
		q.Set("page", strconv.Itoa(page))
		q.Set("pageSize", strconv.Itoa(pageSize))

		var result struct {
			Shipments []Shipment `json:"shipments"`
			Total     int        `json:"total"`
			Page      int        `json:"page"`
			Pages     int        `json:"pages"`
		}
		if err := c.get(ctx, "/shipments", q, &result); err != nil {
			return nil, fmt.Errorf("failed to list shipments: %w", err)
		}
		shipments = append(shipments, result.Shipments...)
		if page >= result.Pages {
			break
		}
		page++
	}
	return shipments, nil
}

// FetchOrdersByURL fetches the order list a webhook's resource_url points
// at. The hub pre-filters the resource; no paging is applied.
func (c *Client) FetchOrdersByURL(ctx context.Context, resourceURL string) ([]Order, error) {
	var result struct {
		Orders []Order `json:"orders"`
	}
	if err := c.get(ctx, resourceURL, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch webhook orders: %w", err)
	}
	return result.Orders, nil
}

// FetchShipmentsByURL fetches the shipment list a webhook's resource_url
// points at.
func (c *Client) FetchShipmentsByURL(ctx context.Context, resourceURL string) ([]Shipment, error) {
	var result struct {
		Shipments []Shipment `json:"shipments"`
	}
	if err := c.get(ctx, resourceURL, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch webhook shipments: %w", err)
	}
	return result.Shipments, nil
}

// GetOrder fetches a single order by hub order id.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	var order Order
	if err := c.get(ctx, "/orders/"+strconv.FormatInt(orderID, 10), nil, &order); err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}
	return &order, nil
}

// ListCarriers fetches the carriers enabled on the account.
func (c *Client) ListCarriers(ctx context.Context) ([]Carrier, error) {
	var carriers []Carrier
	if err := c.get(ctx, "/carriers", nil, &carriers); err != nil {
		return nil, fmt.Errorf("failed to list carriers: %w", err)
	}
	return carriers, nil
}

// ListServices fetches the services of one carrier.
func (c *Client) ListServices(ctx context.Context, carrierCode string) ([]Service, error) {
	q := url.Values{"carrierCode": {carrierCode}}
	var services []Service
	if err := c.get(ctx, "/carriers/listservices", q, &services); err != nil {
		return nil, fmt.Errorf("failed to list services for %s: %w", carrierCode, err)
	}
	return services, nil
}

// ListPackages fetches the package types of one carrier.
func (c *Client) ListPackages(ctx context.Context, carrierCode string) ([]Package, error) {
	q := url.Values{"carrierCode": {carrierCode}}
	var packages []Package
	if err := c.get(ctx, "/carriers/listpackages", q, &packages); err != nil {
		return nil, fmt.Errorf("failed to list packages for %s: %w", carrierCode, err)
	}
	return packages, nil
}

// ListWarehouses fetches the account's ship-from locations.
func (c *Client) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	var warehouses []Warehouse
	if err := c.get(ctx, "/warehouses", nil, &warehouses); err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	return warehouses, nil
}

// ListStores fetches the account's marketplace connections.
func (c *Client) ListStores(ctx context.Context, showInactive bool) ([]Store, error) {
	q := url.Values{"showInactive": {strconv.FormatBool(showInactive)}}
	var stores []Store
	if err := c.get(ctx, "/stores", q, &stores); err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

// ListProducts fetches every product page on the account.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	q := url.Values{}
	page := 1
	for {
		q.Set("page", strconv.Itoa(page))
		q.Set("pageSize", strconv.Itoa(pageSize))

		var result struct {
			Products []Product `json:"products"`
			Total    int       `json:"total"`
			Page     int       `json:"page"`
			Pages    int       `json:"pages"`
		}
		if err := c.get(ctx, "/products", q, &result); err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		products = append(products, result.Products...)
		if page >= result.Pages {
			break
		}
		page++
	}
	return products, nil
}

// CreateLabelForOrder requests label generation for a hub-side order. Hub
// business exceptions arrive inside a 200 response and are detected by
// payload shape, not status code.
func (c *Client) CreateLabelForOrder(ctx context.Context, order *Order) (*Label, error) {
	var label Label
	if err := c.post(ctx, "/orders/createlabelfororder", order, &label); err != nil {
		return nil, err
	}
	if label.ExceptionMessage != "" {
		return nil, &errors.ErrHub{Message: label.ExceptionMessage}
	}
	return &label, nil
}

// Validate checks the credentials with a cheap authenticated call.
func (c *Client) Validate(ctx context.Context) error {
	if _, err := c.ListCarriers(ctx); err != nil {
		return fmt.Errorf("connection validation failed: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	// Webhook resource URLs arrive absolute; everything else is relative to
	// the hub base URL.
	endpoint := path
	if !strings.HasPrefix(path, "http") {
		endpoint = c.baseURL + path
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Error bodies often carry the hub's own message; surface it when present.
		var hubErr struct {
			Message          string `json:"Message"`
			ExceptionMessage string `json:"ExceptionMessage"`
		}
		if err := json.Unmarshal(respBody, &hubErr); err == nil {
			if hubErr.ExceptionMessage != "" {
				return &errors.ErrHub{Message: hubErr.ExceptionMessage}
			}
			if hubErr.Message != "" {
				return &errors.ErrHub{Message: hubErr.Message}
			}
		}
		return fmt.Errorf("hub API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	c.logger.Debug("hub API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return nil
}
