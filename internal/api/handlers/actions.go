package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/service"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

// HandleRefreshCarriers handles POST /v1/accounts/:name/refresh-carriers
func HandleRefreshCarriers(services *Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := services.Settings.UpdateCarriersAndStores(c.Request.Context(), c.Param("name"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"account":  account.Name,
			"carriers": len(account.Carriers),
			"stores":   len(account.Stores),
		})
	}
}

// HandleRefreshStores handles POST /v1/accounts/:name/refresh-stores
func HandleRefreshStores(services *Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := services.Settings.UpdateStores(c.Request.Context(), c.Param("name"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"account": account.Name,
			"stores":  len(account.Stores),
		})
	}
}

// HandleRefreshWarehouses handles POST /v1/accounts/:name/refresh-warehouses
func HandleRefreshWarehouses(services *Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := services.Settings.UpdateWarehouses(c.Request.Context(), c.Param("name"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"account":    account.Name,
			"warehouses": len(account.ActiveWarehouseIDs),
		})
	}
}

// HandleImportProducts handles POST /v1/accounts/:name/import-products
func HandleImportProducts(services *Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		message, err := services.Settings.ImportProducts(c.Request.Context(), c.Param("name"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

// HandleCarrierServices handles GET /v1/accounts/:name/carriers/:carrier/services
func HandleCarrierServices(services *Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := services.Settings.CarrierServices(c.Request.Context(), c.Param("name"), c.Param("carrier"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"services": names})
	}
}

// HandlePullOrders handles POST /v1/actions/pull-orders. An optional `start`
// body field (RFC 3339) overrides the rolling lookback window.
func HandlePullOrders(services *Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, ok := parseStart(c)
		if !ok {
			return
		}
		if err := services.Orders.SyncOrders(c.Request.Context(), start); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandlePullShipments handles POST /v1/actions/pull-shipments
func HandlePullShipments(services *Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, ok := parseStart(c)
		if !ok {
			return
		}
		if err := services.Shipments.SyncShipments(c.Request.Context(), start); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleCreateLabel handles POST /v1/actions/labels
func HandleCreateLabel(services *Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LabelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		label, err := services.Labels.CreateLabel(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"shipment_id":     label.ShipmentID,
			"tracking_number": label.TrackingNumber,
			"carrier_code":    label.CarrierCode,
			"service_code":    label.ServiceCode,
		})
	}
}

type startRequest struct {
	Start string `json:"start"`
}

func parseStart(c *gin.Context) (time.Time, bool) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Start == "" {
		return time.Time{}, true
	}
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start time, expected RFC 3339"})
		return time.Time{}, false
	}
	return start, true
}

// respondError maps the error taxonomy onto HTTP statuses. Hub business
// errors surface with the hub's own message.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if errors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if errors.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.IsHub(err) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	logger.Error("Request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
