package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleWebhook handles POST /webhook, the guest-accessible endpoint the hub
// posts notifications to. The payload is form-encoded; a missing
// resource_url is a silent no-op so the hub never retries junk.
func HandleWebhook(services *Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceURL := c.PostForm("resource_url")
		resourceType := c.PostForm("resource_type")
		if resourceURL == "" {
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}

		// The hub does not say which account a webhook belongs to; an
		// optional account query param disambiguates.
		accountName := c.Query("account")

		err := services.Webhook.Dispatch(c.Request.Context(), accountName, resourceType, resourceURL)
		if err != nil {
			logger.Error("Webhook dispatch failed",
				zap.String("resource_type", resourceType),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
