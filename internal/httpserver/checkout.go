package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dropstore/internal/domain"
)

func createCheckoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload domain.CheckoutPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		if key := strings.TrimSpace(c.GetHeader("Idempotency-Key")); key != "" && payload.Metadata.IdempotencyKey == "" {
			payload.Metadata.IdempotencyKey = key
		}
		if payload.Metadata.Source == "" {
			payload.Metadata.Source = "web"
		}
		if payload.Metadata.Device == "" {
			payload.Metadata.Device = "desktop"
		}
		payload.Metadata.IPAddress = c.ClientIP()
		if payload.Metadata.UserAgent == "" {
			payload.Metadata.UserAgent = c.Request.UserAgent()
		}

		// Validation failures ride in the response body; the transport
		// succeeded, so the status stays 200 either way.
		c.JSON(http.StatusOK, svc.Create(c.Request.Context(), payload))
	}
}

func getCheckoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("checkoutId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "checkout not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
