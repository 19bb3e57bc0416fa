package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dropstore/internal/domain"
)

type completePaymentRequest struct {
	CheckoutID string `json:"checkout_id" binding:"required"`
	TxID       string `json:"txid" binding:"required"`
}

func approvePaymentHandler(payments paymentClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := payments.Approve(c.Request.Context(), c.Param("paymentId"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment network unavailable"})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func completePaymentHandler(payments paymentClient, checkouts checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req completePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "checkout_id and txid are required"})
			return
		}

		info, err := payments.Complete(c.Request.Context(), c.Param("paymentId"), req.TxID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment network unavailable"})
			return
		}

		status := domain.PaymentPaid
		switch {
		case info.Status.Cancelled || info.Status.UserCancelled:
			status = domain.PaymentCancelled
		case !info.Status.TransactionVerified:
			status = domain.PaymentFailed
		}

		if err := checkouts.MarkPayment(c.Request.Context(), req.CheckoutID, status, req.TxID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "checkout not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, info)
	}
}
