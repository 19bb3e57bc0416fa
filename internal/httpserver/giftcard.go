package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dropstore/internal/domain"
)

type issueGiftCardRequest struct {
	StoreID string  `json:"store_id" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
}

type redeemGiftCardRequest struct {
	Code   string  `json:"code" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func issueGiftCardHandler(svc giftCardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req issueGiftCardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "store_id and a positive amount are required"})
			return
		}

		card, err := svc.Issue(c.Request.Context(), req.StoreID, req.Amount)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, card)
	}
}

func redeemGiftCardHandler(svc giftCardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req redeemGiftCardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code and a positive amount are required"})
			return
		}

		card, err := svc.Redeem(c.Request.Context(), req.Code, req.Amount)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "gift card not found"})
			case errors.Is(err, domain.ErrGiftCardInactive):
				c.JSON(http.StatusConflict, gin.H{"error": "gift card not active"})
			case errors.Is(err, domain.ErrInsufficientBalance):
				c.JSON(http.StatusConflict, gin.H{"error": "insufficient balance"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, card)
	}
}
