package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dropstore/internal/domain"
	storesvc "dropstore/internal/service/store"
)

type createStoreRequest struct {
	OwnerID string `json:"owner_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type"`
}

type addProductRequest struct {
	Title string  `json:"title" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

func createStoreHandler(svc storeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createStoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id and name are required"})
			return
		}

		st, err := svc.Create(c.Request.Context(), storesvc.CreateInput{
			OwnerID: req.OwnerID,
			Name:    req.Name,
			Type:    req.Type,
		})
		if err != nil {
			storeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, st)
	}
}

func getStoreHandler(svc storeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svc.Get(c.Request.Context(), c.Param("storeId"))
		if err != nil {
			storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func addProductHandler(svc storeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required and price must not be negative"})
			return
		}

		p, err := svc.AddProduct(c.Request.Context(), c.Param("storeId"), storesvc.AddProductInput{
			Title: req.Title,
			Price: req.Price,
		})
		if err != nil {
			storeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
	case errors.Is(err, domain.ErrSubscriptionRequired):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "active subscription required"})
	case errors.Is(err, domain.ErrPlanLimitReached):
		c.JSON(http.StatusForbidden, gin.H{"error": "plan limit reached"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
