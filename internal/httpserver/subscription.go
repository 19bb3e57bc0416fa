package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func subscriptionHandler(svc subscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := svc.Current(c.Request.Context(), c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}
