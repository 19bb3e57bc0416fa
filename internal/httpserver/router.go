package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"dropstore/internal/domain"
	"dropstore/internal/payment"
	storesvc "dropstore/internal/service/store"
	subscriptionsvc "dropstore/internal/service/subscription"
)

type checkoutService interface {
	Create(ctx context.Context, p domain.CheckoutPayload) domain.CheckoutResponse
	Get(ctx context.Context, checkoutID string) (*domain.CheckoutPayload, error)
	MarkPayment(ctx context.Context, checkoutID, status, transactionID string) error
}

type subscriptionService interface {
	Current(ctx context.Context, userID string) (subscriptionsvc.State, error)
}

type storeService interface {
	Create(ctx context.Context, in storesvc.CreateInput) (*domain.Store, error)
	Get(ctx context.Context, id string) (*domain.Store, error)
	AddProduct(ctx context.Context, storeID string, in storesvc.AddProductInput) (*domain.StoreProduct, error)
}

type giftCardService interface {
	Issue(ctx context.Context, storeID string, amount float64) (*domain.GiftCard, error)
	Redeem(ctx context.Context, code string, amount float64) (*domain.GiftCard, error)
}

type paymentClient interface {
	Approve(ctx context.Context, paymentID string) (*payment.Info, error)
	Complete(ctx context.Context, paymentID, txid string) (*payment.Info, error)
}

// Deps carries the collaborators the routes forward to.
type Deps struct {
	CheckoutSvc     checkoutService
	SubscriptionSvc subscriptionService
	StoreSvc        storeService
	GiftCardSvc     giftCardService
	Payments        paymentClient
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "Idempotency-Key")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	v1 := router.Group("/v1")
	v1.POST("/checkouts", createCheckoutHandler(deps.CheckoutSvc))
	v1.GET("/checkouts/:checkoutId", getCheckoutHandler(deps.CheckoutSvc))
	v1.POST("/payments/:paymentId/approve", approvePaymentHandler(deps.Payments))
	v1.POST("/payments/:paymentId/complete", completePaymentHandler(deps.Payments, deps.CheckoutSvc))
	v1.GET("/users/:userId/subscription", subscriptionHandler(deps.SubscriptionSvc))
	v1.POST("/stores", createStoreHandler(deps.StoreSvc))
	v1.GET("/stores/:storeId", getStoreHandler(deps.StoreSvc))
	v1.POST("/stores/:storeId/products", addProductHandler(deps.StoreSvc))
	v1.POST("/gift-cards", issueGiftCardHandler(deps.GiftCardSvc))
	v1.POST("/gift-cards/redeem", redeemGiftCardHandler(deps.GiftCardSvc))

	return router
}
