package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dropstore/internal/config"
	"dropstore/internal/db"
	"dropstore/internal/httpserver"
	"dropstore/internal/payment"
	"dropstore/internal/plan"
	checkoutrepo "dropstore/internal/repository/checkout"
	giftcardrepo "dropstore/internal/repository/giftcard"
	storerepo "dropstore/internal/repository/store"
	subscriptionrepo "dropstore/internal/repository/subscription"
	checkoutsvc "dropstore/internal/service/checkout"
	giftcardsvc "dropstore/internal/service/giftcard"
	storesvc "dropstore/internal/service/store"
	subscriptionsvc "dropstore/internal/service/subscription"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	plans := plan.Default()

	checkoutRepo := checkoutrepo.NewPostgres(dbpool)
	checkoutService := checkoutsvc.New(checkoutRepo, logger)
	subscriptionRepo := subscriptionrepo.NewPostgres(dbpool)
	subscriptionService := subscriptionsvc.New(subscriptionRepo, plans, logger)
	storeRepo := storerepo.NewPostgres(dbpool)
	storeService := storesvc.New(storeRepo, subscriptionService)
	giftCardRepo := giftcardrepo.NewPostgres(dbpool)
	giftCardService := giftcardsvc.New(giftCardRepo)
	payments := payment.NewClient(cfg.PiAPIBaseURL, cfg.PiAPIKey)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CheckoutSvc:     checkoutService,
		SubscriptionSvc: subscriptionService,
		StoreSvc:        storeService,
		GiftCardSvc:     giftCardService,
		Payments:        payments,
	}, cfg.AllowedOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
