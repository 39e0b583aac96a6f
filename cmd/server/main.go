package main

import (
	"log"
	"net/http"

	"maison-be/internal/activitylog"
	"maison-be/internal/analytics"
	"maison-be/internal/comment"
	"maison-be/internal/config"
	"maison-be/internal/db"
	"maison-be/internal/logger"
	"maison-be/internal/mailer"
	"maison-be/internal/order"
	"maison-be/internal/payment"
	"maison-be/internal/payment/webhook"
	"maison-be/internal/product"
	"maison-be/internal/stock"
	"maison-be/internal/transport"
	"maison-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	stockEngine := stock.NewEngine(database)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, stockEngine)

	commentSvc := comment.NewService(comment.NewRepository(database), productRepo)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	paymentSvc := payment.NewService(gateway, productRepo, stockEngine, cfg.ShippingFee, cfg.FrontendURL)

	auditSvc := activitylog.NewService(activitylog.NewRepository(database))
	mail := mailer.New(cfg)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, gateway, cfg.ShippingFee, auditSvc, mail)

	analyticsRepo := analytics.NewRepository(database)

	router := transport.NewRouter(transport.Handlers{
		Auth:    transport.NewAuthHandler(userSvc),
		Product: transport.NewProductHandler(productSvc),
		Payment: transport.NewPaymentHandler(paymentSvc, orderSvc),
		Order:   transport.NewOrderHandler(orderSvc),
		Comment: transport.NewCommentHandler(commentSvc),
		Admin:   transport.NewAdminHandler(analyticsRepo, auditSvc),
		Webhook: webhook.NewWebhookHandler(orderSvc, gateway),
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}

	log.Printf("server running at http://localhost:%s/", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
