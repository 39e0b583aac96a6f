// Package transport wires the HTTP surface: routing, request decoding,
// and the mapping from domain errors to status codes.
package transport

import (
	"net/http"

	"maison-be/internal/logger"
	"maison-be/internal/metrics"
	"maison-be/internal/middleware"
	"maison-be/internal/payment/webhook"
	"maison-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Auth    *AuthHandler
	Product *ProductHandler
	Payment *PaymentHandler
	Order   *OrderHandler
	Comment *CommentHandler
	Admin   *AdminHandler
	Webhook *webhook.Handler
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(metrics.CountMiddleware)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.RequireAuth).Get("/me", h.Auth.Me)
			r.With(middleware.RequireAuth).Delete("/me", h.Auth.DeactivateMe)
			r.With(middleware.RequireAdmin).Get("/", h.Auth.ListUsers)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Get("/categories/list", h.Product.Categories)
			r.Get("/bestsellers", h.Product.Bestsellers)
			r.Get("/new-arrivals", h.Product.NewArrivals)
			r.Get("/{id}", h.Product.Get)
			r.Get("/{id}/comments", h.Comment.ListForProduct)
			r.With(middleware.RequireAuth).Post("/{id}/comments", h.Comment.Create)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", h.Product.Create)
				r.Put("/{id}", h.Product.Update)
				r.Delete("/{id}", h.Product.Delete)
			})
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/create-checkout-session", h.Payment.CreateCheckoutSession)
			r.Get("/session/{id}", h.Payment.SessionStatus)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/webhook", h.Webhook.WebhookHandler)

			r.With(middleware.RequireAuth).Get("/my-orders", h.Order.MyOrders)
			r.With(middleware.RequireAuth).Get("/{id}", h.Order.Detail)
			r.With(middleware.RequireAdmin).Get("/", h.Order.List)
			r.With(middleware.RequireAdmin).Patch("/{id}/status", h.Order.UpdateStatus)
		})

		r.With(middleware.RequireAuth).Delete("/comments/{id}", h.Comment.Delete)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/analytics/summary", h.Admin.AnalyticsSummary)
			r.Get("/comments", h.Comment.AdminList)
			r.Get("/logs", h.Admin.ActivityLogs)
		})
	})

	return r
}
