package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/musfiqshanta/launchmybiz-backend/internal/auth"
	"github.com/musfiqshanta/launchmybiz-backend/internal/repository"
	"github.com/musfiqshanta/launchmybiz-backend/pkg/metrics"
)

type RouterConfig struct {
	Webhook        *WebhookHandler
	Checkout       *CheckoutHandler
	Packages       *PackageHandler
	Admin          *AdminHandler
	Customers      *CustomerHandler
	Tokens         *auth.TokenManager
	Admins         repository.AdminRepository
	Metrics        *metrics.ServerMetrics
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter wires every endpoint of the backend onto one chi router.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	if cfg.Metrics != nil {
		r.Use(countRequests(cfg.Metrics))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/stripe-webhook", cfg.Webhook.HandleStripeWebhook)
		r.Post("/create-checkout-session", cfg.Checkout.CreateCheckoutSession)
		r.Get("/business-formation-package", cfg.Packages.GetPackage)

		r.Route("/customers", func(r chi.Router) {
			r.Post("/signup", cfg.Customers.Signup)
			r.Post("/signin", cfg.Customers.Signin)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/signin", cfg.Admin.Signin)

			r.Group(func(r chi.Router) {
				r.Use(AdminAuthMiddleware(cfg.Tokens, cfg.Admins))
				r.Get("/me", cfg.Admin.Me)
				r.Post("/change-password", cfg.Admin.ChangePassword)
				r.Get("/business-orders", cfg.Admin.ListOrders)
				r.Get("/business-orders/export", cfg.Admin.ExportOrders)
				r.Get("/business-orders/{id}/export", cfg.Admin.ExportOrder)
				r.Put("/business-orders/{id}/status", cfg.Admin.UpdateOrderStatus)
			})
		})
	})

	return r
}

// countRequests records one counter increment per request, labelled with the
// matched chi route pattern and response status.
func countRequests(m *metrics.ServerMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			m.Requests.WithLabelValues(pattern, strconv.Itoa(ww.Status())).Inc()
		})
	}
}
